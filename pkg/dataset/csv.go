package dataset

import (
	"blocklot-enricher/pkg/blocklot"
	"blocklot-enricher/pkg/enrich"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteOptions controls how the enriched table is written back.
type WriteOptions struct {
	// DropBlockLot removes the original block_lot column from the output.
	DropBlockLot bool
}

// ReadRecords reads a CSV table and returns its header and rows as records.
// The table must carry a block_lot column.
func ReadRecords(r io.Reader) ([]string, []enrich.Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading csv header: %v", err)
	}
	if !contains(header, blocklot.FieldBlockLot) {
		return nil, nil, fmt.Errorf("csv has no %s column", blocklot.FieldBlockLot)
	}

	var records []enrich.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading csv row %d: %v", len(records)+2, err)
		}
		record := make(enrich.Record, len(header)+2)
		for i, name := range header {
			record[name] = row[i]
		}
		records = append(records, record)
	}
	return header, records, nil
}

// WriteRecords writes records back as CSV, with block and lot columns appended
// after the original header. Records missing a column write an empty cell.
func WriteRecords(w io.Writer, header []string, records []enrich.Record, opts WriteOptions) error {
	outHeader := make([]string, 0, len(header)+2)
	for _, name := range header {
		if opts.DropBlockLot && name == blocklot.FieldBlockLot {
			continue
		}
		// re-appended at the end, whether or not the input already had them
		if name == blocklot.FieldBlock || name == blocklot.FieldLot {
			continue
		}
		outHeader = append(outHeader, name)
	}
	outHeader = append(outHeader, blocklot.FieldBlock, blocklot.FieldLot)

	writer := csv.NewWriter(w)
	if err := writer.Write(outHeader); err != nil {
		return fmt.Errorf("error writing csv header: %v", err)
	}

	row := make([]string, len(outHeader))
	for i, record := range records {
		for j, name := range outHeader {
			value, _ := record[name].(string)
			row[j] = value
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing csv row %d: %v", i+2, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// EnrichFile reads the CSV at inputPath, splits every block_lot value and
// writes the enriched table to outputPath. Row failures are returned alongside
// the write, unless the applier is fail-fast, in which case the first failure
// aborts before anything is written.
func EnrichFile(inputPath, outputPath string, applier *enrich.Applier, opts WriteOptions) ([]enrich.RowError, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error opening input csv: %v", err)
	}
	defer in.Close()

	header, records, err := ReadRecords(in)
	if err != nil {
		return nil, err
	}

	records, rowErrs, err := applier.Apply(records)
	if err != nil {
		return rowErrs, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return rowErrs, fmt.Errorf("error creating output csv: %v", err)
	}
	if err = WriteRecords(out, header, records, opts); err != nil {
		out.Close()
		return rowErrs, err
	}
	if err = out.Close(); err != nil {
		return rowErrs, fmt.Errorf("error closing output csv: %v", err)
	}
	return rowErrs, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
