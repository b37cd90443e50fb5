package enrich

import (
	"blocklot-enricher/pkg/blocklot"
	"fmt"
	"sync"
	"time"
)

// Record is one loosely typed dataset row.
type Record map[string]any

// Policy controls how Apply reacts to a record that fails the split rules.
type Policy int

const (
	// BestEffort skips invalid records and reports them after the batch.
	BestEffort Policy = iota
	// FailFast aborts the batch on the first invalid record.
	FailFast
)

func (p Policy) String() string {
	if p == FailFast {
		return "fail-fast"
	}
	return "best-effort"
}

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "best-effort":
		return BestEffort, nil
	case "fail-fast":
		return FailFast, nil
	}
	return BestEffort, fmt.Errorf("unknown policy: %s", s)
}

// RowError ties a split failure to the record it occurred on.
type RowError struct {
	Index    int
	BlockLot string
	Err      error
}

func (e RowError) Error() string {
	return fmt.Sprintf("record %d (block_lot %q): %v", e.Index, e.BlockLot, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Applier applies the block/lot split row-wise over record batches.
// All batches share the source and target field names and the failure policy,
// so one applier per source is enough and safe for concurrent batches.
type Applier struct {
	sourceField string
	blockField  string
	lotField    string
	policy      Policy

	// stop watch for measuring per-record split performance
	Statistics *Statistics

	mu           sync.Mutex
	lastAccessed time.Time
}

func NewApplier(policy Policy) *Applier {
	return &Applier{
		sourceField:  blocklot.FieldBlockLot,
		blockField:   blocklot.FieldBlock,
		lotField:     blocklot.FieldLot,
		policy:       policy,
		Statistics:   NewStopWatch().Start(),
		lastAccessed: time.Now(),
	}
}

func (a *Applier) Policy() Policy {
	return a.policy
}

// Apply splits the source field of every record into the block and lot fields.
// Records keep their order and the source field itself is never modified.
// Under FailFast the first invalid record aborts the batch and is returned as
// the error. Under BestEffort invalid records are left untouched, collected
// into the returned RowError slice, and the rest of the batch is enriched.
func (a *Applier) Apply(records []Record) ([]Record, []RowError, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastAccessed = time.Now()

	var rowErrs []RowError
	for i, record := range records {
		stopWatch := NewStopWatch().Start()

		err := a.applyOne(record)

		elapsed := stopWatch.Stop().Elapsed()
		a.Statistics.LapWith(elapsed)

		if err == nil {
			continue
		}
		rowErr := RowError{Index: i, BlockLot: stringField(record, a.sourceField), Err: err}
		if a.policy == FailFast {
			return records, []RowError{rowErr}, rowErr
		}
		rowErrs = append(rowErrs, rowErr)
	}
	return records, rowErrs, nil
}

// applyOne assigns the two target fields on success and leaves the record
// completely untouched on failure.
func (a *Applier) applyOne(record Record) error {
	raw, ok := record[a.sourceField]
	if !ok {
		return &blocklot.InvalidFormatError{Reason: "missing " + a.sourceField + " field"}
	}
	value, ok := raw.(string)
	if !ok {
		return &blocklot.InvalidFormatError{Reason: fmt.Sprintf("%s is %T, not a string", a.sourceField, raw)}
	}
	block, lot, err := blocklot.Split(value)
	if err != nil {
		return err
	}
	record[a.blockField] = block
	record[a.lotField] = lot
	return nil
}

// IsIdle reports whether the applier has not processed a batch for longer than ttl.
func (a *Applier) IsIdle(ttl time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return time.Since(a.lastAccessed) > ttl
}

func stringField(record Record, field string) string {
	if value, ok := record[field].(string); ok {
		return value
	}
	return ""
}
