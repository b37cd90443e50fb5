package enrich_test

import (
	"blocklot-enricher/pkg/blocklot"
	"blocklot-enricher/pkg/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func batch() []enrich.Record {
	return []enrich.Record{
		{"bl_id": "1", "block_lot": "1255001"},
		{"bl_id": "2", "block_lot": "644001"},
		{"bl_id": "3", "block_lot": "4543B027"},
		{"bl_id": "4", "block_lot": "5387002A"},
	}
}

func TestApplierBestEffort(t *testing.T) {
	applier := enrich.NewApplier(enrich.BestEffort)

	// a bad record in the middle of the batch
	records := batch()
	records = []enrich.Record{
		records[0], records[1],
		{"bl_id": "x", "block_lot": "12"},
		records[2], records[3],
	}

	enriched, rowErrs, err := applier.Apply(records)
	require.NoError(t, err)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Index)
	assert.Equal(t, "12", rowErrs[0].BlockLot)

	var formatErr *blocklot.InvalidFormatError
	require.ErrorAs(t, rowErrs[0].Err, &formatErr)

	// order preserved, neighbors of the bad record fully enriched
	require.Len(t, enriched, 5)
	assert.Equal(t, "1255", enriched[0]["block"])
	assert.Equal(t, "001", enriched[0]["lot"])
	assert.Equal(t, "644", enriched[1]["block"])
	assert.Equal(t, "4543B", enriched[3]["block"])
	assert.Equal(t, "027", enriched[3]["lot"])
	assert.Equal(t, "002A", enriched[4]["lot"])

	// the failing record carries no partial fields
	_, hasBlock := enriched[2]["block"]
	_, hasLot := enriched[2]["lot"]
	assert.False(t, hasBlock)
	assert.False(t, hasLot)

	assert.EqualValues(t, 5, applier.Statistics.Count())
}

func TestApplierFailFast(t *testing.T) {
	applier := enrich.NewApplier(enrich.FailFast)

	records := batch()
	records[1]["block_lot"] = "9"

	_, rowErrs, err := applier.Apply(records)
	require.Error(t, err)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 1, rowErrs[0].Index)

	var rowErr enrich.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "9", rowErr.BlockLot)
}

func TestApplierDoesNotMutateSource(t *testing.T) {
	applier := enrich.NewApplier(enrich.BestEffort)

	records := batch()
	enriched, rowErrs, err := applier.Apply(records)
	require.NoError(t, err)
	require.Empty(t, rowErrs)

	for i, record := range enriched {
		blockLot := record["block_lot"].(string)
		assert.Equal(t, batch()[i]["block_lot"], blockLot)
		assert.Equal(t, blockLot, record["block"].(string)+record["lot"].(string))
	}
}

func TestApplierIdempotent(t *testing.T) {
	applier := enrich.NewApplier(enrich.BestEffort)

	records := batch()
	once, _, err := applier.Apply(records)
	require.NoError(t, err)

	want := make([]enrich.Record, len(once))
	for i, record := range once {
		want[i] = enrich.Record{"block": record["block"], "lot": record["lot"]}
	}

	twice, rowErrs, err := applier.Apply(once)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	for i, record := range twice {
		assert.Equal(t, want[i]["block"], record["block"])
		assert.Equal(t, want[i]["lot"], record["lot"])
	}
}

func TestApplierMissingField(t *testing.T) {
	applier := enrich.NewApplier(enrich.BestEffort)

	_, rowErrs, err := applier.Apply([]enrich.Record{
		{"bl_id": "1"},
		{"bl_id": "2", "block_lot": 644001},
	})
	require.NoError(t, err)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 0, rowErrs[0].Index)
	assert.Equal(t, 1, rowErrs[1].Index)
}

func TestParsePolicy(t *testing.T) {
	policy, err := enrich.ParsePolicy("fail-fast")
	require.NoError(t, err)
	assert.Equal(t, enrich.FailFast, policy)

	policy, err = enrich.ParsePolicy("best-effort")
	require.NoError(t, err)
	assert.Equal(t, enrich.BestEffort, policy)

	_, err = enrich.ParsePolicy("whatever")
	assert.Error(t, err)
}
