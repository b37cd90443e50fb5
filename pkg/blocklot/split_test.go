package blocklot_test

import (
	"blocklot-enricher/pkg/blocklot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		in    string
		block string
		lot   string
	}{
		{"1255001", "1255", "001"},
		{"644001", "644", "001"},
		{"4543B027", "4543B", "027"},
		{"5387002A", "5387", "002A"},
		{"7610011", "7610", "011"},
		// six characters always split 3/3, even when all digits
		{"123456", "123", "456"},
		{"12345", "1234", "5"},
		{"0001A057", "0001A", "057"},
		{"1234b027", "1234b", "027"},
	}

	for _, c := range cases {
		block, lot, err := blocklot.Split(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.block, block, "block of %q", c.in)
		assert.Equal(t, c.lot, lot, "lot of %q", c.in)
		assert.Equal(t, c.in, block+lot, "round trip of %q", c.in)
	}
}

func TestSplitInvalid(t *testing.T) {
	for _, in := range []string{"", "1", "12", "1234", "1234B"} {
		block, lot, err := blocklot.Split(in)
		require.Error(t, err, "input %q", in)
		assert.Empty(t, block, "block of %q", in)
		assert.Empty(t, lot, "lot of %q", in)

		var formatErr *blocklot.InvalidFormatError
		require.ErrorAs(t, err, &formatErr, "input %q", in)
		assert.Equal(t, in, formatErr.BlockLot)
	}
}
