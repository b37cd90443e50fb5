package blocklot

import (
	"fmt"
)

// Field names shared by the dataset, message payloads and the parcel store.
const (
	FieldBlockLot = "block_lot"
	FieldBlock    = "block"
	FieldLot      = "lot"
)

// InvalidFormatError reports a block_lot value that matches none of the split rules.
type InvalidFormatError struct {
	BlockLot string
	Reason   string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid block_lot %q: %s", e.BlockLot, e.Reason)
}

// Split separates a combined block_lot identifier into its block and lot parts.
// The block is the first three, four, or five characters depending on the
// layout of the value, first rule wins:
//   - a six character value splits 3/3
//   - a value whose fifth character is a letter splits 5/rest
//   - anything else splits 4/rest
//
// Values shorter than five characters (other than the six character case) have
// no fifth character to classify and are rejected, as is a five character
// value with a letter in fifth position, which would leave an empty lot.
func Split(blocklot string) (block, lot string, err error) {
	switch {
	case blocklot == "":
		return "", "", &InvalidFormatError{BlockLot: blocklot, Reason: "empty value"}
	case len(blocklot) == 6:
		return blocklot[:3], blocklot[3:], nil
	case len(blocklot) < 5:
		return "", "", &InvalidFormatError{BlockLot: blocklot, Reason: "shorter than 5 characters"}
	case isASCIIAlpha(blocklot[4]):
		if len(blocklot) == 5 {
			return "", "", &InvalidFormatError{BlockLot: blocklot, Reason: "no lot after 5 character block"}
		}
		return blocklot[:5], blocklot[5:], nil
	default:
		return blocklot[:4], blocklot[4:], nil
	}
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
