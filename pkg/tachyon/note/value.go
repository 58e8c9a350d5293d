// Package note implements the note and value-commitment model: Note,
// Value, CommitmentTrapdoor (rcv) and the Pedersen value commitment cv.
package note

import (
	"github.com/holiman/uint256"

	"github.com/tachyon-go/tachyon/pkg/tachyon/constants"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// Value is a validated note value: 0 <= v <= NOTE_VALUE_MAX (I7). It is
// stored as a uint64; NewValue's bound check compares through uint256.Int
// (a direct teacher dependency, github.com/holiman/uint256), the same way
// the teacher's core/types leans on typed fixed-width integers for
// consensus-relevant quantities. No other arithmetic on Value goes through
// uint256.
type Value struct {
	v uint64
}

// NewValue validates v against NOTE_VALUE_MAX and rejects anything above it
// (I7, P10).
func NewValue(v uint64) (Value, error) {
	bound := uint256.NewInt(constants.NoteValueMax)
	candidate := uint256.NewInt(v)
	if candidate.Cmp(bound) > 0 {
		return Value{}, terr.New(terr.ErrNoteValueOverflow, "note: value exceeds NOTE_VALUE_MAX")
	}
	return Value{v: v}, nil
}

func (val Value) Uint64() uint64 { return val.v }

// Signed returns the value as a signed i64, negated for outputs per the
// value-commitment sign convention (SPEC_FULL.md section 4.2).
func (val Value) Signed(negate bool) int64 {
	if negate {
		return -int64(val.v)
	}
	return int64(val.v)
}
