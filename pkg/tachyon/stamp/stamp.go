// Package stamp implements the PCD boundary (SPEC_FULL.md section 4.5): an
// opaque Proof interface plus the one concrete Stamp type that carries the
// accumulated tachygram list, the anchor it was built against, and a proof
// value satisfying that interface.
package stamp

import (
	"encoding/binary"

	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// Witness is the per-action private witness a Proof consumes to build one
// action's contribution to the accumulator: the randomizer alpha (effect
// erased, since the proof layer no longer cares whether it came from a
// spend or an output), the note it attests to, and that note's value
// commitment trapdoor.
type Witness struct {
	Alpha keys.WitnessRandomizer
	Note  note.Note
	Rcv   note.CommitmentTrapdoor
}

// MergePrivate is the private witness proving one stamp's accumulator state
// is a superset of another's, carried by the merge operation (section 4.5:
// "left = right * quotient").
type MergePrivate struct {
	AnchorQuotient primitives.Fp
}

// Proof is the opaque PCD boundary. A real implementation would be a
// recursive proof-carrying-data circuit; this module's only implementation,
// MemoryProof, records accumulator state directly rather than proving
// anything, matching original_source/'s own todo!()-stubbed proof layer.
type Proof interface {
	// CreateAction folds one action's witness into a fresh single-action
	// proof under the given anchor.
	CreateAction(w Witness, tachygram primitives.Tachygram, anchor primitives.Anchor, pak keys.ProofAuthorizingKey) (Proof, error)
	// Merge combines this proof with another, certified by mp as a
	// superset relationship (section 4.5's merge contract).
	Merge(other Proof, mp MergePrivate) (Proof, error)
	// Verify checks this proof against the public tachygram list and
	// anchor it is claimed to attest to.
	Verify(tachygrams []primitives.Tachygram, anchor primitives.Anchor) bool
}

// Stamp is the accumulated proof-carrying-data artifact attached to a
// Stamped bundle.
type Stamp struct {
	Tachygrams []primitives.Tachygram
	Anchor     primitives.Anchor
	ProofValue Proof
}

// Stampless is the unit marker type for a stripped bundle with no stamp.
type Stampless struct{}

// MarshalBinary encodes a Stamp as a non-consensus convenience wire format:
// a tachygram count, each tachygram's 32 bytes, the anchor's epoch and
// state, and the proof's own MarshalBinary output length-prefixed. This is
// explicitly not a consensus-critical encoding (SPEC_FULL.md's Open
// Questions resolution): the real PCD proof format is left undefined by the
// spec, so this module defines one just well enough to round-trip its own
// MemoryProof in tests.
func (s Stamp) MarshalBinary() ([]byte, error) {
	mp, ok := s.ProofValue.(*MemoryProof)
	if !ok {
		return nil, terr.New(terr.ErrInvalidPoint, "stamp: MarshalBinary only supports MemoryProof")
	}
	proofBytes, err := mp.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 8+len(s.Tachygrams)*32+8+32+4+len(proofBytes))
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(len(s.Tachygrams)))
	buf = append(buf, countBuf[:]...)
	for _, t := range s.Tachygrams {
		tb := t.Value().Bytes()
		buf = append(buf, tb[:]...)
	}

	var epochBuf [8]byte
	binary.LittleEndian.PutUint64(epochBuf[:], uint64(s.Anchor.Epoch()))
	buf = append(buf, epochBuf[:]...)
	stateBuf := s.Anchor.State().Bytes()
	buf = append(buf, stateBuf[:]...)

	var proofLenBuf [4]byte
	binary.LittleEndian.PutUint32(proofLenBuf[:], uint32(len(proofBytes)))
	buf = append(buf, proofLenBuf[:]...)
	buf = append(buf, proofBytes...)
	return buf, nil
}

// UnmarshalBinary decodes the format MarshalBinary produces.
func (s *Stamp) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return terr.New(terr.ErrInvalidPoint, "stamp: truncated tachygram count")
	}
	count := binary.LittleEndian.Uint64(data[:8])
	data = data[8:]

	tachygrams := make([]primitives.Tachygram, 0, count)
	for i := uint64(0); i < count; i++ {
		if len(data) < 32 {
			return terr.New(terr.ErrInvalidPoint, "stamp: truncated tachygram list")
		}
		var tb [32]byte
		copy(tb[:], data[:32])
		data = data[32:]
		fp, ok := primitives.FpFromCanonicalBytes(tb)
		if !ok {
			return terr.New(terr.ErrInvalidFieldElement, "stamp: non-canonical tachygram encoding")
		}
		tachygrams = append(tachygrams, primitives.NewTachygram(fp))
	}

	if len(data) < 8+32+4 {
		return terr.New(terr.ErrInvalidPoint, "stamp: truncated anchor/proof header")
	}
	epoch := primitives.Epoch(binary.LittleEndian.Uint64(data[:8]))
	data = data[8:]
	var stateBuf [32]byte
	copy(stateBuf[:], data[:32])
	data = data[32:]
	state, ok := primitives.FpFromCanonicalBytes(stateBuf)
	if !ok {
		return terr.New(terr.ErrInvalidFieldElement, "stamp: non-canonical anchor state")
	}

	proofLen := binary.LittleEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < proofLen {
		return terr.New(terr.ErrInvalidPoint, "stamp: truncated proof bytes")
	}

	mp := &MemoryProof{}
	if err := mp.UnmarshalBinary(data[:proofLen]); err != nil {
		return err
	}

	s.Tachygrams = tachygrams
	s.Anchor = primitives.NewAnchor(epoch, state)
	s.ProofValue = mp
	return nil
}
