package note

import (
	"crypto/rand"
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/constants"
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// Note is the private leaf data an action either consumes (spend) or creates
// (output): a payment key, a validated value, a randomness field psi, and a
// commitment trapdoor rcm. Unlike Sapling/Orchard, a Tachyon note has no
// diversifier and no separate rho field (original_source's note.rs is
// explicit on this point); nullifier uniqueness comes from psi alone.
type Note struct {
	Pk    keys.PaymentKey
	Value Value
	Psi   primitives.Fp
	Rcm   primitives.Fq
}

// New constructs a note, sampling psi and rcm freshly.
func New(rng io.Reader, pk keys.PaymentKey, value Value) (Note, error) {
	var psiBytes, rcmBytes [64]byte
	if _, err := io.ReadFull(rng, psiBytes[:]); err != nil {
		return Note{}, terr.Wrap(err, "note: sampling psi")
	}
	if _, err := io.ReadFull(rng, rcmBytes[:]); err != nil {
		return Note{}, terr.Wrap(err, "note: sampling rcm")
	}
	return Note{
		Pk:    pk,
		Value: value,
		Psi:   primitives.FpFromWideBytes(psiBytes[:]),
		Rcm:   primitives.FqFromWideBytes(rcmBytes[:]),
	}, nil
}

// Commitment returns this note's commitment cm. The spec leaves the exact
// note-commitment circuit (a Sinsemilla-style hash over pk, value, psi)
// unspecified beyond "some binding commitment"; original_source/ implements
// it via a dedicated Pasta-curve hash this module has no grounded equivalent
// for without fabricating curve parameters it cannot verify. This is an
// intentionally stubbed, non-consensus-safe placeholder: a deterministic
// personalized BLAKE2b-512 digest reduced into Fp, sufficient for the
// internal self-consistency properties this module's test scenarios check
// (S1-S6) but not a circuit-compatible commitment. See SPEC_FULL.md's Open
// Questions resolution.
func (n Note) Commitment() primitives.Fp {
	pkBytes := n.Pk.Scalar().Bytes()
	psiBytes := n.Psi.Bytes()
	rcmBytes := n.Rcm.Bytes()
	var valueBytes [8]byte
	v := n.Value.Uint64()
	for i := 0; i < 8; i++ {
		valueBytes[i] = byte(v >> (8 * i))
	}
	digest := primitives.HashToScalar(
		constants.NoteCommitmentDomain,
		pkBytes[:], valueBytes[:], psiBytes[:], rcmBytes[:],
	)
	digestBytes := digest.Bytes()
	return primitives.FpFromWideBytes(digestBytes[:])
}

// Nullifier returns this note's nullifier nf, derived from the note's
// nullifier-deriving key nk and its own commitment. Stubbed for the same
// reason as Commitment: the real construction (nf = Extract(nk*cm + psi*G)
// or similar) needs a circuit-friendly mixing function this module does not
// implement, but this placeholder is deterministic and injective enough for
// the double-spend and uniqueness properties the spec's scenarios exercise.
func (n Note) Nullifier(nk keys.NullifierKey) primitives.Fp {
	cm := n.Commitment()
	cmBytes := cm.Bytes()
	nkBytes := nk.Scalar().Bytes()
	digest := primitives.HashToScalar(constants.NullifierDomain, nkBytes[:], cmBytes[:])
	digestBytes := digest.Bytes()
	return primitives.FpFromWideBytes(digestBytes[:])
}

// SecureRandom is the default randomness source for note construction.
func SecureRandom() io.Reader { return rand.Reader }
