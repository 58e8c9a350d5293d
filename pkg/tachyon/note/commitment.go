package note

import (
	"crypto/rand"
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// CommitmentTrapdoor is the per-action blinding scalar rcv backing a value
// commitment (SPEC_FULL.md section 4.2).
type CommitmentTrapdoor struct {
	rcv primitives.Fq
}

// RandomTrapdoor samples a fresh rcv. Every action plan samples its own
// trapdoor before any sighash is computed (section 4.3's ordering contract).
func RandomTrapdoor(rng io.Reader) (CommitmentTrapdoor, error) {
	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return CommitmentTrapdoor{}, terr.Wrap(err, "note: sampling value commitment trapdoor")
	}
	return CommitmentTrapdoor{rcv: primitives.FqFromWideBytes(buf[:])}, nil
}

// Scalar exposes rcv, needed to accumulate bsk = sum(rcv_i).
func (t CommitmentTrapdoor) Scalar() primitives.Fq { return t.rcv }

// Zeroize overwrites the trapdoor scalar in place.
func (t *CommitmentTrapdoor) Zeroize() { t.rcv = primitives.FqZero() }

// ValueCommitment is a Pedersen commitment cv = [v]V + [rcv]R over the fixed
// generator pair returned by primitives.ValueCommitmentGenerators.
type ValueCommitment struct {
	point primitives.Point
}

// Commit builds cv for a signed value v under trapdoor rcv.
func Commit(v int64, t CommitmentTrapdoor) ValueCommitment {
	vGen, rGen := primitives.ValueCommitmentGenerators()
	vScalar := signedToFq(v)
	return ValueCommitment{point: vGen.ScalarMul(vScalar).Add(rGen.ScalarMul(t.rcv))}
}

// Balance builds the zero-randomness commitment ValueCommit_0(v) = [v]V used
// for the bundle-level value_balance term (section 3, "bvk = sum(cv_i) -
// ValueCommit_0(value_balance)").
func Balance(v int64) ValueCommitment {
	vGen, _ := primitives.ValueCommitmentGenerators()
	return ValueCommitment{point: vGen.ScalarMul(signedToFq(v))}
}

// Point exposes the underlying curve point.
func (c ValueCommitment) Point() primitives.Point { return c.point }

// Encode returns the 32-byte compressed encoding.
func (c ValueCommitment) Encode() [32]byte { return c.point.Encode() }

// Add implements the homomorphic property cv(a) + cv(b) = cv(a+b, ra+rb)
// (P11).
func (c ValueCommitment) Add(o ValueCommitment) ValueCommitment {
	return ValueCommitment{point: c.point.Add(o.point)}
}

// Sub is the inverse of Add, used to fold ValueCommit_0(value_balance) out of
// the accumulated sum(cv_i) when deriving bvk.
func (c ValueCommitment) Sub(o ValueCommitment) ValueCommitment {
	return ValueCommitment{point: c.point.Sub(o.point)}
}

func signedToFq(v int64) primitives.Fq {
	if v < 0 {
		return primitives.FqFromUint64(uint64(-v)).Neg()
	}
	return primitives.FqFromUint64(uint64(v))
}

// SecureRandom is the default randomness source for trapdoor sampling.
func SecureRandom() io.Reader { return rand.Reader }
