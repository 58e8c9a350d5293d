// Package keys implements the Tachyon key hierarchy: the raw 32-byte
// spending key and its deterministic children (ask, ak, nk, pk, pak), plus
// the per-action randomization layer in randomizer.go.
package keys

import (
	"crypto/rand"
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/constants"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// SpendingKey is 32 raw bytes of entropy. It cannot be constructed from
// field elements: the full 256-bit entropy space is preserved, and every
// child key is derived from these bytes via PRF_expand (SPEC_FULL.md
// section 3).
type SpendingKey struct {
	bytes [32]byte
}

// NewSpendingKey samples a fresh SpendingKey from rng.
func NewSpendingKey(rng io.Reader) (SpendingKey, error) {
	var sk SpendingKey
	if _, err := io.ReadFull(rng, sk.bytes[:]); err != nil {
		return SpendingKey{}, terr.Wrap(err, "keys: sampling spending key")
	}
	return sk, nil
}

// SpendingKeyFromBytes wraps exactly 32 bytes as a SpendingKey, with no
// further validation (any 256-bit value is a valid spending key).
func SpendingKeyFromBytes(b [32]byte) SpendingKey { return SpendingKey{bytes: b} }

func (sk SpendingKey) Bytes() [32]byte { return sk.bytes }

// Zeroize overwrites the spending key's backing storage. Go has no
// destructors, so callers that hold a SpendingKey past its useful lifetime
// must call this explicitly (typically via defer), per SPEC_FULL.md section
// 5's "Sensitive memory" policy.
func (sk *SpendingKey) Zeroize() {
	for i := range sk.bytes {
		sk.bytes[i] = 0
	}
}

// SpendAuthorizingKey is ask in Fq, sign-normalized so that ak = [ask]G has
// y-sign bit 0.
type SpendAuthorizingKey struct {
	ask primitives.Fq
}

// SpendValidatingKey is ak = [ask]G, the public half of the spend
// authorizing key.
type SpendValidatingKey struct {
	ak primitives.Point
}

// NullifierKey is nk in Fp, the observer-only capability to derive
// nullifiers for notes owned by this spending key.
type NullifierKey struct {
	nk primitives.Fp
}

// PaymentKey is pk in Fp: static per spending key, with no per-note
// diversification (SPEC_FULL.md section 3).
type PaymentKey struct {
	pk primitives.Fp
}

// ProofAuthorizingKey = (ak, nk): enough to construct proofs without spend
// authority (SPEC_FULL.md section 4.1).
type ProofAuthorizingKey struct {
	Ak SpendValidatingKey
	Nk NullifierKey
}

// DeriveAuthPrivate computes ask = ToScalar(PRF_expand(sk, 0x09)), then
// sign-normalizes it so that ak = [ask]G has y-sign bit 0, negating ask if
// not (SPEC_FULL.md section 4.1). Fails only if the PRF output reduces to
// zero, a probability vanishingly close to 2^-255; that case is fatal and
// reported as an error rather than panicking, since it is in principle an
// input-dependent (if astronomically unlikely) outcome.
func (sk SpendingKey) DeriveAuthPrivate() (SpendAuthorizingKey, error) {
	wide := primitives.PRFExpand(sk.bytes, constants.PRFDomainAsk)
	ask := primitives.FqFromWideBytes(wide[:])
	if ask.IsZero() {
		return SpendAuthorizingKey{}, terr.New(terr.ErrInvalidFieldElement, "keys: ask PRF output is zero")
	}

	ak := primitives.Generator().ScalarMul(ask)
	if ak.Encode()[31]&0x80 != 0 {
		ask = ask.Neg()
	}
	return SpendAuthorizingKey{ask: ask}, nil
}

// Zeroize overwrites ask's backing storage.
func (k *SpendAuthorizingKey) Zeroize() {
	k.ask = primitives.FqZero()
}

// DeriveAuthPublic computes ak = [ask]G.
func (k SpendAuthorizingKey) DeriveAuthPublic() SpendValidatingKey {
	return SpendValidatingKey{ak: primitives.Generator().ScalarMul(k.ask)}
}

// Scalar exposes ask's underlying scalar for use by the randomizer layer.
// Not exported further than this package and randomizer.go's sibling type.
func (k SpendAuthorizingKey) scalar() primitives.Fq { return k.ask }

func (k SpendValidatingKey) Point() primitives.Point { return k.ak }

func (k SpendValidatingKey) Encode() [32]byte { return k.ak.Encode() }

// DeriveNullifierPrivate computes nk = ToBase(PRF_expand(sk, 0x0a)).
func (sk SpendingKey) DeriveNullifierPrivate() NullifierKey {
	wide := primitives.PRFExpand(sk.bytes, constants.PRFDomainNk)
	return NullifierKey{nk: primitives.FpFromWideBytes(wide[:])}
}

func (k NullifierKey) Scalar() primitives.Fp { return k.nk }

// DerivePaymentKey computes pk = ToBase(PRF_expand(sk, 0x0b)): deterministic
// per sk, equal across all notes from the same wallet.
func (sk SpendingKey) DerivePaymentKey() PaymentKey {
	wide := primitives.PRFExpand(sk.bytes, constants.PRFDomainPk)
	return PaymentKey{pk: primitives.FpFromWideBytes(wide[:])}
}

func (k PaymentKey) Scalar() primitives.Fp { return k.pk }

// DeriveProofPrivate computes pak = (ak, nk).
func (sk SpendingKey) DeriveProofPrivate() (ProofAuthorizingKey, error) {
	ask, err := sk.DeriveAuthPrivate()
	if err != nil {
		return ProofAuthorizingKey{}, err
	}
	return ProofAuthorizingKey{
		Ak: ask.DeriveAuthPublic(),
		Nk: sk.DeriveNullifierPrivate(),
	}, nil
}

// SecureRandom is the default cryptographically secure randomness source;
// the core never consults ambient randomness beyond what a caller supplies
// (SPEC_FULL.md section 5).
func SecureRandom() io.Reader { return rand.Reader }
