package keys

import (
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// ActionEntropy is theta: 32 fresh random bytes chosen by the signer once
// per action (SPEC_FULL.md section 4.1).
type ActionEntropy struct {
	theta [32]byte
}

// RandomActionEntropy samples theta from rng.
func RandomActionEntropy(rng io.Reader) (ActionEntropy, error) {
	var e ActionEntropy
	if _, err := io.ReadFull(rng, e.theta[:]); err != nil {
		return ActionEntropy{}, terr.Wrap(err, "keys: sampling action entropy")
	}
	return e, nil
}

func (e *ActionEntropy) Zeroize() {
	for i := range e.theta {
		e.theta[i] = 0
	}
}

// SpendRandomizer derives the spend-domain randomizer alpha_spend from theta
// and the note commitment cm.
func (e ActionEntropy) SpendRandomizer(cm primitives.Fp) SpendRandomizer {
	return SpendRandomizer{alpha: primitives.SpendAlpha(e.theta, cm)}
}

// OutputRandomizer derives the output-domain randomizer alpha_output.
func (e ActionEntropy) OutputRandomizer(cm primitives.Fp) OutputRandomizer {
	return OutputRandomizer{alpha: primitives.OutputAlpha(e.theta, cm)}
}

// Randomizer is the effect-typed per-action randomizer sum type (SPEC_FULL.md
// section 9): exactly three concrete variants exist, Spend, Output and
// Witness (the latter erasing the effect tag once alpha has been consumed
// into a circuit witness, per the original source's keys/randomizer.rs,
// SPEC_FULL.md section 3.1). The unexported marker method prevents any type
// outside this package from satisfying the interface, which is as close as
// Go gets to Rust's closed enum.
type Randomizer interface {
	isRandomizer()
	Scalar() primitives.Fq
}

// SpendRandomizer is alpha derived under the spend personalization. Only a
// SpendAuthorizingKey can consume it (DeriveActionPrivate), preventing an
// output-derived alpha from ever being used as a spend randomizer.
type SpendRandomizer struct{ alpha primitives.Fq }

func (SpendRandomizer) isRandomizer() {}

func (r SpendRandomizer) Scalar() primitives.Fq { return r.alpha }

// DeriveActionPrivate computes rsk = ask + alpha (SPEC_FULL.md section 3).
func (r SpendRandomizer) DeriveActionPrivate(ask SpendAuthorizingKey) ActionSigningKey {
	return ActionSigningKey{rsk: ask.scalar().Add(r.alpha)}
}

// ToWitness erases the Spend tag, yielding the bare scalar a circuit witness
// consumes.
func (r SpendRandomizer) ToWitness() WitnessRandomizer { return WitnessRandomizer{alpha: r.alpha} }

// OutputRandomizer is alpha derived under the output personalization.
type OutputRandomizer struct{ alpha primitives.Fq }

func (OutputRandomizer) isRandomizer() {}

func (r OutputRandomizer) Scalar() primitives.Fq { return r.alpha }

// DeriveActionPrivate computes rsk = alpha directly (no ask contribution
// for outputs, SPEC_FULL.md section 3: "Output: rsk = alpha").
func (r OutputRandomizer) DeriveActionPrivate() ActionSigningKey {
	return ActionSigningKey{rsk: r.alpha}
}

func (r OutputRandomizer) ToWitness() WitnessRandomizer { return WitnessRandomizer{alpha: r.alpha} }

// WitnessRandomizer is the effect-erased randomizer carried to the prover
// once the signing path has already consumed the typed variant (SPEC_FULL.md
// section 9, section 3.1).
type WitnessRandomizer struct{ alpha primitives.Fq }

func (WitnessRandomizer) isRandomizer() {}

func (r WitnessRandomizer) Scalar() primitives.Fq { return r.alpha }

// Zeroize overwrites the randomizer's scalar. Each variant implements this
// independently so call sites do not need a type switch.
func (r *SpendRandomizer) Zeroize()   { r.alpha = primitives.FqZero() }
func (r *OutputRandomizer) Zeroize()  { r.alpha = primitives.FqZero() }
func (r *WitnessRandomizer) Zeroize() { r.alpha = primitives.FqZero() }

// ActionSigningKey is rsk, the per-action signing scalar (SPEC_FULL.md
// section 3).
type ActionSigningKey struct {
	rsk primitives.Fq
}

func (k *ActionSigningKey) Zeroize() { k.rsk = primitives.FqZero() }

func (k ActionSigningKey) Scalar() primitives.Fq { return k.rsk }

// DerivePublic computes rk = [rsk]G. Because rsk = ask+alpha for spends and
// rsk = alpha for outputs, this single formula covers both effects, and
// equals the independently prover-derived rk (I4, P3): for spends
// [ask+alpha]G = [ask]G + [alpha]G = ak + [alpha]G, and for outputs
// [alpha]G directly.
func (k ActionSigningKey) DerivePublic() ActionVerificationKey {
	return ActionVerificationKey{rk: primitives.Generator().ScalarMul(k.rsk)}
}

// ActionVerificationKey is rk, the per-action randomized verification key.
type ActionVerificationKey struct {
	rk primitives.Point
}

func (k ActionVerificationKey) Point() primitives.Point { return k.rk }

func (k ActionVerificationKey) Encode() [32]byte { return k.rk.Encode() }

// DeriveActionPublicSpend is the prover-side derivation for a spend action:
// rk = ak + [alpha]G (SPEC_FULL.md section 4.1).
func (k SpendValidatingKey) DeriveActionPublicSpend(alpha primitives.Fq) ActionVerificationKey {
	return ActionVerificationKey{rk: k.ak.Add(primitives.Generator().ScalarMul(alpha))}
}

// DeriveActionPublicOutput is the prover-side derivation for an output
// action: rk = [alpha]G directly, with no ak contribution.
func DeriveActionPublicOutput(alpha primitives.Fq) ActionVerificationKey {
	return ActionVerificationKey{rk: primitives.Generator().ScalarMul(alpha)}
}
