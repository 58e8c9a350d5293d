// Package action implements the per-action plan and its authorized/built
// forms: one spend or output within a bundle (SPEC_FULL.md section 3).
package action

import (
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/sig"
)

// Effect tags whether a Plan consumes a note (Spend) or creates one (Output).
type Effect int

const (
	Spend Effect = iota
	Output
)

func (e Effect) String() string {
	if e == Spend {
		return "spend"
	}
	return "output"
}

// Plan is one action before authorization: the note it spends or creates,
// the entropy that will derive its per-action randomizer, and the value
// commitment trapdoor it contributes to the bundle's balance proof.
type Plan struct {
	Effect    Effect
	Note      note.Note
	Entropy   keys.ActionEntropy
	Trapdoor  note.CommitmentTrapdoor
	SpendAuth *keys.SpendAuthorizingKey // only set for Spend plans
}

// NewSpend plans a spend of an existing note, owned by ask.
func NewSpend(n note.Note, ask keys.SpendAuthorizingKey, entropy keys.ActionEntropy, trapdoor note.CommitmentTrapdoor) Plan {
	askCopy := ask
	return Plan{Effect: Spend, Note: n, Entropy: entropy, Trapdoor: trapdoor, SpendAuth: &askCopy}
}

// NewOutput plans the creation of a new note.
func NewOutput(n note.Note, entropy keys.ActionEntropy, trapdoor note.CommitmentTrapdoor) Plan {
	return Plan{Effect: Output, Note: n, Entropy: entropy, Trapdoor: trapdoor}
}

// Tachygram is the Fp value this action's effect contributes to the stamp
// accumulator: a nullifier for a spend, a note commitment for an output. nk
// is ignored for Output plans and may be the zero value.
func (p Plan) Tachygram(nk keys.NullifierKey) primitives.Tachygram {
	if p.Effect == Spend {
		return primitives.NewTachygram(p.Note.Nullifier(nk))
	}
	return primitives.NewTachygram(p.Note.Commitment())
}

// SignedValue returns this action's contribution to value_balance: positive
// for a spend, negative for an output (section 3: "value_balance = sum of
// spend values minus sum of output values").
func (p Plan) SignedValue() int64 {
	return p.Note.Value.Signed(p.Effect == Output)
}

// ValueCommitment builds this action's cv from its trapdoor.
func (p Plan) ValueCommitment() note.ValueCommitment {
	return note.Commit(p.SignedValue(), p.Trapdoor)
}

// Randomizer derives this action's per-action randomizer alpha from its
// entropy and the note commitment (section 3).
func (p Plan) Randomizer() keys.Randomizer {
	cm := p.Note.Commitment()
	if p.Effect == Spend {
		return p.Entropy.SpendRandomizer(cm)
	}
	return p.Entropy.OutputRandomizer(cm)
}

// ActionVerificationKey computes this plan's rk from the prover's side,
// independent of the signer: I4/P3 requires this to equal the signer's own
// rk = [rsk]G.
func (p Plan) ActionVerificationKey(pak keys.ProofAuthorizingKey) keys.ActionVerificationKey {
	r := p.Randomizer()
	if p.Effect == Spend {
		return pak.Ak.DeriveActionPublicSpend(r.Scalar())
	}
	return keys.DeriveActionPublicOutput(r.Scalar())
}

// Action is one fully-built action: its value commitment, its randomized
// verification key, and its RedPallas signature over the bundle sighash.
type Action struct {
	Cv        note.ValueCommitment
	Rk        keys.ActionVerificationKey
	Sig       sig.Signature
	Tachygram primitives.Tachygram
}
