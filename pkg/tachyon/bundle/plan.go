// Package bundle implements the bundle construction state machine: Plan,
// authorization, build, and strip (SPEC_FULL.md section 4.4).
package bundle

import (
	"context"
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/custody"
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// Plan is a bundle before authorization: pure assembly, no cryptographic
// work performed yet.
type Plan struct {
	Actions      []action.Plan
	ValueBalance int64
}

// NewPlan assembles a plan from its actions and declared value balance. No
// validation beyond what action.Plan's own construction already performed
// (section 4.4: "no cryptographic work; pure assembly").
func NewPlan(actions []action.Plan, valueBalance int64) Plan {
	return Plan{Actions: actions, ValueBalance: valueBalance}
}

// Authorize hands the plan to a custody backend, producing the signatures
// and value commitments needed to build the bundle.
func (p Plan) Authorize(ctx context.Context, c custody.Custody, rng io.Reader) (custody.AuthorizationData, error) {
	return c.Authorize(ctx, p.Actions, p.ValueBalance, rng)
}

// SigHash recomputes the bundle sighash from a set of already-chosen
// commitments and each action plan's rk, in plan order (section 4.4,
// "Plan::sighash").
func (p Plan) SigHash(commitments []note.ValueCommitment, pak keys.ProofAuthorizingKey) (primitives.SigHash, error) {
	if len(commitments) != len(p.Actions) {
		return primitives.SigHash{}, terr.New(terr.ErrInvalidPoint, "bundle: commitment count does not match action count")
	}
	pairs := make([]primitives.EffectingPair, len(p.Actions))
	for i, a := range p.Actions {
		rk := a.ActionVerificationKey(pak)
		pairs[i] = primitives.EffectingPair{Cv: commitments[i].Point(), Rk: rk.Point()}
	}
	return primitives.ComputeSigHash(pairs, p.ValueBalance), nil
}
