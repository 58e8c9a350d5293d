package custody

import (
	"context"
	"io"

	"github.com/tachyon-go/tachyon/pkg/log"
	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/sig"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// logger is this package's child logger (SPEC_FULL.md section 2.1):
// Authorize logs at Debug/Info around plan acceptance and signature
// production, and at Error on any authorization failure.
var logger = log.Default().Module("custody")

// Local is the in-process Custody implementation: it sees the full plan
// (every action and value_balance) before signing anything, so it can
// reject on declared intent alone (SPEC_FULL.md section 4.3).
type Local struct {
	Pak keys.ProofAuthorizingKey
}

// NewLocal wraps a proof authorizing key as a local custody backend.
func NewLocal(pak keys.ProofAuthorizingKey) Local {
	return Local{Pak: pak}
}

// Authorize implements the ordering contract from section 5: every cv_i is
// chosen before any sighash is computed, the sighash is computed exactly
// once from the full set of (cv, rk) pairs, and only then is each action
// signed. Local never denies a plan; it fails only when ctx is already
// done, on an upstream randomness error, or when a spend plan carries no
// spend authorizing key.
func (l Local) Authorize(ctx context.Context, plans []action.Plan, valueBalance int64, rng io.Reader) (AuthorizationData, error) {
	n := len(plans)
	logger.Debug("plan accepted", "action_count", n, "value_balance", valueBalance)
	if err := ctx.Err(); err != nil {
		wrapped := terr.Wrap(err, "custody: context already done")
		logger.Error("authorize failed", "action_count", n, "error", wrapped.Error())
		return AuthorizationData{}, wrapped
	}

	commitments := make([]note.ValueCommitment, n)
	trapdoors := make([]note.CommitmentTrapdoor, n)
	rks := make([]keys.ActionVerificationKey, n)
	pairs := make([]primitives.EffectingPair, n)

	for i, p := range plans {
		cv := p.ValueCommitment()
		commitments[i] = cv
		trapdoors[i] = p.Trapdoor
		rk := p.ActionVerificationKey(l.Pak)
		rks[i] = rk
		pairs[i] = primitives.EffectingPair{Cv: cv.Point(), Rk: rk.Point()}
	}

	sighash := primitives.ComputeSigHash(pairs, valueBalance)

	sigs := make([]sig.Signature, n)
	for i, p := range plans {
		s, err := signAction(rng, p, rks[i], sighash)
		if err != nil {
			logger.Error("authorize failed", "action_count", n, "action_index", i, "error", err.Error())
			return AuthorizationData{}, err
		}
		sigs[i] = s
	}

	logger.Info("signature produced", "action_count", n, "value_balance", valueBalance)
	return AuthorizationData{Sigs: sigs, Commitments: commitments, Trapdoors: trapdoors}, nil
}

func signAction(rng io.Reader, p action.Plan, rk keys.ActionVerificationKey, sighash primitives.SigHash) (sig.Signature, error) {
	r := p.Randomizer()
	var ask keys.ActionSigningKey
	switch variant := r.(type) {
	case keys.SpendRandomizer:
		if p.SpendAuth == nil {
			return sig.Signature{}, terr.New(terr.ErrInvalidFieldElement, "custody: spend plan missing spend authorizing key")
		}
		ask = variant.DeriveActionPrivate(*p.SpendAuth)
	case keys.OutputRandomizer:
		ask = variant.DeriveActionPrivate()
	default:
		return sig.Signature{}, terr.New(terr.ErrInvalidFieldElement, "custody: unexpected randomizer variant during signing")
	}
	defer ask.Zeroize()
	return sig.SignSpendAuth(rng, ask.Scalar(), rk.Point(), sighash)
}
