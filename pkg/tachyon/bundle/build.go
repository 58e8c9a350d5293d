package bundle

import (
	"io"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/tachyon-go/tachyon/pkg/log"
	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/custody"
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/sig"
	"github.com/tachyon-go/tachyon/pkg/tachyon/stamp"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// logger is this package's child logger, obtained the way every subsystem
// in this module does (SPEC_FULL.md section 2.1): Build logs at Debug/Info
// around its boundaries and at Error on any verification failure.
var logger = log.Default().Module("bundle")

// Build runs the six-step bundle construction pipeline (SPEC_FULL.md section
// 4.4): pair signatures and commitments with their plan actions, accumulate
// the binding signing key, check it against the independently derived
// binding verification key, fold every action's stamp witness into a single
// merged stamp, verify that merged stamp, and only then emit the binding
// signature.
func Build(plan Plan, auth custody.AuthorizationData, anchor primitives.Anchor, pak keys.ProofAuthorizingKey, rng io.Reader) (Stamped, *terr.BuildError) {
	n := len(plan.Actions)
	logger.Debug("building bundle", "action_count", n, "value_balance", plan.ValueBalance, "anchor_epoch", anchor.Epoch())
	if len(auth.Sigs) != n || len(auth.Commitments) != n || len(auth.Trapdoors) != n {
		err := terr.NewBuildError(terr.BuildErrorBalanceKey, "bundle: authorization data length mismatch with plan")
		logger.Error("build failed", "action_count", n, "error", err.Error())
		return Stamped{}, err
	}

	// Step 1: pair actions with sigs/commitments, re-derive each action's
	// witness.
	actions := make([]action.Action, n)
	witnesses := make([]stamp.Witness, n)
	bsk := primitives.FqZero()
	for i, p := range plan.Actions {
		rk := p.ActionVerificationKey(pak)
		actions[i] = action.Action{
			Cv:        auth.Commitments[i],
			Rk:        rk,
			Sig:       auth.Sigs[i],
			Tachygram: p.Tachygram(pak.Nk),
		}
		r := p.Randomizer()
		witnesses[i] = stamp.Witness{
			Alpha: toWitnessRandomizer(r),
			Note:  p.Note,
			Rcv:   auth.Trapdoors[i],
		}
		// Step 2: accumulate bsk = sum(rcv_i).
		bsk = bsk.Add(auth.Trapdoors[i].Scalar())
	}

	if bsk.IsZero() {
		err := terr.NewBuildError(terr.BuildErrorBalanceKey, "bundle: accumulated binding signing key is zero")
		logger.Error("build failed", "action_count", n, "error", err.Error())
		return Stamped{}, err
	}

	// Step 3: internal fault check. This must always hold for an honestly
	// constructed bundle (I3); a mismatch means this package itself built
	// the actions or commitments inconsistently, not that the caller gave
	// bad input, so it is fatal rather than a reported BuildError.
	// bvk = sum(cv_i) - [v_balance]V = [bsk]R, so the check is against R.
	bvk := deriveBindingVerificationKey(actions, plan.ValueBalance)
	_, rGen := primitives.ValueCommitmentGenerators()
	if !rGen.ScalarMul(bsk).Equal(bvk) {
		panic("bundle: internal fault: bsk does not derive bvk")
	}

	// Step 4: fold every action's witness into a single stamp via
	// create_action then pairwise merge.
	merged, err := foldStamps(witnesses, actions, anchor, pak)
	if err != nil {
		buildErr := terr.NewBuildError(terr.BuildErrorProofInvalid, err.Error())
		logger.Error("build failed", "action_count", n, "error", err.Error())
		return Stamped{}, buildErr
	}

	// Step 5: verify the merged stamp before signing anything.
	tachygrams := make([]primitives.Tachygram, n)
	for i, a := range actions {
		tachygrams[i] = a.Tachygram
	}
	if !merged.ProofValue.Verify(tachygrams, anchor) {
		err := terr.NewBuildError(terr.BuildErrorProofInvalid, "bundle: merged stamp failed verification")
		logger.Error("build failed", "action_count", n, "error", "merged stamp failed verification")
		return Stamped{}, err
	}
	logger.Debug("stamp verified", "tachygram_count", len(tachygrams))

	// Step 6: emit the binding signature, only now that the stamp has
	// verified.
	sighash := SigHash(Bundle[stamp.Stampless]{Actions: actions, ValueBalance: plan.ValueBalance})
	bindingSig, sigErr := sig.SignBinding(rng, bsk, bvk, sighash)
	if sigErr != nil {
		err := terr.NewBuildError(terr.BuildErrorProofInvalid, sigErr.Error())
		logger.Error("build failed", "action_count", n, "error", sigErr.Error())
		return Stamped{}, err
	}
	logger.Info("bundle built", "action_count", n, "value_balance", plan.ValueBalance, "anchor_epoch", anchor.Epoch())

	return Stamped{
		Actions:      actions,
		ValueBalance: plan.ValueBalance,
		BindingSig:   bindingSig.Encode(),
		Stamp: stamp.Stamp{
			Tachygrams: tachygrams,
			Anchor:     anchor,
			ProofValue: merged.ProofValue,
		},
	}, nil
}

func toWitnessRandomizer(r keys.Randomizer) keys.WitnessRandomizer {
	switch v := r.(type) {
	case keys.SpendRandomizer:
		return v.ToWitness()
	case keys.OutputRandomizer:
		return v.ToWitness()
	case keys.WitnessRandomizer:
		return v
	default:
		panic("bundle: unknown randomizer variant")
	}
}

// foldMemo caches merge results keyed by (partial stamp, next tachygram):
// folding the same witness ordering more than once within a process (e.g. a
// caller retrying Build after a transient upstream error, with the same
// plan and auth data) skips re-running the accumulator merge arithmetic for
// every prefix it has already computed.
var foldMemo sync.Map // map[[32]byte]stamp.Stamp

func foldStamps(witnesses []stamp.Witness, actions []action.Action, anchor primitives.Anchor, pak keys.ProofAuthorizingKey) (stamp.Stamp, error) {
	var acc stamp.Proof
	var accTachygrams []primitives.Tachygram
	for i, w := range witnesses {
		seed := &stampProofSeed{}
		next, err := seed.CreateAction(w, actions[i].Tachygram, anchor, pak)
		if err != nil {
			return stamp.Stamp{}, err
		}
		if acc == nil {
			acc = next
			accTachygrams = []primitives.Tachygram{actions[i].Tachygram}
			continue
		}

		partial := stamp.Stamp{Tachygrams: accTachygrams, Anchor: anchor, ProofValue: acc}
		memoKey := foldMemoKey(partial, actions[i].Tachygram)
		if cached, ok := foldMemo.Load(memoKey); ok {
			result := cached.(stamp.Stamp)
			acc = result.ProofValue
			accTachygrams = result.Tachygrams
			logger.Debug("merge memoized", "prefix_len", len(accTachygrams))
			continue
		}

		merged, err := acc.Merge(next, stamp.MergePrivate{AnchorQuotient: primitives.FpOne()})
		if err != nil {
			return stamp.Stamp{}, err
		}
		accTachygrams = append(append([]primitives.Tachygram{}, accTachygrams...), actions[i].Tachygram)
		acc = merged
		foldMemo.Store(memoKey, stamp.Stamp{Tachygrams: accTachygrams, Anchor: anchor, ProofValue: acc})
	}
	if acc == nil {
		return stamp.Stamp{}, terr.New(terr.ErrInvalidPoint, "bundle: cannot build a stamp from zero actions")
	}

	tachygrams := make([]primitives.Tachygram, len(actions))
	for i, a := range actions {
		tachygrams[i] = a.Tachygram
	}
	return stamp.Stamp{Tachygrams: tachygrams, Anchor: anchor, ProofValue: acc}, nil
}

// foldMemoKey derives the aggregate builder's merge memoization key for one
// fold step: a cheap StampCacheKey shape probe (tachygram count and anchor
// epoch) combined with the partial stamp's own content-addressed CacheKey
// and the tachygram about to be merged in, so two folds only collide when
// they are merging an identical accumulator state with an identical next
// tachygram.
func foldMemoKey(partial stamp.Stamp, next primitives.Tachygram) [32]byte {
	probe := stamp.StampCacheKey(len(partial.Tachygrams)+1, uint64(partial.Anchor.Epoch()))
	partialKey, err := partial.CacheKey()
	if err != nil {
		// partial.ProofValue is always a *stamp.MemoryProof in this
		// package, so CacheKey's MarshalBinary never actually fails
		// here; fall back to the cheap probe alone just in case.
		partialKey = probe
	}
	nb := next.Value().Bytes()
	buf := make([]byte, 0, len(probe)+len(partialKey)+len(nb))
	buf = append(buf, probe[:]...)
	buf = append(buf, partialKey[:]...)
	buf = append(buf, nb[:]...)
	return sha3.Sum256(buf)
}

// stampProofSeed is an empty MemoryProof used purely as a receiver for
// CreateAction (a fresh one per action); the interface requires a value to
// invoke the method on, but CreateAction's logic is independent of any
// prior state.
type stampProofSeed = stamp.MemoryProof

func deriveBindingVerificationKey(actions []action.Action, valueBalance int64) primitives.Point {
	sum := primitives.Identity()
	for _, a := range actions {
		sum = sum.Add(a.Cv.Point())
	}
	balance := note.Balance(valueBalance)
	return sum.Sub(balance.Point())
}
