package bundle

import (
	"context"
	"math/rand"
	"testing"

	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/custody"
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/sig"
	"github.com/tachyon-go/tachyon/pkg/tachyon/stamp"
)

// scenarioSK is the sk = [0x42; 32] literal spec.md's worked scenarios (S1,
// S2, S5, ...) are built around.
func scenarioSK() [32]byte {
	var sk [32]byte
	for i := range sk {
		sk[i] = 0x42
	}
	return sk
}

// detRNG returns a freshly seeded, reproducible randomness source: every
// call with the same seed yields the same byte stream, so two independent
// constructions that draw from it in the same order produce byte-identical
// results. Grounded in the teacher's own test style of seeding math/rand
// directly (e.g. pkg/trie/trie_random_test.go's rand.New(rand.NewSource(42))).
func detRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// TestScenarioS1MintAndVerify reproduces spec.md section 8's S1: a single
// output of value 1000 with psi=0, rcm=0, under sk=[0x42;32] and a
// deterministic seed-0 RNG, must build and verify.
func TestScenarioS1MintAndVerify(t *testing.T) {
	sk := keys.SpendingKeyFromBytes(scenarioSK())
	pak, err := sk.DeriveProofPrivate()
	if err != nil {
		t.Fatalf("DeriveProofPrivate: %v", err)
	}
	pk := sk.DerivePaymentKey()

	value, err := note.NewValue(1000)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	outputNote := note.Note{Pk: pk, Value: value, Psi: primitives.FpZero(), Rcm: primitives.FqZero()}

	rng := detRNG(0)
	entropy, err := keys.RandomActionEntropy(rng)
	if err != nil {
		t.Fatalf("RandomActionEntropy: %v", err)
	}
	trapdoor, err := note.RandomTrapdoor(rng)
	if err != nil {
		t.Fatalf("RandomTrapdoor: %v", err)
	}
	outputPlan := action.NewOutput(outputNote, entropy, trapdoor)

	plan := NewPlan([]action.Plan{outputPlan}, -1000)

	local := custody.NewLocal(pak)
	auth, err := plan.Authorize(context.Background(), local, rng)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	anchor := primitives.NewAnchor(1, primitives.FpFromUint64(0))
	stamped, buildErr := Build(plan, auth, anchor, pak, rng)
	if buildErr != nil {
		t.Fatalf("Build: %v", buildErr)
	}

	if !VerifySignatures(stamped) {
		t.Fatal("S1: a bundle minting one note from sk=[0x42;32] with psi=rcm=0 must verify")
	}
}

// buildScenarioS2 builds spec.md section 8's S2 via the ordinary
// plan.Authorize / Build API, under a freshly seeded deterministic RNG:
// same sk as S1, spending the note S1 minted (value 1000, psi=0, rcm=0) and
// creating a new output (value 700, psi=1, rcm=1), with value_balance=300
// retained as fee.
func buildScenarioS2(t *testing.T) Stamped {
	t.Helper()

	sk := keys.SpendingKeyFromBytes(scenarioSK())
	ask, err := sk.DeriveAuthPrivate()
	if err != nil {
		t.Fatalf("DeriveAuthPrivate: %v", err)
	}
	pak, err := sk.DeriveProofPrivate()
	if err != nil {
		t.Fatalf("DeriveProofPrivate: %v", err)
	}
	pk := sk.DerivePaymentKey()

	spendValue, err := note.NewValue(1000)
	if err != nil {
		t.Fatalf("NewValue(spend): %v", err)
	}
	outputValue, err := note.NewValue(700)
	if err != nil {
		t.Fatalf("NewValue(output): %v", err)
	}
	spentNote := note.Note{Pk: pk, Value: spendValue, Psi: primitives.FpZero(), Rcm: primitives.FqZero()}
	outputNote := note.Note{Pk: pk, Value: outputValue, Psi: primitives.FpFromUint64(1), Rcm: primitives.FqFromUint64(1)}

	rng := detRNG(0)
	entropySpend, err := keys.RandomActionEntropy(rng)
	if err != nil {
		t.Fatalf("RandomActionEntropy(spend): %v", err)
	}
	trapdoorSpend, err := note.RandomTrapdoor(rng)
	if err != nil {
		t.Fatalf("RandomTrapdoor(spend): %v", err)
	}
	spendPlan := action.NewSpend(spentNote, ask, entropySpend, trapdoorSpend)

	entropyOutput, err := keys.RandomActionEntropy(rng)
	if err != nil {
		t.Fatalf("RandomActionEntropy(output): %v", err)
	}
	trapdoorOutput, err := note.RandomTrapdoor(rng)
	if err != nil {
		t.Fatalf("RandomTrapdoor(output): %v", err)
	}
	outputPlan := action.NewOutput(outputNote, entropyOutput, trapdoorOutput)

	plan := NewPlan([]action.Plan{spendPlan, outputPlan}, 300)

	local := custody.NewLocal(pak)
	auth, err := plan.Authorize(context.Background(), local, rng)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	anchor := primitives.NewAnchor(1, primitives.FpFromUint64(0))
	stamped, buildErr := Build(plan, auth, anchor, pak, rng)
	if buildErr != nil {
		t.Fatalf("Build: %v", buildErr)
	}
	return stamped
}

// TestScenarioS2SpendOutputBalance reproduces spec.md section 8's S2.
func TestScenarioS2SpendOutputBalance(t *testing.T) {
	stamped := buildScenarioS2(t)
	if !VerifySignatures(stamped) {
		t.Fatal("S2: a balanced spend+output bundle under sk=[0x42;32] must verify")
	}
	if stamped.ValueBalance != 300 {
		t.Fatalf("S2: value_balance = %d, want 300", stamped.ValueBalance)
	}
}

// TestScenarioS5ExplicitStepsMatchesS2 reproduces spec.md section 8's S5:
// rebuilding S2 via explicit per-step calls (sample theta, derive alpha,
// commit cv, compute sighash, sign per-action with rsk, accumulate bsk,
// prove per-action and merge stamps, verify the merged stamp, emit the
// binding signature) rather than plan.Authorize/Build, under a freshly
// seeded RNG identical in kind to S2's, must give a byte-identical result.
func TestScenarioS5ExplicitStepsMatchesS2(t *testing.T) {
	viaAPI := buildScenarioS2(t)

	sk := keys.SpendingKeyFromBytes(scenarioSK())
	ask, err := sk.DeriveAuthPrivate()
	if err != nil {
		t.Fatalf("DeriveAuthPrivate: %v", err)
	}
	pak, err := sk.DeriveProofPrivate()
	if err != nil {
		t.Fatalf("DeriveProofPrivate: %v", err)
	}
	pk := sk.DerivePaymentKey()

	spendValue, err := note.NewValue(1000)
	if err != nil {
		t.Fatalf("NewValue(spend): %v", err)
	}
	outputValue, err := note.NewValue(700)
	if err != nil {
		t.Fatalf("NewValue(output): %v", err)
	}
	spentNote := note.Note{Pk: pk, Value: spendValue, Psi: primitives.FpZero(), Rcm: primitives.FqZero()}
	outputNote := note.Note{Pk: pk, Value: outputValue, Psi: primitives.FpFromUint64(1), Rcm: primitives.FqFromUint64(1)}

	// Sample theta and derive each action's per-action commitment trapdoor,
	// in the same order S2's plan construction does.
	rng := detRNG(0)
	entropySpend, err := keys.RandomActionEntropy(rng)
	if err != nil {
		t.Fatalf("RandomActionEntropy(spend): %v", err)
	}
	trapdoorSpend, err := note.RandomTrapdoor(rng)
	if err != nil {
		t.Fatalf("RandomTrapdoor(spend): %v", err)
	}
	spendPlan := action.NewSpend(spentNote, ask, entropySpend, trapdoorSpend)

	entropyOutput, err := keys.RandomActionEntropy(rng)
	if err != nil {
		t.Fatalf("RandomActionEntropy(output): %v", err)
	}
	trapdoorOutput, err := note.RandomTrapdoor(rng)
	if err != nil {
		t.Fatalf("RandomTrapdoor(output): %v", err)
	}
	outputPlan := action.NewOutput(outputNote, entropyOutput, trapdoorOutput)

	plans := []action.Plan{spendPlan, outputPlan}
	valueBalance := int64(300)

	// Derive alpha and commit cv for every action before any sighash is
	// computed (section 4.3's ordering contract).
	commitments := make([]note.ValueCommitment, len(plans))
	rks := make([]keys.ActionVerificationKey, len(plans))
	pairs := make([]primitives.EffectingPair, len(plans))
	for i, p := range plans {
		commitments[i] = p.ValueCommitment()
		rks[i] = p.ActionVerificationKey(pak)
		pairs[i] = primitives.EffectingPair{Cv: commitments[i].Point(), Rk: rks[i].Point()}
	}

	// Compute the bundle sighash exactly once, from the full set of (cv, rk)
	// pairs.
	sighash := primitives.ComputeSigHash(pairs, valueBalance)

	// Sign each action under rsk (the alpha-randomized spend authorizing
	// key, or the output-domain witness key).
	sigs := make([]sig.Signature, len(plans))
	for i, p := range plans {
		r := p.Randomizer()
		var rsk keys.ActionSigningKey
		switch v := r.(type) {
		case keys.SpendRandomizer:
			rsk = v.DeriveActionPrivate(ask)
		case keys.OutputRandomizer:
			rsk = v.DeriveActionPrivate()
		default:
			t.Fatalf("unexpected randomizer variant for action %d", i)
		}
		s, err := sig.SignSpendAuth(rng, rsk.Scalar(), rks[i].Point(), sighash)
		rsk.Zeroize()
		if err != nil {
			t.Fatalf("SignSpendAuth(action %d): %v", i, err)
		}
		sigs[i] = s
	}

	// Accumulate bsk = sum(rcv_i) and assemble the built actions.
	bsk := primitives.FqZero()
	actions := make([]action.Action, len(plans))
	witnesses := make([]stamp.Witness, len(plans))
	for i, p := range plans {
		bsk = bsk.Add(p.Trapdoor.Scalar())
		actions[i] = action.Action{
			Cv:        commitments[i],
			Rk:        rks[i],
			Sig:       sigs[i],
			Tachygram: p.Tachygram(pak.Nk),
		}
		witnesses[i] = stamp.Witness{Alpha: toWitnessRandomizer(p.Randomizer()), Note: p.Note, Rcv: p.Trapdoor}
	}

	// Prove each action individually, then merge pairwise into one stamp.
	anchor := primitives.NewAnchor(1, primitives.FpFromUint64(0))
	var acc stamp.Proof
	for i, w := range witnesses {
		proof, err := (&stamp.MemoryProof{}).CreateAction(w, actions[i].Tachygram, anchor, pak)
		if err != nil {
			t.Fatalf("CreateAction(action %d): %v", i, err)
		}
		if acc == nil {
			acc = proof
			continue
		}
		merged, err := acc.Merge(proof, stamp.MergePrivate{AnchorQuotient: primitives.FpOne()})
		if err != nil {
			t.Fatalf("Merge(action %d): %v", i, err)
		}
		acc = merged
	}

	tachygrams := make([]primitives.Tachygram, len(actions))
	for i, a := range actions {
		tachygrams[i] = a.Tachygram
	}

	// Verify the merged stamp before signing anything further.
	if !acc.Verify(tachygrams, anchor) {
		t.Fatal("S5: merged stamp failed verification")
	}

	// Emit the binding signature, only now that the stamp has verified.
	bvk := deriveBindingVerificationKey(actions, valueBalance)
	bundleSighash := SigHash(Bundle[stamp.Stampless]{Actions: actions, ValueBalance: valueBalance})
	bindingSig, err := sig.SignBinding(rng, bsk, bvk, bundleSighash)
	if err != nil {
		t.Fatalf("SignBinding: %v", err)
	}

	manual := Stamped{
		Actions:      actions,
		ValueBalance: valueBalance,
		BindingSig:   bindingSig.Encode(),
		Stamp: stamp.Stamp{
			Tachygrams: tachygrams,
			Anchor:     anchor,
			ProofValue: acc,
		},
	}

	if !VerifySignatures(manual) {
		t.Fatal("S5: explicitly constructed bundle must itself verify")
	}
	if manual.BindingSig != viaAPI.BindingSig {
		t.Fatal("S5: explicit per-step construction must match S2's binding signature byte-for-byte")
	}
	if manual.ValueBalance != viaAPI.ValueBalance {
		t.Fatal("S5: value_balance mismatch against S2")
	}
	if len(manual.Actions) != len(viaAPI.Actions) {
		t.Fatalf("S5: action count = %d, want %d", len(manual.Actions), len(viaAPI.Actions))
	}
	for i := range manual.Actions {
		if manual.Actions[i].Sig != viaAPI.Actions[i].Sig {
			t.Fatalf("S5: action %d signature mismatch against S2", i)
		}
		if !manual.Actions[i].Cv.Point().Equal(viaAPI.Actions[i].Cv.Point()) {
			t.Fatalf("S5: action %d value commitment mismatch against S2", i)
		}
		if !manual.Actions[i].Rk.Point().Equal(viaAPI.Actions[i].Rk.Point()) {
			t.Fatalf("S5: action %d verification key mismatch against S2", i)
		}
		if !manual.Actions[i].Tachygram.Value().Equal(viaAPI.Actions[i].Tachygram.Value()) {
			t.Fatalf("S5: action %d tachygram mismatch against S2", i)
		}
	}
}
