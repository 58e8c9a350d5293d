package ledger

import (
	"errors"
	"testing"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
)

func TestTachygramSetInsertAndContains(t *testing.T) {
	s := NewTachygramSet()
	tg := primitives.NewTachygram(primitives.FpFromUint64(1))

	if s.Contains(tg) {
		t.Fatal("expected empty set to not contain anything")
	}
	s.Insert(tg)
	if !s.Contains(tg) {
		t.Fatal("expected set to contain a tachygram after Insert")
	}
	if s.Count() != 1 {
		t.Fatalf("expected count 1, got %d", s.Count())
	}
}

func TestTachygramSetInsertIsIdempotent(t *testing.T) {
	s := NewTachygramSet()
	tg := primitives.NewTachygram(primitives.FpFromUint64(2))

	rootA := s.Insert(tg)
	rootB := s.Insert(tg)
	if rootA != rootB {
		t.Fatal("re-inserting the same tachygram must not change the root")
	}
	if s.Count() != 1 {
		t.Fatalf("expected count to stay at 1 after a duplicate insert, got %d", s.Count())
	}
}

func TestTachygramSetApplyMatchesSequentialInserts(t *testing.T) {
	a := NewTachygramSet()
	b := NewTachygramSet()

	tgs := []primitives.Tachygram{
		primitives.NewTachygram(primitives.FpFromUint64(10)),
		primitives.NewTachygram(primitives.FpFromUint64(20)),
		primitives.NewTachygram(primitives.FpFromUint64(30)),
	}

	for _, tg := range tgs {
		a.Insert(tg)
	}
	if _, err := b.Apply(tgs); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if a.Root() != b.Root() {
		t.Fatal("Apply must produce the same root as sequential Insert calls")
	}
}

func TestTachygramSetApplyRejectsDoubleSpend(t *testing.T) {
	s := NewTachygramSet()
	spent := primitives.NewTachygram(primitives.FpFromUint64(40))
	fresh := primitives.NewTachygram(primitives.FpFromUint64(41))

	rootBefore := s.Insert(spent)

	_, err := s.Apply([]primitives.Tachygram{fresh, spent})
	if !errors.Is(err, ErrDoubleSpend) {
		t.Fatalf("expected ErrDoubleSpend, got %v", err)
	}
	if s.Root() != rootBefore {
		t.Fatal("a rejected Apply must leave the set completely unchanged")
	}
	if s.Contains(fresh) {
		t.Fatal("a rejected Apply must not partially insert any tachygram from the batch")
	}
}

func TestMembershipProofRoundTripSingleLeaf(t *testing.T) {
	s := NewTachygramSet()
	tg := primitives.NewTachygram(primitives.FpFromUint64(99))
	root := s.Insert(tg)

	proof := s.MembershipProof(tg)
	if !proof.Exists {
		t.Fatal("expected an inclusion proof for an inserted tachygram")
	}
	if !VerifyMembershipProof(proof, root) {
		t.Fatal("membership proof failed to verify against the set's own root")
	}
}

func TestMembershipProofNonInclusionOnEmptySet(t *testing.T) {
	s := NewTachygramSet()
	tg := primitives.NewTachygram(primitives.FpFromUint64(7))
	root := s.Root()

	proof := s.MembershipProof(tg)
	if proof.Exists {
		t.Fatal("expected a non-inclusion proof against an empty set")
	}
	if !VerifyMembershipProof(proof, root) {
		t.Fatal("non-inclusion proof failed to verify against the empty root")
	}
}
