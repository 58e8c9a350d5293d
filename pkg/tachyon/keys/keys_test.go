package keys

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
)

func TestDeriveAuthPublicMatchesSignNormalizedAsk(t *testing.T) {
	sk, err := NewSpendingKey(rand.Reader)
	if err != nil {
		t.Fatalf("NewSpendingKey: %v", err)
	}
	ask, err := sk.DeriveAuthPrivate()
	if err != nil {
		t.Fatalf("DeriveAuthPrivate: %v", err)
	}
	ak := ask.DeriveAuthPublic()
	encoded := ak.Encode()
	if encoded[31]&0x80 != 0 {
		t.Fatal("expected sign-normalized ak to have y-sign bit 0")
	}
}

func TestDeriveNullifierAndPaymentKeysAreDeterministic(t *testing.T) {
	sk, err := NewSpendingKey(rand.Reader)
	if err != nil {
		t.Fatalf("NewSpendingKey: %v", err)
	}
	nk1 := sk.DeriveNullifierPrivate()
	nk2 := sk.DeriveNullifierPrivate()
	if !nk1.Scalar().Equal(nk2.Scalar()) {
		t.Fatal("nk derivation is not deterministic")
	}
	pk1 := sk.DerivePaymentKey()
	pk2 := sk.DerivePaymentKey()
	if !pk1.Scalar().Equal(pk2.Scalar()) {
		t.Fatal("pk derivation is not deterministic")
	}
}

func TestSpendRandomizerConsistentRk(t *testing.T) {
	sk, err := NewSpendingKey(rand.Reader)
	if err != nil {
		t.Fatalf("NewSpendingKey: %v", err)
	}
	ask, err := sk.DeriveAuthPrivate()
	if err != nil {
		t.Fatalf("DeriveAuthPrivate: %v", err)
	}
	ak := ask.DeriveAuthPublic()

	entropy, err := RandomActionEntropy(rand.Reader)
	if err != nil {
		t.Fatalf("RandomActionEntropy: %v", err)
	}
	cm := primitives.FpFromUint64(7)
	randomizer := entropy.SpendRandomizer(cm)

	signerRk := randomizer.DeriveActionPrivate(ask).DerivePublic()
	proverRk := ak.DeriveActionPublicSpend(randomizer.Scalar())

	if !signerRk.Point().Equal(proverRk.Point()) {
		t.Fatal("I4: signer-derived rk != prover-derived rk for a spend action")
	}
}

func TestOutputRandomizerConsistentRk(t *testing.T) {
	entropy, err := RandomActionEntropy(rand.Reader)
	if err != nil {
		t.Fatalf("RandomActionEntropy: %v", err)
	}
	cm := primitives.FpFromUint64(9)
	randomizer := entropy.OutputRandomizer(cm)

	signerRk := randomizer.DeriveActionPrivate().DerivePublic()
	proverRk := DeriveActionPublicOutput(randomizer.Scalar())

	if !signerRk.Point().Equal(proverRk.Point()) {
		t.Fatal("I4: signer-derived rk != prover-derived rk for an output action")
	}
}

func TestSpendAndOutputAlphaAreDomainSeparated(t *testing.T) {
	entropy, err := RandomActionEntropy(rand.Reader)
	if err != nil {
		t.Fatalf("RandomActionEntropy: %v", err)
	}
	cm := primitives.FpFromUint64(11)
	spend := entropy.SpendRandomizer(cm)
	output := entropy.OutputRandomizer(cm)
	if spend.Scalar().Equal(output.Scalar()) {
		t.Fatal("P8/P12: spend and output alpha must differ for identical (theta, cm)")
	}
}

func TestSpendingKeyZeroize(t *testing.T) {
	sk, err := NewSpendingKey(rand.Reader)
	if err != nil {
		t.Fatalf("NewSpendingKey: %v", err)
	}
	original := sk.Bytes()
	sk.Zeroize()
	if bytes.Equal(sk.Bytes()[:], original[:]) {
		t.Fatal("Zeroize did not change the spending key's backing bytes")
	}
	for _, b := range sk.Bytes() {
		if b != 0 {
			t.Fatal("Zeroize left a non-zero byte")
		}
	}
}
