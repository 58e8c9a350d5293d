package primitives

import "testing"

func TestFpAddSubRoundTrip(t *testing.T) {
	a := FpFromUint64(123456789)
	b := FpFromUint64(987654321)
	sum := a.Add(b)
	back := sum.Sub(b)
	if !back.Equal(a) {
		t.Fatalf("Fp Add/Sub round trip failed: got %v, want %v", back.BigInt(), a.BigInt())
	}
}

func TestFpMulInverse(t *testing.T) {
	a := FpFromUint64(42)
	inv, ok := a.Inverse()
	if !ok {
		t.Fatal("expected invertible field element")
	}
	product := a.Mul(inv)
	if !product.Equal(FpOne()) {
		t.Fatalf("a * a^-1 != 1, got %v", product.BigInt())
	}
}

func TestFpZeroHasNoInverse(t *testing.T) {
	if _, ok := FpZero().Inverse(); ok {
		t.Fatal("expected zero to have no inverse")
	}
}

func TestFpSqrtRoundTrip(t *testing.T) {
	a := FpFromUint64(16)
	root, ok := a.Sqrt()
	if !ok {
		t.Fatal("expected 16 to have a square root in Fp")
	}
	if !root.Sqr().Equal(a) {
		t.Fatalf("sqrt(16)^2 != 16, got %v", root.Sqr().BigInt())
	}
}

func TestFpCanonicalEncodingRejectsOutOfRange(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	if _, ok := FpFromCanonicalBytes(b); ok {
		t.Fatal("expected all-0xff bytes to exceed the Fp modulus and be rejected")
	}
}

func TestFpBytesRoundTrip(t *testing.T) {
	a := FpFromUint64(0xdeadbeef)
	b := a.Bytes()
	back, ok := FpFromCanonicalBytes(b)
	if !ok {
		t.Fatal("expected canonical round trip to succeed")
	}
	if !back.Equal(a) {
		t.Fatal("Fp byte round trip changed the value")
	}
}

func TestFqAddMulConsistency(t *testing.T) {
	a := FqFromUint64(7)
	b := FqFromUint64(3)
	if !a.Mul(b).Equal(FqFromUint64(21)) {
		t.Fatal("7*3 != 21 in Fq")
	}
}

func TestFqNegIsAdditiveInverse(t *testing.T) {
	a := FqFromUint64(55)
	if !a.Add(a.Neg()).Equal(FqZero()) {
		t.Fatal("a + (-a) != 0 in Fq")
	}
}

func TestFqFromWideBytesIsDeterministic(t *testing.T) {
	wide := make([]byte, 64)
	for i := range wide {
		wide[i] = byte(i)
	}
	a := FqFromWideBytes(wide)
	b := FqFromWideBytes(wide)
	if !a.Equal(b) {
		t.Fatal("FqFromWideBytes is not deterministic for identical input")
	}
}
