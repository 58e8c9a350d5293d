// Package primitives implements the Pallas field/curve arithmetic and the
// domain-separated hashing that everything else in this module builds on.
//
// No Go library in the ecosystem implements the Pasta curve cycle (Pallas /
// Vesta): gnark-crypto's supported curves stop at bn254/bls12-377/bls12-381/
// bls24-315/bw6-761/secp256k1. Field and point arithmetic here is therefore
// hand-rolled on math/big, the same approach the teacher repo took for
// Banderwagon/Bandersnatch (unsupported by any Go library either) in
// banderwagon.go. As with that file: math/big gives correctness, not
// constant-time execution, so this package is suitable for verification and
// for signing within a single trusted process, not for air-gapped custody of
// long-lived secrets against a timing adversary.
package primitives

import "math/big"

// fpModulus is the Pallas base field modulus, a 255-bit prime.
var fpModulus, _ = new(big.Int).SetString(
	"28948022309329048855892746252171976963363056481941647379679742748393362948097", 10)

// Fp is an element of the Pallas base field, always held in canonical form
// (0 <= v < fpModulus).
type Fp struct {
	v *big.Int
}

// FpZero is the additive identity.
func FpZero() Fp { return Fp{v: new(big.Int)} }

// FpOne is the multiplicative identity.
func FpOne() Fp { return Fp{v: big.NewInt(1)} }

// FpFromUint64 lifts a uint64 into Fp.
func FpFromUint64(x uint64) Fp {
	return Fp{v: new(big.Int).SetUint64(x)}
}

// FpFromBigInt reduces an arbitrary big.Int modulo fpModulus.
func FpFromBigInt(x *big.Int) Fp {
	v := new(big.Int).Mod(x, fpModulus)
	return Fp{v: v}
}

// FpFromCanonicalBytes decodes a little-endian 32-byte encoding, rejecting
// any input that is not the canonical least-residue representation (per
// SPEC_FULL.md section 6: "from_repr rejects non-canonical encodings").
func FpFromCanonicalBytes(b [32]byte) (Fp, bool) {
	v := leBytesToBigInt(b[:])
	if v.Cmp(fpModulus) >= 0 {
		return Fp{}, false
	}
	return Fp{v: v}, true
}

// Bytes encodes f as a canonical little-endian 32-byte array.
func (f Fp) Bytes() [32]byte {
	return bigIntToLEBytes(f.v)
}

func (a Fp) Add(b Fp) Fp {
	r := new(big.Int).Add(a.v, b.v)
	r.Mod(r, fpModulus)
	return Fp{v: r}
}

func (a Fp) Sub(b Fp) Fp {
	r := new(big.Int).Sub(a.v, b.v)
	r.Mod(r, fpModulus)
	return Fp{v: r}
}

func (a Fp) Mul(b Fp) Fp {
	r := new(big.Int).Mul(a.v, b.v)
	r.Mod(r, fpModulus)
	return Fp{v: r}
}

func (a Fp) Sqr() Fp { return a.Mul(a) }

func (a Fp) Neg() Fp {
	if a.v.Sign() == 0 {
		return a
	}
	r := new(big.Int).Sub(fpModulus, a.v)
	return Fp{v: r}
}

// Inverse returns a^-1 and true, or the zero value and false if a is zero.
func (a Fp) Inverse() (Fp, bool) {
	if a.v.Sign() == 0 {
		return Fp{}, false
	}
	r := new(big.Int).ModInverse(a.v, fpModulus)
	return Fp{v: r}, r != nil
}

// Sqrt returns a square root of a (one of the two; which one is not
// specified) and true, or false if a is not a QR. fpModulus = 1 (mod 4), so
// the (p+1)/4 shortcut does not apply; math/big's ModSqrt (Tonelli-Shanks)
// is used instead.
func (a Fp) Sqrt() (Fp, bool) {
	r := new(big.Int).ModSqrt(a.v, fpModulus)
	if r == nil {
		return Fp{}, false
	}
	return Fp{v: r}, true
}

func (a Fp) IsZero() bool { return a.v.Sign() == 0 }

func (a Fp) Equal(b Fp) bool { return a.v.Cmp(b.v) == 0 }

// IsOdd reports whether the canonical integer representation is odd; used
// for point-encoding sign bits.
func (a Fp) IsOdd() bool { return a.v.Bit(0) == 1 }

// BigInt exposes the canonical representative. Callers must not mutate it.
func (a Fp) BigInt() *big.Int { return new(big.Int).Set(a.v) }

// FpFromWideBytes reduces a wide little-endian byte string (e.g. a 64-byte
// BLAKE2b-512 digest) modulo fpModulus. This is ToBase from SPEC_FULL.md
// section 4.1 ("nk = ToBase(PRF_expand(sk, 0x0a))").
func FpFromWideBytes(b []byte) Fp {
	v := leBytesToBigInt(b)
	v.Mod(v, fpModulus)
	return Fp{v: v}
}
