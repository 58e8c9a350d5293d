package primitives

import "math/big"

// fqModulus is the Pallas scalar field modulus (the base field of Vesta),
// a 255-bit prime distinct from fpModulus.
var fqModulus, _ = new(big.Int).SetString(
	"28948022309329048855892746252171976963363056481941560715954676764349967630337", 10)

// Fq is a Pallas scalar: the field in which ask, nk's sibling rcv/bsk/alpha
// live, and the exponent field for scalar multiplication on Pallas points.
type Fq struct {
	v *big.Int
}

func FqZero() Fq { return Fq{v: new(big.Int)} }
func FqOne() Fq  { return Fq{v: big.NewInt(1)} }

func FqFromUint64(x uint64) Fq {
	return Fq{v: new(big.Int).SetUint64(x)}
}

func FqFromBigInt(x *big.Int) Fq {
	v := new(big.Int).Mod(x, fqModulus)
	return Fq{v: v}
}

func FqFromCanonicalBytes(b [32]byte) (Fq, bool) {
	v := leBytesToBigInt(b[:])
	if v.Cmp(fqModulus) >= 0 {
		return Fq{}, false
	}
	return Fq{v: v}, true
}

// FqFromWideBytes reduces a wide (e.g. 64-byte BLAKE2b-512 output) little
// endian byte string modulo fqModulus. This is ToScalar from SPEC_FULL.md
// section 3: "alpha = ToScalar(BLAKE2b-512(...))".
func FqFromWideBytes(b []byte) Fq {
	v := leBytesToBigInt(b)
	v.Mod(v, fqModulus)
	return Fq{v: v}
}

func (f Fq) Bytes() [32]byte {
	return bigIntToLEBytes(f.v)
}

func (a Fq) Add(b Fq) Fq {
	r := new(big.Int).Add(a.v, b.v)
	r.Mod(r, fqModulus)
	return Fq{v: r}
}

func (a Fq) Sub(b Fq) Fq {
	r := new(big.Int).Sub(a.v, b.v)
	r.Mod(r, fqModulus)
	return Fq{v: r}
}

func (a Fq) Mul(b Fq) Fq {
	r := new(big.Int).Mul(a.v, b.v)
	r.Mod(r, fqModulus)
	return Fq{v: r}
}

func (a Fq) Neg() Fq {
	if a.v.Sign() == 0 {
		return a
	}
	return Fq{v: new(big.Int).Sub(fqModulus, a.v)}
}

func (a Fq) Inverse() (Fq, bool) {
	if a.v.Sign() == 0 {
		return Fq{}, false
	}
	r := new(big.Int).ModInverse(a.v, fqModulus)
	return Fq{v: r}, r != nil
}

func (a Fq) IsZero() bool { return a.v.Sign() == 0 }

func (a Fq) Equal(b Fq) bool { return a.v.Cmp(b.v) == 0 }

func (a Fq) BigInt() *big.Int { return new(big.Int).Set(a.v) }
