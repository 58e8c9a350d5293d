package primitives

// Point is an affine point on the Pallas curve y^2 = x^3 + curveB over Fp,
// or the point at infinity when infinity is true (x, y are then undefined).
//
// Addition/doubling formulas mirror the teacher's secp256k1Curve (itself a
// short Weierstrass curve with a=0, the same shape as Pallas) in
// secp256k1_curve.go: slope-based affine addition, no projective coordinates.
// That keeps the arithmetic easy to audit at the cost of a modular inverse
// per addition; acceptable here since nothing in this module claims
// constant-time execution (see the package doc comment in fp.go).
type Point struct {
	x, y     Fp
	infinity bool
}

// curveB is the Pallas curve equation's constant term: y^2 = x^3 + 5.
var curveB = FpFromUint64(5)

// Identity returns the point at infinity, the additive identity of the
// Pallas group.
func Identity() Point { return Point{infinity: true} }

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool { return p.infinity }

// IsOnCurve reports whether p satisfies y^2 = x^3 + 5.
func (p Point) IsOnCurve() bool {
	if p.infinity {
		return true
	}
	lhs := p.y.Sqr()
	rhs := p.x.Sqr().Mul(p.x).Add(curveB)
	return lhs.Equal(rhs)
}

// NewPoint builds an affine point without checking it lies on the curve.
// Used internally by decoders and the hash-to-curve routine, both of which
// verify membership themselves before returning.
func newPoint(x, y Fp) Point { return Point{x: x, y: y} }

func (p Point) Neg() Point {
	if p.infinity {
		return p
	}
	return newPoint(p.x, p.y.Neg())
}

// Add returns p + q using the standard short-Weierstrass chord-and-tangent
// law (a=0 specialization of the teacher's secp256k1Curve.Add/Double).
func (p Point) Add(q Point) Point {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	if p.x.Equal(q.x) {
		if p.y.Equal(q.y.Neg()) {
			return Identity()
		}
		return p.Double()
	}

	// slope = (y2 - y1) / (x2 - x1)
	num := q.y.Sub(p.y)
	den := q.x.Sub(p.x)
	denInv, ok := den.Inverse()
	if !ok {
		return Identity()
	}
	slope := num.Mul(denInv)

	x3 := slope.Sqr().Sub(p.x).Sub(q.x)
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return newPoint(x3, y3)
}

// Double returns 2*p.
func (p Point) Double() Point {
	if p.infinity || p.y.IsZero() {
		return Identity()
	}
	// slope = 3*x^2 / (2*y)  (curve parameter a = 0)
	num := p.x.Sqr().Mul(FpFromUint64(3))
	den := p.y.Mul(FpFromUint64(2))
	denInv, ok := den.Inverse()
	if !ok {
		return Identity()
	}
	slope := num.Mul(denInv)

	two := FpFromUint64(2)
	x3 := slope.Sqr().Sub(p.x.Mul(two))
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return newPoint(x3, y3)
}

func (p Point) Sub(q Point) Point { return p.Add(q.Neg()) }

// ScalarMul returns [k]p via left-to-right double-and-add.
func (p Point) ScalarMul(k Fq) Point {
	acc := Identity()
	base := p
	kb := k.BigInt()
	for i := kb.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		if kb.Bit(i) == 1 {
			acc = acc.Add(base)
		}
	}
	return acc
}

func (p Point) Equal(q Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Encode returns the 32-byte compressed encoding: the canonical little
// endian encoding of x, with the y-sign bit (y's parity) placed in bit 7 of
// byte 31, per SPEC_FULL.md section 6. The identity encodes as all-zero
// bytes with the sign bit clear, an encoding that never collides with a
// valid affine point since x=0,y=0 is not on the curve (0 != 0 + 5).
func (p Point) Encode() [32]byte {
	if p.infinity {
		return [32]byte{}
	}
	out := p.x.Bytes()
	if p.y.IsOdd() {
		out[31] |= 0x80
	}
	return out
}

// Decode parses a compressed encoding, recovering y from x via the curve
// equation and selecting the root matching the encoded sign bit. Returns
// false for non-canonical encodings or points not on the curve.
func Decode(b [32]byte) (Point, bool) {
	if b == ([32]byte{}) {
		return Identity(), true
	}
	sign := b[31]&0x80 != 0
	b[31] &^= 0x80
	x, ok := FpFromCanonicalBytes(b)
	if !ok {
		return Point{}, false
	}
	rhs := x.Sqr().Mul(x).Add(curveB)
	y, ok := rhs.Sqrt()
	if !ok {
		return Point{}, false
	}
	if y.IsOdd() != sign {
		y = y.Neg()
	}
	pt := newPoint(x, y)
	if !pt.IsOnCurve() {
		return Point{}, false
	}
	return pt, true
}
