// Package sig implements the RedPallas-shaped signature wrappers the spec
// calls for: one newtype per signing group (SpendAuth for actions, Binding
// for the bundle-level balance proof), both backed by the same Schnorr-style
// construction over the Pallas group but domain-separated so a signature
// from one group can never verify against the other's key (SPEC_FULL.md
// section 6: "64 bytes (RedPallas), decoded as (R || s)").
package sig

import (
	"crypto/rand"
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// Signature is the 64-byte (R || s) encoding shared by both groups.
type Signature [64]byte

// Encode returns the raw bytes.
func (s Signature) Encode() [64]byte { return s }

// sign produces a Schnorr signature over msg for secret scalar sk under the
// given domain tag: sample a nonce k, R = [k]G, c = H(domain, R, pk, msg),
// s = k + c*sk.
func sign(rng io.Reader, domain []byte, sk primitives.Fq, pk primitives.Point, msg [64]byte) (Signature, error) {
	var nonceBytes [32]byte
	if _, err := io.ReadFull(rng, nonceBytes[:]); err != nil {
		return Signature{}, terr.Wrap(err, "sig: sampling nonce")
	}
	k := primitives.FqFromWideBytes(append(nonceBytes[:], msg[:]...))
	if k.IsZero() {
		return Signature{}, terr.New(terr.ErrInvalidFieldElement, "sig: nonce reduced to zero")
	}

	r := primitives.Generator().ScalarMul(k)
	c := challenge(domain, r, pk, msg)
	s := k.Add(c.Mul(sk))

	var out Signature
	rEnc := r.Encode()
	sEnc := s.Bytes()
	copy(out[0:32], rEnc[:])
	copy(out[32:64], sEnc[:])
	return out, nil
}

// verify checks a Schnorr signature: recompute c, check [s]G == R + [c]pk.
func verify(domain []byte, pk primitives.Point, msg [64]byte, s Signature) bool {
	var rEnc, sEnc [32]byte
	copy(rEnc[:], s[0:32])
	copy(sEnc[:], s[32:64])

	r, ok := primitives.Decode(rEnc)
	if !ok {
		return false
	}
	sScalar, ok := primitives.FqFromCanonicalBytes(sEnc)
	if !ok {
		return false
	}

	c := challenge(domain, r, pk, msg)
	lhs := primitives.Generator().ScalarMul(sScalar)
	rhs := r.Add(pk.ScalarMul(c))
	return lhs.Equal(rhs)
}

func challenge(domain []byte, r primitives.Point, pk primitives.Point, msg [64]byte) primitives.Fq {
	rEnc := r.Encode()
	pkEnc := pk.Encode()
	return primitives.HashToScalar(domain, rEnc[:], pkEnc[:], msg[:])
}

// SecureRandom is the default randomness source for signing.
func SecureRandom() io.Reader { return rand.Reader }
