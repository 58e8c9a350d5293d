package bundle

import (
	"golang.org/x/crypto/sha3"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/sig"
)

// VerifySignatures implements the validator's contract (SPEC_FULL.md section
// 4.4): recompute bvk, recompute sighash, verify the binding signature, then
// verify every action signature. This deliberately never touches the stamp:
// stamp verification is a separate consensus-layer step that may not even
// be possible on a Stripped bundle.
func VerifySignatures[S Stamper](b Bundle[S]) bool {
	bvk := deriveBindingVerificationKey(b.Actions, b.ValueBalance)
	sighash := SigHash(b)

	var bindingSig sig.Signature
	copy(bindingSig[:], b.BindingSig[:])
	if !sig.VerifyBinding(bvk, sighash, bindingSig) {
		return false
	}

	for _, a := range b.Actions {
		if !sig.VerifySpendAuth(a.Rk.Point(), sighash, a.Sig) {
			return false
		}
	}
	return true
}

// VerifySignaturesCached is VerifySignatures fronted by a VerifyCache:
// identical bundles (by sighash and every signature) verified earlier in
// this process are trusted without repeating any curve arithmetic. The
// sighash alone does not cover the signatures (I5), so the cache key is a
// SHA3-512 digest of the sighash, the binding signature and each action
// signature in order.
func VerifySignaturesCached[S Stamper](b Bundle[S], cache *VerifyCache) bool {
	sighash := SigHash(b).Bytes()
	buf := append(sighash[:], b.BindingSig[:]...)
	for _, a := range b.Actions {
		enc := a.Sig.Encode()
		buf = append(buf, enc[:]...)
	}
	key := primitives.SigHash(sha3.Sum512(buf))
	if ok, hit := cache.Get(key); hit {
		return ok
	}
	ok := VerifySignatures(b)
	cache.Put(key, ok)
	return ok
}
