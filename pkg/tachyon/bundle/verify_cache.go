package bundle

import (
	"github.com/VictoriaMetrics/fastcache"

	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
)

// VerifyCache is a bounded LRU of 64-byte bundle keys -> verification
// result, consulted by VerifySignaturesCached before any curve arithmetic
// runs (SPEC_FULL.md section 4.5.1). VerifySignaturesCached keys it by a
// digest of the bundle's sighash and all of its signatures.
// This is a pure performance layer: a cache miss always falls through to
// full verification, and nothing is cached until verification has actually
// succeeded or failed, so it can never change the outcome of verifying a
// bundle, only how often that work is repeated.
type VerifyCache struct {
	cache *fastcache.Cache
}

// NewVerifyCache allocates a cache sized in bytes, mirroring the teacher's
// own signature_cache_lru.go sizing convention.
func NewVerifyCache(maxBytes int) *VerifyCache {
	return &VerifyCache{cache: fastcache.New(maxBytes)}
}

// Get reports the cached verification result for a bundle key, if present.
func (c *VerifyCache) Get(sighash primitives.SigHash) (ok bool, hit bool) {
	key := sighash.Bytes()
	v, found := c.cache.HasGet(nil, key[:])
	if !found || len(v) != 1 {
		return false, false
	}
	return v[0] == 1, true
}

// Put records sighash's verification result.
func (c *VerifyCache) Put(sighash primitives.SigHash, ok bool) {
	key := sighash.Bytes()
	var v [1]byte
	if ok {
		v[0] = 1
	}
	c.cache.Set(key[:], v[:])
}
