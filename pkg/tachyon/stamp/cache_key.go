package stamp

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// CacheKey derives a content-addressed key for a stamp, used to memoize
// merge results in the aggregate builder: two merges of bit-identical
// stamps produce the same key without re-running any accumulator
// arithmetic. Grounded on the teacher's own Keccak256 helper; this is a
// non-consensus convenience, not part of the protocol's own hashing.
func (s Stamp) CacheKey() ([32]byte, error) {
	encoded, err := s.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha3.Sum256(encoded), nil
}

// StampCacheKey is a standalone helper for callers that only have a
// tachygram count and anchor on hand (e.g. a cache-probe before a full
// Stamp has been assembled) and want a stable key over just that shape.
func StampCacheKey(tachygramCount int, epoch uint64) [32]byte {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(tachygramCount))
	binary.LittleEndian.PutUint64(buf[8:], epoch)
	return sha3.Sum256(buf[:])
}
