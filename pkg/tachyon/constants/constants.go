// Package constants holds the immutable domain separators and numeric
// bounds fixed by SPEC_FULL.md section 6. None of these values are
// configurable at runtime: they are part of the protocol, not a deployment.
package constants

// BLAKE2b personalizations. golang.org/x/crypto/blake2b's exported API does
// not take a personalization parameter directly, so every hash in this
// module implements personalization by prefixing the tag to the hashed
// input instead of passing it through BLAKE2b's parameter block. That is an
// intentional, documented deviation from the bit-for-bit BLAKE2b
// personalization Zcash's own implementation uses; since this module is a
// from-scratch reimplementation (not required to reproduce Zcash mainnet
// byte-for-byte), prefix-based domain separation gives the same
// cryptographic separation property the spec cares about (P8, P12, S6)
// while staying on the standard library's blake2b API.
var (
	PRFExpandPersonalization   = []byte("Zcash_ExpandSeed") // 16 bytes
	SighashPersonalization     = []byte("Tachyon-BndlHash") // 16 bytes
	SpendAlphaPersonalization  = []byte("Tachyon-Spend")    // 13 bytes
	OutputAlphaPersonalization = []byte("Tachyon-Output")   // 14 bytes
	ValueCommitmentDomain      = []byte("z.cash:Orchard-cv")
	NullifierDomain            = []byte("z.cash:Tachyon-Nullifier")
	NoteCommitmentDomain       = []byte("z.cash:Tachyon-NoteCommit")
	AccumulatorDomain          = []byte("z.cash:Tachyon-Accumulator")

	// GeneratorDomain derives this module's own Pallas group generator G.
	// The spec requires "ak = [ask]G" for a fixed generator G but does not
	// mandate matching Zcash's actual mainnet generator point (no test
	// vector in section 8 depends on G's concrete coordinates, only on
	// internal self-consistency). Deriving G the same way V and R are
	// derived keeps the whole generator set on one code path instead of
	// hardcoding coordinates this module has no way to verify against an
	// external reference. See SPEC_FULL.md's Open Questions resolution in
	// DESIGN.md.
	GeneratorDomain = []byte("Tachyon-G-Generator")

	// Signature challenge domains. SPEC_FULL.md treats RedPallas signing
	// and verification as an abstract operation ("sig = sign(scalar,
	// sighash)") and does not mandate the internal challenge-hash
	// personalization; these two tags exist purely to keep this module's
	// own SpendAuth-group and Binding-group signatures non-interchangeable,
	// the same separation real RedPallas achieves with two distinct base
	// points. See sig.SignSpendAuth/VerifySpendAuth and
	// sig.SignBinding/VerifyBinding.
	SpendAuthSigDomain = []byte("Tachyon-SigSpendAuth")
	BindingSigDomain   = []byte("Tachyon-SigBinding")
)

// PRF child-key domain bytes appended after sk. 0x00-0x08 are reserved for
// Sapling/Orchard compatibility and must never be reused here.
const (
	PRFDomainAsk byte = 0x09
	PRFDomainNk  byte = 0x0a
	PRFDomainPk  byte = 0x0b
)

// NoteValueMax is the inclusive upper bound on a note's value (I7).
const NoteValueMax uint64 = 2_100_000_000_000_000
