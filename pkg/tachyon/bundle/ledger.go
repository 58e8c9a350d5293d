package bundle

import (
	"github.com/tachyon-go/tachyon/pkg/tachyon/ledger"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// ApplyToLedger is the verifier-side entry point for section 4.7's
// double-spend check: it verifies b's signatures, then applies every
// tachygram b's stamp carries to set atomically. A bundle that fails
// signature verification is rejected before the ledger is touched; a
// bundle that spends a tachygram set has already recorded is rejected by
// set.Apply itself (ledger.ErrDoubleSpend), leaving set unchanged either
// way.
func ApplyToLedger(b Stamped, set *ledger.TachygramSet) ([32]byte, error) {
	if !VerifySignatures(b) {
		err := terr.New(terr.ErrSignatureInvalid, "bundle: cannot apply an unverified bundle to the ledger")
		logger.Error("apply to ledger failed", "reason", "signature verification failed")
		return set.Root(), err
	}

	root, err := set.Apply(b.Stamp.Tachygrams)
	if err != nil {
		logger.Error("apply to ledger failed", "reason", err.Error(), "tachygram_count", len(b.Stamp.Tachygrams))
		return root, err
	}
	logger.Info("bundle applied to ledger", "tachygram_count", len(b.Stamp.Tachygrams), "root", root)
	return root, nil
}
