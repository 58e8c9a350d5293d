// Command tachyon is a demonstration harness that exercises the full
// shielded-bundle pipeline end to end for manual inspection: it generates a
// spending key, plans a spend-and-output bundle, authorizes it with
// custody.Local, builds it, verifies it, strips its stamp, and prints a
// JSON summary. This is a demonstration surface only, not a protocol
// interface: the cryptographic core has no CLI of its own.
//
// Usage:
//
//	tachyon [-value N] [-verbosity debug|info|warn|error] [-log-format json|text|color]
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tachyon-go/tachyon/pkg/log"
	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/bundle"
	"github.com/tachyon-go/tachyon/pkg/tachyon/custody"
	"github.com/tachyon-go/tachyon/pkg/tachyon/keys"
	"github.com/tachyon-go/tachyon/pkg/tachyon/ledger"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	fs := flag.NewFlagSet("tachyon", flag.ContinueOnError)
	value := fs.Uint64("value", 42, "note value to spend and re-output, minus a 1-unit fee")
	verbosity := fs.String("verbosity", "info", "log level: debug, info, warn, or error")
	logFormat := fs.String("log-format", "json", "log rendering: json, text, or color")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.NewWithFormat(slogLevel(*verbosity), log.FormatFromString(*logFormat)).Module("demo")

	if err := demo(logger, *value); err != nil {
		logger.Error("demo failed", "error", err)
		return 1
	}
	return 0
}

// slogLevel maps this command's -verbosity flag onto a slog.Level,
// defaulting unrecognized values to LevelInfo.
func slogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func demo(logger *log.Logger, spendValue uint64) error {
	rng := rand.Reader

	sk, err := keys.NewSpendingKey(rng)
	if err != nil {
		return fmt.Errorf("generating spending key: %w", err)
	}
	ask, err := sk.DeriveAuthPrivate()
	if err != nil {
		return fmt.Errorf("deriving spend authorizing key: %w", err)
	}
	pak, err := sk.DeriveProofPrivate()
	if err != nil {
		return fmt.Errorf("deriving proof authorizing key: %w", err)
	}
	pk := sk.DerivePaymentKey()

	spendValueObj, err := note.NewValue(spendValue)
	if err != nil {
		return fmt.Errorf("validating spend value: %w", err)
	}
	outputValueObj, err := note.NewValue(spendValue - 1)
	if err != nil {
		return fmt.Errorf("validating output value: %w", err)
	}

	spentNote, err := note.New(rng, pk, spendValueObj)
	if err != nil {
		return fmt.Errorf("constructing spent note: %w", err)
	}
	entropySpend, err := keys.RandomActionEntropy(rng)
	if err != nil {
		return fmt.Errorf("sampling spend entropy: %w", err)
	}
	trapdoorSpend, err := note.RandomTrapdoor(rng)
	if err != nil {
		return fmt.Errorf("sampling spend trapdoor: %w", err)
	}
	spendPlan := action.NewSpend(spentNote, ask, entropySpend, trapdoorSpend)

	outputNote, err := note.New(rng, pk, outputValueObj)
	if err != nil {
		return fmt.Errorf("constructing output note: %w", err)
	}
	entropyOutput, err := keys.RandomActionEntropy(rng)
	if err != nil {
		return fmt.Errorf("sampling output entropy: %w", err)
	}
	trapdoorOutput, err := note.RandomTrapdoor(rng)
	if err != nil {
		return fmt.Errorf("sampling output trapdoor: %w", err)
	}
	outputPlan := action.NewOutput(outputNote, entropyOutput, trapdoorOutput)

	valueBalance := int64(1) // fee retained by the transaction
	plan := bundle.NewPlan([]action.Plan{spendPlan, outputPlan}, valueBalance)

	logger.Info("plan assembled", "action_count", len(plan.Actions), "value_balance", valueBalance)

	local := custody.NewLocal(pak)
	auth, err := plan.Authorize(context.Background(), local, rng)
	if err != nil {
		return fmt.Errorf("authorizing plan: %w", err)
	}
	logger.Info("plan authorized", "signature_count", len(auth.Sigs))

	anchor := primitives.NewAnchor(1, primitives.FpFromUint64(0))
	stamped, buildErr := bundle.Build(plan, auth, anchor, pak, rng)
	if buildErr != nil {
		return fmt.Errorf("building bundle: %s", buildErr.Error())
	}
	logger.Info("bundle built", "anchor_epoch", anchor.Epoch())

	if !bundle.VerifySignatures(stamped) {
		return fmt.Errorf("bundle failed signature verification")
	}
	logger.Info("bundle verified")

	ledgerSet := ledger.NewTachygramSet()
	root, err := bundle.ApplyToLedger(stamped, ledgerSet)
	if err != nil {
		return fmt.Errorf("applying bundle to ledger: %w", err)
	}
	logger.Info("bundle applied to ledger", "root", fmt.Sprintf("%x", root))

	// Re-applying the same bundle demonstrates the double-spend check: its
	// tachygrams are already recorded, so the set must reject the replay and
	// remain unchanged.
	_, dupErr := bundle.ApplyToLedger(stamped, ledgerSet)
	doubleSpendRejected := errors.Is(dupErr, ledger.ErrDoubleSpend)
	if !doubleSpendRejected {
		return fmt.Errorf("expected ledger.ErrDoubleSpend on replay, got %v", dupErr)
	}
	logger.Info("double-spend replay rejected", "error", dupErr)

	stripped, removedStamp := bundle.Strip(stamped)
	logger.Info("bundle stripped",
		"remaining_actions", len(stripped.Actions),
		"stamp_tachygram_count", len(removedStamp.Tachygrams),
	)

	fmt.Printf(
		"{\"action_count\":%d,\"value_balance\":%d,\"verified\":true,\"stamp_tachygrams\":%d,\"ledger_root\":\"%x\",\"double_spend_rejected\":%t}\n",
		len(stripped.Actions), stripped.ValueBalance, len(removedStamp.Tachygrams), root, doubleSpendRejected,
	)
	return nil
}
