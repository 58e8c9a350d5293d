// Package custody implements the signer-side authorization boundary: the
// single operation that turns a bundle plan into signatures and value
// commitments (SPEC_FULL.md section 4.3). Each spend plan carries its own
// spend authorizing key (action.Plan.SpendAuth), which Local signs with;
// the key is not held inside the custody implementation.
package custody

import (
	"context"
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/note"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/sig"
)

// AuthorizationData is one (sig, commitment, trapdoor) triple per action, in
// plan order.
type AuthorizationData struct {
	Sigs        []sig.Signature
	Commitments []note.ValueCommitment
	Trapdoors   []note.CommitmentTrapdoor
}

// Custody is the signer-side authorization boundary. Implementations may be
// local (custody.Local, which holds only a proof authorizing key and signs
// spends with the key each spend plan carries) or remote (a hardware signer
// behind a transport, custody.Ledger).
type Custody interface {
	Authorize(ctx context.Context, plans []action.Plan, valueBalance int64, rng io.Reader) (AuthorizationData, error)
}
