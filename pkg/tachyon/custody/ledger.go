package custody

import (
	"context"
	"crypto/rand"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/terr"
)

// Ledger is a hardware-wallet-shaped Custody implementation. The Pallas/
// RedPallas signing math underneath is identical to Local; what differs is
// that every call first runs a transport self-test handshake, the way a
// commodity hardware wallet authenticates its firmware over USB/BLE before
// it will sign anything, independent of whatever application curve the
// actual signature is over (SPEC_FULL.md section 4.3.1).
type Ledger struct {
	signer   Local
	attestor *secp256k1.PrivateKey
}

// NewLedger wires a Local signer behind a secp256k1-attested transport. The
// attestation key is generated once and held for the lifetime of the
// Ledger, standing in for a device's long-lived attestation keypair.
func NewLedger(signer Local, rng io.Reader) (*Ledger, error) {
	key, err := generateAttestationKey(rng)
	if err != nil {
		return nil, terr.Wrap(err, "custody: generating ledger attestation key")
	}
	return &Ledger{signer: signer, attestor: key}, nil
}

// Authorize runs the transport self-test handshake (honoring ctx for
// cancellation) before delegating the actual Pallas/RedPallas signing to the
// embedded Local signer.
func (l *Ledger) Authorize(ctx context.Context, plans []action.Plan, valueBalance int64, rng io.Reader) (AuthorizationData, error) {
	if err := l.selfTest(ctx, rng); err != nil {
		logger.Error("authorize failed", "stage", "self_test", "error", err.Error())
		return AuthorizationData{}, err
	}
	logger.Debug("self-test handshake passed", "action_count", len(plans))
	return l.signer.Authorize(ctx, plans, valueBalance, rng)
}

// selfTest performs one challenge/response round trip over the device's
// secp256k1 attestation key: sign a fresh nonce, then verify the signature
// against the device's own public key. A real transport would frame this as
// length-prefixed request/response messages over USB/BLE/HID; here the
// "transport" is the self-test itself, which is the part the spec's
// supplemented custody.rs sketch actually needed exercised.
func (l *Ledger) selfTest(ctx context.Context, rng io.Reader) error {
	if err := ctx.Err(); err != nil {
		return terr.Wrap(err, "custody: ledger self-test cancelled before start")
	}

	var nonce [32]byte
	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return terr.Wrap(err, "custody: ledger self-test nonce")
	}

	sig := ecdsa.Sign(l.attestor, nonce[:])

	if err := ctx.Err(); err != nil {
		return terr.Wrap(err, "custody: ledger self-test cancelled mid-handshake")
	}

	if !sig.Verify(nonce[:], l.attestor.PubKey()) {
		return terr.New(terr.ErrCustodyTransport, "custody: ledger self-test attestation failed")
	}
	return nil
}

func generateAttestationKey(rng io.Reader) (*secp256k1.PrivateKey, error) {
	var buf [32]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, err
	}
	return secp256k1.PrivKeyFromBytes(buf[:]), nil
}

// SecureRandom is the default randomness source for ledger operations.
func SecureRandom() io.Reader { return rand.Reader }
