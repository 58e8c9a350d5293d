// Package terr is Tachyon's error taxonomy (SPEC_FULL.md section 7), built
// on github.com/cockroachdb/errors instead of bare "errors" so that
// validation/construction/verification failures carry a stack trace in
// development builds. cockroachdb/errors is already an indirect dependency
// of the teacher repo's go.mod; this promotes it to direct use.
package terr

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors. Use errors.Is against these, never string comparison.
var (
	ErrInvalidPoint        = errors.New("tachyon: invalid point encoding")
	ErrInvalidFieldElement = errors.New("tachyon: invalid field element encoding")
	ErrNoteValueOverflow   = errors.New("tachyon: note value exceeds NOTE_VALUE_MAX")
	ErrCustodyDenied       = errors.New("tachyon: custody denied authorization")
	ErrCustodyTransport    = errors.New("tachyon: custody transport error")
	ErrSignatureInvalid    = errors.New("tachyon: signature invalid")
)

// New wraps a sentinel with additional context, matching the
// errors.Is(err, sentinel) contract callers rely on.
func New(sentinel error, context string) error {
	return errors.Wrap(sentinel, context)
}

// Wrap attaches context to an arbitrary error without changing its identity
// under errors.Is.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// BuildErrorKind distinguishes the two ways Plan.Build can fail
// (SPEC_FULL.md section 4.4 / 7).
type BuildErrorKind int

const (
	// BuildErrorBalanceKey: the accumulated binding signing key bsk is
	// degenerate (zero), or the authorization data does not have one entry
	// per plan action. A bsk that does not derive the recomputed bvk is not
	// reported through this kind: Build panics on it.
	BuildErrorBalanceKey BuildErrorKind = iota
	// BuildErrorProofInvalid: the merged stamp failed verification before
	// the binding signature was emitted.
	BuildErrorProofInvalid
)

func (k BuildErrorKind) String() string {
	switch k {
	case BuildErrorBalanceKey:
		return "BalanceKey"
	case BuildErrorProofInvalid:
		return "ProofInvalid"
	default:
		return "Unknown"
	}
}

// BuildError reports why Plan.Build aborted.
type BuildError struct {
	Kind BuildErrorKind
	Msg  string
}

func (e *BuildError) Error() string {
	return "tachyon: build failed (" + e.Kind.String() + "): " + e.Msg
}

func NewBuildError(kind BuildErrorKind, msg string) *BuildError {
	return &BuildError{Kind: kind, Msg: msg}
}
