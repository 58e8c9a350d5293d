package sig

import (
	"io"

	"github.com/tachyon-go/tachyon/pkg/tachyon/constants"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
)

// SignSpendAuth signs a bundle sighash with a per-action signing scalar
// rsk (SPEC_FULL.md section 3: "All action ... signatures are RedPallas
// signatures on this single digest").
func SignSpendAuth(rng io.Reader, rsk primitives.Fq, rk primitives.Point, sighash primitives.SigHash) (Signature, error) {
	return sign(rng, constants.SpendAuthSigDomain, rsk, rk, sighash.Bytes())
}

// VerifySpendAuth verifies an action signature: I1, "verify(rk, sighash,
// sig) succeeds".
func VerifySpendAuth(rk primitives.Point, sighash primitives.SigHash, s Signature) bool {
	return verify(constants.SpendAuthSigDomain, rk, sighash.Bytes(), s)
}

// SignBinding signs a bundle sighash with the binding signing key bsk.
func SignBinding(rng io.Reader, bsk primitives.Fq, bvk primitives.Point, sighash primitives.SigHash) (Signature, error) {
	return sign(rng, constants.BindingSigDomain, bsk, bvk, sighash.Bytes())
}

// VerifyBinding verifies the binding signature: I2, "bvk.verify(sighash,
// binding_sig) succeeds iff sum(v_i) == v_balance".
func VerifyBinding(bvk primitives.Point, sighash primitives.SigHash, s Signature) bool {
	return verify(constants.BindingSigDomain, bvk, sighash.Bytes(), s)
}
