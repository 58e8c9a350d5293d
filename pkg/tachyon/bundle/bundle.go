package bundle

import (
	"github.com/tachyon-go/tachyon/pkg/tachyon/action"
	"github.com/tachyon-go/tachyon/pkg/tachyon/primitives"
	"github.com/tachyon-go/tachyon/pkg/tachyon/stamp"
)

// Stamper is the type-state constraint on a Bundle's stamp slot: either a
// real stamp.Stamp (Stamped) or stamp.Stampless (Stripped). Go has no
// affine/linear types to encode Rust's `Bundle<S>` state machine directly,
// so this generic parameter plays the same role: it is a compile-time tag
// that keeps a stripped bundle from ever being mistaken for a stamped one
// (SPEC_FULL.md section 9's Design Notes).
type Stamper interface {
	stamp.Stamp | stamp.Stampless
}

// Bundle is a built bundle of actions sharing one binding signature and
// value balance, generic over its stamp slot (SPEC_FULL.md section 3:
// "Bundle<S,V> {actions, value_balance, binding_sig, stamp: S}").
type Bundle[S Stamper] struct {
	Actions      []action.Action
	ValueBalance int64
	BindingSig   [64]byte
	Stamp        S
}

// Stamped is a bundle carrying its full proof-carrying-data stamp, fresh out
// of Build.
type Stamped = Bundle[stamp.Stamp]

// Stripped is a bundle with its stamp removed (Strip's output), typically
// for inclusion as an adjunct bundle once its stamp has been merged into an
// aggregate's.
type Stripped = Bundle[stamp.Stampless]

// Strip removes the stamp from a Stamped bundle by a shallow move: every
// other field is preserved byte-for-byte (section 4.4, "Stamped::strip").
// It returns the stripped bundle and the removed stamp.
func Strip(b Stamped) (Stripped, stamp.Stamp) {
	return Stripped{
		Actions:      b.Actions,
		ValueBalance: b.ValueBalance,
		BindingSig:   b.BindingSig,
		Stamp:        stamp.Stampless{},
	}, b.Stamp
}

// SigHash recomputes the bundle sighash from the bundle's own stored
// actions (section 4.4: needed by the validator since sighash is not
// transmitted).
func SigHash[S Stamper](b Bundle[S]) primitives.SigHash {
	pairs := make([]primitives.EffectingPair, len(b.Actions))
	for i, a := range b.Actions {
		pairs[i] = primitives.EffectingPair{Cv: a.Cv.Point(), Rk: a.Rk.Point()}
	}
	return primitives.ComputeSigHash(pairs, b.ValueBalance)
}
