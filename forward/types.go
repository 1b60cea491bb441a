package forward

import "errors"

var (
	// ErrNilComponent indicates a nil graph or schedule.
	ErrNilComponent = errors.New("forward: graph and schedule must be non-nil")

	// ErrTimeRange indicates a diffusion time outside (0, 1].
	ErrTimeRange = errors.New("forward: time must lie in (0, 1]")

	// ErrLengthMismatch indicates sequences (or batch slices) of differing
	// lengths where equal lengths are required.
	ErrLengthMismatch = errors.New("forward: length mismatch")

	// ErrEpsRange indicates a training-time floor outside (0, 1).
	ErrEpsRange = errors.New("forward: time-sampling floor must lie in (0, 1)")
)

// Options configures a Process.
//   - Eps: lower edge of the training-time distribution t ~ U[Eps, 1].
//     Sampling t=0 exactly would put zero mass on corruption and degenerate
//     the ratio targets, so the floor stays strictly positive.
type Options struct {
	Eps float64
}

// DefaultOptions returns the conventional configuration.
func DefaultOptions() Options {
	return Options{Eps: 1e-3}
}

// PositionTarget is the compact per-position score-ratio target: Base is the
// ratio shared by every generic alternative y ≠ Current, Special (when ≥ 0)
// is the single alternative carrying its own Ratio. Both supported graph
// families fit this two-value shape exactly.
//
// A position with Special < 0 and Base == 0 is inactive: it contributes
// nothing to the loss (an un-absorbed position under the absorbing
// structure).
type PositionTarget struct {
	Current int
	Base    float64
	Special int
	Ratio   float64
}

// Active reports whether the position carries any nonzero target mass.
func (pt PositionTarget) Active() bool {
	return pt.Special >= 0 || pt.Base != 0
}

// At returns the target ratio for a single alternative y. The ratio at
// y == Current is identically one.
func (pt PositionTarget) At(y int) float64 {
	switch y {
	case pt.Current:
		return 1
	case pt.Special:
		return pt.Ratio
	default:
		return pt.Base
	}
}
