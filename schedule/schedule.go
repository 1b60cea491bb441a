package schedule

import "errors"

var (
	// ErrSigmaOrder indicates σ_min and σ_max are not strictly ordered
	// positive values.
	ErrSigmaOrder = errors.New("schedule: need 0 < sigma_min < sigma_max")

	// ErrEpsRange indicates a LogLinear floor outside [0, 1).
	ErrEpsRange = errors.New("schedule: eps must lie in [0, 1)")
)

// Schedule maps diffusion time t ∈ [0,1] to the accumulated rate σ(t) and
// its derivative. Implementations are immutable and safe for concurrent use.
// Behavior outside [0,1] is unspecified; callers validate t at entry points.
type Schedule interface {
	// At returns σ(t) and dσ/dt in one call.
	At(t float64) (sigma, dsigma float64)

	// Total returns σ(t).
	Total(t float64) float64

	// Rate returns dσ/dt.
	Rate(t float64) float64
}
