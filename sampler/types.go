package sampler

import "errors"

// Predictor selects the per-step reverse-transition rule.
type Predictor int

const (
	// Euler discretizes the reverse rate to first order in the step size.
	Euler Predictor = iota

	// Analytic applies the exact closed-form reverse kernel of the step;
	// only defined for the Uniform+Geometric and Absorbing+LogLinear
	// pairings.
	Analytic
)

// String returns the predictor name.
func (p Predictor) String() string {
	switch p {
	case Euler:
		return "Euler"
	case Analytic:
		return "Analytic"
	default:
		return "Unknown"
	}
}

var (
	// ErrNilComponent indicates a nil graph, schedule or score function.
	ErrNilComponent = errors.New("sampler: graph, schedule and score function must be non-nil")

	// ErrSteps indicates a non-positive step count.
	ErrSteps = errors.New("sampler: step count must be positive")

	// ErrEpsRange indicates a terminal time outside (0, 1).
	ErrEpsRange = errors.New("sampler: terminal time must lie in (0, 1)")

	// ErrNoAnalyticKernel indicates the Analytic predictor was requested for
	// a graph/schedule pairing without a defined closed-form reverse kernel.
	ErrNoAnalyticKernel = errors.New("sampler: no closed-form reverse kernel for this graph/schedule pair")

	// ErrCorrectorScale indicates corrector passes were enabled with a
	// non-positive scale.
	ErrCorrectorScale = errors.New("sampler: corrector scale must be positive")

	// ErrLength indicates a non-positive sequence length.
	ErrLength = errors.New("sampler: sequence length must be positive")

	// ErrExhausted indicates Step was called on a state that already took
	// every scheduled step.
	ErrExhausted = errors.New("sampler: all scheduled steps already taken")
)

// Options configures a Sampler.
//   - Steps: number K of predictor steps over the time grid from 1 to Eps.
//   - Predictor: Euler or Analytic stepping.
//   - CorrectorSteps: score-guided resampling passes after each predictor
//     step (0 disables correction).
//   - CorrectorScale: step-size multiplier of a corrector pass.
//   - Denoise: commit each position to its most probable token in a final
//     deterministic step at t=Eps.
//   - Eps: terminal time; the grid never reaches t=0 where the reverse rate
//     degenerates.
type Options struct {
	Steps          int
	Predictor      Predictor
	CorrectorSteps int
	CorrectorScale float64
	Denoise        bool
	Eps            float64
}

// DefaultOptions returns the conventional configuration: 128 Euler steps
// with final denoising.
func DefaultOptions() Options {
	return Options{
		Steps:          128,
		Predictor:      Euler,
		CorrectorSteps: 0,
		CorrectorScale: 0.1,
		Denoise:        true,
		Eps:            1e-5,
	}
}

// State is the resumable sampler state: the current sequence and the number
// of predictor steps already taken. Any (X, Step) pair produced between
// atomic steps is a valid checkpoint.
type State struct {
	X    []int
	Step int
}
