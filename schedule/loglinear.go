package schedule

import "math"

// LogLinear makes the un-absorbed probability decay linearly in t:
//
//	σ(t) = −log(1−(1−ε)t),  e^(−σ(t)) = 1−(1−ε)t,
//	dσ/dt = (1−ε) / (1−(1−ε)t).
//
// ε > 0 keeps σ(1) finite (σ(1) = −log ε); ε = 0 gives the exact
// −log(1−t) form with σ(1) = +∞, which the absorbing kernels handle but
// which must not be evaluated at t=1 by schedules expecting finite rates.
type LogLinear struct {
	eps float64
}

// DefaultLogLinearEps is the conventional σ(1) floor.
const DefaultLogLinearEps = 1e-3

// NewLogLinear builds a log-linear schedule. Returns ErrEpsRange unless
// eps ∈ [0, 1).
func NewLogLinear(eps float64) (*LogLinear, error) {
	if eps < 0 || eps >= 1 || math.IsNaN(eps) {
		return nil, ErrEpsRange
	}

	return &LogLinear{eps: eps}, nil
}

// At returns σ(t) and dσ/dt.
func (l *LogLinear) At(t float64) (float64, float64) {
	scale := 1 - l.eps
	sigma := -math.Log1p(-scale * t)
	dsigma := scale / (1 - scale*t)

	return sigma, dsigma
}

// Total returns σ(t).
func (l *LogLinear) Total(t float64) float64 {
	sigma, _ := l.At(t)

	return sigma
}

// Rate returns dσ/dt.
func (l *LogLinear) Rate(t float64) float64 {
	_, dsigma := l.At(t)

	return dsigma
}
