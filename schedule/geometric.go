package schedule

import "math"

// Geometric interpolates the rate magnitude log-linearly between σ_min and
// σ_max:
//
//	σ(t) = σ_min^(1−t) · σ_max^t,  dσ/dt = σ(t) · ln(σ_max/σ_min).
//
// σ(0) = σ_min, so the clean-data contract σ(0)=0 holds only approximately;
// pick σ_min small (1e-3 and below is typical) so the kernel at t=0 is
// indistinguishable from the identity.
type Geometric struct {
	sigmaMin float64
	sigmaMax float64
	logRatio float64
}

// NewGeometric builds a geometric schedule. Returns ErrSigmaOrder unless
// 0 < sigmaMin < sigmaMax.
func NewGeometric(sigmaMin, sigmaMax float64) (*Geometric, error) {
	if !(sigmaMin > 0) || !(sigmaMin < sigmaMax) || math.IsInf(sigmaMax, 1) {
		return nil, ErrSigmaOrder
	}

	return &Geometric{
		sigmaMin: sigmaMin,
		sigmaMax: sigmaMax,
		logRatio: math.Log(sigmaMax) - math.Log(sigmaMin),
	}, nil
}

// At returns σ(t) and dσ/dt.
func (g *Geometric) At(t float64) (float64, float64) {
	sigma := math.Pow(g.sigmaMin, 1-t) * math.Pow(g.sigmaMax, t)

	return sigma, sigma * g.logRatio
}

// Total returns σ(t).
func (g *Geometric) Total(t float64) float64 {
	sigma, _ := g.At(t)

	return sigma
}

// Rate returns dσ/dt.
func (g *Geometric) Rate(t float64) float64 {
	_, dsigma := g.At(t)

	return dsigma
}
