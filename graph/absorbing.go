package graph

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Absorbing is the masking jump structure: every token decays into a single
// terminal token and never leaves it. The terminal token is the last index,
// Dim−1. The kernel is
//
//	P(i→i; σ) = e^(−σ),  P(i→absorb; σ) = 1−e^(−σ),
//
// with the absorbing row equal to the identity for every σ.
type Absorbing struct {
	dim  int
	mask int
}

// NewAbsorbing builds an absorbing structure over a vocabulary of size dim,
// reserving index dim−1 as the terminal token. Returns ErrDimension when
// dim < 2 (the structure needs at least one non-terminal token).
func NewAbsorbing(dim int) (*Absorbing, error) {
	if dim < 2 {
		return nil, ErrDimension
	}

	return &Absorbing{dim: dim, mask: dim - 1}, nil
}

// Dim returns the vocabulary size, terminal token included.
func (a *Absorbing) Dim() int { return a.dim }

// AbsorbingToken returns the terminal token index.
func (a *Absorbing) AbsorbingToken() (int, bool) { return a.mask, true }

// TransitionProb returns the closed-form kernel entry P(i→j; σ).
func (a *Absorbing) TransitionProb(i, j int, sigma float64) float64 {
	if i == a.mask {
		// Terminal row: identity regardless of σ.
		if j == a.mask {
			return 1
		}

		return 0
	}
	switch j {
	case i:
		return math.Exp(-sigma)
	case a.mask:
		return -math.Expm1(-sigma)
	default:
		return 0
	}
}

// SampleTransition draws from P(i→·; σ) in O(1). A token already equal to
// the terminal token is returned unchanged for every σ.
func (a *Absorbing) SampleTransition(i int, sigma float64, rng *rand.Rand) int {
	if i == a.mask {
		return a.mask
	}
	if rng.Float64() < -math.Expm1(-sigma) {
		return a.mask
	}

	return i
}

// ScoreRatioTarget returns p_σ(y|x0)/p_σ(x|x0). The posterior row given a
// clean token x0 has mass only at x0 and at the terminal token, so a masked
// position carries exactly one nonzero target, 1/(e^σ−1) at y=x0, and an
// unmasked position exactly one, e^σ−1 at the terminal token.
func (a *Absorbing) ScoreRatioTarget(x, y, x0 int, sigma float64) float64 {
	den := a.posterior(x, x0, sigma)
	if den == 0 {
		// x is unreachable from x0 under this structure; no finite ratio
		// exists and the pair contributes nothing.
		return 0
	}

	return a.posterior(y, x0, sigma) / den
}

// posterior returns p_σ(j|x0).
func (a *Absorbing) posterior(j, x0 int, sigma float64) float64 {
	if x0 == a.mask {
		if j == a.mask {
			return 1
		}

		return 0
	}
	switch j {
	case x0:
		return math.Exp(-sigma)
	case a.mask:
		return -math.Expm1(-sigma)
	default:
		return 0
	}
}

// Rate returns Q(i,j): unit rate into the terminal token from everywhere
// else, zero out of it.
func (a *Absorbing) Rate(i, j int) float64 {
	if i == a.mask {
		return 0
	}
	switch j {
	case a.mask:
		return 1
	case i:
		return -1
	default:
		return 0
	}
}

// TranspRate returns Q(j,i).
func (a *Absorbing) TranspRate(i, j int) float64 { return a.Rate(j, i) }

// TranspTransition returns Pᵀ(i,j; σ).
func (a *Absorbing) TranspTransition(i, j int, sigma float64) float64 {
	v := 0.0
	if i == j {
		v += math.Exp(-sigma)
	}
	if i == a.mask {
		v += -math.Expm1(-sigma)
	}

	return v
}

// StaggeredScore adjusts a score row for a reverse jump of accumulated rate
// dσ: every entry is scaled by e^(dσ) and the terminal entry absorbs the
// compensating mass (1−e^(dσ))·Σrow.
func (a *Absorbing) StaggeredScore(row []float64, dsigma float64, out []float64) {
	c := math.Exp(dsigma)
	extra := (1 - c) * floats.Sum(row)
	for k, v := range row {
		out[k] = c * v
	}
	out[a.mask] += extra
}

// SampleLimit draws from the σ→∞ marginal, which is a point mass on the
// terminal token.
func (a *Absorbing) SampleLimit(_ *rand.Rand) int { return a.mask }
