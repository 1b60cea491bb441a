package graph

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Uniform is the doubly-stochastic jump structure: every ordered pair of
// distinct tokens carries the same instantaneous rate. Its generator is
// Q = J/V − I (J the all-ones matrix), whose kernel is the mixture
//
//	P(σ) = e^(−σ)·I + (1−e^(−σ))·J/V,
//
// i.e. with probability 1−e^(−σ) the token is redrawn uniformly over the
// whole vocabulary (it may land back on itself), otherwise it stays.
type Uniform struct {
	dim int
}

// NewUniform builds a uniform structure over a vocabulary of size dim.
// Returns ErrDimension when dim < 2 (a single-token process has zero rate
// everywhere and cannot diffuse).
func NewUniform(dim int) (*Uniform, error) {
	if dim < 2 {
		return nil, ErrDimension
	}

	return &Uniform{dim: dim}, nil
}

// Dim returns the vocabulary size.
func (u *Uniform) Dim() int { return u.dim }

// AbsorbingToken reports that the uniform structure has no terminal token.
func (u *Uniform) AbsorbingToken() (int, bool) { return -1, false }

// TransitionProb returns the closed-form kernel entry P(i→j; σ).
func (u *Uniform) TransitionProb(i, j int, sigma float64) float64 {
	move := -math.Expm1(-sigma) // 1 − e^(−σ), stable near σ=0
	if i == j {
		return math.Exp(-sigma) + move/float64(u.dim)
	}

	return move / float64(u.dim)
}

// SampleTransition draws from P(i→·; σ) in O(1): a single move-event coin
// followed, on success, by a uniform redraw over the vocabulary.
func (u *Uniform) SampleTransition(i int, sigma float64, rng *rand.Rand) int {
	if rng.Float64() < -math.Expm1(-sigma) {
		return rng.Intn(u.dim)
	}

	return i
}

// ScoreRatioTarget returns p_σ(y|x0)/p_σ(x|x0). Under the uniform kernel the
// row takes at most two distinct values — the "was x0" mass and the spread
// mass — so the ratio is a function of σ alone, independent of V beyond the
// 1/V spread factor.
func (u *Uniform) ScoreRatioTarget(x, y, x0 int, sigma float64) float64 {
	if y == x {
		return 1
	}
	spread := -math.Expm1(-sigma) / float64(u.dim)
	stay := spread + math.Exp(-sigma)

	num := spread
	if y == x0 {
		num = stay
	}
	den := spread
	if x == x0 {
		den = stay
	}

	return num / den
}

// Rate returns Q(i,j) for Q = J/V − I.
func (u *Uniform) Rate(i, j int) float64 {
	if i == j {
		return -float64(u.dim-1) / float64(u.dim)
	}

	return 1 / float64(u.dim)
}

// TranspRate returns Q(j,i); the uniform generator is symmetric.
func (u *Uniform) TranspRate(i, j int) float64 { return u.Rate(i, j) }

// TranspTransition returns Pᵀ(i,j; σ); the uniform kernel is symmetric.
func (u *Uniform) TranspTransition(i, j int, sigma float64) float64 {
	return u.TransitionProb(i, j, sigma)
}

// StaggeredScore adjusts a score row for a reverse jump of accumulated rate
// dσ: out[k] = e^(dσ)·row[k] + (1−e^(dσ))·Σrow/V.
func (u *Uniform) StaggeredScore(row []float64, dsigma float64, out []float64) {
	c := math.Exp(dsigma)
	shift := (1 - c) * floats.Sum(row) / float64(u.dim)
	for k, v := range row {
		out[k] = c*v + shift
	}
}

// SampleLimit draws from the σ→∞ marginal, which is uniform over the
// vocabulary.
func (u *Uniform) SampleLimit(rng *rand.Rand) int { return rng.Intn(u.dim) }
