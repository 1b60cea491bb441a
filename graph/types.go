package graph

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrDimension indicates a degenerate vocabulary size (fewer than two tokens).
	ErrDimension = errors.New("graph: vocabulary size must be at least 2")

	// ErrTokenRange indicates a token index outside [0, Dim).
	ErrTokenRange = errors.New("graph: token index out of range")

	// ErrSigmaRange indicates a negative or NaN accumulated rate.
	ErrSigmaRange = errors.New("graph: accumulated rate must be non-negative")
)

// Graph is the three-operation transition-structure contract plus the
// reverse-time support the sampler needs. Tokens are ints in [0, Dim).
// Implementations are immutable after construction and safe for concurrent
// use; all randomness flows through the supplied *rand.Rand.
type Graph interface {
	// Dim returns the vocabulary size V.
	Dim() int

	// AbsorbingToken returns the terminal token index and true when the
	// structure has one, (-1, false) otherwise.
	AbsorbingToken() (int, bool)

	// TransitionProb returns P(i→j; σ), the probability of landing on j
	// after accumulated rate σ starting from i. Rows sum to 1 for every σ.
	TransitionProb(i, j int, sigma float64) float64

	// SampleTransition draws j ~ P(i→·; σ) in O(1) without forming the row.
	SampleTransition(i int, sigma float64, rng *rand.Rand) int

	// ScoreRatioTarget returns the posterior ratio p_σ(y|x0)/p_σ(x|x0) for
	// the noised token x, alternative y and clean token x0. This is the
	// regression target of the score model.
	ScoreRatioTarget(x, y, x0 int, sigma float64) float64

	// Rate returns the generator entry Q(i,j); TranspRate returns Q(j,i).
	Rate(i, j int) float64
	TranspRate(i, j int) float64

	// TranspTransition returns the transpose-kernel entry Pᵀ(i,j; σ) used by
	// the analytic reverse step.
	TranspTransition(i, j int, sigma float64) float64

	// StaggeredScore writes into out the score row adjusted for a reverse
	// jump of accumulated rate dσ. len(out) == len(row) == Dim; out may
	// alias row.
	StaggeredScore(row []float64, dsigma float64, out []float64)

	// SampleLimit draws a token from the fully-corrupted (t=1) distribution.
	SampleLimit(rng *rand.Rand) int
}

// ValidateToken reports ErrTokenRange when tok lies outside [0, g.Dim()).
func ValidateToken(g Graph, tok int) error {
	if tok < 0 || tok >= g.Dim() {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrTokenRange, tok, g.Dim())
	}

	return nil
}

// ValidateSeq reports the first out-of-range token in xs.
func ValidateSeq(g Graph, xs []int) error {
	for pos, tok := range xs {
		if tok < 0 || tok >= g.Dim() {
			return fmt.Errorf("%w: position %d holds %d, want [0,%d)", ErrTokenRange, pos, tok, g.Dim())
		}
	}

	return nil
}

// ValidateSigma reports ErrSigmaRange for negative or NaN σ. +Inf is legal:
// it is the fully-corrupted limit.
func ValidateSigma(sigma float64) error {
	if sigma < 0 || math.IsNaN(sigma) {
		return fmt.Errorf("%w: got %g", ErrSigmaRange, sigma)
	}

	return nil
}
