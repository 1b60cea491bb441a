package graph_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/maksutov/jumpdiff/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

// TestNew_Degenerate verifies that vocabularies below two tokens are rejected.
func TestNew_Degenerate(t *testing.T) {
	for _, dim := range []int{-1, 0, 1} {
		_, err := graph.NewUniform(dim)
		assert.ErrorIs(t, err, graph.ErrDimension, "uniform dim=%d must error", dim)

		_, err = graph.NewAbsorbing(dim)
		assert.ErrorIs(t, err, graph.ErrDimension, "absorbing dim=%d must error", dim)
	}
}

// TestTransitionProb_RowStochastic checks that kernel rows sum to one for
// both variants over a grid of accumulated rates.
func TestTransitionProb_RowStochastic(t *testing.T) {
	u, err := graph.NewUniform(7)
	require.NoError(t, err)
	a, err := graph.NewAbsorbing(7)
	require.NoError(t, err)

	for _, g := range []graph.Graph{u, a} {
		for _, sigma := range []float64{0, 1e-6, 0.01, 0.3, 1, 5, 40} {
			for i := 0; i < g.Dim(); i++ {
				sum := 0.0
				for j := 0; j < g.Dim(); j++ {
					p := g.TransitionProb(i, j, sigma)
					assert.GreaterOrEqual(t, p, 0.0, "negative probability at (%d,%d,σ=%g)", i, j, sigma)
					sum += p
				}
				assert.InDelta(t, 1.0, sum, tol, "row %d at σ=%g must sum to 1", i, sigma)
			}
		}
	}
}

// TestTransitionProb_IdentityAtZero checks P(0) = I for both variants.
func TestTransitionProb_IdentityAtZero(t *testing.T) {
	u, _ := graph.NewUniform(5)
	a, _ := graph.NewAbsorbing(5)

	for _, g := range []graph.Graph{u, a} {
		for i := 0; i < g.Dim(); i++ {
			for j := 0; j < g.Dim(); j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				assert.InDelta(t, want, g.TransitionProb(i, j, 0), tol)
			}
		}
	}
}

// TestUniform_ConcreteKernel pins the closed form at V=4 with the stay
// probability at exactly one half: e^(−σ) = 1/3 gives
// P(i→i) = 1/3 + (2/3)/4 = 0.5 and P(i→j≠i) = (2/3)/4 = 1/6.
func TestUniform_ConcreteKernel(t *testing.T) {
	u, err := graph.NewUniform(4)
	require.NoError(t, err)

	sigma := math.Log(3)
	assert.InDelta(t, 0.5, u.TransitionProb(2, 2, sigma), tol)
	for j := 0; j < 4; j++ {
		if j == 2 {
			continue
		}
		assert.InDelta(t, 1.0/6.0, u.TransitionProb(2, j, sigma), tol)
	}
}

// TestAbsorbing_SurvivalProbability pins the closed form: the probability of
// remaining un-absorbed after accumulated rate σ is e^(−σ).
func TestAbsorbing_SurvivalProbability(t *testing.T) {
	a, err := graph.NewAbsorbing(10)
	require.NoError(t, err)

	sigma := -math.Log(0.7)
	assert.InDelta(t, 0.7, a.TransitionProb(3, 3, sigma), tol)
	assert.InDelta(t, 0.3, a.TransitionProb(3, 9, sigma), tol)
}

// TestAbsorbing_TerminalInvariant verifies the absorbing token never leaves,
// for any σ and any number of repeated draws.
func TestAbsorbing_TerminalInvariant(t *testing.T) {
	a, err := graph.NewAbsorbing(6)
	require.NoError(t, err)
	mask, ok := a.AbsorbingToken()
	require.True(t, ok)
	require.Equal(t, 5, mask)

	rng := rand.New(rand.NewSource(42))
	for _, sigma := range []float64{0, 0.5, 3, math.Inf(1)} {
		for k := 0; k < 200; k++ {
			assert.Equal(t, mask, a.SampleTransition(mask, sigma, rng))
		}
	}
}

// TestSampleTransition_Deterministic checks that a fixed seed reproduces the
// draw sequence bit-for-bit.
func TestSampleTransition_Deterministic(t *testing.T) {
	u, _ := graph.NewUniform(50)

	run := func(seed int64) []int {
		rng := rand.New(rand.NewSource(seed))
		out := make([]int, 500)
		for k := range out {
			out[k] = u.SampleTransition(k%50, 0.8, rng)
		}
		return out
	}

	assert.Equal(t, run(7), run(7), "same seed must reproduce draws")
	assert.NotEqual(t, run(7), run(8), "distinct seeds should diverge")
}

// TestSampleTransition_Frequency checks the empirical move fraction of the
// uniform structure against the closed form (V−1)/V·(1−e^(−σ)).
func TestSampleTransition_Frequency(t *testing.T) {
	const (
		dim   = 8
		n     = 200000
		sigma = 0.9
	)
	u, _ := graph.NewUniform(dim)
	rng := rand.New(rand.NewSource(1))

	moved := 0
	for k := 0; k < n; k++ {
		if u.SampleTransition(3, sigma, rng) != 3 {
			moved++
		}
	}
	want := float64(dim-1) / dim * (1 - math.Exp(-sigma))
	assert.InDelta(t, want, float64(moved)/n, 5e-3)
}

// TestUniform_ScoreRatioTarget pins the two-value posterior-ratio structure.
func TestUniform_ScoreRatioTarget(t *testing.T) {
	const dim = 5
	u, _ := graph.NewUniform(dim)
	sigma := 0.7
	spread := (1 - math.Exp(-sigma)) / dim
	stay := spread + math.Exp(-sigma)

	// Noised token still equals the clean token: every alternative shares
	// the same ratio spread/stay.
	for y := 0; y < dim; y++ {
		if y == 2 {
			continue
		}
		assert.InDelta(t, spread/stay, u.ScoreRatioTarget(2, y, 2, sigma), tol)
	}

	// Noised token moved: the clean token stands out, everything else is 1.
	assert.InDelta(t, stay/spread, u.ScoreRatioTarget(2, 4, 4, sigma), tol)
	assert.InDelta(t, 1.0, u.ScoreRatioTarget(2, 1, 4, sigma), tol)
	assert.InDelta(t, 1.0, u.ScoreRatioTarget(2, 2, 4, sigma), tol, "the ratio at y=x is identically one")
}

// TestAbsorbing_ScoreRatioTarget pins the sparse posterior-ratio structure.
func TestAbsorbing_ScoreRatioTarget(t *testing.T) {
	const dim = 6
	a, _ := graph.NewAbsorbing(dim)
	mask := dim - 1
	sigma := 1.3

	// Masked position: single nonzero ratio 1/(e^σ−1) at the clean token.
	assert.InDelta(t, 1/math.Expm1(sigma), a.ScoreRatioTarget(mask, 2, 2, sigma), tol)
	for y := 0; y < dim; y++ {
		if y == 2 || y == mask {
			continue
		}
		assert.Zero(t, a.ScoreRatioTarget(mask, y, 2, sigma))
	}

	// Unmasked position: single nonzero ratio e^σ−1 at the terminal token.
	assert.InDelta(t, math.Expm1(sigma), a.ScoreRatioTarget(2, mask, 2, sigma), tol)
	assert.Zero(t, a.ScoreRatioTarget(2, 3, 2, sigma))
}

// TestRate_GeneratorRows verifies that generator rows sum to zero with
// nonnegative off-diagonals, and that the absorbing row is all zero.
func TestRate_GeneratorRows(t *testing.T) {
	u, _ := graph.NewUniform(9)
	a, _ := graph.NewAbsorbing(9)

	for _, g := range []graph.Graph{u, a} {
		for i := 0; i < g.Dim(); i++ {
			sum := 0.0
			for j := 0; j < g.Dim(); j++ {
				q := g.Rate(i, j)
				if i != j {
					assert.GreaterOrEqual(t, q, 0.0)
				}
				sum += q
			}
			assert.InDelta(t, 0.0, sum, tol, "generator row %d must sum to zero", i)
		}
	}

	mask, _ := a.AbsorbingToken()
	for j := 0; j < a.Dim(); j++ {
		assert.Zero(t, a.Rate(mask, j), "terminal token has zero outgoing rate")
	}
}

// TestValidate covers the shared entry-point validators.
func TestValidate(t *testing.T) {
	u, _ := graph.NewUniform(4)

	assert.NoError(t, graph.ValidateToken(u, 0))
	assert.NoError(t, graph.ValidateToken(u, 3))
	assert.ErrorIs(t, graph.ValidateToken(u, 4), graph.ErrTokenRange)
	assert.ErrorIs(t, graph.ValidateToken(u, -1), graph.ErrTokenRange)

	assert.ErrorIs(t, graph.ValidateSeq(u, []int{0, 1, 9}), graph.ErrTokenRange)
	assert.NoError(t, graph.ValidateSeq(u, []int{0, 1, 2, 3}))

	assert.NoError(t, graph.ValidateSigma(0))
	assert.NoError(t, graph.ValidateSigma(math.Inf(1)))
	assert.ErrorIs(t, graph.ValidateSigma(-0.1), graph.ErrSigmaRange)
	assert.ErrorIs(t, graph.ValidateSigma(math.NaN()), graph.ErrSigmaRange)
}
