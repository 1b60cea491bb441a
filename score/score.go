// Package score defines the score-function capability: the single seam
// between this engine and whatever model produces predicted ratios.
//
// The engine never inspects model internals — a score model is any function
// returning nonnegative predicted ratios shaped positions × vocabulary. The
// package also ships exact oracles built from the closed-form targets, which
// make the sampler and loss testable without any trained model.
package score

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/maksutov/jumpdiff/forward"
)

// ErrShape indicates a ratio matrix whose dimensions do not match the query.
var ErrShape = errors.New("score: ratio matrix shape mismatch")

// Func predicts score ratios for a noised sequence at diffusion time t. The
// result has one row per position and one column per vocabulary entry; entry
// (p, y) estimates the posterior ratio p_t(y|·)/p_t(x[p]|·). Values must be
// nonnegative; the column at the current token is conventionally one.
type Func func(x []int, t float64) (*mat.Dense, error)

// Validate checks that m is a length × dim ratio matrix.
func Validate(m *mat.Dense, length, dim int) error {
	r, c := m.Dims()
	if r != length || c != dim {
		return fmt.Errorf("%w: got %d×%d, want %d×%d", ErrShape, r, c, length, dim)
	}

	return nil
}

// Oracle returns the exact score function for a point-mass data distribution
// at x0: every ratio is the closed-form posterior ratio of the forward
// process. Feeding it to the reverse sampler reproduces x0; feeding it to
// the loss attains the objective's minimum.
func Oracle(p *forward.Process, x0 []int) Func {
	g := p.Graph()
	sch := p.Schedule()

	return func(x []int, t float64) (*mat.Dense, error) {
		if len(x) != len(x0) {
			return nil, fmt.Errorf("%w: sequence length %d, oracle length %d", ErrShape, len(x), len(x0))
		}
		sigma := sch.Total(t)
		out := mat.NewDense(len(x), g.Dim(), nil)
		for pos, tok := range x {
			for y := 0; y < g.Dim(); y++ {
				out.Set(pos, y, g.ScoreRatioTarget(tok, y, x0[pos], sigma))
			}
		}

		return out, nil
	}
}

// Flat returns the constant score function s ≡ v over a vocabulary of size
// dim. With v = 1 it is the oracle for uniformly distributed data under the
// uniform structure.
func Flat(dim int, v float64) Func {
	return func(x []int, _ float64) (*mat.Dense, error) {
		out := mat.NewDense(len(x), dim, nil)
		for pos := range x {
			for y := 0; y < dim; y++ {
				out.Set(pos, y, v)
			}
		}

		return out, nil
	}
}
