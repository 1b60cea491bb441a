package sampler

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/maksutov/jumpdiff/score"
)

// stepEuler advances every position by a first-order discretization of the
// reverse rate r(i→j) = s(j)·Qᵀ(i,j) over the step size, scaled by dσ/dt.
// Negative stay-mass from an overly coarse grid is clamped, never an error.
func (s *Sampler) stepEuler(x []int, t float64, rng *rand.Rand) error {
	_, dsigma := s.sch.At(t)
	scores, err := s.fn(x, t)
	if err != nil {
		return err
	}
	if err := score.Validate(scores, len(x), s.g.Dim()); err != nil {
		return err
	}

	probs := make([]float64, s.g.Dim())
	for pos, cur := range x {
		row := scores.RawRowView(pos)
		total := 0.0
		for j := range probs {
			if j == cur {
				probs[j] = 0
				continue
			}
			v := s.dt * dsigma * s.g.TranspRate(cur, j) * row[j]
			if v < 0 {
				v = 0
			}
			probs[j] = v
			total += v
		}
		if stay := 1 - total; stay > 0 {
			probs[cur] = stay
		}
		x[pos] = categorical(probs, cur, rng)
	}

	return nil
}

// stepAnalytic advances every position through the exact reverse kernel of
// the step: the staggered score over dσ = σ(t)−σ(t−dt) times the transpose
// kernel entries.
func (s *Sampler) stepAnalytic(x []int, t float64, rng *rand.Rand) error {
	dsig := s.sch.Total(t) - s.sch.Total(t-s.dt)
	scores, err := s.fn(x, t)
	if err != nil {
		return err
	}
	if err := score.Validate(scores, len(x), s.g.Dim()); err != nil {
		return err
	}

	stag := make([]float64, s.g.Dim())
	probs := make([]float64, s.g.Dim())
	for pos, cur := range x {
		s.g.StaggeredScore(scores.RawRowView(pos), dsig, stag)
		for j := range probs {
			v := stag[j] * s.g.TranspTransition(cur, j, dsig)
			if v < 0 {
				v = 0
			}
			probs[j] = v
		}
		x[pos] = categorical(probs, cur, rng)
	}

	return nil
}

// correct applies one Langevin-style forward–backward pass at fixed time t:
// the generator of the resampling chain is the score-weighted reverse rate
// plus the forward rate, Qᵀ(i,j)·s(j) + Q(i,j), whose stationary point is
// the time-t marginal when s is exact.
func (s *Sampler) correct(x []int, t float64, rng *rand.Rand) error {
	_, dsigma := s.sch.At(t)
	scores, err := s.fn(x, t)
	if err != nil {
		return err
	}
	if err := score.Validate(scores, len(x), s.g.Dim()); err != nil {
		return err
	}

	step := s.opts.CorrectorScale * s.dt * dsigma
	probs := make([]float64, s.g.Dim())
	for pos, cur := range x {
		row := scores.RawRowView(pos)
		total := 0.0
		for j := range probs {
			if j == cur {
				probs[j] = 0
				continue
			}
			v := step * (s.g.TranspRate(cur, j)*row[j] + s.g.Rate(cur, j))
			if v < 0 {
				v = 0
			}
			probs[j] = v
			total += v
		}
		if stay := 1 - total; stay > 0 {
			probs[cur] = stay
		}
		x[pos] = categorical(probs, cur, rng)
	}

	return nil
}

// denoise deterministically commits every position to its highest-weight
// token under the full remaining reverse kernel at t=Eps. For the absorbing
// structure the terminal channel is excluded — denoising must produce a
// clean token.
func (s *Sampler) denoise(x []int) error {
	sigma := s.sch.Total(s.opts.Eps)
	scores, err := s.fn(x, s.opts.Eps)
	if err != nil {
		return err
	}
	if err := score.Validate(scores, len(x), s.g.Dim()); err != nil {
		return err
	}

	mask, hasMask := s.g.AbsorbingToken()
	stag := make([]float64, s.g.Dim())
	probs := make([]float64, s.g.Dim())
	for pos, cur := range x {
		s.g.StaggeredScore(scores.RawRowView(pos), sigma, stag)
		for j := range probs {
			probs[j] = stag[j] * s.g.TranspTransition(cur, j, sigma)
		}
		if hasMask {
			probs[mask] = -1
		}
		if best := floats.MaxIdx(probs); probs[best] > 0 {
			x[pos] = best
		}
	}

	return nil
}

// categorical draws an index proportional to the nonnegative weights,
// falling back to cur when no weight is positive. One rng draw per call
// keeps runs bit-reproducible.
func categorical(weights []float64, cur int, rng *rand.Rand) int {
	total := floats.Sum(weights)
	if !(total > 0) {
		return cur
	}

	u := rng.Float64() * total
	acc := 0.0
	for j, w := range weights {
		acc += w
		if u < acc {
			return j
		}
	}

	// Float accumulation can land u at the very top edge; return the last
	// positively weighted index.
	for j := len(weights) - 1; j >= 0; j-- {
		if weights[j] > 0 {
			return j
		}
	}

	return cur
}
