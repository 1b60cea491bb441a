package loss

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/maksutov/jumpdiff/forward"
	"github.com/maksutov/jumpdiff/score"
)

var (
	// ErrNilComponent indicates a nil forward process or score function.
	ErrNilComponent = errors.New("loss: process and score function must be non-nil")

	// ErrFloorRange indicates a non-positive stability floor.
	ErrFloorRange = errors.New("loss: floor must be positive")

	// ErrNonFinite indicates a predicted ratio that is NaN or infinite after
	// flooring. It signals an upstream instability (a diverging model) and
	// always propagates to the caller.
	ErrNonFinite = errors.New("loss: non-finite predicted ratio")

	// ErrEmptyBatch indicates a batch with no elements.
	ErrEmptyBatch = errors.New("loss: batch must be non-empty")
)

// Options configures the objective.
//   - Floor: positive floor applied to predicted ratios before logarithms.
type Options struct {
	Floor float64
}

// DefaultOptions returns the conventional configuration.
func DefaultOptions() Options {
	return Options{Floor: 1e-10}
}

// Loss binds a forward process and a score function into a trainable scalar
// objective. Immutable after New; safe for concurrent use.
type Loss struct {
	proc  *forward.Process
	fn    score.Func
	floor float64
}

// New builds a Loss. A nil opts selects DefaultOptions.
func New(proc *forward.Process, fn score.Func, opts *Options) (*Loss, error) {
	if proc == nil || fn == nil {
		return nil, ErrNilComponent
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if !(o.Floor > 0) || math.IsNaN(o.Floor) {
		return nil, ErrFloorRange
	}

	return &Loss{proc: proc, fn: fn, floor: o.Floor}, nil
}

// PerPosition returns the unweighted score-entropy of every position: the
// sum over alternatives of the divergence term. Inactive positions yield
// zero. This is the diagnostic map; Sequence applies the w(t) weight.
func (l *Loss) PerPosition(scores *mat.Dense, targets []forward.PositionTarget) ([]float64, error) {
	dim := l.proc.Graph().Dim()
	if err := score.Validate(scores, len(targets), dim); err != nil {
		return nil, err
	}

	out := make([]float64, len(targets))
	for pos := range targets {
		v, err := l.position(scores.RawRowView(pos), targets[pos], dim)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", pos, err)
		}
		out[pos] = v
	}

	return out, nil
}

// position aggregates one score row against its two-value target.
func (l *Loss) position(row []float64, tgt forward.PositionTarget, dim int) (float64, error) {
	if !tgt.Active() {
		return 0, nil
	}

	cur, sp := tgt.Current, tgt.Special
	hasSpecial := sp >= 0 && sp != cur
	withBase := tgt.Base != 0

	// One pass: Σ s(y) always, Σ log s(y) only when a shared Base ratio
	// multiplies it.
	sumS, sumLog := 0.0, 0.0
	for y, v := range row {
		if y == cur {
			continue
		}
		s := v
		if s < l.floor {
			s = l.floor
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("%w: alternative %d holds %g", ErrNonFinite, y, v)
		}
		sumS += s
		if withBase && y != sp {
			sumLog += math.Log(s)
		}
	}

	total := sumS
	generic := dim - 1
	if hasSpecial {
		generic--
	}
	if withBase {
		total -= tgt.Base * sumLog
		total += float64(generic) * tgt.Base * (math.Log(tgt.Base) - 1)
	}
	if hasSpecial && tgt.Ratio != 0 {
		s := row[sp]
		if s < l.floor {
			s = l.floor
		}
		total += -tgt.Ratio*math.Log(s) + tgt.Ratio*(math.Log(tgt.Ratio)-1)
	}

	return total, nil
}

// Sequence returns the weighted objective of one sequence: w(t) = dσ/dt
// times the mean per-position score entropy.
func (l *Loss) Sequence(scores *mat.Dense, targets []forward.PositionTarget, t float64) (float64, error) {
	per, err := l.PerPosition(scores, targets)
	if err != nil {
		return 0, err
	}
	if len(per) == 0 {
		return 0, nil
	}

	return l.proc.Schedule().Rate(t) * floats.Sum(per) / float64(len(per)), nil
}

// Batch runs a full training-loss evaluation over a batch of clean
// sequences: per element it samples t, corrupts, queries the score function
// and aggregates, fanning out across elements. Element b derives its rng
// from seed+b, so the result is reproducible and independent of scheduling.
func (l *Loss) Batch(x0s [][]int, seed int64) (float64, error) {
	if len(x0s) == 0 {
		return 0, ErrEmptyBatch
	}

	vals := make([]float64, len(x0s))
	errs := make([]error, len(x0s))
	var wg sync.WaitGroup
	for b := range x0s {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			vals[b], errs[b] = l.element(x0s[b], seed+int64(b))
		}(b)
	}
	wg.Wait()

	for b, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("batch element %d: %w", b, err)
		}
	}

	return floats.Sum(vals) / float64(len(vals)), nil
}

// element evaluates one clean sequence end to end.
func (l *Loss) element(x0 []int, seed int64) (float64, error) {
	rng := rand.New(rand.NewSource(seed))
	t := l.proc.SampleTime(rng)

	xt, err := l.proc.Perturb(x0, t, rng)
	if err != nil {
		return 0, err
	}
	targets, err := l.proc.Targets(x0, xt, t)
	if err != nil {
		return 0, err
	}
	scores, err := l.fn(xt, t)
	if err != nil {
		return 0, err
	}

	return l.Sequence(scores, targets, t)
}
