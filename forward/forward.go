package forward

import (
	"math"
	"math/rand"
	"sync"

	"github.com/maksutov/jumpdiff/graph"
	"github.com/maksutov/jumpdiff/schedule"
)

// Process is the forward corruption process: an immutable (Graph, Schedule)
// pair shared read-only across a run. Safe for concurrent use; all
// randomness flows through explicit *rand.Rand values.
type Process struct {
	g   graph.Graph
	sch schedule.Schedule
	eps float64
}

// New builds a Process. A nil opts selects DefaultOptions.
func New(g graph.Graph, sch schedule.Schedule, opts *Options) (*Process, error) {
	if g == nil || sch == nil {
		return nil, ErrNilComponent
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Eps <= 0 || o.Eps >= 1 || math.IsNaN(o.Eps) {
		return nil, ErrEpsRange
	}

	return &Process{g: g, sch: sch, eps: o.Eps}, nil
}

// Graph returns the transition structure.
func (p *Process) Graph() graph.Graph { return p.g }

// Schedule returns the time reparameterization.
func (p *Process) Schedule() schedule.Schedule { return p.sch }

// SampleTime draws a training time t ~ U[Eps, 1].
func (p *Process) SampleTime(rng *rand.Rand) float64 {
	return p.eps + (1-p.eps)*rng.Float64()
}

// Perturb noises the clean sequence x0 to time t: every position is
// independently pushed through the graph kernel at σ(t). x0 is not mutated.
func (p *Process) Perturb(x0 []int, t float64, rng *rand.Rand) ([]int, error) {
	if err := p.validateTime(t); err != nil {
		return nil, err
	}
	if err := graph.ValidateSeq(p.g, x0); err != nil {
		return nil, err
	}

	sigma := p.sch.Total(t)
	xt := make([]int, len(x0))
	for pos, tok := range x0 {
		xt[pos] = p.g.SampleTransition(tok, sigma, rng)
	}

	return xt, nil
}

// Targets returns the exact score-ratio regression targets for the noised
// sequence xt given its clean origin x0, one compact PositionTarget per
// position.
func (p *Process) Targets(x0, xt []int, t float64) ([]PositionTarget, error) {
	if len(x0) != len(xt) {
		return nil, ErrLengthMismatch
	}
	if err := p.validateTime(t); err != nil {
		return nil, err
	}
	if err := graph.ValidateSeq(p.g, x0); err != nil {
		return nil, err
	}
	if err := graph.ValidateSeq(p.g, xt); err != nil {
		return nil, err
	}

	sigma := p.sch.Total(t)
	out := make([]PositionTarget, len(x0))
	for pos := range x0 {
		out[pos] = p.target(x0[pos], xt[pos], sigma)
	}

	return out, nil
}

// target builds the two-value representation for one position.
func (p *Process) target(x0, x int, sigma float64) PositionTarget {
	if mask, ok := p.g.AbsorbingToken(); ok {
		if x != mask {
			// Un-absorbed position: inactive under the sparse loss
			// convention.
			return PositionTarget{Current: x, Special: -1}
		}

		return PositionTarget{
			Current: x,
			Special: x0,
			Ratio:   p.g.ScoreRatioTarget(x, x0, x0, sigma),
		}
	}

	// Dense families: every generic alternative shares one ratio, with the
	// clean token distinguished when the position has moved.
	if x == x0 {
		return PositionTarget{
			Current: x,
			Base:    p.g.ScoreRatioTarget(x, otherToken(p.g.Dim(), x, x0), x0, sigma),
			Special: -1,
		}
	}

	return PositionTarget{
		Current: x,
		Base:    p.g.ScoreRatioTarget(x, otherToken(p.g.Dim(), x, x0), x0, sigma),
		Special: x0,
		Ratio:   p.g.ScoreRatioTarget(x, x0, x0, sigma),
	}
}

// otherToken picks a witness alternative outside {x, x0}. With fewer than
// three tokens no generic alternative exists and the returned witness is
// unused by the caller.
func otherToken(dim, x, x0 int) int {
	for y := 0; y < dim; y++ {
		if y != x && y != x0 {
			return y
		}
	}

	return x
}

// PerturbBatch noises a batch with shared-nothing fan-out across elements.
// Element b uses its own rng seeded with seed+b, so results are independent
// of goroutine interleaving and reproducible from seed alone.
func (p *Process) PerturbBatch(x0s [][]int, ts []float64, seed int64) ([][]int, error) {
	if len(ts) != len(x0s) {
		return nil, ErrLengthMismatch
	}

	out := make([][]int, len(x0s))
	errs := make([]error, len(x0s))
	var wg sync.WaitGroup
	for b := range x0s {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(b)))
			out[b], errs[b] = p.Perturb(x0s[b], ts[b], rng)
		}(b)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (p *Process) validateTime(t float64) error {
	if !(t > 0) || t > 1 || math.IsNaN(t) {
		return ErrTimeRange
	}

	return nil
}
