package sampler

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/maksutov/jumpdiff/graph"
	"github.com/maksutov/jumpdiff/schedule"
	"github.com/maksutov/jumpdiff/score"
)

// Sampler generates token sequences by reversing the diffusion process.
// Immutable after New; safe for concurrent use — every call takes its own
// *rand.Rand and mutates only its own State.
type Sampler struct {
	g    graph.Graph
	sch  schedule.Schedule
	fn   score.Func
	opts Options
	dt   float64
}

// New builds a Sampler. A nil opts selects DefaultOptions. Requesting the
// Analytic predictor for a pairing without a closed-form reverse kernel
// fails here, eagerly, with ErrNoAnalyticKernel.
func New(g graph.Graph, sch schedule.Schedule, fn score.Func, opts *Options) (*Sampler, error) {
	if g == nil || sch == nil || fn == nil {
		return nil, ErrNilComponent
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Steps <= 0 {
		return nil, ErrSteps
	}
	if o.Eps <= 0 || o.Eps >= 1 || math.IsNaN(o.Eps) {
		return nil, ErrEpsRange
	}
	if o.CorrectorSteps > 0 && !(o.CorrectorScale > 0) {
		return nil, ErrCorrectorScale
	}
	if o.Predictor == Analytic && !analyticSupported(g, sch) {
		return nil, ErrNoAnalyticKernel
	}

	return &Sampler{
		g:    g,
		sch:  sch,
		fn:   fn,
		opts: o,
		dt:   (1 - o.Eps) / float64(o.Steps),
	}, nil
}

// analyticSupported reports whether the pairing has a documented closed-form
// reverse kernel. Undocumented pairings fall back to Euler by construction
// rather than guessing a kernel.
func analyticSupported(g graph.Graph, sch schedule.Schedule) bool {
	switch g.(type) {
	case *graph.Uniform:
		_, ok := sch.(*schedule.Geometric)
		return ok
	case *graph.Absorbing:
		_, ok := sch.(*schedule.LogLinear)
		return ok
	default:
		return false
	}
}

// Options returns the effective configuration.
func (s *Sampler) Options() Options { return s.opts }

// TimeAt returns the grid time after k predictor steps: t_0 = 1 down to
// t_K = Eps.
func (s *Sampler) TimeAt(k int) float64 {
	if k >= s.opts.Steps {
		return s.opts.Eps
	}

	return 1 - s.dt*float64(k)
}

// Init draws the fully corrupted t=1 state: uniform-random tokens for the
// uniform structure, a fully absorbed sequence for the absorbing one.
func (s *Sampler) Init(length int, rng *rand.Rand) (*State, error) {
	if length <= 0 {
		return nil, ErrLength
	}

	x := make([]int, length)
	for pos := range x {
		x[pos] = s.g.SampleLimit(rng)
	}

	return &State{X: x}, nil
}

// Step advances the state by one atomic predictor step (plus any configured
// corrector passes). The state is untouched on error.
func (s *Sampler) Step(st *State, rng *rand.Rand) error {
	if st.Step >= s.opts.Steps {
		return ErrExhausted
	}

	t := s.TimeAt(st.Step)
	next := make([]int, len(st.X))
	copy(next, st.X)

	var err error
	switch s.opts.Predictor {
	case Analytic:
		err = s.stepAnalytic(next, t, rng)
	default:
		err = s.stepEuler(next, t, rng)
	}
	if err != nil {
		return fmt.Errorf("step %d (t=%g): %w", st.Step, t, err)
	}

	for c := 0; c < s.opts.CorrectorSteps; c++ {
		if err := s.correct(next, s.TimeAt(st.Step+1), rng); err != nil {
			return fmt.Errorf("corrector %d after step %d: %w", c, st.Step, err)
		}
	}

	st.X = next
	st.Step++

	return nil
}

// Finalize applies the optional deterministic denoising step once every
// scheduled step has been taken. Without Denoise it is a no-op.
func (s *Sampler) Finalize(st *State) error {
	if st.Step < s.opts.Steps {
		return fmt.Errorf("%w: %d of %d steps taken", ErrExhausted, st.Step, s.opts.Steps)
	}
	if !s.opts.Denoise {
		return nil
	}

	return s.denoise(st.X)
}

// Sample generates one sequence of the given length. The context is checked
// between atomic steps, so cancellation never tears a half-taken step; the
// partially reversed state is simply discarded.
func (s *Sampler) Sample(ctx context.Context, length int, rng *rand.Rand) ([]int, error) {
	st, err := s.Init(length, rng)
	if err != nil {
		return nil, err
	}
	if err := s.run(ctx, st, rng, nil); err != nil {
		return nil, err
	}

	out := make([]int, length)
	copy(out, st.X)

	return out, nil
}

// Trajectory generates one sequence and records every intermediate state:
// the t=1 draw, each of the K post-step states and, when enabled, the
// denoised result.
func (s *Sampler) Trajectory(ctx context.Context, length int, rng *rand.Rand) ([][]int, error) {
	st, err := s.Init(length, rng)
	if err != nil {
		return nil, err
	}

	traj := make([][]int, 0, s.opts.Steps+2)
	snapshot := func(x []int) {
		c := make([]int, len(x))
		copy(c, x)
		traj = append(traj, c)
	}
	snapshot(st.X)

	if err := s.run(ctx, st, rng, snapshot); err != nil {
		return nil, err
	}

	return traj, nil
}

// run drives a state to completion, invoking observe (when non-nil) after
// every atomic step and after denoising.
func (s *Sampler) run(ctx context.Context, st *State, rng *rand.Rand, observe func([]int)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for st.Step < s.opts.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(st, rng); err != nil {
			return err
		}
		if observe != nil {
			observe(st.X)
		}
	}
	if err := s.Finalize(st); err != nil {
		return err
	}
	if s.opts.Denoise && observe != nil {
		observe(st.X)
	}

	return nil
}

// SampleBatch generates n independent sequences with shared-nothing fan-out.
// Sample i derives its rng from seed+i, so the batch is reproducible and
// independent of goroutine interleaving.
func (s *Sampler) SampleBatch(ctx context.Context, n, length int, seed int64) ([][]int, error) {
	if n <= 0 {
		return nil, ErrLength
	}

	out := make([][]int, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(i)))
			out[i], errs[i] = s.Sample(ctx, length, rng)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return out, nil
}
