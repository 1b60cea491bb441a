package sampler_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/maksutov/jumpdiff/graph"
	"github.com/maksutov/jumpdiff/sampler"
	"github.com/maksutov/jumpdiff/schedule"
	"github.com/maksutov/jumpdiff/score"
)

// BenchmarkSample_AnalyticAbsorbing measures one full reverse walk over a
// realistic small-vocabulary setup.
func BenchmarkSample_AnalyticAbsorbing(b *testing.B) {
	g, err := graph.NewAbsorbing(256)
	if err != nil {
		b.Fatal(err)
	}
	sch, err := schedule.NewLogLinear(schedule.DefaultLogLinearEps)
	if err != nil {
		b.Fatal(err)
	}
	smp, err := sampler.New(g, sch, score.Flat(256, 1), &sampler.Options{
		Steps:     64,
		Predictor: sampler.Analytic,
		Denoise:   true,
		Eps:       1e-5,
	})
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := smp.Sample(context.Background(), 128, rng); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSample_EulerUniform measures the first-order predictor on the
// uniform structure.
func BenchmarkSample_EulerUniform(b *testing.B) {
	g, err := graph.NewUniform(256)
	if err != nil {
		b.Fatal(err)
	}
	sch, err := schedule.NewGeometric(1e-3, 12)
	if err != nil {
		b.Fatal(err)
	}
	smp, err := sampler.New(g, sch, score.Flat(256, 1), &sampler.Options{
		Steps:     64,
		Predictor: sampler.Euler,
		Denoise:   true,
		Eps:       1e-5,
	})
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := smp.Sample(context.Background(), 128, rng); err != nil {
			b.Fatal(err)
		}
	}
}
