package graph_test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/maksutov/jumpdiff/graph"
)

// ExampleNewUniform shows the "stay vs. uniform spread" mixture at the point
// where staying and moving are equally likely.
func ExampleNewUniform() {
	g, _ := graph.NewUniform(4)

	sigma := math.Log(3) // e^(−σ) = 1/3
	fmt.Printf("stay: %.4f\n", g.TransitionProb(0, 0, sigma))
	fmt.Printf("move: %.4f\n", g.TransitionProb(0, 1, sigma))
	// Output:
	// stay: 0.5000
	// move: 0.1667
}

// ExampleAbsorbing_SampleTransition demonstrates the terminal invariant: the
// absorbing token never transitions away, regardless of the accumulated rate.
func ExampleAbsorbing_SampleTransition() {
	g, _ := graph.NewAbsorbing(4)
	mask, _ := g.AbsorbingToken()
	rng := rand.New(rand.NewSource(1))

	fmt.Println(g.SampleTransition(mask, 100, rng) == mask)
	// Output:
	// true
}
