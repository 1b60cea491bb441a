// Package sampler runs reverse-time generation: starting from the fully
// corrupted t=1 distribution it walks a K-step time grid down to t≈0,
// guided by a trained (or oracle) score function.
//
// Two predictors are available:
//
//   - Euler: a first-order discretization of the reverse jump rate
//     r(i→j) ≈ s(j)·Qᵀ(i,j), valid for every graph/schedule pairing.
//
//   - Analytic: the exact closed-form reverse kernel for a step of
//     accumulated rate dσ, defined for the Uniform+Geometric and
//     Absorbing+LogLinear pairings. It eliminates discretization error and
//     is preferred whenever available; requesting it for any other pairing
//     fails at construction — the engine never guesses a kernel.
//
// Optional extras: corrector passes (score-guided forward–backward
// resampling at fixed t, trading compute for bias) and a final denoising
// step that commits each position to its highest-probability token instead
// of sampling.
//
// A step is atomic; between steps the (x, step) pair is a valid checkpoint.
// The exported State plus Init/Step/Finalize primitives expose exactly that
// boundary, and Sample composes them under a context checked between steps.
// Low-probability draws are expected stochastic behavior, never an error.
package sampler
