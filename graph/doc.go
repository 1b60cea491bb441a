// Package graph defines the transition-rate structures of the diffusion
// process and their closed-form kernels.
//
// A Graph describes a continuous-time Markov jump process over a token
// vocabulary of size V through a conceptual generator matrix Q: off-diagonal
// entries are nonnegative instantaneous rates, each row sums to zero. The
// marginal kernel P(σ) = exp(σQ) is never materialized — every variant
// supplies O(1) closed forms in the accumulated rate σ instead, which is what
// keeps large vocabularies tractable.
//
// Two structured families are supported:
//
//   - Uniform: every ordered pair of distinct tokens carries the same rate
//     (Q = J/V − I). The kernel is a "stay vs. uniform spread" mixture:
//     P(i→j≠i; σ) = (1−e^(−σ))/V.
//
//   - Absorbing: every token decays into a single terminal token (the last
//     index) and never leaves it:
//     P(i→i; σ) = e^(−σ), P(i→absorb; σ) = 1−e^(−σ).
//
// New families should implement the same Graph contract rather than extend
// the existing ones with conditionals; only structures admitting sparse or
// symmetric closed-form posteriors belong here.
package graph
