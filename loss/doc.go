// Package loss implements the score-entropy training objective.
//
// For a noised position with current token x and per-alternative targets
// tgt(y), the contribution of alternative y ≠ x is
//
//	w(t) · [ s(y) − tgt(y)·log s(y) + tgt(y)·(log tgt(y) − 1) ],
//
// with the convention 0·log 0 = 0 and the weight w(t) = dσ/dt, the Jacobian
// of the time reparameterization that makes the Monte-Carlo estimate over
// sampled t unbiased for the continuous-time integral.
//
// The term is a generalized Bregman divergence ("score entropy"):
// nonnegative, zero exactly at s = tgt, and finite even where tgt(y) = 0 —
// which is what makes it usable with the absorbing structure, where almost
// every target vanishes.
//
// Aggregation exploits the two-value target representation: one pass over
// the score row accumulates the sums, and the target side enters only
// through the shared Base ratio, the single Special alternative and a
// counting term — no V-sized target vector ever exists.
package loss
