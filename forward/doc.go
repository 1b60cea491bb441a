// Package forward composes a transition graph with a noise schedule into the
// forward corruption process and its exact regression targets.
//
// Corruption acts token-wise: every position of a clean sequence x0 is
// perturbed independently through the graph kernel at accumulated rate σ(t).
// Per-position independence is a deliberate simplifying assumption — the
// jump process never couples positions.
//
// Targets returns the true posterior ratios p_t(y|x0)/p_t(x_t|x0) the score
// model regresses against. They are produced in a compact two-value form per
// position (one broadcast ratio plus at most one distinguished alternative),
// which is what both supported graph families admit and what keeps the loss
// free of V-sized target materialization.
package forward
