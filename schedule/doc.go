// Package schedule maps diffusion time to accumulated transition rate.
//
// A Schedule is the time reparameterization of the jump process: it turns
// t ∈ [0,1] (0 = clean data, 1 = fully corrupted) into the accumulated rate
// σ(t) that the graph kernels are expressed in, together with the derivative
// dσ/dt that weights the training objective. The contract is σ monotone
// increasing, σ(0) ≈ 0 and dσ/dt > 0 on (0,1].
//
// Two schedules are supported, each paired with the graph family whose
// closed forms it was designed for:
//
//   - Geometric: σ(t) = σ_min^(1−t)·σ_max^t, a log-linear interpolation of
//     the rate magnitude. Pairs with the Uniform structure.
//
//   - LogLinear: σ(t) = −log(1−(1−ε)t), chosen so that the probability of
//     remaining un-absorbed, e^(−σ(t)), decays linearly in t. Pairs with the
//     Absorbing structure, whose loss closed form relies on the linear
//     masked fraction.
package schedule
