// Package jumpdiff is a continuous-time discrete-state diffusion engine:
// it corrupts token sequences through a Markov jump process, trains a
// score-ratio model against closed-form posterior targets, and reverses
// the process to generate sequences from pure noise.
//
// 🚀 What is jumpdiff?
//
//	A small, deterministic library that brings together:
//		• Transition graphs: Uniform and Absorbing jump structures with
//		  closed-form marginals — no dense matrix exponentials, ever
//		• Noise schedules: Geometric and LogLinear time reparameterizations
//		• Forward process: per-position perturbation + exact score-ratio targets
//		• Score-entropy loss: the Bregman-divergence training objective
//		• Reverse sampler: Euler and Analytic predictors, optional
//		  corrector passes and final denoising
//
// ✨ Why choose jumpdiff?
//
//   - Closed forms only – every kernel is O(1) per token pair, so vocabulary
//     size never shows up as a dense V×V cost
//   - Reproducible – all randomness flows through explicit *rand.Rand values;
//     a fixed seed yields bit-identical corruption and generation
//   - Injected score model – the neural network is a plain function value,
//     so oracles and toy models plug in for testing
//   - Parallel where it matters – shared-nothing fan-out across batch
//     elements, sequential only across reverse time steps
//
// Everything is organized under six subpackages:
//
//	graph/    — transition-rate structures and their closed-form kernels
//	schedule/ — diffusion-time → accumulated-rate mappings
//	forward/  — forward corruption and regression targets
//	score/    — the score-function capability and test oracles
//	loss/     — the score-entropy objective
//	sampler/  — reverse-time generation
//
// A typical round trip:
//
//	g, _ := graph.NewAbsorbing(vocab)
//	sch, _ := schedule.NewLogLinear(1e-3)
//	proc, _ := forward.New(g, sch, nil)
//	... train a model against loss.New(proc, model, nil) ...
//	smp, _ := sampler.New(g, sch, model, nil)
//	seq, _ := smp.Sample(ctx, length, rng)
package jumpdiff
