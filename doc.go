// Package optsaving solves a buffer-stock optimal-savings model by
// value-function iteration: a Bellman operator swept over an
// assets × income-state grid until the value table stops moving.
//
// 🚀 What is optsaving?
//
//	A small numeric toolkit for the classic consumption-savings problem
//	with stochastic labor income:
//		• markov/  — AR(1) discretizers (Rouwenhorst, Tauchen), chain
//		  validation and stationary distributions
//		• savings/ — economic parameters → validated, immutable Problem
//		  (asset grid, income grid, transition matrix)
//		• vfi/     — the Bellman operator, the fixed-point solver and
//		  greedy policy extraction
//
// ✨ Why choose optsaving?
//
//   - Small API – one Problem in, one value table out
//   - Honest numerics – sentinel errors for bad inputs, documented
//     policies for every edge case, never a silent NaN
//   - Parallel sweeps – income columns fan out across workers with a
//     single join per iteration
//   - Extensible – swap in your own discretizer, observe progress with
//     an OnIteration hook
//
// A minimal run:
//
//	p, err := savings.New(savings.DefaultOptions())
//	if err != nil { ... }
//	res, err := vfi.Solve(p, vfi.DefaultOptions())
//	if err != nil { ... }
//	// res.Value is the N×M value table, res.Converged tells you whether
//	// the gap fell below tolerance.
//
// See examples/ for runnable demos.
//
//	go get github.com/lucidquant/optsaving
package optsaving
