// Package vfi solves the buffer-stock savings model by value-function
// iteration.
//
// 🚀 What is value-function iteration?
//
//	The Bellman operator T maps a value table V to
//
//	    (TV)[i,j] = max over x' ≤ y of  u(y − x') + β·E[ V[x', z'] | z_j ]
//
//	with cash-in-hand y = R·x_i + w·z_j. T is a β-contraction in the sup
//	norm, so iterating V ← TV from any starting table converges to the
//	model's unique value function. This package applies T (Sweep), drives
//	the iteration (Solve) and reads off the implied savings rule
//	(GreedyPolicy).
//
// ✨ Key features:
//   - one dense multiply per sweep turns the expectation into a lookup
//   - income columns fan out across a worker pool, one join per sweep
//   - non-convergence is a reported status, never an error
//   - OnIteration hook and optional Verbose progress lines
//
// ⚙️ Usage:
//
//	p, _ := savings.New(savings.DefaultOptions())
//	res, err := vfi.Solve(p, vfi.DefaultOptions())
//	if err != nil { ... }
//	if !res.Converged {
//		// raise MaxIter or loosen Tolerance and rerun
//	}
//	policy, _ := vfi.GreedyPolicy(p, res.Value)
//
// Performance:
//
//	Time:   O(N·M·(M+N)) per sweep; sweeps are strictly sequential
//	Memory: O(N·M) — three reused tables, no per-iteration allocation
//
// Errors: ErrNilProblem, ErrMalformedProblem, ErrNilTable,
// ErrShapeMismatch, ErrAliasedTables, ErrOptionViolation.
package vfi
