// Package savings configures the buffer-stock consumption-savings model:
// it turns economically meaningful parameters into the grids and matrices
// the value-function solver consumes.
//
// The model: an agent with CRRA preferences chooses next-period assets x'
// from an asset grid, consuming cash-in-hand (1+r)·x + w·z minus x', where
// log income z follows a discretized AR(1) process. Package savings owns
// the translation step only; the Bellman machinery lives in package vfi.
//
// Construction is a single call:
//
//	p, err := savings.New(savings.DefaultOptions())
//
// New validates every parameter (one sentinel error per violation), calls
// the configured discretizer for the income chain, and returns an
// immutable *Problem: {β, γ, R, w, asset grid, income grid, transition
// matrix}. A Problem is safe to share across goroutines because nothing in
// this module ever writes to it after New returns.
//
// The discretizer is a plain function field, so swapping methods is one
// line:
//
//	opts := savings.DefaultOptions()
//	opts.Discretize = func(n int, d, s, r float64) (markov.Chain, error) {
//		return markov.Tauchen(n, d, s, r, markov.DefaultTauchenWidth)
//	}
package savings
