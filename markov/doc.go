// Package markov approximates Gaussian AR(1) processes by finite-state
// Markov chains.
//
// The process convention throughout is
//
//	y' = drift + persistence·y + ε,  ε ~ N(0, volatility²)
//
// with unconditional mean drift/(1−persistence) and unconditional standard
// deviation volatility/√(1−persistence²).
//
// Two discretizers are provided:
//
//   - Rouwenhorst — recursive construction that matches the unconditional
//     mean, variance and first-order autocorrelation of the AR(1) exactly;
//     the right default for persistent processes.
//   - Tauchen — normal-CDF integration over evenly spaced states; the
//     textbook baseline, handy for cross-checking.
//
// Both return a Chain (state values plus row-stochastic transition matrix)
// that has passed Validate before it is handed back. For long-run moment
// checks and distributional weighting, Chain.StationaryDistribution
// computes the chain's stationary distribution by power iteration.
//
// ⚙️ Usage:
//
//	c, err := markov.Rouwenhorst(25, 0, 0.1, 0.9)
//	if err != nil { ... }
//	pi, err := c.StationaryDistribution()
//
// Errors: ErrStateCount, ErrNegativeVolatility, ErrNonStationary and
// ErrBandWidth at construction; ErrNotStochastic and ErrStateMismatch from
// Validate; ErrStationaryDiverged from StationaryDistribution.
package markov
