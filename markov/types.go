package markov

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for chain construction and validation.
var (
	// ErrStateCount is returned when a discretizer is asked for fewer than one state.
	ErrStateCount = errors.New("markov: number of states must be at least 1")

	// ErrNegativeVolatility is returned when the shock volatility is negative.
	ErrNegativeVolatility = errors.New("markov: volatility must be non-negative")

	// ErrNonStationary is returned when |persistence| ≥ 1 and the unconditional
	// moments of the process do not exist.
	ErrNonStationary = errors.New("markov: persistence must lie strictly inside (-1, 1)")

	// ErrBandWidth is returned by Tauchen when the state-span width is not positive.
	ErrBandWidth = errors.New("markov: width must be positive")

	// ErrNotStochastic is returned by Validate when the transition matrix has an
	// entry outside [0,1] or a row that does not sum to 1.
	ErrNotStochastic = errors.New("markov: transition matrix is not row-stochastic")

	// ErrStateMismatch is returned by Validate when the transition matrix shape
	// does not match the state vector, or the states are out of order.
	ErrStateMismatch = errors.New("markov: transition matrix does not match state values")

	// ErrStationaryDiverged is returned by StationaryDistribution when power
	// iteration fails to settle (possible for hand-built periodic chains).
	ErrStationaryDiverged = errors.New("markov: stationary distribution iteration did not converge")
)

const (
	// DefaultEpsilon is the tolerance used by Validate when checking row sums
	// and entry bounds.
	DefaultEpsilon = 1e-9

	// DefaultTauchenWidth is the conventional half-width of the Tauchen state
	// span, in unconditional standard deviations.
	DefaultTauchenWidth = 3.0

	// stationaryTol and stationaryMaxIter bound the power iteration inside
	// StationaryDistribution.
	stationaryTol     = 1e-12
	stationaryMaxIter = 10000
)

// Chain is a finite-state Markov chain: state values plus the transition
// matrix between them. Both discretizers in this package return a validated
// Chain; treat it as read-only once built.
type Chain struct {
	// P is the n×n row-stochastic transition matrix;
	// P.At(j, k) is the probability of moving from state j to state k.
	P *mat.Dense

	// States holds the n state values in non-decreasing order.
	States []float64
}

// NumStates returns the number of states in the chain.
func (c Chain) NumStates() int { return len(c.States) }
