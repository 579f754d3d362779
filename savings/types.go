package savings

import (
	"errors"

	"github.com/lucidquant/optsaving/markov"
)

// Discretizer turns AR(1) parameters into a finite income chain.
// markov.Rouwenhorst is the default; markov.Tauchen (wrapped to pin its
// width) or any custom chain source with the same contract may be
// substituted via Options.Discretize.
type Discretizer func(numStates int, drift, volatility, persistence float64) (markov.Chain, error)

// Sentinel errors for model configuration. Each invalid parameter has its
// own sentinel so callers can match the exact violation with errors.Is.
var (
	// ErrDiscountFactor is returned when β lies outside (0, 1).
	ErrDiscountFactor = errors.New("savings: discount factor must lie strictly inside (0, 1)")

	// ErrRiskAversion is returned when γ is not positive.
	ErrRiskAversion = errors.New("savings: risk aversion must be positive")

	// ErrLogUtility is returned when γ = 1: that case needs the log utility
	// form, which this model does not implement.
	ErrLogUtility = errors.New("savings: risk aversion of exactly 1 requires log utility, not implemented")

	// ErrGrossReturn is returned when 1+r is not positive.
	ErrGrossReturn = errors.New("savings: interest rate must keep the gross return 1+r positive")

	// ErrNegativeWage is returned when the wage is negative.
	ErrNegativeWage = errors.New("savings: wage must be non-negative")

	// ErrIncomeStates is returned when the income grid size is below 1.
	ErrIncomeStates = errors.New("savings: income grid needs at least 1 state")

	// ErrAssetPoints is returned when the asset grid size is below 2.
	ErrAssetPoints = errors.New("savings: asset grid needs at least 2 points")

	// ErrAssetMax is returned when the asset grid upper bound is not positive.
	ErrAssetMax = errors.New("savings: asset grid maximum must be positive")

	// ErrNilDiscretizer is returned when Options.Discretize is nil.
	ErrNilDiscretizer = errors.New("savings: discretizer must not be nil")

	// ErrChainSize is returned when the discretizer hands back a chain with
	// the wrong number of states.
	ErrChainSize = errors.New("savings: discretizer returned the wrong number of states")
)

// Default calibration: the standard buffer-stock parameter set.
const (
	DefaultBeta         = 0.96 // discount factor β
	DefaultGamma        = 2.5  // risk aversion γ
	DefaultPersistence  = 0.9  // log income AR(1) persistence ρ
	DefaultDrift        = 0.0  // log income drift d
	DefaultVolatility   = 0.1  // log income shock volatility σ
	DefaultRate         = 0.05 // net interest rate r
	DefaultWage         = 1.0  // wage w
	DefaultIncomeStates = 25   // income grid size M
	DefaultAssetPoints  = 200  // asset grid size N
	DefaultAssetMax     = 10.0 // asset grid upper bound X

	// utilityShift keeps utility finite at exactly zero consumption.
	utilityShift = 1e-10
)

// Options collects the economic and grid parameters of the savings model.
// The zero value is not usable; start from DefaultOptions and override.
//
// Example:
//
//	opts := savings.DefaultOptions()
//	opts.Gamma = 3.0          // more risk averse
//	opts.AssetPoints = 400    // finer asset grid
//	p, err := savings.New(opts)
type Options struct {
	// Beta is the discount factor β, strictly between 0 and 1.
	Beta float64

	// Gamma is the coefficient of relative risk aversion γ (γ > 0, γ ≠ 1).
	Gamma float64

	// Persistence, Drift and Volatility parameterize the log income process
	// z' = Drift + Persistence·z + ε with ε ~ N(0, Volatility²).
	Persistence float64
	Drift       float64
	Volatility  float64

	// Rate is the net interest rate r; the gross return on assets is 1+r.
	Rate float64

	// Wage scales labor income: earnings in state z are Wage·exp(z).
	Wage float64

	// IncomeStates is the number of discretized income levels M.
	IncomeStates int

	// AssetPoints is the number of asset grid points N.
	AssetPoints int

	// AssetMax is the upper end X of the asset grid [0, X].
	AssetMax float64

	// Discretize produces the income chain. DefaultOptions sets it to
	// markov.Rouwenhorst.
	Discretize Discretizer
}

// DefaultOptions returns the standard buffer-stock calibration with the
// Rouwenhorst discretizer.
func DefaultOptions() Options {
	return Options{
		Beta:         DefaultBeta,
		Gamma:        DefaultGamma,
		Persistence:  DefaultPersistence,
		Drift:        DefaultDrift,
		Volatility:   DefaultVolatility,
		Rate:         DefaultRate,
		Wage:         DefaultWage,
		IncomeStates: DefaultIncomeStates,
		AssetPoints:  DefaultAssetPoints,
		AssetMax:     DefaultAssetMax,
		Discretize:   markov.Rouwenhorst,
	}
}
