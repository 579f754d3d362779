package savings

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Problem is the immutable parameter bundle consumed by the Bellman
// operator: preferences, prices, both grids and the income transition
// matrix. Treat every field as read-only once built — sweep workers share
// a single Problem without locking.
type Problem struct {
	// Beta is the discount factor β.
	Beta float64

	// Gamma is the risk-aversion coefficient γ.
	Gamma float64

	// R is the gross return on assets, 1+r.
	R float64

	// Wage scales the income states.
	Wage float64

	// AssetGrid holds N strictly increasing asset levels, evenly spaced
	// from 0 to the configured maximum inclusive.
	AssetGrid []float64

	// IncomeGrid holds M positive income levels in non-decreasing order,
	// the exponentials of the discretized log income states.
	IncomeGrid []float64

	// Transition is the M×M row-stochastic income transition matrix;
	// Transition.At(j, k) is P(z'=k | z=j).
	Transition *mat.Dense
}

// New validates opts, discretizes the income process and assembles the
// parameter bundle.
//
// Steps:
//  1. Validate every economic and grid parameter — fail fast, one
//     sentinel per condition, before any work happens.
//  2. Ask the discretizer for an IncomeStates-state chain of the log
//     income process. Discretizer failures are wrapped with context and
//     stay matchable via errors.Is; the returned chain is re-validated so
//     a custom discretizer cannot smuggle in a malformed matrix.
//  3. Exponentiate the chain states into income levels and lay out
//     AssetPoints evenly spaced asset levels on [0, AssetMax].
//
// The returned Problem is never mutated by this package.
func New(opts Options) (*Problem, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	chain, err := opts.Discretize(opts.IncomeStates, opts.Drift, opts.Volatility, opts.Persistence)
	if err != nil {
		return nil, fmt.Errorf("savings: discretize income process: %w", err)
	}
	if err = chain.Validate(); err != nil {
		return nil, fmt.Errorf("savings: discretizer returned a malformed chain: %w", err)
	}
	if chain.NumStates() != opts.IncomeStates {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrChainSize, chain.NumStates(), opts.IncomeStates)
	}

	income := make([]float64, len(chain.States))
	for i, z := range chain.States {
		income[i] = math.Exp(z)
	}

	return &Problem{
		Beta:       opts.Beta,
		Gamma:      opts.Gamma,
		R:          1 + opts.Rate,
		Wage:       opts.Wage,
		AssetGrid:  floats.Span(make([]float64, opts.AssetPoints), 0, opts.AssetMax),
		IncomeGrid: income,
		Transition: chain.P,
	}, nil
}

// validate checks every configuration constraint in declaration order and
// reports the first violation.
func (o Options) validate() error {
	switch {
	case o.Beta <= 0 || o.Beta >= 1:
		return ErrDiscountFactor
	case o.Gamma <= 0:
		return ErrRiskAversion
	case o.Gamma == 1:
		return ErrLogUtility
	case 1+o.Rate <= 0:
		return ErrGrossReturn
	case o.Wage < 0:
		return ErrNegativeWage
	case o.IncomeStates < 1:
		return ErrIncomeStates
	case o.AssetPoints < 2:
		return ErrAssetPoints
	case o.AssetMax <= 0:
		return ErrAssetMax
	case o.Discretize == nil:
		return ErrNilDiscretizer
	}

	return nil
}

// Utility is the CRRA felicity function u(c) = (c+ε)^(1−γ)/(1−γ) with a
// tiny ε shift so that zero consumption stays finite. Defined for c ≥ 0
// and γ ≠ 1; γ = 1 is rejected at construction.
func (p *Problem) Utility(c float64) float64 {
	return math.Pow(c+utilityShift, 1-p.Gamma) / (1 - p.Gamma)
}

// NumAssets returns N, the asset grid size.
func (p *Problem) NumAssets() int { return len(p.AssetGrid) }

// NumStates returns M, the income grid size.
func (p *Problem) NumStates() int { return len(p.IncomeGrid) }
