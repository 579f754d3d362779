package markov

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Tauchen — finite-state approximation of a Gaussian AR(1) process.
//
// Description:
//
//	States are n evenly spaced points across ±width·σ_y around the
//	unconditional mean, where σ_y is the unconditional standard deviation.
//	Row j integrates the shock density between half-step boundaries using
//	the standard normal CDF, with the two outer states absorbing the tails.
//	Simpler than Rouwenhorst but loses accuracy at high persistence.
//
// width is the half-span of the state grid in unconditional standard
// deviations; DefaultTauchenWidth (3) is the conventional choice.
//
// Degenerate cases: n = 1 collapses to ([[1]], [mean]); volatility = 0
// makes the process deterministic, so every state maps to itself and the
// transition matrix is the identity.
//
// Complexity:
//
//	Time   = O(n²) CDF evaluations
//	Memory = O(n²)
//
// Errors:
//   - ErrStateCount         — n < 1.
//   - ErrNegativeVolatility — volatility < 0.
//   - ErrNonStationary      — |persistence| ≥ 1.
//   - ErrBandWidth          — width ≤ 0.
func Tauchen(n int, drift, volatility, persistence, width float64) (Chain, error) {
	if err := checkProcess(n, volatility, persistence); err != nil {
		return Chain{}, err
	}
	if width <= 0 {
		return Chain{}, ErrBandWidth
	}

	mean := drift / (1 - persistence)
	if n == 1 {
		return Chain{P: mat.NewDense(1, 1, []float64{1}), States: []float64{mean}}, nil
	}
	if volatility == 0 {
		p := mat.NewDense(n, n, nil)
		states := make([]float64, n)
		for i := range states {
			p.Set(i, i, 1)
			states[i] = mean
		}

		return Chain{P: p, States: states}, nil
	}

	// Work on the centered process ỹ = y − mean, which follows
	// ỹ' = persistence·ỹ + ε; shift the states back at the end.
	half := width * volatility / math.Sqrt(1-persistence*persistence)
	states := floats.Span(make([]float64, n), -half, half)
	step := states[1] - states[0]

	p := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		cond := persistence * states[j]
		p.Set(j, 0, distuv.UnitNormal.CDF((states[0]-cond+step/2)/volatility))
		for k := 1; k < n-1; k++ {
			hi := distuv.UnitNormal.CDF((states[k] - cond + step/2) / volatility)
			lo := distuv.UnitNormal.CDF((states[k] - cond - step/2) / volatility)
			p.Set(j, k, hi-lo)
		}
		p.Set(j, n-1, 1-distuv.UnitNormal.CDF((states[n-1]-cond-step/2)/volatility))
	}
	floats.AddConst(mean, states)

	c := Chain{P: p, States: states}
	if err := c.Validate(); err != nil {
		return Chain{}, err
	}

	return c, nil
}
