package markov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Validate checks the structural invariants of the chain: a square
// transition matrix matching the state count, every entry inside [0,1] and
// every row summing to 1 (both within DefaultEpsilon), and state values in
// non-decreasing order.
//
// Returns ErrStateMismatch or ErrNotStochastic describing the first
// violation found, nil when the chain is well formed.
func (c Chain) Validate() error {
	n := len(c.States)
	if c.P == nil || n == 0 {
		return fmt.Errorf("%w: empty chain", ErrStateMismatch)
	}
	if r, cols := c.P.Dims(); r != n || cols != n {
		return fmt.Errorf("%w: %d states vs %d×%d matrix", ErrStateMismatch, n, r, cols)
	}

	for j := 0; j < n; j++ {
		row := c.P.RawRowView(j)
		for k, v := range row {
			if math.IsNaN(v) || v < -DefaultEpsilon || v > 1+DefaultEpsilon {
				return fmt.Errorf("%w: entry (%d,%d) = %g outside [0,1]", ErrNotStochastic, j, k, v)
			}
		}
		if s := floats.Sum(row); math.Abs(s-1) > DefaultEpsilon {
			return fmt.Errorf("%w: row %d sums to %g", ErrNotStochastic, j, s)
		}
	}

	for i := 1; i < n; i++ {
		if c.States[i] < c.States[i-1] {
			return fmt.Errorf("%w: state values out of order at index %d", ErrStateMismatch, i)
		}
	}

	return nil
}

// StationaryDistribution returns the left fixed point π of the transition
// matrix (π = πP, Σπ = 1) computed by power iteration from the uniform
// distribution.
//
// Every chain built by Rouwenhorst or Tauchen converges here. A hand-built
// periodic chain may not; in that case ErrStationaryDiverged is returned
// once the internal iteration cap is exhausted.
func (c Chain) StationaryDistribution() ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := len(c.States)
	cur := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		cur.SetVec(i, 1/float64(n))
	}
	next := mat.NewVecDense(n, nil)

	for iter := 0; iter < stationaryMaxIter; iter++ {
		// π' = Pᵀπ, renormalized against floating-point drift.
		next.MulVec(c.P.T(), cur)
		floats.Scale(1/floats.Sum(next.RawVector().Data), next.RawVector().Data)

		if floats.Distance(next.RawVector().Data, cur.RawVector().Data, 1) <= stationaryTol {
			out := make([]float64, n)
			copy(out, next.RawVector().Data)

			return out, nil
		}
		cur, next = next, cur
	}

	return nil, ErrStationaryDiverged
}
