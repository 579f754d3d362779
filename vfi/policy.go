package vfi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lucidquant/optsaving/savings"
)

// GreedyPolicy extracts the savings rule implied by a value table: for
// every (asset index i, income index j) it returns the index of the
// next-period asset choice attaining the Bellman maximum against v.
// Applied to a converged table this is the model's optimal policy.
//
// Ties keep the lowest index, matching the running maximum in Sweep. An
// empty feasible set yields -1 — unreachable for problems built by
// savings.New (see the Sweep edge policy).
//
// The result is indexed policy[i][j].
//
// Errors: ErrNilProblem, ErrMalformedProblem, ErrNilTable, ErrShapeMismatch.
func GreedyPolicy(p *savings.Problem, v *mat.Dense) ([][]int, error) {
	if err := checkProblem(p); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNilTable
	}
	n, m := p.NumAssets(), p.NumStates()
	if r, c := v.Dims(); r != n || c != m {
		return nil, fmt.Errorf("%w: table %d×%d, want %d×%d", ErrShapeMismatch, r, c, n, m)
	}

	ev := mat.NewDense(n, m, nil)
	ev.Mul(v, p.Transition.T())

	policy := make([][]int, n)
	for i := range policy {
		policy[i] = make([]int, m)
	}

	buf := make([]float64, n)
	for j := 0; j < m; j++ {
		mat.Col(buf, j, ev)
		earnings := p.Wage * p.IncomeGrid[j]
		for i, x := range p.AssetGrid {
			y := p.R*x + earnings
			hi := feasibleCount(p.AssetGrid, y)
			best, bestK := math.Inf(-1), -1
			for k := 0; k < hi; k++ {
				if cand := p.Utility(y-p.AssetGrid[k]) + p.Beta*buf[k]; cand > best {
					best, bestK = cand, k
				}
			}
			policy[i][j] = bestK
		}
	}

	return policy, nil
}
