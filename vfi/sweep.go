package vfi

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/lucidquant/optsaving/savings"
)

// Sweep applies the Bellman operator once: it reads the value table v and
// overwrites out with T(v).
//
// Description:
//
//	For every pair (asset index i, income index j) the operator computes
//	cash-in-hand y = R·x_i + w·z_j, restricts next-period assets to grid
//	points x'_k ≤ y (the budget constraint), and writes
//
//	    out[i,j] = max over feasible k of  u(y − x'_k) + β·EV[k,j]
//
//	where EV[k,j] = Σ_j' v[k,j']·P[j,j'] is the expected continuation
//	value. EV = v·Pᵀ is computed once per sweep as a dense multiply, so
//	the inner loop is a pure maximization.
//
// Steps:
//  1. Normalize/validate options; validate the problem and both tables
//     (shapes, nil pointers, aliasing).
//  2. EV = v·Pᵀ.
//  3. Fan the M income columns out across opts.Workers goroutines; each
//     column walks its asset rows and maximizes over the feasible set.
//  4. Join. out is fully overwritten; v is never written.
//
// The operator is a pure function of (v, problem): same inputs, same
// output, regardless of worker count or scheduling.
//
// Edge policy: when cash-in-hand falls below the grid minimum the feasible
// set is empty and −Inf is written. Under the validated parameter space
// (x, z, w ≥ 0, R > 0) this cannot occur; the policy exists so a
// hand-built problem fails loudly instead of producing NaN.
//
// Complexity:
//
//	Time   = O(N·M·(M+N)) per sweep (dense multiply + maximization)
//	Memory = O(N·M) scratch for EV
//
// Errors: ErrOptionViolation, ErrNilProblem, ErrMalformedProblem,
// ErrNilTable, ErrShapeMismatch, ErrAliasedTables.
func Sweep(p *savings.Problem, v, out *mat.Dense, opts Options) error {
	// 1) Validate everything up front; no partial writes on error.
	opts.normalize()
	if err := opts.validate(); err != nil {
		return err
	}
	if err := checkTables(p, v, out); err != nil {
		return err
	}

	// 2-4) Run the sweep with a fresh EV scratch table.
	sweepInto(p, v, out, mat.NewDense(p.NumAssets(), p.NumStates(), nil), opts.Workers)

	return nil
}

// sweepInto is the engine behind Sweep and Solve. It assumes a validated
// problem, distinct correctly-sized tables and an N×M ev scratch.
func sweepInto(p *savings.Problem, v, out, ev *mat.Dense, workers int) {
	// EV[k,j]: continuation value of entering next period with assets k
	// when the current income state is j.
	ev.Mul(v, p.Transition.T())

	m := p.NumStates()
	if workers > m {
		workers = m
	}

	// Serial fast path: no goroutines when one worker suffices.
	if workers <= 1 {
		buf := make([]float64, p.NumAssets())
		for j := 0; j < m; j++ {
			sweepColumn(p, ev, out, buf, j)
		}

		return
	}

	// Column fan-out: each worker owns whole columns, so no two goroutines
	// ever write the same cell and the single join below is the only
	// synchronization.
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			buf := make([]float64, p.NumAssets())
			for j := range jobs {
				sweepColumn(p, ev, out, buf, j)
			}
		}()
	}
	for j := 0; j < m; j++ {
		jobs <- j
	}
	close(jobs)
	wg.Wait()
}

// sweepColumn maximizes one income column into out. buf is the caller's
// scratch for the EV column, reused across columns by the same worker.
func sweepColumn(p *savings.Problem, ev, out *mat.Dense, buf []float64, j int) {
	mat.Col(buf, j, ev)
	earnings := p.Wage * p.IncomeGrid[j]

	for i, x := range p.AssetGrid {
		y := p.R*x + earnings
		hi := feasibleCount(p.AssetGrid, y)
		best := math.Inf(-1)
		for k := 0; k < hi; k++ {
			if cand := p.Utility(y-p.AssetGrid[k]) + p.Beta*buf[k]; cand > best {
				best = cand
			}
		}
		out.Set(i, j, best)
	}
}

// feasibleCount returns how many grid points satisfy the budget constraint
// x' ≤ y. The grid is sorted, so this is a binary search for the first
// point strictly above y.
func feasibleCount(grid []float64, y float64) int {
	return sort.Search(len(grid), func(k int) bool { return grid[k] > y })
}

// checkProblem validates the bundle a sweep is about to share with its
// workers.
func checkProblem(p *savings.Problem) error {
	if p == nil {
		return ErrNilProblem
	}
	n, m := p.NumAssets(), p.NumStates()
	if n < 2 || m < 1 || p.Transition == nil {
		return ErrMalformedProblem
	}
	if tr, tc := p.Transition.Dims(); tr != m || tc != m {
		return fmt.Errorf("%w: %d income states vs %d×%d transition", ErrMalformedProblem, m, tr, tc)
	}

	return nil
}

// checkTables validates the problem plus both value tables for one sweep.
func checkTables(p *savings.Problem, v, out *mat.Dense) error {
	if err := checkProblem(p); err != nil {
		return err
	}
	if v == nil || out == nil {
		return ErrNilTable
	}
	if v == out {
		return ErrAliasedTables
	}

	n, m := p.NumAssets(), p.NumStates()
	if r, c := v.Dims(); r != n || c != m {
		return fmt.Errorf("%w: input table %d×%d, want %d×%d", ErrShapeMismatch, r, c, n, m)
	}
	if r, c := out.Dims(); r != n || c != m {
		return fmt.Errorf("%w: output table %d×%d, want %d×%d", ErrShapeMismatch, r, c, n, m)
	}

	return nil
}
