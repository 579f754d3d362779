package vfi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lucidquant/optsaving/savings"
)

// Solve drives the Bellman operator to a fixed point by value-function
// iteration.
//
// Steps:
//  1. Normalize and validate options; validate the problem.
//  2. Allocate the value tables once: the input starts at all ones, the
//     output and the EV scratch are reused every iteration.
//  3. Iterate: sweep input → output, measure the sup-norm gap between
//     them, then swap the two buffers. The swap is the no-copy
//     equivalent of copying output into input — the next sweep reads
//     the freshly written table and the buffers never alias inside a
//     sweep.
//  4. Stop when the gap falls within tolerance (converged) or after
//     MaxIter sweeps (exhausted). Exhaustion is NOT an error: the caller
//     receives the latest table with Converged=false and decides whether
//     to rerun with a higher cap or looser tolerance.
//
// Progress: with Verbose set, a line prints every LogEvery iterations and
// a final report on exit. OnIteration, if non-nil, fires after every sweep.
//
// Complexity:
//
//	Time   = O(K·N·M·(M+N)) for K iterations
//	Memory = O(N·M), all tables allocated up front
//
// Errors: ErrOptionViolation, ErrNilProblem, ErrMalformedProblem. Never
// errors on non-convergence.
func Solve(p *savings.Problem, opts Options) (Result, error) {
	// 1) Normalize options and validate inputs.
	opts.normalize()
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if err := checkProblem(p); err != nil {
		return Result{}, err
	}

	// 2) Allocate once: all-ones initial guess, scratch output, EV table.
	n, m := p.NumAssets(), p.NumStates()
	ones := make([]float64, n*m)
	for i := range ones {
		ones[i] = 1
	}
	v := mat.NewDense(n, m, ones)
	vNext := mat.NewDense(n, m, nil)
	ev := mat.NewDense(n, m, nil)

	// 3) Iterate to the fixed point.
	gap := math.Inf(1)
	iter := 0
	for iter < opts.MaxIter && gap > opts.Tolerance {
		sweepInto(p, v, vNext, ev, opts.Workers)

		// Both tables are NewDense-allocated, so their raw data is
		// contiguous and element-aligned.
		gap = floats.Distance(v.RawMatrix().Data, vNext.RawMatrix().Data, math.Inf(1))
		iter++

		if opts.Verbose && iter%opts.LogEvery == 0 {
			fmt.Printf("vfi: iteration %d, gap %.6g\n", iter, gap)
		}
		if opts.OnIteration != nil {
			opts.OnIteration(iter, gap)
		}

		v, vNext = vNext, v
	}

	// 4) Report. After the swap, v holds the latest sweep's output.
	converged := gap <= opts.Tolerance
	if opts.Verbose {
		if converged {
			fmt.Printf("vfi: converged in %d iterations, gap %.6g\n", iter, gap)
		} else {
			fmt.Printf("vfi: iteration cap %d reached, gap %.6g\n", opts.MaxIter, gap)
		}
	}

	return Result{Value: v, Iterations: iter, Gap: gap, Converged: converged}, nil
}
