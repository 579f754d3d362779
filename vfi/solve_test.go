package vfi_test

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/lucidquant/optsaving/savings"
	"github.com/lucidquant/optsaving/vfi"
)

// assertMonotoneInAssets checks that, per income column, value never falls
// as assets rise: more initial wealth cannot hurt the agent.
func assertMonotoneInAssets(t *testing.T, table *mat.Dense) {
	t.Helper()
	r, c := table.Dims()
	for j := 0; j < c; j++ {
		for i := 1; i < r; i++ {
			assert.LessOrEqual(t, table.At(i-1, j), table.At(i, j)+1e-9,
				"value drops from asset %d to %d in column %d", i-1, i, j)
		}
	}
}

// TestSolve_ConvergesSmallModel solves the coarse model and checks the
// full outcome: convergence inside the cap, a tight final gap, a finite
// table and asset monotonicity.
func TestSolve_ConvergesSmallModel(t *testing.T) {
	p := smallProblem(t)

	res, err := vfi.Solve(p, vfi.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Less(t, res.Iterations, vfi.DefaultMaxIter)
	assert.LessOrEqual(t, res.Gap, vfi.DefaultTolerance)
	require.NotNil(t, res.Value)
	requireAllFinite(t, res.Value)
	assertMonotoneInAssets(t, res.Value)
}

// TestSolve_IdempotentAtFixedPoint applies one extra sweep to a converged
// table; the contraction property keeps the move inside tolerance.
func TestSolve_IdempotentAtFixedPoint(t *testing.T) {
	p := smallProblem(t)

	res, err := vfi.Solve(p, vfi.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)

	n, m := p.NumAssets(), p.NumStates()
	next := mat.NewDense(n, m, nil)
	require.NoError(t, vfi.Sweep(p, res.Value, next, vfi.DefaultOptions()))

	move := floats.Distance(res.Value.RawMatrix().Data, next.RawMatrix().Data, math.Inf(1))
	assert.LessOrEqual(t, move, vfi.DefaultTolerance)
}

// TestSolve_GapSequenceContracts records the gap after every sweep via the
// hook and checks it never rises beyond a short warmup.
func TestSolve_GapSequenceContracts(t *testing.T) {
	p := smallProblem(t)

	var gaps []float64
	opts := vfi.DefaultOptions()
	opts.OnIteration = func(_ int, gap float64) { gaps = append(gaps, gap) }

	res, err := vfi.Solve(p, opts)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Equal(t, res.Iterations, len(gaps))

	const warmup = 5
	for k := warmup; k+1 < len(gaps); k++ {
		assert.LessOrEqual(t, gaps[k+1], gaps[k]+1e-12, "gap rose at iteration %d", k+1)
	}
	assert.Equal(t, res.Gap, gaps[len(gaps)-1])
}

// TestSolve_ExhaustedAfterOneIteration pins the iteration cap at 1: the
// solver must stop unconverged, without an error, and still hand back the
// single sweep's output.
func TestSolve_ExhaustedAfterOneIteration(t *testing.T) {
	p := smallProblem(t)

	opts := vfi.DefaultOptions()
	opts.MaxIter = 1
	res, err := vfi.Solve(p, opts)
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Greater(t, res.Gap, vfi.DefaultTolerance)
	require.NotNil(t, res.Value)
	requireAllFinite(t, res.Value)
}

// TestSolve_NearUnitRiskAversion runs γ just above the excluded log case.
// Utility magnitudes explode toward ±10⁴ but every entry must stay finite.
func TestSolve_NearUnitRiskAversion(t *testing.T) {
	sopts := smallOptions()
	sopts.Gamma = 1.0001
	p, err := savings.New(sopts)
	require.NoError(t, err)

	opts := vfi.DefaultOptions()
	opts.Tolerance = 1e-3
	res, err := vfi.Solve(p, opts)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	requireAllFinite(t, res.Value)
	assertMonotoneInAssets(t, res.Value)
}

// TestSolve_SingleIncomeState drives the degenerate M=1 model through the
// whole stack: a 1×1 transition matrix and a single income column.
func TestSolve_SingleIncomeState(t *testing.T) {
	sopts := smallOptions()
	sopts.IncomeStates = 1
	p, err := savings.New(sopts)
	require.NoError(t, err)

	res, err := vfi.Solve(p, vfi.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Converged)
	requireAllFinite(t, res.Value)
	assertMonotoneInAssets(t, res.Value)
}

// TestSolve_HookSeesEveryIteration counts hook calls against the reported
// iteration number.
func TestSolve_HookSeesEveryIteration(t *testing.T) {
	p := smallProblem(t)

	calls := 0
	lastIter := 0
	opts := vfi.DefaultOptions()
	opts.OnIteration = func(iter int, _ float64) {
		calls++
		lastIter = iter
	}

	res, err := vfi.Solve(p, opts)
	require.NoError(t, err)

	assert.Equal(t, res.Iterations, calls)
	assert.Equal(t, res.Iterations, lastIter)
}

// TestSolve_OptionValidation checks the option guards and the nil problem.
func TestSolve_OptionValidation(t *testing.T) {
	p := smallProblem(t)

	for name, mutate := range map[string]func(*vfi.Options){
		"NegativeTolerance": func(o *vfi.Options) { o.Tolerance = -1e-4 },
		"NegativeMaxIter":   func(o *vfi.Options) { o.MaxIter = -5 },
		"NegativeWorkers":   func(o *vfi.Options) { o.Workers = -1 },
		"NegativeLogEvery":  func(o *vfi.Options) { o.LogEvery = -10 },
	} {
		t.Run(name, func(t *testing.T) {
			opts := vfi.DefaultOptions()
			mutate(&opts)
			_, err := vfi.Solve(p, opts)
			assert.ErrorIs(t, err, vfi.ErrOptionViolation)
		})
	}

	t.Run("NilProblem", func(t *testing.T) {
		_, err := vfi.Solve(nil, vfi.DefaultOptions())
		assert.ErrorIs(t, err, vfi.ErrNilProblem)
	})
}

// TestSolve_ZeroOptionsGetDefaults passes the zero Options value and
// expects the normalized defaults to carry the solve.
func TestSolve_ZeroOptionsGetDefaults(t *testing.T) {
	p := smallProblem(t)

	res, err := vfi.Solve(p, vfi.Options{})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Gap, vfi.DefaultTolerance)
}

// TestSolve_ConcurrentSolversShareProblem runs several solvers against one
// Problem at once; the bundle is read-only, so all must agree bit for bit.
func TestSolve_ConcurrentSolversShareProblem(t *testing.T) {
	p := smallProblem(t)

	const solvers = 4
	results := make([]*mat.Dense, solvers)
	var wg sync.WaitGroup
	wg.Add(solvers)
	for s := 0; s < solvers; s++ {
		go func(slot int) {
			defer wg.Done()
			res, err := vfi.Solve(p, vfi.DefaultOptions())
			if err == nil && res.Converged {
				results[slot] = res.Value
			}
		}(s)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	want := results[0].RawMatrix().Data
	for s := 1; s < solvers; s++ {
		require.NotNil(t, results[s], "solver %d failed", s)
		if diff := cmp.Diff(want, results[s].RawMatrix().Data); diff != "" {
			t.Errorf("solver %d diverged:\n%s", s, diff)
		}
	}
}

// TestSolve_DefaultModel runs the full-size standard calibration: 200
// asset points, 25 income states, tolerance 1e-4. Skipped under -short.
func TestSolve_DefaultModel(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size model run")
	}

	p, err := savings.New(savings.DefaultOptions())
	require.NoError(t, err)

	res, err := vfi.Solve(p, vfi.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Less(t, res.Iterations, 500, "expected convergence well under the cap")
	assert.LessOrEqual(t, res.Gap, vfi.DefaultTolerance)
	requireAllFinite(t, res.Value)
	assertMonotoneInAssets(t, res.Value)
}
