package vfi

import (
	"errors"
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// IterationHook observes the solver after each completed sweep. iter is
// 1-based; gap is the sup-norm distance between the sweep's input and
// output tables. Hooks run on the solver goroutine, so keep them cheap.
type IterationHook func(iter int, gap float64)

// Sentinel errors for Sweep, Solve and GreedyPolicy.
var (
	// ErrNilProblem is returned when the problem pointer is nil.
	ErrNilProblem = errors.New("vfi: problem is nil")

	// ErrMalformedProblem is returned when a problem's grids and transition
	// matrix disagree (possible only for hand-built problems; savings.New
	// never produces one).
	ErrMalformedProblem = errors.New("vfi: problem grids and transition matrix disagree")

	// ErrNilTable is returned when an input or output table is nil.
	ErrNilTable = errors.New("vfi: value table is nil")

	// ErrShapeMismatch is returned when a value table is not N×M.
	ErrShapeMismatch = errors.New("vfi: value table shape does not match the problem grids")

	// ErrAliasedTables is returned when input and output are the same
	// matrix; a sweep must read a stable input while it writes.
	ErrAliasedTables = errors.New("vfi: input and output tables must not alias")

	// ErrOptionViolation is returned when a negative option value is supplied.
	ErrOptionViolation = errors.New("vfi: invalid option supplied")
)

// Default solver settings.
const (
	// DefaultTolerance is the sup-norm gap below which the solver declares
	// convergence.
	DefaultTolerance = 1e-4

	// DefaultMaxIter caps the number of Bellman sweeps.
	DefaultMaxIter = 1000

	// DefaultLogEvery is the progress-report interval used when Verbose.
	DefaultLogEvery = 25
)

// Options configures Sweep and Solve.
type Options struct {
	// Tolerance is the convergence threshold on the sup-norm gap between
	// successive tables. Zero means DefaultTolerance.
	Tolerance float64

	// MaxIter caps the number of sweeps. Zero means DefaultMaxIter.
	// Hitting the cap is not an error; the Result reports Converged=false.
	MaxIter int

	// Workers is the number of goroutines sharing a sweep's income
	// columns. Zero means runtime.GOMAXPROCS(0); one runs serially.
	Workers int

	// Verbose prints a progress line every LogEvery iterations plus a
	// final convergence report.
	Verbose bool

	// LogEvery is the Verbose reporting interval. Zero means DefaultLogEvery.
	LogEvery int

	// OnIteration, if non-nil, fires after every sweep regardless of
	// Verbose.
	OnIteration IterationHook
}

// DefaultOptions returns the standard solver settings: tolerance 1e-4,
// iteration cap 1000, one worker per CPU, quiet output.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
		Workers:   runtime.GOMAXPROCS(0),
		LogEvery:  DefaultLogEvery,
	}
}

// normalize fills zero values with their defaults.
func (o *Options) normalize() {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIter == 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.LogEvery == 0 {
		o.LogEvery = DefaultLogEvery
	}
}

// validate rejects negative settings after normalization.
func (o Options) validate() error {
	switch {
	case o.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %g is negative", ErrOptionViolation, o.Tolerance)
	case o.MaxIter < 0:
		return fmt.Errorf("%w: max iterations %d is negative", ErrOptionViolation, o.MaxIter)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrOptionViolation, o.Workers)
	case o.LogEvery < 0:
		return fmt.Errorf("%w: log interval %d is negative", ErrOptionViolation, o.LogEvery)
	}

	return nil
}

// Result is the solver output: the final value table plus convergence
// diagnostics.
type Result struct {
	// Value is the N×M table produced by the final sweep.
	Value *mat.Dense

	// Iterations is the number of sweeps performed.
	Iterations int

	// Gap is the final sup-norm distance between the last two tables.
	Gap float64

	// Converged reports whether Gap fell within tolerance before the
	// iteration cap.
	Converged bool
}
