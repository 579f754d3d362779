package markov

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Rouwenhorst — finite-state approximation of a Gaussian AR(1) process.
//
// Description:
//
//	The process is y' = drift + persistence·y + ε with ε ~ N(0, volatility²).
//	Rouwenhorst's method places n states evenly across ±ψ around the
//	unconditional mean and builds the transition matrix by a recursive
//	embedding. It reproduces the unconditional mean, variance and
//	first-order autocorrelation of the AR(1) exactly, which makes it the
//	method of choice for highly persistent processes.
//
// Construction:
//  1. σ_y = volatility/√(1−persistence²), mean = drift/(1−persistence).
//  2. ψ = σ_y·√(n−1); states = n evenly spaced points on [mean−ψ, mean+ψ].
//  3. p = q = (1+persistence)/2; base case Θ₂ = [[p, 1−p], [1−q, q]].
//  4. Θ_k sums four copies of Θ_{k−1} shifted to the corners of a k×k
//     matrix, weighted p, 1−p, 1−q, q; interior rows are then halved to
//     restore row sums.
//
// A single state (n = 1) collapses to the degenerate chain ([[1]], [mean]).
//
// Complexity:
//
//	Time   = O(n³) for the recursive build
//	Memory = O(n²)
//
// Errors:
//   - ErrStateCount         — n < 1.
//   - ErrNegativeVolatility — volatility < 0.
//   - ErrNonStationary      — |persistence| ≥ 1.
func Rouwenhorst(n int, drift, volatility, persistence float64) (Chain, error) {
	if err := checkProcess(n, volatility, persistence); err != nil {
		return Chain{}, err
	}

	mean := drift / (1 - persistence)
	if n == 1 {
		return Chain{P: mat.NewDense(1, 1, []float64{1}), States: []float64{mean}}, nil
	}

	// Steps 1-2: evenly spaced states across ±ψ around the unconditional mean.
	sigmaY := volatility / math.Sqrt(1-persistence*persistence)
	psi := sigmaY * math.Sqrt(float64(n-1))
	states := floats.Span(make([]float64, n), mean-psi, mean+psi)

	// Steps 3-4: recursive transition build.
	p := (1 + persistence) / 2
	c := Chain{P: rouwenhorstTheta(n, p, p), States: states}
	if err := c.Validate(); err != nil {
		return Chain{}, err
	}

	return c, nil
}

// rouwenhorstTheta builds the n×n Rouwenhorst transition matrix, n ≥ 2.
// p is the persistence of the lowest state, q of the highest; the symmetric
// AR(1) case uses p = q.
func rouwenhorstTheta(n int, p, q float64) *mat.Dense {
	theta := mat.NewDense(2, 2, []float64{p, 1 - p, 1 - q, q})
	for k := 3; k <= n; k++ {
		prev := theta
		theta = mat.NewDense(k, k, nil)

		// Accumulate the four shifted embeddings of the (k−1)-state matrix.
		for i := 0; i < k-1; i++ {
			for j := 0; j < k-1; j++ {
				v := prev.At(i, j)
				theta.Set(i, j, theta.At(i, j)+p*v)
				theta.Set(i, j+1, theta.At(i, j+1)+(1-p)*v)
				theta.Set(i+1, j, theta.At(i+1, j)+(1-q)*v)
				theta.Set(i+1, j+1, theta.At(i+1, j+1)+q*v)
			}
		}

		// Interior rows received two embeddings; halve them to restore row sums.
		for i := 1; i < k-1; i++ {
			floats.Scale(0.5, theta.RawRowView(i))
		}
	}

	return theta
}

// checkProcess validates the AR(1) inputs shared by both discretizers.
func checkProcess(n int, volatility, persistence float64) error {
	if n < 1 {
		return ErrStateCount
	}
	if volatility < 0 {
		return ErrNegativeVolatility
	}
	if math.Abs(persistence) >= 1 {
		return ErrNonStationary
	}

	return nil
}
