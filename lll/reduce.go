// Copyright (c) 2025 Colin McRae

// Package lll reduces lattice bases with a variant of the Lenstra-Lenstra-Lovász
// algorithm.
//
// The reducer works on the first n columns of an n x m basis (m >= n). Each
// column is size-reduced against the earlier columns by subtracting
//
//	mu[i][j] = round(<B_i, U_j> / <B_j, U_j>)
//
// times column j, where U starts as the identity and has its columns swapped in
// lock-step with B. U is never re-orthogonalized, so the projections are taken
// against the evolving copy of the standard basis rather than against a
// Gram-Schmidt basis. After size reduction of column k, columns k-1 and k are
// swapped when
//
//	<B_k, B_k> < 3/4 - mu[k][k]^2
//
// Rounding is round-half-to-even. Every column operation applied to B is also
// applied to T, which starts as the identity, so that the reduced columns equal
// the original columns times T.
package lll

import (
	"fmt"
	"math"

	"github.com/predrag3141/LLLSVP/util"
)

const (
	// LovaszConstant is the delta in the Lovász condition
	LovaszConstant = 0.75

	// DefaultTolerance is the relative size below which a projection
	// denominator <B_j, U_j> is treated as zero.
	DefaultTolerance = 1e-12

	iterationsPerSquaredDimension = 1000
)

// Config holds the limits of one reduction
type Config struct {
	// MaxIterations bounds the number of passes through the main loop.
	MaxIterations int

	// Tolerance is compared with |<B_j, U_j>| / (|B_j| |U_j|).
	Tolerance float64
}

// DefaultMaxIterations returns the default iteration limit for an n-column reduction
func DefaultMaxIterations(n int) int {
	return iterationsPerSquaredDimension * max(n*n, 1)
}

// DefaultConfig returns the configuration Reduce uses for an n-column reduction
func DefaultConfig(n int) *Config {
	return &Config{
		MaxIterations: DefaultMaxIterations(n),
		Tolerance:     DefaultTolerance,
	}
}

// withDefaults returns a copy of cfg with unset fields taken from DefaultConfig(n)
func withDefaults(cfg *Config, n int) *Config {
	retVal := DefaultConfig(n)
	if cfg == nil {
		return retVal
	}
	if cfg.MaxIterations > 0 {
		retVal.MaxIterations = cfg.MaxIterations
	}
	if cfg.Tolerance > 0 {
		retVal.Tolerance = cfg.Tolerance
	}
	return retVal
}

// Result is the outcome of a reduction
type Result struct {
	// Basis is the reduced basis, with the same dimensions as the input
	Basis *Basis

	// U is the n x n auxiliary matrix whose columns are the projection targets
	U *Basis

	// T is the n x n unimodular matrix with reduced[:, :n] = original[:, :n] T
	T *Basis

	// Mu holds the last rounded coefficient used for each pair of columns
	Mu [][]float64

	Iterations int
	Swaps      int
}

// Reduce returns a reduced copy of b. b is not modified.
func Reduce(b *Basis) (*Basis, error) {
	result, err := ReduceWithTransform(b, nil)
	if err != nil {
		return nil, err
	}
	return result.Basis, nil
}

// ReduceWithTransform reduces a copy of b and returns the reduced basis along
// with U, T and the coefficient table. Fields of cfg that are unset, or a nil
// cfg, take their values from DefaultConfig(n) for n = b.NumRows(). No partial
// result is returned on failure.
func ReduceWithTransform(b *Basis, cfg *Config) (*Result, error) {
	caller := "ReduceWithTransform"
	if b == nil {
		return nil, fmt.Errorf("%s: nil basis: %w", caller, ErrDimensionMismatch)
	}
	n := b.numRows
	if b.numCols < n {
		return nil, fmt.Errorf(
			"%s: %d columns cannot hold %d basis vectors of length %d: %w",
			caller, b.numCols, n, n, ErrDimensionMismatch,
		)
	}
	cfg = withDefaults(cfg, n)
	r := newReducer(b, cfg)
	if err := r.checkColumns(caller); err != nil {
		return nil, err
	}

	// Initial size reduction of every column against the columns before it
	for i := 1; i < n; i++ {
		if err := r.sizeReduce(i, caller); err != nil {
			return nil, err
		}
	}

	// Main loop
	k := 1
	for k < n {
		if r.iterations >= cfg.MaxIterations {
			return nil, fmt.Errorf(
				"%s: k = %d after %d iterations and %d swaps: %w",
				caller, k, r.iterations, r.swaps, ErrNoConvergence,
			)
		}
		r.iterations++
		if err := r.sizeReduce(k, caller); err != nil {
			return nil, err
		}
		if r.squaredNorm(k) < LovaszConstant-r.mu[k][k]*r.mu[k][k] {
			r.swap(k)
			k = max(k-1, 1)
		} else {
			k++
		}
	}
	return r.result(), nil
}

type reducer struct {
	b         []float64
	numCols   int
	n         int
	u         []float64
	t         []float64
	mu        [][]float64
	tolerance float64

	iterations int
	swaps      int
}

func newReducer(b *Basis, cfg *Config) *reducer {
	n := b.numRows
	mu := make([][]float64, n)
	for i := range mu {
		mu[i] = make([]float64, n)
	}
	return &reducer{
		b:         b.Values(),
		numCols:   b.numCols,
		n:         n,
		u:         util.Identity(n),
		t:         util.Identity(n),
		mu:        mu,
		tolerance: cfg.Tolerance,
	}
}

// checkColumns rejects zero columns among the n columns to be reduced
func (r *reducer) checkColumns(caller string) error {
	caller = fmt.Sprintf("%s-checkColumns", caller)
	for j := 0; j < r.n; j++ {
		if r.squaredNorm(j) == 0 {
			return fmt.Errorf("%s: column %d is zero: %w", caller, j, ErrDegenerateBasis)
		}
	}
	return nil
}

// sizeReduce reduces column i against columns i-1, ..., 0 in that order
func (r *reducer) sizeReduce(i int, caller string) error {
	caller = fmt.Sprintf("%s-sizeReduce", caller)
	for j := i - 1; j >= 0; j-- {
		coefficient, err := r.coefficient(i, j, caller)
		if err != nil {
			return err
		}
		r.mu[i][j] = coefficient
		util.SubtractColumnMultiple(r.b, r.numCols, i, j, coefficient)
		util.SubtractColumnMultiple(r.t, r.n, i, j, coefficient)
	}
	return nil
}

// coefficient returns round(<B_i, U_j> / <B_j, U_j>)
func (r *reducer) coefficient(i, j int, caller string) (float64, error) {
	caller = fmt.Sprintf("%s-coefficient", caller)
	denominator := util.ColumnDotProduct(r.b, r.numCols, r.u, r.n, j, j)
	scale := math.Sqrt(r.squaredNorm(j) * util.ColumnDotProduct(r.u, r.n, r.u, r.n, j, j))
	if math.Abs(denominator) <= r.tolerance*scale {
		return 0, fmt.Errorf(
			"%s: <B_%d, U_%d> = %v is negligible compared to |B_%d| |U_%d| = %v: %w",
			caller, j, j, denominator, j, j, scale, ErrDegenerateBasis,
		)
	}
	numerator := util.ColumnDotProduct(r.b, r.numCols, r.u, r.n, i, j)
	quotient := numerator / denominator
	if math.IsInf(quotient, 0) || math.IsNaN(quotient) {
		return 0, fmt.Errorf(
			"%s: <B_%d, U_%d> / <B_%d, U_%d> = %v / %v: %w",
			caller, i, j, j, j, numerator, denominator, ErrNotFinite,
		)
	}
	return math.RoundToEven(quotient), nil
}

func (r *reducer) squaredNorm(j int) float64 {
	return util.ColumnDotProduct(r.b, r.numCols, r.b, r.numCols, j, j)
}

// swap exchanges columns k-1 and k of B, U and T
func (r *reducer) swap(k int) {
	util.SwapColumns(r.b, r.numCols, k, k-1)
	util.SwapColumns(r.u, r.n, k, k-1)
	util.SwapColumns(r.t, r.n, k, k-1)
	r.swaps++
}

func (r *reducer) result() *Result {
	return &Result{
		Basis:      &Basis{values: r.b, numRows: r.n, numCols: r.numCols},
		U:          &Basis{values: r.u, numRows: r.n, numCols: r.n},
		T:          &Basis{values: r.t, numRows: r.n, numCols: r.n},
		Mu:         r.mu,
		Iterations: r.iterations,
		Swaps:      r.swaps,
	}
}
