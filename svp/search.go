// Copyright (c) 2025 Colin McRae

// Package svp searches a bounded window of integer combinations of a few lattice
// vectors for the combination with the smallest non-zero Euclidean norm.
//
// The search is exhaustive within the window, so it finds the true shortest
// non-zero lattice vector only if that vector's coefficients lie in the window.
// Running it on a reduced basis makes that likely for small bounds.
package svp

import (
	"errors"
	"fmt"
	"math"

	"github.com/predrag3141/LLLSVP/lll"
)

const (
	// DefaultBound is the coefficient bound used when a caller has no better choice
	DefaultBound = 10

	// MaxCandidates bounds the number of coefficient tuples one search may visit
	MaxCandidates = 1 << 26
)

var (
	// ErrInvalidBound is returned when the coefficient bound is less than 1
	ErrInvalidBound = errors.New("svp: invalid bound")

	// ErrDimensionMismatch is returned when the vectors are missing, empty or
	// of different lengths.
	ErrDimensionMismatch = errors.New("svp: dimension mismatch")

	// ErrTooManyCandidates is returned when (2 bound + 1)^k exceeds MaxCandidates
	ErrTooManyCandidates = errors.New("svp: too many candidates")

	// ErrNoNonZeroVector is returned when every combination in the window is the
	// zero vector, which happens only if all the input vectors are zero.
	ErrNoNonZeroVector = errors.New("svp: no non-zero vector in the window")
)

// Result is the shortest non-zero combination found by a search
type Result struct {
	// Coefficients holds one integer per input vector. For Search these are
	// (m, l) with Vector = m a + l b.
	Coefficients []int
	Vector       []float64
	Norm         float64
}

// Search returns the shortest non-zero vector m a + l b over all integers m and l
// in [-bound, bound]. Pairs are visited with m in the outer loop and l in the
// inner loop, both ascending from -bound, and a later pair replaces the best so
// far only if its norm is strictly smaller, so the first minimum wins. Pairs
// whose combination is the zero vector, including (0, 0), are never returned.
//
// The window holds (2 bound + 1)^2 pairs, which may not exceed MaxCandidates, so
// bound is at most 4095; larger bounds fail with ErrTooManyCandidates.
func Search(a, b []float64, bound int) (*Result, error) {
	return search([][]float64{a, b}, bound, "Search")
}

// SearchN generalizes Search to any number of vectors. Coefficient tuples are
// visited in lexicographic order, the first coefficient varying slowest and each
// coefficient ascending from -bound. The all-zero tuple is skipped.
func SearchN(vectors [][]float64, bound int) (*Result, error) {
	return search(vectors, bound, "SearchN")
}

// SearchBasis runs SearchN on the given columns of b, typically a basis returned
// by lll.Reduce.
func SearchBasis(b *lll.Basis, columns []int, bound int) (*Result, error) {
	caller := "SearchBasis"
	vectors := make([][]float64, len(columns))
	for i, j := range columns {
		column, err := b.Column(j)
		if err != nil {
			return nil, fmt.Errorf("%s: could not get column %d: %w: %w", caller, j, ErrDimensionMismatch, err)
		}
		vectors[i] = column
	}
	return search(vectors, bound, caller)
}

func search(vectors [][]float64, bound int, caller string) (*Result, error) {
	caller = fmt.Sprintf("%s-search", caller)
	dim, err := checkInput(vectors, bound, caller)
	if err != nil {
		return nil, err
	}

	// Visit every tuple in [-bound, bound]^k like an odometer whose last digit
	// turns fastest.
	numVectors := len(vectors)
	coefficients := make([]int, numVectors)
	for i := range coefficients {
		coefficients[i] = -bound
	}
	candidate := make([]float64, dim)
	var best *Result // nil until the first non-zero vector is seen
	for {
		if !isZero(coefficients) {
			combine(vectors, coefficients, candidate)
			norm := euclideanNorm(candidate)

			// A zero norm means the vectors are dependent; the zero vector is
			// never a candidate.
			if norm > 0 && (best == nil || norm < best.Norm) {
				best = newResult(coefficients, candidate, norm)
			}
		}
		if !advance(coefficients, bound) {
			break
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%s: bound = %d: %w", caller, bound, ErrNoNonZeroVector)
	}
	return best, nil
}

// checkInput returns the common length of the vectors
func checkInput(vectors [][]float64, bound int, caller string) (int, error) {
	caller = fmt.Sprintf("%s-checkInput", caller)
	if bound < 1 {
		return 0, fmt.Errorf("%s: bound = %d: %w", caller, bound, ErrInvalidBound)
	}
	if len(vectors) == 0 {
		return 0, fmt.Errorf("%s: no vectors: %w", caller, ErrDimensionMismatch)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return 0, fmt.Errorf("%s: vector 0 is empty: %w", caller, ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return 0, fmt.Errorf(
				"%s: vector %d has length %d but vector 0 has length %d: %w",
				caller, i, len(v), dim, ErrDimensionMismatch,
			)
		}
	}
	numCandidates := 1.0
	for range vectors {
		numCandidates *= 2*float64(bound) + 1
	}
	if numCandidates > MaxCandidates {
		return 0, fmt.Errorf(
			"%s: %d vectors with bound %d give %g candidates: %w",
			caller, len(vectors), bound, numCandidates, ErrTooManyCandidates,
		)
	}
	return dim, nil
}

// advance moves coefficients to the next tuple and reports whether there was one
func advance(coefficients []int, bound int) bool {
	for i := len(coefficients) - 1; i >= 0; i-- {
		if coefficients[i] < bound {
			coefficients[i]++
			return true
		}
		coefficients[i] = -bound
	}
	return false
}

// combine sets out to sum(coefficients[i] vectors[i])
func combine(vectors [][]float64, coefficients []int, out []float64) {
	for k := range out {
		out[k] = 0
	}
	for i, v := range vectors {
		c := float64(coefficients[i])
		for k := range out {
			out[k] += c * v[k]
		}
	}
}

func isZero(coefficients []int) bool {
	for _, c := range coefficients {
		if c != 0 {
			return false
		}
	}
	return true
}

func euclideanNorm(v []float64) float64 {
	sumOfSquares := 0.0
	for _, x := range v {
		sumOfSquares += x * x
	}
	return math.Sqrt(sumOfSquares)
}

func newResult(coefficients []int, vector []float64, norm float64) *Result {
	retVal := &Result{
		Coefficients: make([]int, len(coefficients)),
		Vector:       make([]float64, len(vector)),
		Norm:         norm,
	}
	copy(retVal.Coefficients, coefficients)
	copy(retVal.Vector, vector)
	return retVal
}
