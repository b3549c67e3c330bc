package lll

// Copyright (c) 2025 Colin McRae

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduce_Identity(t *testing.T) {
	b, err := NewBasisFromInt64([]int64{1, 0, 0, 1}, 2, 2)
	require.NoError(t, err)
	var result *Result
	result, err = ReduceWithTransform(b, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 1}, result.Basis.Values())
	require.Equal(t, []float64{1, 0, 0, 1}, result.U.Values())
	require.Equal(t, []float64{1, 0, 0, 1}, result.T.Values())
	require.Equal(t, 1, result.Iterations)
	require.Equal(t, 0, result.Swaps)
	require.True(t, SatisfiesLovasz(result))
}

func TestReduce_UpperTriangular(t *testing.T) {
	// Columns (1,0,0), (3,1,0) and (5,2,1) reduce to the standard basis
	b, err := NewBasisFromRows([][]float64{
		{1, 3, 5},
		{0, 1, 2},
		{0, 0, 1},
	})
	require.NoError(t, err)
	var result *Result
	result, err = ReduceWithTransform(b, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, result.Basis.Values())
	require.Equal(t, []float64{1, -3, 1, 0, 1, -2, 0, 0, 1}, result.T.Values())
	require.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, result.U.Values())
	require.Equal(t, 2, result.Iterations)
	require.Equal(t, 0, result.Swaps)
	require.Equal(t, 0.0, result.Mu[1][1])
	require.Equal(t, 0.0, result.Mu[2][2])

	// The input is not modified
	require.Equal(t, []float64{1, 3, 5, 0, 1, 2, 0, 0, 1}, b.Values())
}

func TestReduce_Swap(t *testing.T) {
	// Column 1 = (0, 1/2) is shorter than sqrt(3/4), so it is swapped with column 0
	b, err := NewBasisFromRows([][]float64{
		{1, 0},
		{0, 0.5},
	})
	require.NoError(t, err)
	var result *Result
	result, err = ReduceWithTransform(b, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 0.5, 0}, result.Basis.Values())
	require.Equal(t, []float64{0, 1, 1, 0}, result.U.Values())
	require.Equal(t, []float64{0, 1, 1, 0}, result.T.Values())
	require.Equal(t, 1, result.Swaps)
	require.Equal(t, 2, result.Iterations)
	require.True(t, SatisfiesLovasz(result))
	require.Equal(t, -1, LovaszViolation(result))
}

func TestReduce_NonSquare(t *testing.T) {
	// Only the first two columns are reduced; the third is copied through
	b, err := NewBasisFromRows([][]float64{
		{1, 3, 7},
		{0, 1, 8},
	})
	require.NoError(t, err)
	var reduced *Basis
	reduced, err = Reduce(b)
	require.NoError(t, err)
	numRows, numCols := reduced.Dimensions()
	require.Equal(t, 2, numRows)
	require.Equal(t, 3, numCols)
	require.Equal(t, []float64{1, 0, 7, 0, 1, 8}, reduced.Values())
}

func TestReduce_Degenerate(t *testing.T) {
	// Dependent columns (1,2) and (2,4)
	b, err := NewBasisFromRows([][]float64{
		{1, 2},
		{2, 4},
	})
	require.NoError(t, err)
	var reduced *Basis
	reduced, err = Reduce(b)
	require.ErrorIs(t, err, ErrDegenerateBasis)
	require.Nil(t, reduced)

	// A zero column
	b, err = NewBasisFromRows([][]float64{
		{1, 0},
		{1, 0},
	})
	require.NoError(t, err)
	_, err = Reduce(b)
	require.ErrorIs(t, err, ErrDegenerateBasis)

	// Independent columns whose projection onto U_0 = (1,0) vanishes
	b, err = NewBasisFromRows([][]float64{
		{0, 1},
		{1, 0},
	})
	require.NoError(t, err)
	_, err = Reduce(b)
	require.ErrorIs(t, err, ErrDegenerateBasis)
}

func TestReduce_NoConvergence(t *testing.T) {
	// Both columns of I/2 are shorter than sqrt(3/4), so they are swapped forever
	b, err := NewBasisFromRows([][]float64{
		{0.5, 0},
		{0, 0.5},
	})
	require.NoError(t, err)
	var result *Result
	result, err = ReduceWithTransform(b, &Config{MaxIterations: 50})
	require.ErrorIs(t, err, ErrNoConvergence)
	require.Nil(t, result)
}

func TestReduce_DimensionMismatch(t *testing.T) {
	b, err := NewBasisFromRows([][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	})
	require.NoError(t, err)
	_, err = Reduce(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = Reduce(nil)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestReduce_OneDimension(t *testing.T) {
	b, err := NewBasis([]float64{-7}, 1, 1)
	require.NoError(t, err)
	var result *Result
	result, err = ReduceWithTransform(b, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{-7}, result.Basis.Values())
	require.Equal(t, 0, result.Iterations)
	require.True(t, SatisfiesLovasz(result))
}

func TestReduce_RandomUpperTriangular(t *testing.T) {
	const (
		numTests   = 200
		maxDim     = 8
		entryRange = 20
		seed       = 40231
	)

	rng := rand.New(rand.NewSource(seed))
	for testNbr := 0; testNbr < numTests; testNbr++ {
		dim := 1 + rng.Intn(maxDim)
		b := randomUpperTriangular(t, rng, dim, entryRange)
		result, err := ReduceWithTransform(b, nil)
		require.NoError(t, err)

		// No swaps happen for integer bases, so the loop visits each k once
		require.Equal(t, 0, result.Swaps)
		require.Equal(t, max(dim-1, 0), result.Iterations)
		require.True(t, SatisfiesLovasz(result))

		// The reduced basis is upper triangular with the same diagonal, and each
		// entry above the diagonal is at most half the diagonal entry in its row
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				actual, err := result.Basis.Get(i, j)
				require.NoError(t, err)
				expected, err := b.Get(i, j)
				require.NoError(t, err)
				if i > j {
					require.Equal(t, 0.0, actual)
				} else if i == j {
					require.Equal(t, expected, actual)
				} else {
					diagonal, err := b.Get(i, i)
					require.NoError(t, err)
					require.LessOrEqualf(
						t, math.Abs(actual), math.Abs(diagonal)/2,
						"entry (%d,%d) of\n%v", i, j, result.Basis,
					)
				}
			}
		}

		// The reduced basis is a fixed point
		var again *Basis
		again, err = Reduce(result.Basis)
		require.NoError(t, err)
		require.Truef(t, again.Equals(result.Basis, 0), "reduce(reduce(B)) =\n%v\nreduce(B) =\n%v", again, result.Basis)

		// Same volume
		var volumeBefore, volumeAfter float64
		volumeBefore, err = Volume(b)
		require.NoError(t, err)
		volumeAfter, err = Volume(result.Basis)
		require.NoError(t, err)
		require.InEpsilon(t, volumeBefore, volumeAfter, 1e-9)
	}
}

func TestReduce_RandomDense(t *testing.T) {
	const (
		numTests = 1000
		minDim   = 2
		maxDim   = 5
		maxEntry = 10
		seed     = 60613
	)

	rng := rand.New(rand.NewSource(seed))
	numReduced := 0
	for testNbr := 0; testNbr < numTests; testNbr++ {
		// Entries in [1, maxEntry]; some of these bases are singular
		dim := minDim + rng.Intn(maxDim-minDim+1)
		values := make([]int64, dim*dim)
		for i := range values {
			values[i] = int64(1 + rng.Intn(maxEntry))
		}
		b, err := NewBasisFromInt64(values, dim, dim)
		require.NoError(t, err)
		var result *Result
		result, err = ReduceWithTransform(b, nil)
		if err != nil {
			require.ErrorIsf(t, err, ErrDegenerateBasis, "basis\n%v", b)
			continue
		}
		numReduced++

		// Integer columns are never shorter than sqrt(0.75), so nothing swaps
		require.True(t, SatisfiesLovasz(result))
		require.Equal(t, 0, result.Swaps)
		require.Equal(t, dim-1, result.Iterations)
		for _, x := range result.Basis.Values() {
			require.Equal(t, math.Round(x), x)
		}
		for _, x := range result.T.Values() {
			require.Equal(t, math.Round(x), x)
		}

		var volumeBefore, volumeAfter float64
		volumeBefore, err = Volume(b)
		require.NoError(t, err)
		volumeAfter, err = Volume(result.Basis)
		require.NoError(t, err)
		require.InDelta(t, volumeBefore, volumeAfter, 1e-9*(1+volumeBefore))
	}
	require.Greater(t, numReduced, numTests/2)
}

func TestConfig(t *testing.T) {
	cfg := withDefaults(nil, 3)
	require.Equal(t, DefaultMaxIterations(3), cfg.MaxIterations)
	require.Equal(t, DefaultTolerance, cfg.Tolerance)

	cfg = withDefaults(&Config{MaxIterations: 7}, 3)
	require.Equal(t, 7, cfg.MaxIterations)
	require.Equal(t, DefaultTolerance, cfg.Tolerance)

	cfg = withDefaults(&Config{Tolerance: 1e-6}, 3)
	require.Equal(t, DefaultMaxIterations(3), cfg.MaxIterations)
	require.Equal(t, 1e-6, cfg.Tolerance)
	require.Equal(t, 9000, DefaultMaxIterations(3))
}

func randomUpperTriangular(t *testing.T, rng *rand.Rand, dim, entryRange int) *Basis {
	values := make([]int64, dim*dim)
	for i := 0; i < dim; i++ {
		values[i*dim+i] = int64(1 + rng.Intn(entryRange))
		if rng.Intn(2) == 1 {
			values[i*dim+i] = -values[i*dim+i]
		}
		for j := i + 1; j < dim; j++ {
			values[i*dim+j] = int64(rng.Intn(2*entryRange+1) - entryRange)
		}
	}
	b, err := NewBasisFromInt64(values, dim, dim)
	require.NoError(t, err)
	return b
}
