package util

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math"
)

// ColumnDotProduct returns sum(x[k][xColumn] y[k][yColumn]) over all rows k,
// where x and y are row-major matrices with the same number of rows and
// xNumCols and yNumCols columns respectively. ColumnDotProduct trusts its
// inputs.
func ColumnDotProduct(x []float64, xNumCols int, y []float64, yNumCols, xColumn, yColumn int) float64 {
	numRows := len(x) / xNumCols
	retVal := 0.0
	for k := 0; k < numRows; k++ {
		retVal += x[k*xNumCols+xColumn] * y[k*yNumCols+yColumn]
	}
	return retVal
}

// SubtractColumnMultiple replaces column dest of the row-major matrix x with
// column dest minus multiple times column src. It trusts its inputs.
func SubtractColumnMultiple(x []float64, numCols, dest, src int, multiple float64) {
	if multiple == 0 {
		return
	}
	numRows := len(x) / numCols
	for k := 0; k < numRows; k++ {
		x[k*numCols+dest] -= multiple * x[k*numCols+src]
	}
}

// SwapColumns exchanges columns i and j of the row-major matrix x
func SwapColumns(x []float64, numCols, i, j int) {
	if i == j {
		return
	}
	numRows := len(x) / numCols
	for k := 0; k < numRows; k++ {
		x[k*numCols+i], x[k*numCols+j] = x[k*numCols+j], x[k*numCols+i]
	}
}

// Identity returns the dim x dim identity matrix in row-major order
func Identity(dim int) []float64 {
	retVal := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		retVal[i*dim+i] = 1
	}
	return retVal
}

// CopyFloat64ToInt64 converts a float64 matrix whose entries are all integers to
// an int64 matrix. An error is returned if an entry is not an integer or does not
// fit in an int64.
func CopyFloat64ToInt64(input []float64, caller string) ([]int64, error) {
	caller = fmt.Sprintf("%s-CopyFloat64ToInt64", caller)
	retVal := make([]int64, len(input))
	for i := 0; i < len(input); i++ {
		if input[i] != math.Trunc(input[i]) || math.IsInf(input[i], 0) {
			return []int64{}, fmt.Errorf("%s: entry %d = %v is not an integer", caller, i, input[i])
		}
		if (input[i] >= math.MaxInt64) || (input[i] < math.MinInt64) {
			return []int64{}, fmt.Errorf("%s: entry %d = %v does not fit in an int64", caller, i, input[i])
		}
		retVal[i] = int64(input[i])
	}
	return retVal, nil
}

// CopyInt64ToFloat64 converts an int64 matrix to a float64 matrix
func CopyInt64ToFloat64(input []int64) []float64 {
	retVal := make([]float64, len(input))
	for i := 0; i < len(input); i++ {
		retVal[i] = float64(input[i])
	}
	return retVal
}

// MultiplyIntInt returns the matrix product, x * y, for []int64
// x and []int64 y. n must equal the number of columns in x and
// the number of rows in y.
func MultiplyIntInt(x []int64, y []int64, n int, caller string) ([]int64, error) {
	// x is mxn, y is nxp and xy is mxp.
	caller = fmt.Sprintf("%s-MultiplyIntInt", caller)
	m, p, err := getDimensions(len(x), len(y), n, caller)
	if err != nil {
		return nil, err
	}
	largeEntryThresh := int64(math.MaxInt32 / m)
	xy := make([]int64, m*p)
	for i := 0; i < m; i++ {
		for j := 0; j < p; j++ {
			xyEntry := x[i*n] * y[j] // x[i][0] * y[0][j]
			for k := 1; k < n; k++ {
				xyEntry += x[i*n+k] * y[k*p+j] // x[i][k] * y[k][j]
			}
			if (xyEntry > largeEntryThresh) || (xyEntry < -largeEntryThresh) {
				return []int64{}, fmt.Errorf(
					"%s: entry (%d,%d) = %d is large enough to risk overflow",
					caller, i, j, xyEntry,
				)
			}
			xy[i*p+j] = xyEntry
		}
	}
	return xy, nil
}

// SubMatrix returns the first numSubCols columns of the row-major matrix x with
// numCols columns.
func SubMatrix[T any](x []T, numCols, numSubCols int) []T {
	numRows := len(x) / numCols
	retVal := make([]T, numRows*numSubCols)
	for i := 0; i < numRows; i++ {
		copy(retVal[i*numSubCols:(i+1)*numSubCols], x[i*numCols:i*numCols+numSubCols])
	}
	return retVal
}

// getDimensions returns the dimensions m and p for a matrix multiply
// xy where x has mn entries, y has np entries, and the number of columns
// in x (= the number of rows in y) is n.
func getDimensions(mn, np, n int, caller string) (int, int, error) {
	caller = fmt.Sprintf("%s-getDimensions", caller)
	if n <= 0 {
		return 0, 0, fmt.Errorf("%s: inner dimension %d is not positive", caller, n)
	}
	if mn%n != 0 {
		return 0, 0, fmt.Errorf(
			"%s: non-integer number of rows %d / %d in x", caller, mn, n,
		)
	}
	if np%n != 0 {
		return 0, 0, fmt.Errorf(
			"%s: non-integer number of columns  %d / %d in y", caller, np, n,
		)
	}
	if mn == 0 || np == 0 {
		return 0, 0, fmt.Errorf("%s: empty operand with %d and %d entries", caller, mn, np)
	}
	return mn / n, np / n, nil
}
