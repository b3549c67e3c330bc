// Copyright (c) 2025 Colin McRae

// Package exact checks the results of lattice reduction with exact integer
// arithmetic. The reduction itself runs in float64; for integer input bases it
// only ever subtracts integer multiples of columns and swaps columns, so its
// output can be compared exactly with its input.
package exact

import (
	"errors"
	"fmt"

	"github.com/predrag3141/PSLQ/bigmatrix"
	"github.com/predrag3141/PSLQ/bignumber"

	"github.com/predrag3141/LLLSVP/lll"
	"github.com/predrag3141/LLLSVP/util"
)

var (
	// ErrNotInteger is returned when a matrix that must have integer entries does not
	ErrNotInteger = errors.New("exact: matrix entry is not an integer")

	// ErrNotSquare is returned when a determinant is requested for a non-square matrix
	ErrNotSquare = errors.New("exact: matrix is not square")
)

// ToBigMatrix converts an integer-valued basis to a BigMatrix
func ToBigMatrix(b *lll.Basis) (*bigmatrix.BigMatrix, error) {
	return toBigMatrix(b.Values(), b.NumRows(), b.NumCols(), "ToBigMatrix")
}

// GramMatrix returns B'B for the n x n matrix B formed by the first n = b.NumRows()
// columns of b, which must have integer entries.
func GramMatrix(b *lll.Basis) (*bigmatrix.BigMatrix, error) {
	caller := "GramMatrix"
	numRows, numCols := b.Dimensions()
	if numCols < numRows {
		return nil, fmt.Errorf(
			"%s: %d columns cannot hold %d basis vectors: %w", caller, numCols, numRows, lll.ErrDimensionMismatch,
		)
	}
	columns, err := toBigMatrix(util.SubMatrix(b.Values(), numCols, numRows), numRows, numRows, caller)
	if err != nil {
		return nil, err
	}
	var transpose *bigmatrix.BigMatrix
	transpose, err = bigmatrix.NewEmpty(numRows, numRows).Transpose(columns)
	if err != nil {
		return nil, fmt.Errorf("%s: could not transpose the basis: %q", caller, err.Error())
	}
	var gram *bigmatrix.BigMatrix
	gram, err = bigmatrix.NewEmpty(numRows, numRows).Mul(transpose, columns)
	if err != nil {
		return nil, fmt.Errorf("%s: could not multiply B' by B: %q", caller, err.Error())
	}
	return gram, nil
}

// Determinant returns the determinant of a square matrix with integer entries,
// computed by fraction-free (Bareiss) elimination so that every intermediate
// value is an integer.
func Determinant(m *bigmatrix.BigMatrix) (*bignumber.BigNumber, error) {
	caller := "Determinant"
	numRows, numCols := m.Dimensions()
	if numRows != numCols || numRows == 0 {
		return nil, fmt.Errorf("%s: %d x %d: %w", caller, numRows, numCols, ErrNotSquare)
	}
	n := numRows

	// Work on a copy, one row slice per matrix row
	a := make([][]*bignumber.BigNumber, n)
	for i := 0; i < n; i++ {
		a[i] = make([]*bignumber.BigNumber, n)
		for j := 0; j < n; j++ {
			entry, err := m.Get(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: could not get entry (%d,%d): %q", caller, i, j, err.Error())
			}
			if !entry.IsInt() {
				_, entryAsStr := entry.String()
				return nil, fmt.Errorf("%s: entry (%d,%d) = %s: %w", caller, i, j, entryAsStr, ErrNotInteger)
			}
			a[i][j] = bignumber.NewFromBigNumber(entry)
		}
	}

	negate := false
	previousPivot := bignumber.NewFromInt64(1)
	for k := 0; k < n-1; k++ {
		if a[k][k].IsZero() {
			pivotRow := -1
			for i := k + 1; i < n; i++ {
				if !a[i][k].IsZero() {
					pivotRow = i
					break
				}
			}
			if pivotRow < 0 {
				return bignumber.NewFromInt64(0), nil
			}
			a[k], a[pivotRow] = a[pivotRow], a[k]
			negate = !negate
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				// a[i][j] <- (a[i][j] a[k][k] - a[i][k] a[k][j]) / previousPivot
				numerator := bignumber.NewFromInt64(0).Sub(
					bignumber.NewFromInt64(0).Mul(a[i][j], a[k][k]),
					bignumber.NewFromInt64(0).Mul(a[i][k], a[k][j]),
				)
				quotient, err := exactQuotient(numerator, previousPivot, caller)
				if err != nil {
					return nil, err
				}
				a[i][j] = quotient
			}
		}
		previousPivot = a[k][k]
	}
	retVal := bignumber.NewFromBigNumber(a[n-1][n-1])
	if negate {
		retVal.Sub(bignumber.NewFromInt64(0), retVal)
	}
	return retVal, nil
}

// GramDeterminant returns det(B'B) for the first n = b.NumRows() columns of b.
// Its square root is the volume of the lattice those columns span.
func GramDeterminant(b *lll.Basis) (*bignumber.BigNumber, error) {
	caller := "GramDeterminant"
	gram, err := GramMatrix(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	var det *bignumber.BigNumber
	det, err = Determinant(gram)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}
	return det, nil
}

// SameVolume reports whether the first n columns of original and reduced span
// lattices of the same volume, a necessary condition for spanning the same lattice.
func SameVolume(original, reduced *lll.Basis) (bool, error) {
	caller := "SameVolume"
	originalDet, err := GramDeterminant(original)
	if err != nil {
		return false, fmt.Errorf("%s: original: %w", caller, err)
	}
	var reducedDet *bignumber.BigNumber
	reducedDet, err = GramDeterminant(reduced)
	if err != nil {
		return false, fmt.Errorf("%s: reduced: %w", caller, err)
	}
	return originalDet.Cmp(reducedDet) == 0, nil
}

// IsBasisChange reports whether r.Basis is original with its first n columns
// multiplied by r.T, whether r.T is unimodular, and whether the remaining columns
// are unchanged. Together these mean original and r.Basis span the same lattice.
func IsBasisChange(original *lll.Basis, r *lll.Result) (bool, error) {
	caller := "IsBasisChange"
	numRows, numCols := original.Dimensions()
	reducedRows, reducedCols := r.Basis.Dimensions()
	if numRows != reducedRows || numCols != reducedCols || numCols < numRows {
		return false, fmt.Errorf(
			"%s: original is %d x %d and reduced is %d x %d: %w",
			caller, numRows, numCols, reducedRows, reducedCols, lll.ErrDimensionMismatch,
		)
	}
	originalValues, err := util.CopyFloat64ToInt64(original.Values(), caller)
	if err != nil {
		return false, fmt.Errorf("%s: original: %w: %q", caller, ErrNotInteger, err.Error())
	}
	var reducedValues, tValues []int64
	reducedValues, err = util.CopyFloat64ToInt64(r.Basis.Values(), caller)
	if err != nil {
		return false, fmt.Errorf("%s: reduced: %w: %q", caller, ErrNotInteger, err.Error())
	}
	tValues, err = util.CopyFloat64ToInt64(r.T.Values(), caller)
	if err != nil {
		return false, fmt.Errorf("%s: T: %w: %q", caller, ErrNotInteger, err.Error())
	}

	// Columns beyond the first n are not touched by reduction
	for i := 0; i < numRows; i++ {
		for j := numRows; j < numCols; j++ {
			if originalValues[i*numCols+j] != reducedValues[i*numCols+j] {
				return false, nil
			}
		}
	}

	// reduced[:, :n] = original[:, :n] T
	var product []int64
	product, err = util.MultiplyIntInt(util.SubMatrix(originalValues, numCols, numRows), tValues, numRows, caller)
	if err != nil {
		return false, fmt.Errorf("%s: could not multiply original by T: %q", caller, err.Error())
	}
	reducedColumns := util.SubMatrix(reducedValues, numCols, numRows)
	for i := range product {
		if product[i] != reducedColumns[i] {
			return false, nil
		}
	}

	// |det T| = 1
	var t *bigmatrix.BigMatrix
	t, err = bigmatrix.NewFromInt64Array(tValues, numRows, numRows)
	if err != nil {
		return false, fmt.Errorf("%s: could not convert T: %q", caller, err.Error())
	}
	var det *bignumber.BigNumber
	det, err = Determinant(t)
	if err != nil {
		return false, fmt.Errorf("%s: %w", caller, err)
	}
	return bignumber.NewFromInt64(0).Abs(det).Cmp(bignumber.NewFromInt64(1)) == 0, nil
}

// exactQuotient returns x / y for integers x and y where y divides x
func exactQuotient(x, y *bignumber.BigNumber, caller string) (*bignumber.BigNumber, error) {
	caller = fmt.Sprintf("%s-exactQuotient", caller)
	quotient, err := bignumber.NewFromInt64(0).Quo(x, y)
	if err != nil {
		return nil, fmt.Errorf("%s: %q", caller, err.Error())
	}
	quotient.RoundTowardsZero()
	if bignumber.NewFromInt64(0).Mul(quotient, y).Cmp(x) != 0 {
		_, xAsStr := x.String()
		_, yAsStr := y.String()
		return nil, fmt.Errorf("%s: %s is not a multiple of %s: %w", caller, xAsStr, yAsStr, ErrNotInteger)
	}
	return quotient, nil
}

func toBigMatrix(values []float64, numRows, numCols int, caller string) (*bigmatrix.BigMatrix, error) {
	caller = fmt.Sprintf("%s-toBigMatrix", caller)
	asInt64, err := util.CopyFloat64ToInt64(values, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %q", caller, ErrNotInteger, err.Error())
	}
	var retVal *bigmatrix.BigMatrix
	retVal, err = bigmatrix.NewFromInt64Array(asInt64, numRows, numCols)
	if err != nil {
		return nil, fmt.Errorf("%s: %q", caller, err.Error())
	}
	return retVal, nil
}
