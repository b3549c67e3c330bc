package lll

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Basis is a numRows x numCols real matrix whose columns are the basis vectors
// of a lattice. Values are stored in row-major order.
type Basis struct {
	values  []float64
	numRows int
	numCols int
}

// NewBasis creates a basis from row-major values with dimensions numRows x numCols.
// The values are copied. If the dimensions are not positive or do not match the
// length of values, ErrDimensionMismatch is returned; NaN and Inf entries yield
// ErrNotFinite.
func NewBasis(values []float64, numRows, numCols int) (*Basis, error) {
	if numRows <= 0 || numCols <= 0 {
		return nil, fmt.Errorf(
			"NewBasis: illegal number of rows %d or columns %d: %w", numRows, numCols, ErrDimensionMismatch,
		)
	}
	if len(values) != numRows*numCols {
		return nil, fmt.Errorf(
			"NewBasis: %d values do not fill a %d x %d matrix: %w",
			len(values), numRows, numCols, ErrDimensionMismatch,
		)
	}
	for index, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf(
				"NewBasis: entry (%d,%d) = %v: %w", index/numCols, index%numCols, value, ErrNotFinite,
			)
		}
	}
	retVal := &Basis{
		values:  make([]float64, len(values)),
		numRows: numRows,
		numCols: numCols,
	}
	copy(retVal.values, values)
	return retVal, nil
}

// NewBasisFromInt64 creates a basis with integer entries from row-major values
func NewBasisFromInt64(values []int64, numRows, numCols int) (*Basis, error) {
	asFloat := make([]float64, len(values))
	for i, value := range values {
		asFloat[i] = float64(value)
	}
	return NewBasis(asFloat, numRows, numCols)
}

// NewBasisFromRows creates a basis from a slice of rows, all of which must have
// the same length.
func NewBasisFromRows(rows [][]float64) (*Basis, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("NewBasisFromRows: no rows: %w", ErrDimensionMismatch)
	}
	numCols := len(rows[0])
	values := make([]float64, 0, len(rows)*numCols)
	for i, row := range rows {
		if len(row) != numCols {
			return nil, fmt.Errorf(
				"NewBasisFromRows: row %d has %d entries but row 0 has %d: %w",
				i, len(row), numCols, ErrDimensionMismatch,
			)
		}
		values = append(values, row...)
	}
	return NewBasis(values, len(rows), numCols)
}

// NewBasisFromDense creates a basis from any gonum matrix
func NewBasisFromDense(m mat.Matrix) (*Basis, error) {
	numRows, numCols := m.Dims()
	values := make([]float64, 0, numRows*numCols)
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			values = append(values, m.At(i, j))
		}
	}
	return NewBasis(values, numRows, numCols)
}

// Dense returns a copy of b as a gonum matrix
func (b *Basis) Dense() *mat.Dense {
	values := make([]float64, len(b.values))
	copy(values, b.values)
	return mat.NewDense(b.numRows, b.numCols, values)
}

// Copy returns a deep copy of b
func (b *Basis) Copy() *Basis {
	retVal := &Basis{
		values:  make([]float64, len(b.values)),
		numRows: b.numRows,
		numCols: b.numCols,
	}
	copy(retVal.values, b.values)
	return retVal
}

// Get returns b[i][j]
func (b *Basis) Get(i, j int) (float64, error) {
	if err := b.checkIndices(i, j, "Basis.Get"); err != nil {
		return 0, err
	}
	return b.values[i*b.numCols+j], nil
}

// Set sets b[i][j] to x
func (b *Basis) Set(i, j int, x float64) error {
	if err := b.checkIndices(i, j, "Basis.Set"); err != nil {
		return err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("Basis.Set: value %v for (%d,%d): %w", x, i, j, ErrNotFinite)
	}
	b.values[i*b.numCols+j] = x
	return nil
}

// Column returns a copy of column j, the j-th basis vector
func (b *Basis) Column(j int) ([]float64, error) {
	if j < 0 || b.numCols <= j {
		return nil, fmt.Errorf(
			"Basis.Column: index j = %d outside range {0, ... %d}: %w", j, b.numCols-1, ErrDimensionMismatch,
		)
	}
	retVal := make([]float64, b.numRows)
	for i := 0; i < b.numRows; i++ {
		retVal[i] = b.values[i*b.numCols+j]
	}
	return retVal, nil
}

// Values returns a copy of the row-major entries of b
func (b *Basis) Values() []float64 {
	retVal := make([]float64, len(b.values))
	copy(retVal, b.values)
	return retVal
}

// Dimensions returns the number of rows and columns in b, in that order.
func (b *Basis) Dimensions() (int, int) {
	return b.numRows, b.numCols
}

// NumRows returns the number of rows in b
func (b *Basis) NumRows() int {
	return b.numRows
}

// NumCols returns the number of columns in b
func (b *Basis) NumCols() int {
	return b.numCols
}

// Equals reports whether b and x have the same dimensions and all corresponding
// entries are within tolerance of each other.
func (b *Basis) Equals(x *Basis, tolerance float64) bool {
	if b.numRows != x.numRows || b.numCols != x.numCols {
		return false
	}
	for i := range b.values {
		if math.Abs(b.values[i]-x.values[i]) > tolerance {
			return false
		}
	}
	return true
}

// String returns a string representing b with rows separated by newlines.
func (b *Basis) String() string {
	var sb strings.Builder
	for i := 0; i < b.numRows; i++ {
		for j := 0; j < b.numCols; j++ {
			sb.WriteString(fmt.Sprintf("%v, ", b.values[i*b.numCols+j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Basis) checkIndices(i, j int, caller string) error {
	if i < 0 || b.numRows <= i {
		return fmt.Errorf(
			"%s: index i = %d outside range {0, ... %d}: %w", caller, i, b.numRows-1, ErrDimensionMismatch,
		)
	}
	if j < 0 || b.numCols <= j {
		return fmt.Errorf(
			"%s: index j = %d outside range {0, ... %d}: %w", caller, j, b.numCols-1, ErrDimensionMismatch,
		)
	}
	return nil
}
