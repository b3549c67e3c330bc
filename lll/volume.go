package lll

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Volume returns |det(B)| where B holds the first n = b.NumRows() columns of b.
// This is the volume of the fundamental parallelepiped of the lattice those
// columns span, and it is invariant under reduction.
func Volume(b *Basis) (float64, error) {
	columns, err := leadingColumns(b, "Volume")
	if err != nil {
		return 0, err
	}
	return math.Abs(mat.Det(columns)), nil
}

// OrthogonalityDefect returns the product of the lengths of the first n columns
// of b divided by Volume(b). It is 1 for an orthogonal basis and larger otherwise.
func OrthogonalityDefect(b *Basis) (float64, error) {
	caller := "OrthogonalityDefect"
	columns, err := leadingColumns(b, caller)
	if err != nil {
		return 0, err
	}
	volume := math.Abs(mat.Det(columns))
	if volume == 0 {
		return 0, fmt.Errorf("%s: zero volume: %w", caller, ErrDegenerateBasis)
	}
	product := 1.0
	for j := 0; j < b.numRows; j++ {
		product *= mat.Norm(columns.ColView(j), 2)
	}
	return product / volume, nil
}

// leadingColumns returns the square matrix formed by the first n columns of b
func leadingColumns(b *Basis, caller string) (*mat.Dense, error) {
	n := b.numRows
	if b.numCols < n {
		return nil, fmt.Errorf("%s: %d columns, need %d: %w", caller, b.numCols, n, ErrDimensionMismatch)
	}
	return b.Dense().Slice(0, n, 0, n).(*mat.Dense), nil
}
