package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"math/rand"

	"github.com/predrag3141/LLLSVP/exact"
	"github.com/predrag3141/LLLSVP/lll"
	"github.com/predrag3141/LLLSVP/svp"
	"github.com/predrag3141/LLLSVP/util"
)

// The input to reduction is a dim x dim upper triangular integer basis with
// - Diagonal entries drawn uniformly from {-entryRange, ..., -1, 1, ..., entryRange}
// - Entries above the diagonal drawn uniformly from {-entryRange, ..., entryRange}
//
// A non-zero diagonal makes the basis non-singular, and because column j has no
// entries below row j, the projection denominators <B_j, U_j> = B_j[j] never
// vanish. Reduction then only subtracts integer multiples of earlier columns, so
// every intermediate basis is an integer basis of the same lattice, and the
// results can be checked exactly.

// LatticeContext records one reduction and search of a random basis
type LatticeContext struct {
	// Computed before reducing
	Dimension  int     `json:"dimension"`
	EntryRange int     `json:"entry_range"`
	Seed       int64   `json:"seed"`
	Input      []int64 `json:"input"`

	// Computed by reducing
	Reduced                   []int64 `json:"reduced"`
	Transform                 []int64 `json:"transform"`
	Iterations                int     `json:"iterations"`
	Swaps                     int     `json:"swaps"`
	SatisfiesLovasz           bool    `json:"satisfies_lovasz"`
	GramDeterminant           string  `json:"gram_determinant"`
	SameVolume                bool    `json:"same_volume"`
	IsBasisChange             bool    `json:"is_basis_change"`
	OrthogonalityDefectBefore float64 `json:"orthogonality_defect_before"`
	OrthogonalityDefectAfter  float64 `json:"orthogonality_defect_after"`

	// Computed by searching the first (up to) two reduced columns
	Bound                int       `json:"bound"`
	SearchedColumns      []int     `json:"searched_columns"`
	ShortestCoefficients []int     `json:"shortest_coefficients"`
	ShortestVector       []float64 `json:"shortest_vector"`
	ShortestNorm         float64   `json:"shortest_norm"`
}

// NewLatticeContext returns a context holding a random dim x dim basis described
// in the file-level comments. The same seed always yields the same basis.
func NewLatticeContext(dim, entryRange int, seed int64) (*LatticeContext, error) {
	if dim < 1 || entryRange < 1 {
		return nil, fmt.Errorf(
			"NewLatticeContext: dimension %d and entry range %d must be positive", dim, entryRange,
		)
	}
	rng := rand.New(rand.NewSource(seed))
	input := make([]int64, dim*dim)
	for i := 0; i < dim; i++ {
		diagonal := int64(1 + rng.Intn(entryRange))
		if rng.Intn(2) == 1 {
			diagonal = -diagonal
		}
		input[i*dim+i] = diagonal
		for j := i + 1; j < dim; j++ {
			input[i*dim+j] = int64(rng.Intn(2*entryRange+1) - entryRange)
		}
	}
	return &LatticeContext{
		Dimension:  dim,
		EntryRange: entryRange,
		Seed:       seed,
		Input:      input,
	}, nil
}

// Run reduces the input basis, checks the result exactly and searches the first
// two reduced columns (one, if the dimension is 1) for the shortest non-zero
// combination with coefficients in [-bound, bound].
func (lc *LatticeContext) Run(bound int) error {
	caller := "LatticeContext.Run"
	original, err := lll.NewBasisFromInt64(lc.Input, lc.Dimension, lc.Dimension)
	if err != nil {
		return fmt.Errorf("%s: could not create the input basis: %w", caller, err)
	}
	lc.OrthogonalityDefectBefore, err = lll.OrthogonalityDefect(original)
	if err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}

	// Reduce
	var result *lll.Result
	result, err = lll.ReduceWithTransform(original, nil)
	if err != nil {
		return fmt.Errorf("%s: could not reduce the input basis: %w", caller, err)
	}
	lc.Iterations = result.Iterations
	lc.Swaps = result.Swaps
	lc.SatisfiesLovasz = lll.SatisfiesLovasz(result)
	lc.Reduced, err = util.CopyFloat64ToInt64(result.Basis.Values(), caller)
	if err != nil {
		return err
	}
	lc.Transform, err = util.CopyFloat64ToInt64(result.T.Values(), caller)
	if err != nil {
		return err
	}
	lc.OrthogonalityDefectAfter, err = lll.OrthogonalityDefect(result.Basis)
	if err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}

	// Check exactly
	err = lc.check(original, result, caller)
	if err != nil {
		return err
	}

	// Search
	lc.Bound = bound
	lc.SearchedColumns = []int{0, 1}[:min(2, lc.Dimension)]
	var shortest *svp.Result
	shortest, err = svp.SearchBasis(result.Basis, lc.SearchedColumns, bound)
	if err != nil {
		return fmt.Errorf("%s: could not search the reduced basis: %w", caller, err)
	}
	lc.ShortestCoefficients = shortest.Coefficients
	lc.ShortestVector = shortest.Vector
	lc.ShortestNorm = shortest.Norm
	return nil
}

func (lc *LatticeContext) check(original *lll.Basis, result *lll.Result, caller string) error {
	caller = fmt.Sprintf("%s-check", caller)
	gramDeterminant, err := exact.GramDeterminant(original)
	if err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}
	lc.GramDeterminant, _ = gramDeterminant.String()
	lc.SameVolume, err = exact.SameVolume(original, result.Basis)
	if err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}
	lc.IsBasisChange, err = exact.IsBasisChange(original, result)
	if err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}
	return nil
}
