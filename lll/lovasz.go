package lll

// Copyright (c) 2025 Colin McRae

import "github.com/predrag3141/LLLSVP/util"

// LovaszViolation returns the smallest k in {1, ..., n-1} for which the reduced
// basis in r violates
//
//	<B_k, B_k> >= 3/4 - mu[k][k]^2
//
// or -1 if there is no such k.
func LovaszViolation(r *Result) int {
	n := r.Basis.numRows
	numCols := r.Basis.numCols
	for k := 1; k < n; k++ {
		squaredNorm := util.ColumnDotProduct(r.Basis.values, numCols, r.Basis.values, numCols, k, k)
		if squaredNorm < LovaszConstant-r.Mu[k][k]*r.Mu[k][k] {
			return k
		}
	}
	return -1
}

// SatisfiesLovasz reports whether every adjacent pair of columns in the reduced
// basis satisfies the Lovász condition.
func SatisfiesLovasz(r *Result) bool {
	return LovaszViolation(r) < 0
}
