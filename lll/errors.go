package lll

// Copyright (c) 2025 Colin McRae

import "errors"

// Sentinel errors returned by this package. Callers match them with errors.Is;
// returned errors wrap them with the chain of callers that detected the problem.
var (
	// ErrDegenerateBasis is returned when a column has a zero or numerically
	// negligible squared length, or when a projection denominator vanishes.
	ErrDegenerateBasis = errors.New("lll: degenerate basis")

	// ErrDimensionMismatch is returned for shapes the reducer cannot work with,
	// e.g. fewer columns than rows or a value slice that does not match the
	// requested dimensions.
	ErrDimensionMismatch = errors.New("lll: dimension mismatch")

	// ErrNotFinite is returned when a basis entry is NaN or infinite.
	ErrNotFinite = errors.New("lll: NaN or Inf encountered")

	// ErrNoConvergence is returned when the main loop exceeds the configured
	// number of iterations.
	ErrNoConvergence = errors.New("lll: reduction did not converge")
)
