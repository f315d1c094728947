// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating nil/shape/triangularity checks here.
//  - Return plain sentinel errors (no wrapping) so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Triangularity checks scan only the relevant triangle, O(n²) worst case.
//
// AI-Hints:
//  - Centralizing validators eliminates inconsistent guard logic across files.
//  - Use ValidateUpperTriangular/ValidateLowerTriangular before substitution kernels to fail fast.
//  - Use ValidateVecLen for substitution right-hand sides to avoid ad hoc length code.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).
//  - Each validator describes what it validates and what it assumes (e.g. no nil check).

package matrix

import (
	"fmt"
	"math"
)

// zeroTol is the exact-zero guard used by triangularity and pivot checks.
// We keep it explicit to avoid "magic numbers" inline; the structural checks
// are intentionally exact (no epsilon), matching the substitution contract.
const zeroTol = 0.0

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	// Provides consistent error tagging for all validation errors.
	return fmt.Errorf("%s: %w", tag, err)
}

// isNonFinite32 reports whether v is NaN or ±Inf. Stdlib math operates on
// float64, so the check widens once; widening is exact for every float32.
func isNonFinite32(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Inputs: Matrix interface value.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	// If the matrix is nil, fail with the unified sentinel.
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix) // single source of truth for "nil argument"
	}

	// Otherwise accept.
	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Inputs: Two Matrix values.
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
// AI-Hints: Use for Add/Sub kernels and compatibility guards.
func ValidateSameShape(a, b Matrix) error {
	// Execute comparisons
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: both operands non-nil, then same shape.
//
// Inputs: Two Matrix values.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	// Check nils in fixed order
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	// Then compare shapes
	return ValidateSameShape(a, b)
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Implementation: Assumes m is not nil (caller must ensure).
// Errors: ErrNonSquare if rows != cols.
// Complexity: O(1).
// AI-Hints: Use before triangular inversion and Strassen.
func ValidateSquare(m Matrix) error {
	// Check the square condition explicitly.
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSquareNonNil – Composite: non-nil, then square.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	return ValidateSquare(m)
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float32, n int) error {
	// Disallow nil vectors to avoid subtle bugs in substitution routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix) // we reuse the existing sentinel for "nil argument"
	}
	// Check the exact expected length.
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch) // vector length must match the row count
	}

	return nil
}

// ValidateMulCompatible – Ensures a.Cols == b.Rows for matrix products.
//
// Implementation: NotNil for both operands first, then the inner dimension.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	// Check nils in fixed order
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	// Inner dimensions must agree
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateUpperTriangular – Composite: non-nil, then strictly-below-diagonal
// entries all zero (square required; non-square can never be triangular).
//
// Errors: ErrNilMatrix, ErrNotTriangular (wraps At failures from custom
// implementations as-is).
// Complexity: O(n²) worst case, lower-triangle scan only.
func ValidateUpperTriangular(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	ok, err := IsUpperTriangular(m)
	if err != nil {
		return err
	}
	if !ok {
		return validatorErrorf("ValidateUpperTriangular", ErrNotTriangular)
	}

	return nil
}

// ValidateLowerTriangular – Composite: non-nil, then strictly-above-diagonal
// entries all zero (square required; non-square can never be triangular).
//
// Errors: ErrNilMatrix, ErrNotTriangular.
// Complexity: O(n²) worst case, upper-triangle scan only.
func ValidateLowerTriangular(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	ok, err := IsLowerTriangular(m)
	if err != nil {
		return err
	}
	if !ok {
		return validatorErrorf("ValidateLowerTriangular", ErrNotTriangular)
	}

	return nil
}

// IsUpperTriangular reports whether m is square with every entry strictly
// below the main diagonal equal to exact zero.
//
// Implementation:
//   - Stage 1: ValidateNotNil; non-square returns (false, nil) — not an error.
//   - Stage 2: Fast-path scans the *Dense lower triangle via flat indexing;
//     fallback reads through At with wrapped failures.
//
// Returns:
//   - bool : true iff square and lower triangle is all zeros.
//   - error: ErrNilMatrix, or At failures from custom implementations.
//
// Determinism: fixed i→j scan of the strict lower triangle.
// Complexity: O(n²) worst case, early exit on first non-zero.
func IsUpperTriangular(m Matrix) (bool, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return false, err
	}
	// Non-square matrices are never triangular
	n := m.Rows()
	if n != m.Cols() {
		return false, nil
	}

	var i, j int
	// Fast-path: flat scan of the strict lower triangle
	if dm, ok := m.(*Dense); ok {
		var base int
		for i = 1; i < n; i++ {
			base = i * n
			for j = 0; j < i; j++ {
				if dm.data[base+j] != zeroTol {
					return false, nil
				}
			}
		}
		return true, nil
	}

	// Fallback: generic interface scan
	var v float32
	var err error
	for i = 1; i < n; i++ {
		for j = 0; j < i; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return false, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			if v != zeroTol {
				return false, nil
			}
		}
	}

	return true, nil
}

// IsLowerTriangular reports whether m is square with every entry strictly
// above the main diagonal equal to exact zero.
//
// Implementation mirrors IsUpperTriangular with the opposite triangle.
// Complexity: O(n²) worst case, early exit on first non-zero.
func IsLowerTriangular(m Matrix) (bool, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return false, err
	}
	// Non-square matrices are never triangular
	n := m.Rows()
	if n != m.Cols() {
		return false, nil
	}

	var i, j int
	// Fast-path: flat scan of the strict upper triangle
	if dm, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < n-1; i++ {
			base = i * n
			for j = i + 1; j < n; j++ {
				if dm.data[base+j] != zeroTol {
					return false, nil
				}
			}
		}
		return true, nil
	}

	// Fallback: generic interface scan
	var v float32
	var err error
	for i = 0; i < n-1; i++ {
		for j = i + 1; j < n; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return false, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			if v != zeroTol {
				return false, nil
			}
		}
	}

	return true, nil
}

// IsIntMatrix reports whether every entry of m is an integral value
// (no fractional part). Any shape is accepted.
//
// Returns:
//   - bool : true iff every entry equals its own truncation.
//   - error: ErrNilMatrix, or At failures from custom implementations.
//
// Determinism: fixed flat / i→j scan order.
// Complexity: O(r*c), early exit on first fractional entry.
func IsIntMatrix(m Matrix) (bool, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return false, err
	}

	// Fast-path: flat scan
	if dm, ok := m.(*Dense); ok {
		for _, v := range dm.data {
			if float64(v) != math.Trunc(float64(v)) {
				return false, nil
			}
		}
		return true, nil
	}

	// Fallback: generic interface scan
	rows, cols := m.Rows(), m.Cols()
	var i, j int
	var v float32
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return false, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			if float64(v) != math.Trunc(float64(v)) {
				return false, nil
			}
		}
	}

	return true, nil
}
