// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All algorithms MUST return these sentinels and tests MUST check them
// via errors.Is. No algorithm should panic on user-triggered error conditions.
// Panics are reserved for programmer errors in private helpers (if any).

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary — callers will still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil/shape/index/NaN -> dimension mismatch -> structural violations
// (square, triangular) -> numerical failures (singular, dependent columns).

var (
	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	// Constructors and factories must validate before allocation.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrBadShape is returned when supplied data does not form a valid matrix:
	// an empty or ragged nested sequence, or a flat buffer whose length does
	// not equal rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (construction, Reshape, UnpackHalf).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrIndexOutOfBounds indicates that a row or column index is outside the
	// valid range. Public indexers (At/Set/Row/Col) MUST return this, not panic.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, Mul where a.Cols != b.Rows, a
	// substitution vector of the wrong length, or a Strassen operand whose
	// dimension is not a power of two.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNotTriangular signals that an upper- or lower-triangular matrix was
	// required (substitution, triangular inversion) but the input wasn't.
	ErrNotTriangular = errors.New("matrix: matrix is not triangular")

	// ErrSingular is returned when a zero pivot is encountered during
	// substitution or triangular inversion (intentionally exact: no epsilon).
	ErrSingular = errors.New("matrix: singular system")

	// ErrDependentColumns is returned by Gram-Schmidt orthonormalization when a
	// candidate vector's norm falls below the configured tolerance, i.e. the
	// input columns do not form a linearly independent set.
	ErrDependentColumns = errors.New("matrix: linearly dependent columns")

	// ErrReshapeSize is returned by Reshape when the flat buffer length does
	// not equal newRows*newCols.
	ErrReshapeSize = errors.New("matrix: reshape size mismatch")
)
