// SPDX-License-Identifier: MIT
// BLAS-backed multiplication. GemmMul delegates C = A × B to gonum's float32
// GEMM, wrapping the package's flat row-major buffers as blas32.General views
// without copying. Validation and error taxonomy match Mul exactly, so the
// two engines are drop-in interchangeable.

package matrix

import (
	"gonum.org/v1/gonum/blas"
	b32 "gonum.org/v1/gonum/blas/blas32"
)

// GemmMul performs matrix multiplication C = A × B through gonum's single
// precision GEMM.
//
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Materialize operands as *Dense (zero-copy when concrete).
//   - Stage 3: Wrap the operand buffers and a fresh result buffer as
//     blas32.General views (row-major, Stride = Cols) and run
//     Gemm(NoTrans, NoTrans, 1, A, B, 0, C).
//
// Behavior highlights:
//   - Operand views are read-only for Gemm with beta = 0; only the freshly
//     allocated result buffer is written. Operands are never mutated.
//   - One allocation for C; the views alias existing storage.
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - Matrix: new Dense C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Deterministic for a given gonum build; the accumulation schedule is
//     the library's, not this package's.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// Notes:
//   - Accumulation stays in float32 inside GEMM, while Mul widens to
//     float64: the engines agree within float rounding, not bit-for-bit.
//
// AI-Hints:
//   - Prefer GemmMul for large products; Mul for small shapes where call
//     overhead dominates, or when the float64-accumulator result is wanted.
func GemmMul(a, b Matrix) (Matrix, error) {
	// Validate inputs via canonical validator
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opGemm, err)
	}

	// Materialize operands; *Dense inputs pass through without copying.
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opGemm, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opGemm, err)
	}

	// Fresh result storage; the operand views below alias without copying.
	res := &Dense{r: da.r, c: db.c, data: make([]float32, da.r*db.c)}

	ga := b32.General{Rows: da.r, Cols: da.c, Data: da.data, Stride: da.c}
	gb := b32.General{Rows: db.r, Cols: db.c, Data: db.data, Stride: db.c}
	gc := b32.General{Rows: da.r, Cols: db.c, Data: res.data, Stride: db.c}

	// C = 1*A*B + 0*C
	b32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)

	return res, nil
}
