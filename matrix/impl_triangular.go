// SPDX-License-Identifier: MIT
// Triangular system kernels: forward/back substitution over a coefficient
// matrix of the matching triangular shape, and triangular inversion built on
// repeated substitution against identity rows.
//
// Purpose:
//   - Solve U·x = b (upper) and L·x = b (lower) by direct substitution.
//   - Invert triangular matrices without a general-purpose decomposition.
//
// Notes:
//   - Triangularity is established by the central predicates before any
//     arithmetic; a zero diagonal entry surfaces as ErrSingular the moment
//     the substitution reaches it.
//   - Pivot checks are exact (== ZeroPivot): near-zero pivots divide through
//     and propagate large values rather than failing, matching the exact-zero
//     triangularity test in the validators.

package matrix

import "fmt"

// solveUpperDense solves U·x = b for a concrete upper-triangular Dense.
// Rows are processed last to first; for row i the already-solved unknowns at
// columns > i are accumulated (float64), subtracted from b[i], and the
// remainder divided by the diagonal entry. No validation; facades enforce
// triangularity and vector length, then wrap errors with their own tag.
// Complexity: O(n²) time, O(n) space for the solution.
func solveUpperDense(u *Dense, b []float32) ([]float32, error) {
	n := u.r
	x := make([]float32, n)

	var (
		i, j  int     // loop iterators (deterministic order)
		base  int     // row offset into the flat buffer
		sum   float64 // accumulated contribution of solved unknowns
		pivot float32 // diagonal entry for row i
	)
	for i = n - 1; i >= 0; i-- {
		base = i * n
		// Accumulate the weighted sum of already-solved unknowns.
		sum = ZeroSum
		for j = i + 1; j < n; j++ {
			sum += float64(u.data[base+j]) * float64(x[j])
		}
		// Divide the remainder by the diagonal entry.
		pivot = u.data[base+i]
		if pivot == ZeroPivot {
			return nil, fmt.Errorf("zero diagonal at row %d: %w", i, ErrSingular)
		}
		x[i] = float32((float64(b[i]) - sum) / float64(pivot))
	}

	return x, nil
}

// solveLowerDense solves L·x = b for a concrete lower-triangular Dense.
// Mirror image of solveUpperDense: rows first to last, already-solved
// unknowns at columns < i.
// Complexity: O(n²) time, O(n) space for the solution.
func solveLowerDense(l *Dense, b []float32) ([]float32, error) {
	n := l.r
	x := make([]float32, n)

	var (
		i, j  int
		base  int
		sum   float64
		pivot float32
	)
	for i = 0; i < n; i++ {
		base = i * n
		// Accumulate the weighted sum of already-solved unknowns.
		sum = ZeroSum
		for j = 0; j < i; j++ {
			sum += float64(l.data[base+j]) * float64(x[j])
		}
		// Divide the remainder by the diagonal entry.
		pivot = l.data[base+i]
		if pivot == ZeroPivot {
			return nil, fmt.Errorf("zero diagonal at row %d: %w", i, ErrSingular)
		}
		x[i] = float32((float64(b[i]) - sum) / float64(pivot))
	}

	return x, nil
}

// BackSubstitution solves the upper-triangular system U·x = b and returns the
// solution vector x.
//
// Implementation:
//   - Stage 1: ValidateUpperTriangular(m) (predicate-backed; rectangular
//     matrices are not triangular), then ValidateVecLen(b, rows).
//   - Stage 2: Materialize m as *Dense (zero-copy when concrete).
//   - Stage 3: Process rows last to first; for row i accumulate the weighted
//     sum of already-solved unknowns at columns > i, subtract from b[i], and
//     divide by the diagonal entry.
//
// Behavior highlights:
//   - Pure function: operands are never mutated; x is fresh storage.
//   - Accumulation widens to float64; each unknown rounds once to float32.
//
// Inputs:
//   - m: upper-triangular square matrix (n×n).
//   - b: right-hand side of length n.
//
// Returns:
//   - []float32: solution x with U·x = b.
//   - error    : validation or singularity failures wrapped with opBackSub.
//
// Errors:
//   - ErrNilMatrix         (nil matrix or nil b).
//   - ErrNotTriangular     (m fails the upper-triangular predicate).
//   - ErrDimensionMismatch (len(b) != rows).
//   - ErrSingular          (zero diagonal entry reached during the sweep).
//
// Determinism:
//   - Fixed row order n-1..0; accumulation order j=i+1..n-1.
//
// Complexity:
//   - Time O(n²) after the O(n²) triangularity check, Space O(n).
//
// Notes:
//   - The singularity check is exact: only a stored 0 diagonal raises
//     ErrSingular; tiny pivots divide through and may overflow to ±Inf.
//
// AI-Hints:
//   - Pair with QR: solve R·x = Qᵀb for least-squares style pipelines.
func BackSubstitution(m Matrix, b []float32) ([]float32, error) {
	// Validate coefficient matrix shape (predicate rejects rectangular too).
	if err := ValidateUpperTriangular(m); err != nil {
		return nil, matrixErrorf(opBackSub, err)
	}
	// Validate right-hand side length.
	if err := ValidateVecLen(b, m.Rows()); err != nil {
		return nil, matrixErrorf(opBackSub, err)
	}

	// Materialize; *Dense passes through without copying.
	du, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opBackSub, err)
	}

	// Sweep rows last → first.
	x, err := solveUpperDense(du, b)
	if err != nil {
		return nil, matrixErrorf(opBackSub, err)
	}

	return x, nil
}

// ForwardSubstitution solves the lower-triangular system L·x = b and returns
// the solution vector x.
//
// Implementation:
//   - Stage 1: ValidateLowerTriangular(m), then ValidateVecLen(b, rows).
//   - Stage 2: Materialize m as *Dense (zero-copy when concrete).
//   - Stage 3: Process rows first to last; for row i accumulate the weighted
//     sum of already-solved unknowns at columns < i, subtract from b[i], and
//     divide by the diagonal entry.
//
// Behavior highlights:
//   - Pure function: operands are never mutated; x is fresh storage.
//   - Accumulation widens to float64; each unknown rounds once to float32.
//
// Inputs:
//   - m: lower-triangular square matrix (n×n).
//   - b: right-hand side of length n.
//
// Returns:
//   - []float32: solution x with L·x = b.
//   - error    : validation or singularity failures wrapped with opForwardSub.
//
// Errors:
//   - ErrNilMatrix         (nil matrix or nil b).
//   - ErrNotTriangular     (m fails the lower-triangular predicate).
//   - ErrDimensionMismatch (len(b) != rows).
//   - ErrSingular          (zero diagonal entry reached during the sweep).
//
// Determinism:
//   - Fixed row order 0..n-1; accumulation order j=0..i-1.
//
// Complexity:
//   - Time O(n²) after the O(n²) triangularity check, Space O(n).
//
// Notes:
//   - The singularity check is exact, mirroring BackSubstitution.
//
// AI-Hints:
//   - Pair with a Cholesky/LU-style factor when one is available; this kernel
//     only needs element access and the triangular contract.
func ForwardSubstitution(m Matrix, b []float32) ([]float32, error) {
	// Validate coefficient matrix shape (predicate rejects rectangular too).
	if err := ValidateLowerTriangular(m); err != nil {
		return nil, matrixErrorf(opForwardSub, err)
	}
	// Validate right-hand side length.
	if err := ValidateVecLen(b, m.Rows()); err != nil {
		return nil, matrixErrorf(opForwardSub, err)
	}

	// Materialize; *Dense passes through without copying.
	dl, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opForwardSub, err)
	}

	// Sweep rows first → last.
	x, err := solveLowerDense(dl, b)
	if err != nil {
		return nil, matrixErrorf(opForwardSub, err)
	}

	return x, nil
}

// InvertUpper computes the inverse of an upper-triangular matrix by solving
// one triangular system per identity row.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m) (square first, so rectangular inputs
//     report ErrNonSquare), then ValidateUpperTriangular(m).
//   - Stage 2: Materialize m as *Dense.
//   - Stage 3: For each identity row e_i, taken last to first, solve
//     U·x = e_i by back substitution; each solution is column i of U⁻¹.
//   - Stage 4: Reverse the collected solutions into natural order, reassemble
//     them as rows, and transpose: the result is U⁻¹ (itself upper
//     triangular).
//
// Behavior highlights:
//   - Pure function; one fresh allocation for the assembled inverse plus one
//     for its transpose.
//   - Any zero diagonal entry aborts with ErrSingular before assembly.
//
// Inputs:
//   - m: upper-triangular square matrix (n×n) with non-zero diagonal.
//
// Returns:
//   - Matrix: new Dense U⁻¹ with U⁻¹·U ≈ I within float rounding.
//   - error : validation or singularity failures wrapped with opInvertUpper.
//
// Errors:
//   - ErrNilMatrix     (nil input).
//   - ErrNonSquare     (rectangular input).
//   - ErrNotTriangular (square but not upper triangular).
//   - ErrSingular      (zero diagonal entry).
//
// Determinism:
//   - Fixed solve order e_{n-1}..e_0 and fixed assembly order.
//
// Complexity:
//   - Time O(n³) (n back substitutions of O(n²)), Space O(n²).
//
// Notes:
//   - General (non-triangular) inversion is out of scope; use QR or an
//     external decomposition for full systems.
//   - NaN/Inf propagate: ill-conditioned diagonals overflow rather than fail.
//
// AI-Hints:
//   - Verify round trips with Mul(InvertUpper(U), U) ≈ Identity(n) in tests.
func InvertUpper(m Matrix) (Matrix, error) {
	// Validate: square first, then the triangular contract.
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInvertUpper, err)
	}
	if err := ValidateUpperTriangular(m); err != nil {
		return nil, matrixErrorf(opInvertUpper, err)
	}

	// Materialize; *Dense passes through without copying.
	du, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opInvertUpper, err)
	}

	// Solve U·x = e_i for identity rows, last → first.
	n := du.r
	sols := make([][]float32, 0, n)
	var (
		i int       // identity row index
		e []float32 // right-hand side (identity row)
		x []float32 // solution (column i of the inverse)
	)
	for i = n - 1; i >= 0; i-- {
		e = make([]float32, n)
		e[i] = 1
		x, err = solveUpperDense(du, e)
		if err != nil {
			return nil, matrixErrorf(opInvertUpper, err)
		}
		sols = append(sols, x)
	}

	// Reverse into natural order: sols[i] becomes column i of the inverse.
	for l, r := 0, len(sols)-1; l < r; l, r = l+1, r-1 {
		sols[l], sols[r] = sols[r], sols[l]
	}

	// Reassemble the solutions as rows, then transpose into the inverse.
	inv := &Dense{r: n, c: n, data: make([]float32, n*n)}
	for i = 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], sols[i])
	}

	return transposeDense(inv), nil
}

// InvertLower computes the inverse of a lower-triangular matrix. Mirror image
// of InvertUpper: identity rows are solved first to last by forward
// substitution, so the collected solutions arrive already in natural order
// and no reversal is needed before reassembly and transpose.
//
// Inputs:
//   - m: lower-triangular square matrix (n×n) with non-zero diagonal.
//
// Returns:
//   - Matrix: new Dense L⁻¹ with L⁻¹·L ≈ I within float rounding.
//   - error : validation or singularity failures wrapped with opInvertLower.
//
// Errors:
//   - ErrNilMatrix     (nil input).
//   - ErrNonSquare     (rectangular input).
//   - ErrNotTriangular (square but not lower triangular).
//   - ErrSingular      (zero diagonal entry).
//
// Complexity:
//   - Time O(n³), Space O(n²).
func InvertLower(m Matrix) (Matrix, error) {
	// Validate: square first, then the triangular contract.
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInvertLower, err)
	}
	if err := ValidateLowerTriangular(m); err != nil {
		return nil, matrixErrorf(opInvertLower, err)
	}

	// Materialize; *Dense passes through without copying.
	dl, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opInvertLower, err)
	}

	// Solve L·x = e_i for identity rows, first → last (natural order).
	n := dl.r
	inv := &Dense{r: n, c: n, data: make([]float32, n*n)}
	var (
		i int
		e []float32
		x []float32
	)
	for i = 0; i < n; i++ {
		e = make([]float32, n)
		e[i] = 1
		x, err = solveLowerDense(dl, e)
		if err != nil {
			return nil, matrixErrorf(opInvertLower, err)
		}
		// Row i of the assembly is column i of the inverse.
		copy(inv.data[i*n:(i+1)*n], x)
	}

	return transposeDense(inv), nil
}
