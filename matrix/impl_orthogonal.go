// SPDX-License-Identifier: MIT
// Orthogonalization kernels: the Gram-Schmidt process over a matrix's columns
// and the QR decomposition composed from it, plus near-zero snapping used to
// clean decomposition output for display and comparison.
//
// Purpose:
//   - Produce an orthonormal column basis from independent columns.
//   - Factor A into Q (orthonormal) and R (upper triangular) with A = Q·R.
//
// Notes:
//   - Linear dependence is detected through the configured tolerance
//     (DefaultTolerance unless WithTolerance overrides): a post-projection
//     column whose Euclidean norm falls below it aborts the process.
//   - Dot products and norms accumulate in float64; results round to float32
//     once at assembly.

package matrix

import (
	"fmt"
	"math"
)

// GramSchmidt builds an orthonormal basis from the columns of m.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m); resolve Options (tolerance).
//   - Stage 2: Materialize m as *Dense (zero-copy when concrete).
//   - Stage 3: Sequential orthogonalization, left to right. Column 0 is kept
//     as-is; for column j>0, start from a copy of column j and subtract, for
//     every previously produced vector u_k (k<j), the projection
//     (u_k·v / u_k·u_k)·u_k. A post-projection Euclidean norm below the
//     tolerance aborts with ErrDependentColumns.
//   - Stage 4: Normalize every produced vector to unit length and assemble
//     them as the columns of a fresh result.
//
// Behavior highlights:
//   - Pure function; operands never mutated; single result allocation.
//   - Projections and norms accumulate in float64 and round once per entry.
//   - The zeroth column is also norm-checked: a zero leading column is
//     trivially dependent and would otherwise normalize to NaN.
//
// Inputs:
//   - m    : matrix (r×c) whose columns are the input vectors, r ≥ c for a
//     linearly independent set.
//   - opts : optional WithTolerance(t) for the dependence threshold.
//
// Returns:
//   - Matrix: new Dense (r×c) with orthonormal columns spanning the same
//     space as m's columns.
//   - error : validation or dependence failures wrapped with opGramSchmidt.
//
// Errors:
//   - ErrNilMatrix        (nil input).
//   - ErrDependentColumns (post-projection norm below tolerance; the wrapped
//     message names the offending column).
//
// Determinism:
//   - Fixed column order 0..c-1 and fixed projection order k=0..j-1; results
//     depend only on the input values and tolerance.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c) for the basis plus the result.
//
// Notes:
//   - Columns exceeding the row count are always dependent; the process
//     fails on column r at the latest.
//
// AI-Hints:
//   - Raise the tolerance for noisy data to reject near-parallel columns
//     early; the default 1e-6 suits well-scaled float32 input.
func GramSchmidt(m Matrix, opts ...Option) (Matrix, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opGramSchmidt, err)
	}

	// Resolve numeric policy (dependence tolerance)
	o := gatherOptions(opts...)

	// Materialize; *Dense passes through without copying.
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opGramSchmidt, err)
	}

	rows, cols := dm.r, dm.c
	ortho := make([][]float64, 0, cols) // produced orthogonal vectors
	norms := make([]float64, 0, cols)   // cached Euclidean norms

	var (
		i, j, k  int       // loop iterators (deterministic order)
		v        []float64 // working copy of column j
		u        []float64 // previously produced vector
		num, den float64   // u·v and u·u accumulators
		coef     float64   // projection coefficient
		norm     float64   // Euclidean norm of the working vector
	)
	for j = 0; j < cols; j++ {
		// Start from a copy of column j (widened for accumulation).
		v = make([]float64, rows)
		for i = 0; i < rows; i++ {
			v[i] = float64(dm.data[i*cols+j])
		}

		// Subtract the projection onto every previously produced vector.
		for k = 0; k < j; k++ {
			u = ortho[k]
			num, den = NormZero, NormZero
			for i = 0; i < rows; i++ {
				num += u[i] * v[i]
				den += u[i] * u[i]
			}
			coef = num / den
			for i = 0; i < rows; i++ {
				v[i] -= coef * u[i]
			}
		}

		// Dependence check: a near-zero remainder means column j lies in the
		// span of the previous columns.
		norm = NormZero
		for i = 0; i < rows; i++ {
			norm += v[i] * v[i]
		}
		norm = math.Sqrt(norm)
		if norm < o.float64Tol() {
			return nil, matrixErrorf(opGramSchmidt, fmt.Errorf("column %d: %w", j, ErrDependentColumns))
		}

		ortho = append(ortho, v)
		norms = append(norms, norm)
	}

	// Normalize every vector to unit length and assemble as columns.
	res := &Dense{r: rows, c: cols, data: make([]float32, rows*cols)}
	for j = 0; j < cols; j++ {
		u, norm = ortho[j], norms[j]
		for i = 0; i < rows; i++ {
			res.data[i*cols+j] = float32(u[i] / norm)
		}
	}

	return res, nil
}

// QR factors m into an orthonormal Q and an upper-triangular R with m = Q·R.
//
// Implementation:
//   - Stage 1: Q = GramSchmidt(m, opts...) — orthonormal columns.
//   - Stage 2: R = Mul(Transpose(Q), m) — upper triangular because column j
//     of m lies in the span of Q's first j+1 columns.
//
// Behavior highlights:
//   - Pure composition of public kernels; no additional numeric policy beyond
//     the Gram-Schmidt tolerance.
//
// Inputs:
//   - m    : matrix (r×c) with linearly independent columns.
//   - opts : optional WithTolerance(t), forwarded to GramSchmidt.
//
// Returns:
//   - q  : new Dense (r×c) with orthonormal columns.
//   - r  : new Dense (c×c), upper triangular within float rounding.
//   - err: failures from the composed kernels wrapped with opQR.
//
// Errors:
//   - ErrNilMatrix        (nil input).
//   - ErrDependentColumns (columns do not form an independent set).
//
// Determinism:
//   - Inherited from GramSchmidt, Transpose, and Mul (all fixed-order).
//
// Complexity:
//   - Time O(r*c²) for Q plus O(c²*r) for R, Space O(r*c + c²).
//
// Notes:
//   - R's strict lower triangle carries rounding residue rather than exact
//     zeros; snap it with RoundNearZero before asserting triangularity.
//
// AI-Hints:
//   - Validate round trips with Mul(q, r) ≈ m and Mul(Transpose(q), q) ≈ I.
func QR(m Matrix, opts ...Option) (q, r Matrix, err error) {
	// Q: orthonormal basis of m's columns.
	q, err = GramSchmidt(m, opts...)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	// R = Qᵀ · m.
	qt, err := Transpose(q)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	r, err = Mul(qt, m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	return q, r, nil
}

// RoundNearZero returns a copy of m with every entry whose magnitude falls
// below the tolerance (DefaultTolerance unless WithTolerance overrides)
// snapped to exact zero. Other entries are untouched.
//
// Typical use is cleaning decomposition output: the strict lower triangle of
// a QR's R factor carries float residue that this pass removes before
// triangularity checks or display.
//
// Errors:
//   - ErrNilMatrix (nil input); element access failures for non-Dense inputs,
//     wrapped with opRound.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func RoundNearZero(m Matrix, opts ...Option) (Matrix, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRound, err)
	}

	// Resolve numeric policy (snap radius)
	o := gatherOptions(opts...)
	tol := o.float64Tol()

	// Materialize; *Dense passes through without copying.
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opRound, err)
	}

	// Flat pass: copy with snapping.
	res := &Dense{r: dm.r, c: dm.c, data: make([]float32, len(dm.data))}
	var v float32
	for idx := range dm.data {
		v = dm.data[idx]
		if math.Abs(float64(v)) < tol {
			v = 0 // snap to exact zero
		}
		res.data[idx] = v
	}

	return res, nil
}
