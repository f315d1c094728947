// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, scalar scaling, a concurrent
// addition variant, naive (blocked dot-product) multiplication, Strassen
// recursive multiplication, and transpose. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels (signatures) used across the package.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Implementations live in dedicated kernel files (same package) to keep roles clean.
//   - All kernels must use central validators and return plain sentinels or wrapped via matrixErrorf at the facade.
//   - Every kernel returns a freshly allocated result; operands are never mutated
//     (SetSubmatrix on the result is the only in-place write, and only on storage
//     this package just allocated).

package matrix

import (
	"fmt"
	"sync"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in substitution/inversion routines.
const ZeroPivot = 0.0

// mulUnroll is the dot-product accumulation block width for the naive multiply:
// the inner loop consumes up to mulUnroll terms per block, the trailing partial
// block naturally shorter. Chosen to keep both streamed rows inside L1.
const mulUnroll = 16

// strassenBase is the dimension at or below which the Strassen recursion
// falls back to the naive multiply (recursion overhead dominates below it).
const strassenBase = 2

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opScale       = "Scale"
	opAddParallel = "AddParallel"
	opMul         = "Mul"
	opStrassen    = "StrassenMul"
	opTranspose   = "Transpose"
	opBackSub     = "BackSubstitution"
	opForwardSub  = "ForwardSubstitution"
	opInvertUpper = "InvertUpper"
	opInvertLower = "InvertLower"
	opGramSchmidt = "GramSchmidt"
	opQR          = "QR"
	opRound       = "RoundNearZero"
	opGemm        = "GemmMul"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Behavior highlights:
//   - Preserves the underlying sentinel/type for errors.Is/errors.As.
//   - Keeps human-readable operation prefixes (e.g., "Add|Sub", "StrassenMul").
//
// Inputs:
//   - tag: operation name/label (use package-level op* constants; no magic strings).
//   - err: underlying non-nil error to wrap.
//
// Returns:
//   - error: a non-nil error that formats as "<tag>: <underlying>" and still matches Is/As.
//
// Errors:
//   - None produced here; this function assumes err != nil. Caller responsibility.
//
// Determinism:
//   - Fully deterministic formatting; no data-dependent branches.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// Notes:
//   - Wrapping nil with %w yields a non-nil error that wraps a nil cause; do not do this.
//   - Centralizes formatting so all kernels expose uniform error surfaces.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
//   - Keep `tag` to the canonical constants to simplify log/search pipelines.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
// Internal helper for Add/Sub to share validation, allocation, and fast-path.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Behavior highlights:
//   - Deterministic loop orders (flat in fast-path; i→j in fallback).
//   - Single result allocation; no inner-loop temps beyond scalars.
//   - Inputs remain immutable.
//
// Inputs:
//   - a, b: conformable matrices (non-nil; same rows/cols).
//   - sign: +1 for Add, −1 for Sub (callers must enforce).
//   - opTag: opAdd for Add, opSub for Sub (for error wrapping).
//
// Returns:
//   - Matrix: newly allocated Dense with the result.
//   - error : validation/allocation failures wrapped with opAdd/opSub.
//
// Errors:
//   - ErrNilMatrix          (from ValidateBinarySameShape when a or b is nil).
//   - ErrDimensionMismatch  (from ValidateBinarySameShape when shapes differ).
//   - Allocation errors     (from NewDense).
//
// Determinism:
//   - Fast-path: single flat slice walk 0..(r*c−1).
//   - Fallback: fixed nested loops i=0..r−1, j=0..c−1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
//
// Notes:
//   - sign stays float32 so the fast path performs the exact single-precision
//     addition/subtraction the concurrent variant must reproduce bit-for-bit.
//   - The function is unexported by design; invariants are enforced by Add/Sub.
//
// AI-Hints:
//   - To trigger fast-path, pass concrete *Dense operands (avoid interface wrappers).
//   - If you need in-place add/sub, implement a dedicated kernel; do not modify inputs here.
func addSub(a, b Matrix, sign float32, opTag string) (Matrix, error) {
	// Validate shapes match
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// direct element-wise combination on backing slices
			length := rows * cols
			for idx := 0; idx < length; idx++ { // deterministic 0..n-1
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int       // loop iterators (deterministic order)
	var av, bv float32 // element temporaries
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			// Read a(i,j).
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			// Read b(i,j).
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			// Write result(i,j).
			if err = res.Set(i, j, av+sign*bv); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	// Return result
	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Implementation:
//   - Stage 1: Validate both operands are non-nil and have identical shapes.
//   - Stage 2: If both are *Dense, run a single flat loop; otherwise fall back to i→j.
//
// Behavior highlights:
//   - Deterministic loop order; no hidden aliasing; one allocation for the result.
//
// Inputs:
//   - A: left matrix operand (any Matrix).
//   - B: right matrix operand (any Matrix) with the same shape as A.
//
// Returns:
//   - Matrix: a new Dense with C[i,j] = A[i,j] + B[i,j].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Determinism:
//   - Flat 0..n-1 for *Dense; i→j for the generic path.
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
//
// Notes:
//   - Inputs are never mutated; result is always a freshly allocated Dense.
//
// AI-Hints:
//   - Prefer *Dense inputs for tight loops and contiguous data; hide concrete types
//     (e.g., via wrappers) to force the fallback path in tests or when needed.
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Implementation:
//   - Stage 1: Validate both operands are non-nil and have identical shapes.
//   - Stage 2: If both are *Dense, run a single flat loop; otherwise fall back to i→j.
//
// Behavior highlights:
//   - Deterministic loop order; no hidden aliasing; one allocation for the result.
//
// Inputs:
//   - A: left matrix operand (any Matrix).
//   - B: right matrix operand (any Matrix) with the same shape as A.
//
// Returns:
//   - Matrix: a new Dense with C[i,j] = A[i,j] - B[i,j].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Determinism:
//   - Flat 0..n-1 for *Dense; i→j for the generic path.
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
//
// Notes:
//   - Inputs are never mutated; result is always a freshly allocated Dense.
//
// AI-Hints:
//   - Prefer *Dense inputs for tight loops and contiguous data; hide concrete types
//     (e.g., via wrappers) to force the fallback path in tests or when needed.
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Scale returns a new matrix whose elements are alpha * m[i,j].
// Input is validated non-nil; the original matrix is never mutated.
// Fast-path multiplies a *Dense backing slice in a single flat loop.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m); reject non-finite alpha. Allocate Dense(rows, cols).
//   - Stage 2: If *Dense, flat multiply; else generic i→j At/Set scaling.
//
// Behavior highlights:
//   - Deterministic traversal order (flat or i→j).
//   - Exactly one allocation for the result, no extra buffers.
//
// Inputs:
//   - m     : non-nil matrix (r×c).
//   - alpha : finite scalar multiplier (NaN/±Inf rejected).
//
// Returns:
//   - Matrix: Dense with elements alpha*m[i,j].
//   - error : validation/allocation failures wrapped with opScale.
//
// Errors:
//   - ErrNilMatrix      (from ValidateNotNil).
//   - ErrNaNInf         (non-finite alpha).
//   - Allocation errors (from NewDense).
//
// Determinism:
//   - Fixed loop orders independent of values.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - The result is a fully independent copy with new storage, never a
//     shape-only view of the operand.
//   - alpha = 0 yields an explicit zero matrix with the same shape.
//
// AI-Hints:
//   - Use *Dense to hit the flat-slice path; keep data contiguous.
//   - Prefer folding `alpha` into the consumer kernel when the scaled copy
//     is used exactly once; otherwise the independent copy pays for reuse.
func Scale(m Matrix, alpha float32) (Matrix, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	// Validate the scalar is finite; a NaN/Inf alpha would flood the result
	// with entries no constructor accepts.
	if isNonFinite32(alpha) {
		return nil, matrixErrorf(opScale, fmt.Errorf("alpha %g: %w", alpha, ErrNaNInf))
	}

	// Allocate result Dense
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	// Fast-path for Dense → Dense
	if dm, ok := m.(*Dense); ok {
		n := rows * cols
		for idx := 0; idx < n; idx++ {
			res.data[idx] = dm.data[idx] * alpha
		}
		return res, nil
	}

	// Fallback: generic interface loop
	var i, j int
	var v float32
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(i, j, v*alpha); err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	// Return result
	return res, nil
}

// AddParallel computes C = A + B concurrently and returns a fresh Dense result
// that is bit-for-bit identical to Add(A, B) for the same inputs.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); resolve Options (worker count).
//   - Stage 2: Materialize both operands as *Dense (zero-copy when already
//     concrete); pre-copy A's storage into the result buffer.
//   - Stage 3: Partition the flat index range [0, size) into `workers`
//     contiguous, disjoint chunks of ceil(size/workers) indices; dispatch one
//     goroutine per non-empty chunk that adds B's chunk into its own slice of
//     the result buffer; join on a single WaitGroup barrier.
//
// Behavior highlights:
//   - Chunks are disjoint by construction: no shared-write hazard, no locks,
//     no ordering requirement between chunks.
//   - Per-index float32 addition is the same operation the sequential kernel
//     performs, so the result is identical regardless of worker count.
//   - The right-hand operand is read-only throughout; the result buffer is
//     the only storage written.
//
// Inputs:
//   - a, b : conformable matrices (non-nil; same rows/cols).
//   - opts : optional WithWorkers(n); the default saturates runtime.NumCPU().
//
// Returns:
//   - Matrix: a new Dense with C[i,j] = A[i,j] + B[i,j].
//   - error : validation/materialization failures wrapped with opAddParallel.
//
// Errors:
//   - ErrNilMatrix          (from ValidateBinarySameShape when a or b is nil).
//   - ErrDimensionMismatch  (from ValidateBinarySameShape when shapes differ).
//   - Element access errors (interface operands only, surfaced before dispatch).
//
// Determinism:
//   - Result is deterministic and equal to Add for every worker count;
//     only the wall-clock profile varies.
//
// Complexity:
//   - Time O(r*c / P) per worker plus dispatch overhead, Space O(r*c).
//
// Notes:
//   - No cancellation or timeout semantics: the call returns only after every
//     chunk completes; no partial results are ever exposed.
//   - Interface operands are materialized synchronously first, so goroutines
//     never touch At/Set and cannot fail.
//
// AI-Hints:
//   - Worth it from roughly a million elements up; below that Add wins on
//     dispatch overhead alone.
//   - Pin WithWorkers(1) to serialize for debugging without changing results.
func AddParallel(a, b Matrix, opts ...Option) (Matrix, error) {
	// Validate shapes match
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAddParallel, err)
	}

	// Resolve execution policy (worker count)
	o := gatherOptions(opts...)

	// Materialize operands; *Dense inputs pass through without copying.
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opAddParallel, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opAddParallel, err)
	}

	// Pre-copy the left operand into the result buffer.
	rows, cols := da.r, da.c
	size := rows * cols
	buf := make([]float32, size)
	copy(buf, da.data)

	// Dispatch one goroutine per non-empty chunk; chunks are contiguous,
	// disjoint, and cover [0, size).
	chunk := (size + o.workers - 1) / o.workers // ceil(size/workers)
	var wg sync.WaitGroup
	var lo, hi int // chunk bounds
	for w := 0; w < o.workers; w++ {
		lo = w * chunk
		hi = lo + chunk
		if hi > size {
			hi = size
		}
		if lo >= hi {
			continue // empty trailing chunk when workers > size
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for idx := lo; idx < hi; idx++ { // own chunk only
				buf[idx] += db.data[idx]
			}
		}(lo, hi)
	}

	// Single barrier: construct the result only after every chunk completes.
	wg.Wait()

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// transposeDense returns mᵀ for a concrete Dense without validation.
// Shared by Transpose, the naive multiply (which streams a transposed right
// operand), and the decomposition kernels. Invariants hold by construction.
// Complexity: O(r*c).
func transposeDense(m *Dense) *Dense {
	res := &Dense{r: m.c, c: m.r, data: make([]float32, m.c*m.r)}

	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, baseSrc int
	for i = 0; i < m.r; i++ {
		baseSrc = i * m.c
		for j = 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[baseSrc+j]
		}
	}

	return res
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Input is validated non-nil; the original matrix is never mutated.
// Fast-path copies *Dense data via flat indexing; fallback uses At/Set.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m). Allocate Dense(cols, rows).
//   - Stage 2: If m is *Dense, use contiguous slice mapping; else generic i→j loop.
//
// Behavior highlights:
//   - Deterministic copy order (dense: row blocks; generic: i→j).
//   - One allocation for the result; no temporaries proportional to size.
//
// Inputs:
//   - m: non-nil matrix (r×c).
//
// Returns:
//   - Matrix: newly allocated Dense(c×r) with mᵀ.
//   - error : validation/allocation failures wrapped with opTranspose.
//
// Errors:
//   - ErrNilMatrix      (from ValidateNotNil).
//   - Allocation errors (from NewDense).
//
// Determinism:
//   - Fixed traversal orders independent of data values.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
//
// Notes:
//   - Transpose is a full materialization: Transpose(Transpose(m)) reproduces
//     m exactly, element for element.
//
// AI-Hints:
//   - Keep operands as *Dense to unlock the flat-copy fast-path.
//   - Avoid transposing repeatedly in tight loops; hoist and reuse the result.
func Transpose(m Matrix) (Matrix, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Fast-path for Dense → Dense
	if dm, ok := m.(*Dense); ok {
		return transposeDense(dm), nil
	}

	// Allocate result Dense with flipped dimensions
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Fallback: generic interface loop
	var i, j int
	var v float32
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("Set(%d,%d): %w", j, i, err))
			}
		}
	}

	// Return result
	return res, nil
}

// mulDense is the naive multiplication kernel for concrete Dense operands:
// C = A × B with A (r×n), B (n×c). No validation; callers enforce invariants.
//
// The right operand is transposed once up front so both dot-product operands
// stream row-major through the inner loop. Accumulation proceeds in blocks of
// up to mulUnroll terms (the trailing partial block runs through the same
// loop, naturally shorter) and widens to float64 so long dot products do not
// lose low-order bits before the final rounding back to float32.
// Complexity: O(r*n*c) time, O(n*c) extra space for the transposed operand.
func mulDense(a, b *Dense) *Dense {
	// Transpose B once: row j of bt is column j of B.
	bt := transposeDense(b)

	res := &Dense{r: a.r, c: b.c, data: make([]float32, a.r*b.c)}

	// Blocked accumulation width: min(inner, mulUnroll).
	inner := a.c
	unroll := inner
	if unroll > mulUnroll {
		unroll = mulUnroll
	}

	var (
		i, j, k, kk  int // loop iterators (deterministic order)
		kEnd         int // current block upper bound
		baseA, baseB int // row offsets into the flat buffers
		sum          float64
	)
	for i = 0; i < a.r; i++ {
		baseA = i * inner
		for j = 0; j < b.c; j++ {
			baseB = j * inner
			sum = ZeroSum
			for k = 0; k < inner; k += unroll {
				kEnd = k + unroll
				if kEnd > inner {
					kEnd = inner // trailing partial block
				}
				for kk = k; kk < kEnd; kk++ {
					sum += float64(a.data[baseA+kk]) * float64(bt.data[baseB+kk])
				}
			}
			res.data[i*b.c+j] = float32(sum)
		}
	}

	return res
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Materialize operands as *Dense (zero-copy when already concrete;
//     interface operands are read once through At with wrapped errors).
//   - Stage 3: Transpose B once so both operands stream row-major, then
//     accumulate each output entry as a blocked dot product (blocks of up to
//     16 terms, float64 accumulator).
//
// Behavior highlights:
//   - Deterministic block order; one allocation for C plus one for Bᵀ.
//   - Cache-friendly: the inner loop reads two contiguous rows.
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
//   - Fixed i→j→k-block traversal; accumulation order never depends on data.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c) for C plus O(n*c) for the transposed operand.
//
// Notes:
//   - The float64 accumulator keeps long dot products from drifting; the
//     final store rounds once to float32.
//
// AI-Hints:
//   - Keep operands as *Dense to skip materialization entirely.
//   - For power-of-two square operands consider StrassenMul above ~256.
func Mul(a, b Matrix) (Matrix, error) {
	// Validate inputs via canonical validator
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Materialize operands; *Dense inputs pass through without copying.
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Run the blocked dot-product kernel
	return mulDense(da, db), nil
}

// isPowerOfTwo reports whether n is a positive integral power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// addDense returns x + y elementwise for same-shape concrete operands.
// No validation; invariants hold by construction inside the recursion.
func addDense(x, y *Dense) *Dense {
	res := &Dense{r: x.r, c: x.c, data: make([]float32, len(x.data))}
	for idx := range x.data {
		res.data[idx] = x.data[idx] + y.data[idx]
	}

	return res
}

// subDense returns x - y elementwise for same-shape concrete operands.
// No validation; invariants hold by construction inside the recursion.
func subDense(x, y *Dense) *Dense {
	res := &Dense{r: x.r, c: x.c, data: make([]float32, len(x.data))}
	for idx := range x.data {
		res.data[idx] = x.data[idx] - y.data[idx]
	}

	return res
}

// strassenDense multiplies two square power-of-two Dense operands by
// recursive quadrant decomposition. No validation; StrassenMul enforces the
// preconditions once at the facade.
//
// Implementation:
//   - Stage 1: Base case n ≤ strassenBase → naive multiply.
//   - Stage 2: Extract the four quadrants of each operand as fresh copies.
//   - Stage 3: Compute the seven products
//     P1 = A11·(B12−B22)        P2 = (A11+A12)·B22
//     P3 = (A21+A22)·B11        P4 = A22·(B21−B11)
//     P5 = (A11+A22)·(B11+B22)  P6 = (A12−A22)·(B21+B22)
//     P7 = (A11−A21)·(B11+B12)
//   - Stage 4: Assemble C11 = P5+P4−P2+P6, C12 = P1+P2, C21 = P3+P4,
//     C22 = P5+P1−P3−P7 and write the quadrants into a fresh result
//     via submatrix assignment.
//
// Complexity:
//   - Time O(n^log2(7)) ≈ O(n^2.807), Space O(n²) per recursion level.
func strassenDense(a, b *Dense) *Dense {
	n := a.r

	// Base case: recursion overhead dominates tiny blocks.
	if n <= strassenBase {
		return mulDense(a, b)
	}

	// Quadrant extraction (fresh copies; recursion never aliases storage).
	half := n / 2
	a11 := a.Submatrix(0, 0, half)
	a12 := a.Submatrix(0, half, half)
	a21 := a.Submatrix(half, 0, half)
	a22 := a.Submatrix(half, half, half)
	b11 := b.Submatrix(0, 0, half)
	b12 := b.Submatrix(0, half, half)
	b21 := b.Submatrix(half, 0, half)
	b22 := b.Submatrix(half, half, half)

	// Seven recursive products from fixed quadrant combinations.
	p1 := strassenDense(a11, subDense(b12, b22))
	p2 := strassenDense(addDense(a11, a12), b22)
	p3 := strassenDense(addDense(a21, a22), b11)
	p4 := strassenDense(a22, subDense(b21, b11))
	p5 := strassenDense(addDense(a11, a22), addDense(b11, b22))
	p6 := strassenDense(subDense(a12, a22), addDense(b21, b22))
	p7 := strassenDense(subDense(a11, a21), addDense(b11, b12))

	// Output quadrants.
	c11 := addDense(subDense(addDense(p5, p4), p2), p6)
	c12 := addDense(p1, p2)
	c21 := addDense(p3, p4)
	c22 := subDense(subDense(addDense(p5, p1), p3), p7)

	// Assemble via the sole in-place mutation path, on storage allocated here.
	res := &Dense{r: n, c: n, data: make([]float32, n*n)}
	res.SetSubmatrix(0, 0, c11)
	res.SetSubmatrix(0, half, c12)
	res.SetSubmatrix(half, 0, c21)
	res.SetSubmatrix(half, half, c22)

	return res
}

// StrassenMul performs Strassen recursive multiplication C = A × B for
// square operands of equal power-of-two dimension.
//
// Implementation:
//   - Stage 1: Validate both operands non-nil and square, shapes equal, and
//     the shared dimension a power of two. No padding is performed: the
//     precondition is hard, because padding changes numerical results at the
//     boundary.
//   - Stage 2: Materialize operands as *Dense (zero-copy when concrete).
//   - Stage 3: Recurse on quadrants (seven products per level); dimensions
//     at or below 2 fall back to the naive multiply.
//
// Behavior highlights:
//   - Every recursive call operates on freshly copied sub-blocks; operands
//     are never aliased or mutated.
//   - Single-threaded recursion; the seven subproducts are independent, so a
//     parallel schedule would be legal, but the sequential order is kept for
//     reproducibility.
//
// Inputs:
//   - A, B: square matrices of equal dimension n, n a power of two.
//
// Returns:
//   - Matrix: new Dense C = A × B of dimension n.
//
// Errors:
//   - ErrNilMatrix         (nil input).
//   - ErrNonSquare         (either operand is rectangular).
//   - ErrDimensionMismatch (shapes differ, or n is not a power of two).
//
// Determinism:
//   - Fixed recursion schedule and quadrant order.
//
// Complexity:
//   - Time O(n^log2(7)), Space O(n²) per recursion level.
//
// Notes:
//   - For small n the naive kernel wins on constant factors; the crossover
//     typically sits in the hundreds.
//
// AI-Hints:
//   - Agreement with Mul is within float rounding, not bit-exact: the two
//     engines associate additions differently.
func StrassenMul(a, b Matrix) (Matrix, error) {
	// Validate: square operands of identical shape.
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opStrassen, err)
	}
	if err := ValidateSquareNonNil(b); err != nil {
		return nil, matrixErrorf(opStrassen, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opStrassen, err)
	}

	// Validate: dimension must be a power of two (no padding).
	n := a.Rows()
	if !isPowerOfTwo(n) {
		return nil, matrixErrorf(opStrassen, fmt.Errorf("dimension %d is not a power of two: %w", n, ErrDimensionMismatch))
	}

	// Materialize operands; *Dense inputs pass through without copying.
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opStrassen, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opStrassen, err)
	}

	// Recurse on quadrants
	return strassenDense(da, db), nil
}
