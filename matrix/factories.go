// SPDX-License-Identifier: MIT
// Factory constructors for common matrices (identity, constant fills, uniform
// random) and buffer reshaping. All factories return freshly allocated Dense
// values and validate through the canonical constructors where possible.

package matrix

import "fmt"

// Factory tag constants for unified error wrapping (constructor side).
const (
	ctxIdentity = "Identity" // Identity factory
	ctxOnes     = "Ones"     // Ones factory
	ctxZeros    = "Zeros"    // Zeros factory
	ctxRandom   = "Random"   // Random factory
	ctxReshape  = "Reshape"  // Reshape constructor
)

// randomUpper is the exclusive upper bound of Random's uniform entries.
const randomUpper = 100

// Identity returns the n×n identity matrix.
// Stage 1 (Validate): n must be positive (delegated to NewDense).
// Stage 2 (Execute): set the main diagonal to 1 on zeroed storage.
//
// Errors:
//   - ErrInvalidDimensions (n ≤ 0).
//
// Complexity: O(n²) for allocation, O(n) for the diagonal fill.
func Identity(n int) (*Dense, error) {
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(ctxIdentity, err)
	}

	// Main diagonal: flat index i*(n+1)
	for i := 0; i < n; i++ {
		res.data[i*n+i] = 1
	}

	return res, nil
}

// Zeros returns a rows×cols matrix with every entry 0.
// NewDense already yields zeroed storage; this wrapper exists for symmetry
// with Ones/Random and tags its errors accordingly.
//
// Errors:
//   - ErrInvalidDimensions (rows ≤ 0 or cols ≤ 0).
//
// Complexity: O(rows*cols).
func Zeros(rows, cols int) (*Dense, error) {
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxZeros, err)
	}

	return res, nil
}

// Ones returns a rows×cols matrix with every entry 1.
//
// Errors:
//   - ErrInvalidDimensions (rows ≤ 0 or cols ≤ 0).
//
// Complexity: O(rows*cols).
func Ones(rows, cols int) (*Dense, error) {
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxOnes, err)
	}

	// Constant fill over the flat buffer
	for idx := range res.data {
		res.data[idx] = 1
	}

	return res, nil
}

// Random returns a rows×cols matrix with entries drawn uniformly from
// [0, 100).
//
// Stage 1 (Validate): dimensions via NewDense; resolve Options.
// Stage 2 (Execute): one draw per entry in flat order.
//
// Determinism:
//   - WithRand(r) injects a seeded source for reproducible fixtures; without
//     it the package-global generator is used and runs are not reproducible.
//
// Errors:
//   - ErrInvalidDimensions (rows ≤ 0 or cols ≤ 0).
//
// Complexity: O(rows*cols).
func Random(rows, cols int, opts ...Option) (*Dense, error) {
	// Resolve randomness policy
	o := gatherOptions(opts...)

	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxRandom, err)
	}

	// Uniform fill: Float32() ∈ [0,1) scaled to [0, randomUpper).
	for idx := range res.data {
		res.data[idx] = o.randFloat32() * randomUpper
	}

	return res, nil
}

// Reshape interprets a flat row-major buffer as a rows×cols matrix and
// returns it as a fresh Dense (the buffer is copied, never aliased).
//
// Stage 1 (Validate): dimensions must be positive, else
// ErrInvalidDimensions; the buffer length must equal rows*cols, else
// ErrReshapeSize; entry finiteness is then delegated to NewDenseFromSlice.
// Stage 2 (Execute): copy the buffer into owned storage.
//
// Errors:
//   - ErrInvalidDimensions (rows ≤ 0 or cols ≤ 0).
//   - ErrReshapeSize       (len(flat) != rows*cols).
//   - ErrNaNInf            (non-finite entry).
//
// Complexity: O(rows*cols).
func Reshape(flat []float32, rows, cols int) (*Dense, error) {
	// Dimension contract before the length contract, so a negative or zero
	// dimension never masquerades as a size mismatch.
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(ctxReshape, fmt.Errorf("rows=%d, cols=%d: %w", rows, cols, ErrInvalidDimensions))
	}

	// Length contract: the reshape-specific failure mode.
	if len(flat) != rows*cols {
		return nil, matrixErrorf(ctxReshape, fmt.Errorf("buffer length %d, want %d*%d=%d: %w",
			len(flat), rows, cols, rows*cols, ErrReshapeSize))
	}

	// Finiteness and the copy follow the canonical constructor.
	res, err := NewDenseFromSlice(flat, rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxReshape, err)
	}

	return res, nil
}
