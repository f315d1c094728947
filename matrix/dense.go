// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major float32 buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row/Col return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based submatrix extraction (Submatrix) and the single sanctioned
//     in-place bulk write (SetSubmatrix) used by block algorithms.
//   - Enforce the numeric policy (rejection of NaN/Inf) at construction, from a single
//     source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go): operate on the flat data slice directly.
//   - Use Submatrix(r0,c0,size) to materialize a block (copy) for independent lifetime.
//   - Every kernel result is a fresh Dense; SetSubmatrix is the only bulk mutation path.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row/Col: O(n) copy; Clone: O(r*c);
//     Submatrix/SetSubmatrix: O(size²).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"                // method tag used in error wrappers
	ctxSet   = "Set"               // method tag used in error wrappers
	ctxRow   = "Row"               // method tag used in error wrappers
	ctxCol   = "Col"               // method tag used in error wrappers
	ctxRows  = "NewDenseFromRows"  // ctor tag for the nested-sequence form
	ctxSlice = "NewDenseFromSlice" // ctor tag for the flat-buffer form
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
	_fmtShape    = "%dx%d"
)

// denseErrorf wraps an underlying error with Dense method context and the
// callsite indices, preserving the sentinel for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float32 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// The backing slice is exclusively owned by its Dense: constructors copy
// caller buffers and every kernel result allocates fresh storage.
type Dense struct {
	r, c int       // number of rows and columns
	data []float32 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrInvalidDimensions.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate flat slice
	data := make([]float32, rows*cols)

	// Return initialized Dense
	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseFromRows builds a Dense from a rectangular nested sequence.
// Stage 1 (Validate): outer sequence non-empty, every row non-empty and of
// uniform length (ErrBadShape otherwise), every entry finite (ErrNaNInf).
// Stage 2 (Execute): copy row by row into a fresh flat buffer.
// Complexity: O(r*c) time and memory.
func NewDenseFromRows(rows [][]float32) (*Dense, error) {
	// Validate outer shape
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: empty rows: %w", ctxRows, ErrBadShape)
	}
	r, c := len(rows), len(rows[0])

	// Validate rectangularity and numeric policy before any allocation
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d entries, want %d: %w", ctxRows, i, len(rows[i]), c, ErrBadShape)
		}
		for j = 0; j < c; j++ {
			if isNonFinite32(rows[i][j]) {
				return nil, fmt.Errorf("%s: entry (%d,%d): %w", ctxRows, i, j, ErrNaNInf)
			}
		}
	}

	// Copy into flat storage
	data := make([]float32, r*c)
	for i = 0; i < r; i++ {
		copy(data[i*c:(i+1)*c], rows[i])
	}

	return &Dense{r: r, c: c, data: data}, nil
}

// NewDenseFromSlice builds a Dense from a pre-built flat row-major buffer
// plus explicit dimensions. The buffer is copied; the caller keeps ownership
// of the original slice.
// Stage 1 (Validate): rows, cols > 0 (ErrInvalidDimensions); len(data) equals
// rows*cols (ErrBadShape); every entry finite (ErrNaNInf).
// Stage 2 (Execute): copy the buffer into fresh storage.
// Complexity: O(r*c) time and memory.
func NewDenseFromSlice(data []float32, rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxSlice, ErrInvalidDimensions)
	}
	// Validate buffer length against the declared shape
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: buffer length %d, want %d: %w", ctxSlice, len(data), rows*cols, ErrBadShape)
	}
	// Validate numeric policy before any allocation
	for idx, v := range data {
		if isNonFinite32(v) {
			return nil, fmt.Errorf("%s: entry at flat index %d: %w", ctxSlice, idx, ErrNaNInf)
		}
	}

	// Copy into exclusively-owned storage
	owned := make([]float32, len(data))
	copy(owned, data)

	return &Dense{r: rows, c: cols, data: owned}, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r // return stored row count
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c // return stored column count
}

// Size returns the total number of stored elements (rows*cols).
// Complexity: O(1).
func (m *Dense) Size() int {
	return m.r * m.c
}

// Shape returns the "RxC" label for the current dimensions, e.g. "3x4".
// The label is derived on demand and is always consistent with Rows/Cols.
// Complexity: O(1) plus formatting.
func (m *Dense) Shape() string {
	return fmt.Sprintf(_fmtShape, m.r, m.c)
}

// IsSquare reports rows == cols. Computed from current dimensions on every
// call (idempotent; never stored as mutable state).
// Complexity: O(1).
func (m *Dense) IsSquare() bool {
	return m.r == m.c
}

// IsTall reports rows > cols. Exactly one of IsSquare/IsTall/IsWide holds.
// Complexity: O(1).
func (m *Dense) IsTall() bool {
	return m.r > m.c
}

// IsWide reports cols > rows. Exactly one of IsSquare/IsTall/IsWide holds.
// Complexity: O(1).
func (m *Dense) IsWide() bool {
	return m.c > m.r
}

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds
// wrapped with the calling method's context tag.
// Stage 1 (Validate): check 0 ≤ row < r and 0 ≤ col < c.
// Stage 2 (Execute): compute and return linear index.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): read from data slice.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float32, error) {
	// Compute flat index or error
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	// Return stored value
	return m.data[idx], nil
}

// Set assigns value v at (row, col). This mutates only the owning matrix.
// Stage 1 (Validate): bounds check via indexOf.
// Stage 2 (Execute): write into data slice.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float32) error {
	// Compute flat index or error
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	// Assign value
	m.data[idx] = v

	return nil
}

// Row returns a fresh copy of row i. Mutating the returned slice does not
// affect the matrix.
// Stage 1 (Validate): 0 ≤ i < rows, else ErrIndexOutOfBounds.
// Stage 2 (Execute): copy the contiguous row segment.
// Complexity: O(cols).
func (m *Dense) Row(i int) ([]float32, error) {
	// Validate row index
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrIndexOutOfBounds)
	}

	// Copy the row segment
	out := make([]float32, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Col returns a fresh copy of column j. Mutating the returned slice does not
// affect the matrix.
// Stage 1 (Validate): 0 ≤ j < cols, else ErrIndexOutOfBounds.
// Stage 2 (Execute): strided gather over rows.
// Complexity: O(rows).
func (m *Dense) Col(j int) ([]float32, error) {
	// Validate column index
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrIndexOutOfBounds)
	}

	// Gather with row-major stride
	out := make([]float32, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Submatrix copies the size×size block anchored at (startRow, startCol) into
// a new, independently-owned Dense.
//
// CALLER CONTRACT: no bounds validation is performed beyond the supplied
// ranges — the caller must ensure the block lies entirely inside the source.
// Block algorithms (Strassen) rely on this contract for hot-path extraction.
// Complexity: O(size²).
func (m *Dense) Submatrix(startRow, startCol, size int) *Dense {
	block := &Dense{r: size, c: size, data: make([]float32, size*size)}

	// Row-wise contiguous copies from the source window
	var i, srcBase int
	for i = 0; i < size; i++ {
		srcBase = (startRow+i)*m.c + startCol
		copy(block.data[i*size:(i+1)*size], m.data[srcBase:srcBase+size])
	}

	return block
}

// SetSubmatrix writes a square block into the receiver's storage at
// (startRow, startCol). The block dimension is inferred as the integer
// square root of the block's buffer length.
//
// THE SOLE IN-PLACE MUTATION PATH: every other operation in this package
// returns a freshly allocated result; SetSubmatrix alone rewrites existing
// storage, at caller-chosen offsets, with no failure mode beyond the
// caller-guaranteed bounds (same contract as Submatrix).
// Complexity: O(size²).
func (m *Dense) SetSubmatrix(startRow, startCol int, block *Dense) {
	// Infer block dimension from buffer length
	size := int(math.Sqrt(float64(len(block.data))))

	// Row-wise contiguous copies into the target window
	var i, dstBase int
	for i = 0; i < size; i++ {
		dstBase = (startRow+i)*m.c + startCol
		copy(m.data[dstBase:dstBase+size], block.data[i*size:(i+1)*size])
	}
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense) Clone() Matrix {
	// Allocate new slice for data copy
	copyData := make([]float32, len(m.data))
	// Copy all elements into new slice
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// String implements fmt.Stringer for easy debugging.
// Stage 1 (Execute): build per-row strings.
// Stage 2 (Finalize): return concatenated representation.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ { // iterate over rows
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ { // iterate over columns
			// compute flat index directly for performance
			sb.WriteString(fmt.Sprintf("%g", m.data[i*m.c+j]))
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// toDense materializes any Matrix as a *Dense. The concrete *Dense is
// returned as-is (no copy); other implementations are copied element by
// element through the interface.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func toDense(m Matrix) (*Dense, error) {
	// Fast path: already concrete
	if dm, ok := m.(*Dense); ok {
		return dm, nil
	}

	// Materialize through the interface
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float32
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}
