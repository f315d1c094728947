// SPDX-License-Identifier: MIT
// Half-precision interchange codec. PackHalf/UnpackHalf convert between this
// package's float32 storage and IEEE 754 binary16 buffers for compact
// snapshots and wire transfer: half the bytes, ~3 decimal digits, max
// magnitude 65504. Row-major element order is preserved in both directions.

package matrix

import (
	"fmt"

	"github.com/x448/float16"
)

// Codec tag constants for unified error wrapping.
const (
	ctxPackHalf   = "PackHalf"   // float32 → binary16
	ctxUnpackHalf = "UnpackHalf" // binary16 → float32
)

// PackHalf converts m's entries to IEEE 754 binary16 and returns them as a
// flat row-major bit buffer.
//
// Stage 1 (Validate): m non-nil; materialize as *Dense.
// Stage 2 (Execute): convert each entry with round-to-nearest-even. An entry
// whose magnitude exceeds the binary16 range (65504) would convert to ±Inf;
// the pack rejects it instead, so every produced buffer round-trips through
// UnpackHalf.
//
// Errors:
//   - ErrNilMatrix (nil input).
//   - ErrNaNInf    (entry outside the binary16 finite range; the wrapped
//     message names the flat index and value).
//
// Complexity: O(r*c) time, O(r*c) space for the buffer.
//
// Notes:
//   - Conversion is lossy below the overflow threshold: entries keep at most
//     11 significand bits. Use for storage/transfer, not as a compute format.
func PackHalf(m Matrix) ([]uint16, error) {
	// Validate input non-nil
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(ctxPackHalf, err)
	}

	// Materialize; *Dense passes through without copying.
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(ctxPackHalf, err)
	}

	// Convert entry by entry, rejecting binary16 overflow.
	out := make([]uint16, len(dm.data))
	var h float16.Float16
	for idx, v := range dm.data {
		h = float16.Fromfloat32(v)
		if !h.IsFinite() {
			return nil, matrixErrorf(ctxPackHalf, fmt.Errorf("index %d: value %g overflows binary16: %w", idx, v, ErrNaNInf))
		}
		out[idx] = h.Bits()
	}

	return out, nil
}

// UnpackHalf interprets a flat row-major binary16 bit buffer as a rows×cols
// matrix, widening every entry to float32.
//
// Stage 1 (Execute): widen each half to float32 (always exact: every
// binary16 value is representable in binary32).
// Stage 2 (Validate): dimensions, buffer length, and finiteness follow the
// canonical flat-buffer constructor, so NaN/Inf bit patterns smuggled into
// the buffer are rejected the same way any non-finite input is.
//
// Errors:
//   - ErrInvalidDimensions (rows ≤ 0 or cols ≤ 0).
//   - ErrBadShape          (len(buf) != rows*cols).
//   - ErrNaNInf            (buffer encodes NaN or ±Inf).
//
// Complexity: O(rows*cols).
func UnpackHalf(buf []uint16, rows, cols int) (*Dense, error) {
	// Widen to float32; exact for every finite half.
	vals := make([]float32, len(buf))
	for idx, u := range buf {
		vals[idx] = float16.Frombits(u).Float32()
	}

	// Shape and finiteness contracts live in the canonical constructor.
	res, err := NewDenseFromSlice(vals, rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxUnpackHalf, err)
	}

	return res, nil
}
