// Package matrix offers dense linear algebra over float32 with contiguous
// row-major storage.
//
// The matrix package provides:
//
//   - Dense, the sole concrete implementation of the Matrix interface, with
//     bounds-checked element access, row/column extraction, and square-block
//     submatrix extraction/assembly.
//   - Elementwise kernels (Add, Sub, Scale) plus AddParallel, a concurrent
//     addition whose result is bit-for-bit identical to Add.
//   - Three multiplication engines: Mul (blocked dot products over a
//     transposed right operand), StrassenMul (recursive, square power-of-two
//     operands), and GemmMul (gonum BLAS).
//   - Triangular solving and inversion (BackSubstitution, ForwardSubstitution,
//     InvertUpper, InvertLower) and orthogonalization (GramSchmidt, QR).
//   - Factories (Identity, Ones, Zeros, Random, Reshape), triangularity and
//     integrality predicates, and a binary16 interchange codec
//     (PackHalf, UnpackHalf).
//
// Every operation validates first and allocates fresh result storage;
// SetSubmatrix is the single documented in-place mutation path. Failures
// surface as wrapped sentinel errors (errors.Is-matchable).
//
// See the examples in this package for usage patterns.
package matrix
