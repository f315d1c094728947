// Package mathts is an in-memory numeric playground for building, transforming,
// and decomposing dense matrices — from float32 primitives to orthogonal
// factorizations and a BLAS-backed multiply engine.
//
// 🚀 What is mathts/matrix?
//
//	A compact single-precision linear algebra core that brings together:
//		• Dense storage: row-major float32 buffers with strict NaN/±Inf hygiene
//		• Arithmetic: Add, Sub, Scale, Transpose + a worker-pool AddParallel
//		• Products: cache-blocked Mul, recursive StrassenMul, gonum GemmMul
//		• Triangular solvers: Back/ForwardSubstitution, InvertUpper/InvertLower
//		• Orthogonalization: modified Gram–Schmidt, QR, RoundNearZero cleanup
//		• Interchange: binary16 Pack/UnpackHalf for compact snapshots
//
// ✨ Why choose mathts?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – every constructor rejects NaN/±Inf, every kernel
//     validates shapes before touching data
//   - Deterministic – fixed accumulation order, reproducible to the bit
//   - Tunable – functional options for tolerance, workers and RNG injection
//
// Under the hood, everything is organized under two packages:
//
//	matrix/       — Dense storage, kernels, validators, options & codecs
//	cmd/matbench/ — CLI harness timing the three multiply engines
//
// Quick ASCII example:
//
//	    ⎡1 2⎤   ⎡5 6⎤   ⎡19 22⎤
//	    ⎣3 4⎦ × ⎣7 8⎦ = ⎣43 50⎦
//
//	the classic 2×2 product, exact in float32.
//
// Next up: Householder QR, LU with pivoting and banded storage.
// Dive into README.md for full examples and the current feature matrix.
//
//	go get github.com/Andreas-Hum/mathts/matrix
package mathts
