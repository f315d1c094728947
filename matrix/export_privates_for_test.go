// SPDX-License-Identifier: MIT
//.go:build test

package matrix

// Test-Bridge (White-Box) for Private Helpers and Options Snapshot
//
// Purpose:
//   - Expose the internal options snapshot and small private guards to
//     matrix_test ONLY, without widening the production API.
//   - Enable white-box verification of defaults, "last writer wins" semantics,
//     and the zero-copy materialization contract.
//
// Provided Surface:
//   - OptionsSnapshot + NewMatrixOptionsSnapshot_TestOnly / GatherOptionsSnapshot_TestOnly:
//     stable, read-only view of internal Options for tests.
//   - Panic message constants re-exported to avoid magic strings in tests.
//   - IsPowerOfTwo_TestOnly / ToDense_TestOnly: thin pass-throughs to private helpers.
//
// Behavior & Determinism:
//   - No allocations beyond what the wrapped functions do.
//   - Deterministic wrappers; no side effects.
//
// Risks & Maintenance:
//   - Keep OptionsSnapshot in sync with internal Options fields. If Options changes,
//     update snapshotOf(...) accordingly (tests will catch drift).
//
// AI-Hints:
//   - Prefer keeping ALL test-only bridges co-located here to avoid clutter across files.
//   - If a private helper changes signature, mirror the change here once, not across many tests.

// Panic message exports to avoid "magic strings" in tests.
const (
	PanicToleranceInvalid_TestOnly = panicToleranceInvalid
	PanicWorkersInvalid_TestOnly   = panicWorkersInvalid
	PanicRandNil_TestOnly          = panicRandNil
)

// --- private helper bridges ----------------------------------------------------

// IsPowerOfTwo_TestOnly forwards to the private isPowerOfTwo guard used by
// StrassenMul's dimension precondition.
func IsPowerOfTwo_TestOnly(n int) bool {
	return isPowerOfTwo(n)
}

// ToDense_TestOnly forwards to the private toDense materializer so tests can
// pin its zero-copy contract: a *Dense input must come back as the same
// pointer, any other implementation as a fresh copy.
func ToDense_TestOnly(m Matrix) (*Dense, error) {
	return toDense(m)
}

// --- options snapshot bridge --------------------------------------------------

// OptionsSnapshot is a stable, test-facing copy of internal Options fields.
// Purpose:
//   - Allow matrix_test to assert defaults and "last writer wins" semantics
//     without accessing unexported fields directly.
//
// Determinism:
//   - Pure struct copy; no side effects.
type OptionsSnapshot struct {
	Tol     float32
	Workers int
	HasRand bool
}

// NewMatrixOptionsSnapshot_TestOnly builds Options via public Option funcs and returns a snapshot.
// Implementation:
//   - Stage 1: o := NewMatrixOptions(opts...)
//   - Stage 2: snapshotOf(o)
func NewMatrixOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := NewMatrixOptions(opts...)

	return snapshotOf(o)
}

// GatherOptionsSnapshot_TestOnly returns a snapshot after internal derivation.
// Implementation:
//   - Stage 1: o := gatherOptions(opts...) // internal constructor
//   - Stage 2: snapshotOf(o)
//
// Notes:
//   - Keep this wrapper in sync if the internal derivation pipeline changes.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return snapshotOf(o)
}

// snapshotOf copies internal fields to a public struct. Keep in sync with Options layout.
// Behavior highlights:
//   - No allocations besides the snapshot value itself.
func snapshotOf(o Options) OptionsSnapshot {
	return OptionsSnapshot{
		Tol:     o.tol,
		Workers: o.workers,
		HasRand: o.rng != nil,
	}
}
