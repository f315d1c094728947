// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy and kernel
// execution. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness in
//     kernels (randomness is confined to the Random factory, where a source
//     may be injected via WithRand).
//   - No dead switches: each knob impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Reusability: Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - Tolerance semantics: the tolerance is the near-zero threshold for
//     linear-dependence detection in GramSchmidt/QR and the snapping radius
//     for RoundNearZero. Substitution pivots are intentionally exact-zero
//     checks and do NOT consume the tolerance.
//   - Worker semantics: AddParallel partitions the flat index range into
//     `workers` contiguous disjoint chunks. The default resolves to the
//     host's available execution units at option-resolution time.
package matrix

import (
	"math/rand"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the near-zero threshold used by GramSchmidt (linear
	// dependence) and RoundNearZero. Sized for float32 data: values whose
	// magnitude is below 1e-6 are not distinguishable from accumulated
	// rounding noise in single precision.
	DefaultTolerance = 1e-6

	// DefaultWorkers requests automatic worker resolution: a non-positive
	// value is replaced by runtime.NumCPU() during option resolution, so
	// AddParallel saturates the host's available execution units by default.
	DefaultWorkers = 0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid = "matrix: WithTolerance: tolerance must be finite, > 0"
	panicWorkersInvalid   = "matrix: WithWorkers: workers must be > 0"
	panicRandNil          = "matrix: WithRand: source must be non-nil"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// It is intentionally unexported in its fields to prevent external mutation;
// public entry points accept `...Option` and internally resolve them via
// gatherOptions.
type Options struct {
	// numeric policy
	tol float32 // > 0; DefaultTolerance

	// execution policy
	workers int // >= 1 after finalize; DefaultWorkers resolves to NumCPU

	// randomness policy (Random factory only)
	rng *rand.Rand // nil ⇒ the factory uses the package-global source
}

// ---------- Constructors (WithX) ----------

// WithTolerance sets the near-zero threshold used by GramSchmidt/QR
// dependence checks and by RoundNearZero.
// Implementation:
//   - Stage 1: validate tol is finite and > 0.
//   - Stage 2: return a setter that writes tol into Options.
//
// Behavior highlights:
//   - Strict validation in constructor; panics on nonsensical values.
//
// Inputs:
//   - tol: positive finite threshold.
//
// Returns:
//   - Option: functional setter.
//
// Errors:
//   - Panics with a stable message when tol is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// Notes:
//   - Larger tolerances reject more borderline column sets as dependent;
//     use judiciously with poorly scaled data.
//
// AI-Hints:
//   - Prefer the default (1e-6) for single-precision data; raise it only for
//     noisy inputs where near-parallel columns should fail fast.
func WithTolerance(tol float32) Option {
	if isNonFinite32(tol) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	// Assign validated tolerance
	return func(o *Options) { o.tol = tol }
}

// WithWorkers fixes the number of concurrent chunks used by AddParallel.
// Implementation:
//   - Stage 1: validate n > 0.
//   - Stage 2: return a setter that writes n into Options.
//
// Behavior highlights:
//   - Strict validation in constructor; panics on nonsensical values.
//   - The result of AddParallel is identical for every worker count; this
//     knob trades scheduling overhead against parallel bandwidth only.
//
// Inputs:
//   - n: positive chunk/goroutine count.
//
// Returns:
//   - Option: functional setter.
//
// Errors:
//   - Panics with a stable message when n <= 0.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// Notes:
//   - Counts above the element count collapse to one element per chunk;
//     empty chunks are skipped.
//
// AI-Hints:
//   - Leave unset to saturate runtime.NumCPU(); pin to 1 to serialize for
//     debugging without changing results.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	// Assign validated worker count
	return func(o *Options) { o.workers = n }
}

// WithRand injects a deterministic random source into the Random factory.
// Implementation:
//   - Stage 1: validate r is non-nil.
//   - Stage 2: return a setter that writes r into Options.
//
// Behavior highlights:
//   - Only the Random factory consumes the source; kernels never draw
//     randomness.
//
// Inputs:
//   - r: non-nil *rand.Rand (e.g., rand.New(rand.NewSource(42))).
//
// Returns:
//   - Option: functional setter.
//
// Errors:
//   - Panics with a stable message when r is nil.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// Notes:
//   - Without this option Random draws from the package-global source and is
//     not reproducible across runs.
//
// AI-Hints:
//   - Inject a seeded source in tests to make Random-backed fixtures stable.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicRandNil)
	}

	// Assign validated source
	return func(o *Options) { o.rng = r }
}

// --------------------------- Option Resolution ---------------------------

// NewMatrixOptions resolves option setters against documented defaults.
// Implementation:
//   - Stage 1: start from the documented defaults (single source of truth).
//   - Stage 2: apply opts in order; last-writer-wins semantics.
//   - Stage 3: finalize derived invariants and return the Options value.
//
// Behavior highlights:
//   - Pure function; no side effects beyond producing a value.
//
// Inputs:
//   - opts: zero or more functional setters.
//
// Returns:
//   - Options: internal struct with effective configuration.
//
// Determinism:
//   - Stable for a given sequence of opts (worker auto-resolution queries
//     runtime.NumCPU() once, here).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(opts).
//
// AI-Hints:
//   - Compose options close to the kernel call-site for clarity.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants. This is the canonical internal entry for
// every ...Option consumer in the package.
// Implementation:
//   - Stage 1: start from Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: finalizeOptions resolves the worker count.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		// numeric policy
		tol: DefaultTolerance,

		// execution policy
		workers: DefaultWorkers,

		// randomness policy: nil ⇒ package-global source
		rng: nil,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces derived invariants in exactly one place.
// Implementation:
//   - Stage 1: resolve automatic worker count to the host's execution units.
//
// Notes:
//   - This function MUST be called after applying all Option setters.
func finalizeOptions(o *Options) {
	// Auto worker resolution: saturate available execution units.
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}
}

// float64Tol widens the configured tolerance once for float64 accumulator
// comparisons (norms are accumulated in float64 before thresholding).
func (o *Options) float64Tol() float64 {
	return float64(o.tol)
}

// randFloat32 draws the next uniform value in [0,1) from the configured
// source, falling back to the package-global generator when none was set.
func (o *Options) randFloat32() float32 {
	if o.rng != nil {
		return o.rng.Float32()
	}

	return rand.Float32()
}
