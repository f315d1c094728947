// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"math/rand"
	"runtime"
	"testing"

	"github.com/Andreas-Hum/mathts/matrix"
)

// 1) TestDefaultOptions_Documented verifies that NewMatrixOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewMatrixOptionsSnapshot_TestOnly()

	// numeric
	if o.Tol != matrix.DefaultTolerance {
		t.Fatalf("tolerance default mismatch: got %v, want %v", o.Tol, matrix.DefaultTolerance)
	}

	// execution: DefaultWorkers resolves to the host's execution units
	if o.Workers != runtime.NumCPU() {
		t.Fatalf("workers default mismatch: got %v, want %v", o.Workers, runtime.NumCPU())
	}
	if o.Workers < 1 {
		t.Fatalf("resolved workers must be >= 1, got %v", o.Workers)
	}

	// randomness: no source injected by default
	if o.HasRand {
		t.Fatalf("rng default mismatch: got injected source, want none")
	}
}

// 2) TestNewMatrixOptions_OrderAndIdempotence ensures each Option toggles exactly its intended field.
func TestNewMatrixOptions_OrderAndIdempotence(t *testing.T) {
	o1 := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithTolerance(1e-3), matrix.WithTolerance(1e-5)) // last wins
	if o1.Tol != 1e-5 {
		t.Fatalf("last-writer-wins failed: tol=%v, want 1e-5", o1.Tol)
	}
	o2 := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithTolerance(1e-5), matrix.WithTolerance(1e-3))
	if o2.Tol != 1e-3 {
		t.Fatalf("last-writer-wins failed: tol=%v, want 1e-3", o2.Tol)
	}

	o3 := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithWorkers(2), matrix.WithWorkers(4))
	if o3.Workers != 4 {
		t.Fatalf("workers last-writer-wins failed: %v", o3.Workers)
	}
	o4 := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithWorkers(4), matrix.WithWorkers(2))
	if o4.Workers != 2 {
		t.Fatalf("workers last-writer-wins failed: %v", o4.Workers)
	}

	// a combined set leaves every knob at its own last-written value
	o5 := matrix.GatherOptionsSnapshot_TestOnly(
		matrix.WithTolerance(0.25),
		matrix.WithWorkers(3),
		matrix.WithRand(rand.New(rand.NewSource(1))),
	)
	if o5.Tol != 0.25 {
		t.Fatalf("tol: got %v, want 0.25", o5.Tol)
	}
	if o5.Workers != 3 {
		t.Fatalf("workers: got %v, want 3", o5.Workers)
	}
	if !o5.HasRand {
		t.Fatalf("rng: got none, want injected source")
	}
}

// 3) tolerance setter must store the value exactly and be idempotent.
func TestWithTolerance_SetsValue(t *testing.T) {
	o := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithTolerance(1e-6), matrix.WithTolerance(1e-6))
	if o.Tol != 1e-6 {
		t.Fatalf("tol mismatch: got %v, want %v", o.Tol, 1e-6)
	}
}

// 4) explicit worker counts are preserved; only non-positive defaults resolve.
func TestWithWorkers_SetsValue(t *testing.T) {
	o := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithWorkers(1))
	if o.Workers != 1 {
		t.Fatalf("workers mismatch: got %v, want 1", o.Workers)
	}

	big := 4 * runtime.NumCPU()
	o = matrix.GatherOptionsSnapshot_TestOnly(matrix.WithWorkers(big))
	if o.Workers != big {
		t.Fatalf("workers mismatch: got %v, want %v", o.Workers, big)
	}
}

// 5) injected random sources are carried through resolution untouched.
func TestWithRand_Snapshot(t *testing.T) {
	o := matrix.GatherOptionsSnapshot_TestOnly(matrix.WithRand(rand.New(rand.NewSource(9))))
	if !o.HasRand {
		t.Fatalf("expected injected random source in snapshot")
	}
}

// 6) WithTolerance must panic with stable message on invalid inputs.
func TestPanics_WithTolerance_Message(t *testing.T) {
	ExpectPanicMessage(t, matrix.PanicToleranceInvalid_TestOnly, func() { _ = matrix.WithTolerance(float32(math.NaN())) })
	ExpectPanicMessage(t, matrix.PanicToleranceInvalid_TestOnly, func() { _ = matrix.WithTolerance(-1) })
	ExpectPanicMessage(t, matrix.PanicToleranceInvalid_TestOnly, func() { _ = matrix.WithTolerance(0) })
	ExpectPanicMessage(t, matrix.PanicToleranceInvalid_TestOnly, func() { _ = matrix.WithTolerance(float32(math.Inf(1))) })
}

// 7) WithWorkers must panic with stable message on non-positive counts.
func TestPanics_WithWorkers_Message(t *testing.T) {
	ExpectPanicMessage(t, matrix.PanicWorkersInvalid_TestOnly, func() { _ = matrix.WithWorkers(0) })
	ExpectPanicMessage(t, matrix.PanicWorkersInvalid_TestOnly, func() { _ = matrix.WithWorkers(-3) })
}

// 8) WithRand must panic with stable message on a nil source.
func TestPanics_WithRand_Message(t *testing.T) {
	ExpectPanicMessage(t, matrix.PanicRandNil_TestOnly, func() { _ = matrix.WithRand(nil) })
}

// 9) TestPanics validates every parameter guard through the resolution path.
func TestPanics(t *testing.T) {
	// WithTolerance invalids
	ExpectPanic(t, func() { _ = matrix.GatherOptionsSnapshot_TestOnly(matrix.WithTolerance(float32(math.NaN()))) })
	ExpectPanic(t, func() { _ = matrix.GatherOptionsSnapshot_TestOnly(matrix.WithTolerance(-1)) })

	// WithWorkers invalids
	ExpectPanic(t, func() { _ = matrix.GatherOptionsSnapshot_TestOnly(matrix.WithWorkers(0)) })

	// WithRand invalids
	ExpectPanic(t, func() { _ = matrix.GatherOptionsSnapshot_TestOnly(matrix.WithRand(nil)) })
}

// 10) the materializer is zero-copy for concrete inputs and copying for wrapped ones.
func TestToDense_ZeroCopyContract(t *testing.T) {
	d := MustDense(t, 2, 2)
	MustSet(t, d, 0, 1, 5)

	same, err := matrix.ToDense_TestOnly(d)
	if err != nil {
		t.Fatalf("ToDense on *Dense: %v", err)
	}
	if same != d {
		t.Fatalf("expected the same *Dense pointer back")
	}

	copied, err := matrix.ToDense_TestOnly(hide{d})
	if err != nil {
		t.Fatalf("ToDense on wrapped: %v", err)
	}
	if copied == d {
		t.Fatalf("expected a fresh *Dense for a wrapped input")
	}
	if v := MustAt(t, copied, 0, 1); v != 5 {
		t.Fatalf("copied[0,1] = %v; want 5", v)
	}
}

// 11) the power-of-two guard behind the recursive multiplier.
func TestIsPowerOfTwo_Guard(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 1024} {
		if !matrix.IsPowerOfTwo_TestOnly(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false; want true", n)
		}
	}
	for _, n := range []int{0, -4, 3, 6, 12, 1023} {
		if matrix.IsPowerOfTwo_TestOnly(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true; want false", n)
		}
	}
}
