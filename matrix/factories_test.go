// Package matrix_test contains unit tests for the matrix factories:
// Identity, Zeros, Ones, Random, and Reshape.
package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Andreas-Hum/mathts/matrix"
	"github.com/stretchr/testify/require"
)

// TestIdentityValues checks the diagonal/off-diagonal split and the 1x1 edge.
func TestIdentityValues(t *testing.T) {
	t.Parallel()

	id, err := matrix.Identity(3)
	require.NoError(t, err)

	var i, j int // loop iterators
	var v float32
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			v, err = id.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.Equal(t, float32(1), v) // main diagonal carries ones
			} else {
				require.Equal(t, float32(0), v) // everything else is zero
			}
		}
	}

	one, err := matrix.Identity(1) // smallest legal identity
	require.NoError(t, err)
	v, err = one.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(1), v)
}

// TestIdentityInvalidDimension rejects non-positive n.
func TestIdentityInvalidDimension(t *testing.T) {
	t.Parallel()

	_, err := matrix.Identity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.Identity(-3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestZerosOnesValues checks the two constant factories.
func TestZerosOnesValues(t *testing.T) {
	t.Parallel()

	z, err := matrix.Zeros(2, 3)
	require.NoError(t, err)
	o, err := matrix.Ones(2, 3)
	require.NoError(t, err)

	require.Equal(t, 2, z.Rows())
	require.Equal(t, 3, z.Cols())

	var i, j int
	var v float32
	for i = 0; i < 2; i++ {
		for j = 0; j < 3; j++ {
			v, err = z.At(i, j)
			require.NoError(t, err)
			require.Equal(t, float32(0), v) // Zeros is all zeros

			v, err = o.At(i, j)
			require.NoError(t, err)
			require.Equal(t, float32(1), v) // Ones is all ones
		}
	}

	_, err = matrix.Zeros(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.Ones(3, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRandomRange ensures every drawn entry lies in [0, 100).
func TestRandomRange(t *testing.T) {
	t.Parallel()

	m, err := matrix.Random(4, 5, matrix.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)

	var i, j int
	var v float32
	for i = 0; i < 4; i++ {
		for j = 0; j < 5; j++ {
			v, err = m.At(i, j)
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, float32(0))
			require.Less(t, v, float32(100))
		}
	}
}

// TestRandomReproducible: identical injected sources yield identical matrices;
// distinct seeds yield distinct draws.
func TestRandomReproducible(t *testing.T) {
	t.Parallel()

	a, err := matrix.Random(3, 4, matrix.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	b, err := matrix.Random(3, 4, matrix.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	var i, j int
	var av, bv float32
	for i = 0; i < 3; i++ {
		for j = 0; j < 4; j++ {
			av, err = a.At(i, j)
			require.NoError(t, err)
			bv, err = b.At(i, j)
			require.NoError(t, err)
			require.Equal(t, av, bv) // same source state, same sequence
		}
	}

	c, err := matrix.Random(3, 4, matrix.WithRand(rand.New(rand.NewSource(8))))
	require.NoError(t, err)
	var distinct bool
	for i = 0; i < 3 && !distinct; i++ {
		for j = 0; j < 4 && !distinct; j++ {
			av, _ = a.At(i, j)
			bv, _ = c.At(i, j)
			distinct = av != bv
		}
	}
	require.True(t, distinct) // a different seed diverges immediately
}

// TestRandomInvalidDimensions rejects non-positive shapes.
func TestRandomInvalidDimensions(t *testing.T) {
	t.Parallel()

	_, err := matrix.Random(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestReshapeScenario lays a flat buffer out row-major.
func TestReshapeScenario(t *testing.T) {
	t.Parallel()

	m, err := matrix.Reshape([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	row0, err := m.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3}, row0)
	row1, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float32{4, 5, 6}, row1)
}

// TestReshapeBufferCopied: the matrix owns its storage; mutating the source
// slice afterwards has no effect.
func TestReshapeBufferCopied(t *testing.T) {
	t.Parallel()

	buf := []float32{1, 2, 3, 4}
	m, err := matrix.Reshape(buf, 2, 2)
	require.NoError(t, err)

	buf[0] = 99 // mutate the caller's buffer

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(1), v) // matrix storage is independent
}

// TestReshapeSizeMismatch: a buffer whose length differs from rows*cols is a
// dedicated error, distinct from the dimension guard.
func TestReshapeSizeMismatch(t *testing.T) {
	t.Parallel()

	_, err := matrix.Reshape([]float32{1, 2, 3}, 2, 2) // 3 values against 2x2
	require.ErrorIs(t, err, matrix.ErrReshapeSize)

	_, err = matrix.Reshape([]float32{1, 2, 3}, 0, 3) // dimension guard fires first
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestReshapeRejectsNonFinite keeps the construction-time numeric policy.
func TestReshapeRejectsNonFinite(t *testing.T) {
	t.Parallel()

	nan := float32(math.NaN())
	_, err := matrix.Reshape([]float32{1, nan, 3, 4}, 2, 2)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
