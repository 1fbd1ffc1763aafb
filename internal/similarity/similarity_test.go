package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.3, -0.5, 0.8},
		{2, 2, 2, 2},
	}

	for _, v := range vectors {
		sim, err := Cosine(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-9)
	}
}

func TestCosine_Symmetry(t *testing.T) {
	a := []float32{0.1, 0.9, -0.4}
	b := []float32{-0.7, 0.2, 0.5}

	ab, err := Cosine(a, b)
	require.NoError(t, err)
	ba, err := Cosine(b, a)
	require.NoError(t, err)

	assert.InDelta(t, ab, ba, 1e-12)
}

func TestCosine_ZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}

	sim, err := Cosine(zero, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = Cosine(v, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = Cosine(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	assert.Error(t, err)
}

func TestCosine_Orthogonal(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)
}

func TestCosine_Opposite(t *testing.T) {
	sim, err := Cosine([]float32{1, 1}, []float32{-1, -1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)
}
