package insights

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualBackend(t *testing.T) {
	b := NewManualBackend()

	assert.Equal(t, BackendManual, b.Name())
	assert.Equal(t, Capabilities{}, b.Capabilities())
	assert.Equal(t, "go", b.Capabilities().Engine())

	t.Run("empty inputs", func(t *testing.T) {
		assert.Zero(t, b.Sum(nil))
		assert.Zero(t, b.Mean(nil))
		assert.Zero(t, b.PopStdDev(nil))
		assert.Empty(t, b.ZScore(nil))
		assert.Zero(t, b.Slope([]float64{5}))
	})

	t.Run("statistics", func(t *testing.T) {
		xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		assert.Equal(t, 40.0, b.Sum(xs))
		assert.Equal(t, 5.0, b.Mean(xs))
		assert.InDelta(t, 2.0, b.PopStdDev(xs), 1e-12)
	})

	t.Run("slope", func(t *testing.T) {
		assert.InDelta(t, 2.0, b.Slope([]float64{1, 3, 5, 7}), 1e-12)
		assert.InDelta(t, -20.0, b.Slope([]float64{100, 80, 60, 40}), 1e-12)
		assert.InDelta(t, 0.0, b.Slope([]float64{3, 3, 3}), 1e-12)
	})

	t.Run("zscore uses sample deviation", func(t *testing.T) {
		z := b.ZScore([]float64{1, 2, 3})
		require.Len(t, z, 3)
		assert.InDelta(t, -1.0, z[0], 1e-12)
		assert.InDelta(t, 0.0, z[1], 1e-12)
		assert.InDelta(t, 1.0, z[2], 1e-12)
	})

	t.Run("zscore of constant column divides by one", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 0}, b.ZScore([]float64{7, 7, 7}))
		assert.Equal(t, []float64{0}, b.ZScore([]float64{7}))
	})

	t.Run("cluster unavailable", func(t *testing.T) {
		_, err := b.Cluster([][]float64{{1}, {2}}, 2, DefaultClusterOptions())
		assert.True(t, errors.Is(err, ErrClusteringUnavailable))
	})
}

func TestCapabilitiesEngine(t *testing.T) {
	tests := []struct {
		caps     Capabilities
		expected string
	}{
		{Capabilities{}, "go"},
		{Capabilities{Vectorized: true, Statistical: true}, "go+gonum-mat+gonum-stat"},
		{Capabilities{Vectorized: true, Statistical: true, Clustering: true}, "go+gonum-mat+gonum-stat+kmeans"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.caps.Engine())
		})
	}
}

func TestSelectBackend(t *testing.T) {
	b, err := SelectBackend(BackendManual)
	require.NoError(t, err)
	assert.Equal(t, BackendManual, b.Name())

	_, err = SelectBackend("quantum")
	assert.Error(t, err)

	auto, err := SelectBackend("")
	require.NoError(t, err)
	assert.Contains(t, AvailableBackends(), auto.Name())
	assert.Contains(t, AvailableBackends(), BackendManual)
}
