package dist

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedValidation(t *testing.T) {
	_, err := NewWeighted([]Choice[string]{})
	require.Error(t, err, "empty choice list must be rejected")

	_, err = NewWeighted([]Choice[string]{{Value: "a", Weight: -1}})
	require.Error(t, err, "negative weight must be rejected")

	_, err = NewWeighted([]Choice[string]{{Value: "a", Weight: 0}})
	require.Error(t, err, "zero total weight must be rejected")
}

func TestWeightedSampleFrequencies(t *testing.T) {
	w := MustWeighted([]Choice[string]{
		{Value: "heavy", Weight: 0.8},
		{Value: "light", Weight: 0.2},
	})
	src := NewSource(1)

	counts := map[string]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[w.Sample(src)]++
	}
	assert.InDelta(t, 0.8, float64(counts["heavy"])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts["light"])/n, 0.02)
}

func TestWeightedZeroWeightNeverSampled(t *testing.T) {
	w := MustWeighted([]Choice[string]{
		{Value: "always", Weight: 1},
		{Value: "never", Weight: 0},
	})
	src := NewSource(2)
	for i := 0; i < 5000; i++ {
		require.Equal(t, "always", w.Sample(src))
	}
}

func TestPoissonMean(t *testing.T) {
	src := NewSource(3)
	sum := 0
	const n = 50000
	for i := 0; i < n; i++ {
		sum += src.Poisson(1.6)
	}
	assert.InDelta(t, 1.6, float64(sum)/n, 0.05)
}

func TestIntBetweenInclusive(t *testing.T) {
	src := NewSource(4)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := src.IntBetween(1, 4)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	assert.Len(t, seen, 4, "all values in [1,4] should appear")
}

func TestClampedNormalBounds(t *testing.T) {
	src := NewSource(5)
	for i := 0; i < 10000; i++ {
		v := src.ClampedNormal(38, 13, 18, 70)
		require.GreaterOrEqual(t, v, 18.0)
		require.LessOrEqual(t, v, 70.0)
	}
}

func TestLogNormalPositive(t *testing.T) {
	src := NewSource(6)
	for i := 0; i < 1000; i++ {
		require.Greater(t, src.LogNormal(3.6, 0.6), 0.0)
	}
}

func TestTimeBetween(t *testing.T) {
	src := NewSource(7)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		ts := src.TimeBetween(start, end)
		require.False(t, ts.Before(start))
		require.True(t, ts.Before(end))
	}

	require.Equal(t, start, src.TimeBetween(start, start), "empty window returns start")
}

func TestSameSeedSameStream(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
	require.NotEqual(t, math.Float64bits(NewSource(1).Float64()), math.Float64bits(NewSource(2).Float64()))
}
