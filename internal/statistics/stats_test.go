package statistics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	require.Equal(t, 0.0, Mean(nil))
	require.InDelta(t, 0.75, Mean([]float64{0.9, 0.8, 0.7, 0.6}), 1e-9)
}

func TestStdDev(t *testing.T) {
	require.Equal(t, 0.0, StdDev(nil))
	require.Equal(t, 0.0, StdDev([]float64{0.7}))
	require.Equal(t, 0.0, StdDev([]float64{0.5, 0.5, 0.5}))

	// Sample stddev of the worked scoring example.
	got := StdDev([]float64{0.9, 0.8, 0.7, 0.6})
	require.InDelta(t, 0.1291, got, 1e-3)
}

func TestClamp01(t *testing.T) {
	require.Equal(t, 0.0, Clamp01(-0.2))
	require.Equal(t, 1.0, Clamp01(1.7))
	require.Equal(t, 0.42, Clamp01(0.42))
}
