// Package statistics provides the small numeric helpers shared by the
// decision engine and reporting.
package statistics

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation of values, or 0 when fewer
// than two values exist. The sample form (n-1) is what the confidence
// formula's consistency term is calibrated against.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0.0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(n-1))
}

// Clamp01 bounds v to the [0,1] interval. Every score and confidence value
// that leaves the decision engine passes through here.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
