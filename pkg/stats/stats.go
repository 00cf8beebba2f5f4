package stats

import (
	"gonum.org/v1/gonum/floats"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	return floats.Sum(x) / float64(n)
}

// Midpoint returns the arithmetic mean of a and b.
func Midpoint(a, b float64) float64 {
	return (a + b) / 2
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	return floats.Min(x), floats.Max(x)
}

// Ratio returns count/total, or 0 when total is zero.
func Ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
