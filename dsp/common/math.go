// Package common holds small math helpers shared across the DSP and
// enhancement packages.
package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StandardDeviation calculates the sample standard deviation using gonum
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(stat.Variance(data, nil))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Peak returns the maximum absolute value in data, or 0 for empty input.
func Peak(data []float64) float64 {
	peak := 0.0
	for _, val := range data {
		if abs := math.Abs(val); abs > peak {
			peak = abs
		}
	}
	return peak
}

// Max returns the maximum value in data, or 0 for empty input.
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// CenteredMovingAverage smooths data with a moving average whose window is
// centered on each sample (numpy convolve mode="same" against a box
// kernel). Window edges shrink near the boundaries so the output keeps the
// input length.
func CenteredMovingAverage(data []float64, windowSize int) []float64 {
	if len(data) == 0 || windowSize <= 1 {
		return data
	}
	if windowSize > len(data) {
		windowSize = len(data)
	}

	// numpy "same" places the extra tap of an even kernel on the left.
	left := windowSize / 2
	right := windowSize - left - 1

	// Prefix sums keep this O(n).
	prefix := make([]float64, len(data)+1)
	for i, v := range data {
		prefix[i+1] = prefix[i] + v
	}

	out := make([]float64, len(data))
	for i := range data {
		lo := i - left
		hi := i + right + 1
		if lo < 0 {
			lo = 0
		}
		if hi > len(data) {
			hi = len(data)
		}
		out[i] = (prefix[hi] - prefix[lo]) / float64(windowSize)
	}
	return out
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// PrevPowerOfTwo finds the largest power of 2 <= n, or 0 if n < 1.
func PrevPowerOfTwo(n int) int {
	if n < 1 {
		return 0
	}
	power := 1
	for power*2 <= n {
		power <<= 1
	}
	return power
}

// IsPowerOfTwo checks if n is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
