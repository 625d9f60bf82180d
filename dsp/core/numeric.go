package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinitePositive reports whether v is a finite number greater than zero.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsPowerOfTwo reports whether v is a positive power of two.
func IsPowerOfTwo(v int) bool {
	return v > 0 && (v&(v-1)) == 0
}

// RatioFromSemitones converts an equal-tempered interval to a frequency ratio.
func RatioFromSemitones(semitones float64) float64 {
	return math.Pow(2, semitones/12.0)
}

// SemitonesFromRatio converts a frequency ratio to an equal-tempered interval.
// Returns NaN for non-positive ratios.
func SemitonesFromRatio(ratio float64) float64 {
	if ratio <= 0 {
		return math.NaN()
	}

	return 12.0 * math.Log2(ratio)
}
