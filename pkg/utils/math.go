package utils

import "math"

// IsFinitePositive reports whether n is a finite number greater than zero.
func IsFinitePositive(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0) && n > 0
}

// IsNearInteger reports whether n lies within eps of the nearest integer.
func IsNearInteger(n, eps float64) bool {
	return math.Abs(n-math.Round(n)) < eps
}
