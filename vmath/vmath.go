package vmath

import "cmp"

// Clamp limits value to [lo, hi]
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
