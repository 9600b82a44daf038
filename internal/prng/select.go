package prng

import (
	"math"
	"slices"
)

// Count draws an integer in [min, max].
func Count(src Source, min, max int) int {
	return int(math.Floor(src.Float64()*float64(max-min+1))) + min
}

// Subset returns between min and max items from a shuffled copy of items.
// One draw picks the size, then len(items)-1 draws drive a Fisher-Yates
// shuffle from the last index down. The result never holds more than
// min(max, len(items)) elements and items is left untouched.
func Subset[T any](src Source, items []T, min, max int) []T {
	count := Count(src, min, max)

	shuffled := slices.Clone(items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(math.Floor(src.Float64() * float64(i+1)))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	count = clamp(count, 0, len(shuffled))
	return shuffled[:count:count]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
