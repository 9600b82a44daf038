package prng

import "slices"

// WeakShuffle reorders a copy of items by running a comparison sort whose
// comparator ignores its operands and answers draw()-0.5. This is biased and
// far from uniform. It exists because recorded results were produced that
// way.
//
// The comparison schedule is a single TimSort pass: detect the leading run
// (reversing it when descending), then binary-insert the remaining elements.
// For slices shorter than 64 elements this is exactly the sequence of
// comparisons a TimSort with minrun == n performs, so both the final order
// and the number of draws consumed line up with it.
func WeakShuffle[T any](src Source, items []T) []T {
	a := slices.Clone(items)
	n := len(a)
	if n < 2 {
		return a
	}

	less := func() bool { return src.Float64()-0.5 < 0 }

	run := 2
	descending := less()
	for i := 2; i < n; i++ {
		if less() != descending {
			break
		}
		run++
	}
	if descending {
		slices.Reverse(a[:run])
	}

	for start := run; start < n; start++ {
		pivot := a[start]
		left, right := 0, start
		for left < right {
			mid := left + (right-left)/2
			if less() {
				right = mid
			} else {
				left = mid + 1
			}
		}
		copy(a[left+1:start+1], a[left:start])
		a[left] = pivot
	}
	return a
}
