// Package prng holds the deterministic random machinery behind a mock scan:
// the URL seed hash, the linear congruential generator, and the selection
// helpers that consume its draws.
//
// Every draw order in this package is load-bearing. Results cached or
// recorded elsewhere can only be reproduced if the same draws are consumed in
// the same sequence.
package prng

import "unicode/utf16"

// Seed hashes s into a non-negative seed. Each UTF-16 code unit c is folded
// in as hash*31 + c with 32-bit signed wraparound, and the absolute value of
// the final hash is returned. The result is int64 because |MinInt32| does not
// fit in an int32.
func Seed(s string) int64 {
	var hash int32
	for _, c := range utf16.Encode([]rune(s)) {
		hash = hash<<5 - hash + int32(c)
	}
	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return h
}
