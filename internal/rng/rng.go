// Package rng provides the seeded random source used by every selection in
// songprompt. Sources are always passed explicitly; nothing here keeps global
// state, so two callers with their own sources never interfere.
package rng

import (
	"hash/fnv"
	"math/rand/v2"
)

// pcgStream is the fixed second word of the PCG state. Changing it changes
// every seeded sequence, so it is part of the reproducibility contract.
const pcgStream = 0x9e3779b97f4a7c15

// Source produces successive floats in [0,1).
type Source interface {
	Float64() float64
}

// New returns a source whose infinite sequence is fully determined by seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// SeedFromStrings derives a stable seed from a list of strings. It is used
// when a caller does not supply a source but still expects repeatable output.
func SeedFromStrings(parts ...string) int64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return int64(h.Sum64() >> 1)
}

// Pick returns a uniformly chosen element. ok is false for an empty slice.
func Pick[T any](items []T, src Source) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[index(len(items), src)], true
}

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates).
func Shuffle[T any](items []T, src Source) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := index(i+1, src)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Chance reports true with probability p. p <= 0 never fires and p >= 1
// always fires, but a value is still drawn so the sequence position does not
// depend on p.
func Chance(p float64, src Source) bool {
	return src.Float64() < p
}

// IntInclusive returns a uniform integer in [lo, hi]. Reversed bounds are
// swapped.
func IntInclusive(lo, hi int, src Source) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + index(hi-lo+1, src)
}

// index maps one draw onto [0, n).
func index(n int, src Source) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
