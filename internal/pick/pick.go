// Package pick selects a uniformly random element from a slice.
package pick

import "math/rand/v2"

// Source is the randomness Pick draws from. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). It may panic if n <= 0.
	IntN(n int) int
}

// NewSource returns a generator seeded independently for this process.
// Construct it once per invocation and pass it to Pick.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Pick returns a random element of items. The second result is false when
// items is empty. items is never reordered.
func Pick[T any](src Source, items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[src.IntN(len(items))], true
}
