package feed

import "math/rand/v2"

// shuffled returns a copy of items in uniform random order. The input is
// never mutated; callers keep aliasing fetched slices.
func shuffled[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
