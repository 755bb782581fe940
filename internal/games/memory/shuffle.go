package memory

import "math/rand"

// Shuffle permutes items in place (Fisher-Yates) and returns the same slice.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return items
}
