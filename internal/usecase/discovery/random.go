package discovery

import "math/rand/v2"

// globalRandom uses the auto-seeded, concurrency-safe top-level source.
type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// shuffle is an in-place Fisher-Yates pass.
func shuffle[T any](s []T, rnd Random) {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
