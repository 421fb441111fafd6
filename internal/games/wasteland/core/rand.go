package core

import (
	"math/rand"
	"time"
)

// Rand is the randomness source used by generation and combat.
// *math/rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Range returns a uniform integer in [lo, hi).
// An empty range yields lo.
func Range(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}
