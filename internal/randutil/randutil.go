package randutil

import (
	"time"

	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every random decision in the game (dealing, opponent lies, bot choices)
// draws from a source built here so a seed replays a whole session.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns the configured seed when set, otherwise one derived from the
// wall clock. The second value reports whether the seed was supplied.
func Seed(configured *int64) (int64, bool) {
	if configured != nil {
		return *configured, true
	}
	return time.Now().UnixNano(), false
}

// Derive returns the seed of the n-th child stream of a run seed. Workers in
// the simulator use it so results do not depend on scheduling.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

// Chance reports true with probability p. It never consumes randomness for
// p <= 0 or p >= 1.
func Chance(rng *rand.Rand, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return rng.Float64() < p
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
