package dice

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// NewRand returns a PCG-backed *rand.Rand whose two 64-bit seeds are derived
// from a single int64, so every simulation run is reproducible from its seed.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// splitmix is the SplitMix64 finalizer.
func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
