// Package hash64 provides the seeded 64-bit hashing primitive shared by the
// Bloom filter and SimHash engine. A single SeededHasher instance derives
// two independent-looking working seeds from one base seed, so both
// components can turn one randomized (or caller-supplied) state into a pair
// of base hashes without keeping two separately-sampled keys around.
package hash64

import "github.com/zeebo/xxh3"

// SeededHasher produces two independent 64-bit hashes of the same key.
// It is immutable after construction and safe for unbounded concurrent use.
type SeededHasher struct {
	seed1 uint64
	seed2 uint64
}

// NewSeededHasher derives two working seeds from a single base seed using a
// SplitMix64-style mixing step, so the caller only needs to manage one
// random value (e.g. one crypto/rand read at process start) per instance.
func NewSeededHasher(baseSeed uint64) *SeededHasher {
	return &SeededHasher{
		seed1: splitMix64(baseSeed),
		seed2: splitMix64(baseSeed + 0x9E3779B97F4A7C15),
	}
}

// splitMix64 is the standard public-domain SplitMix64 output mixer.
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return x
}

// Hash1 returns the first base hash of key.
func (h *SeededHasher) Hash1(key []byte) uint64 {
	return xxh3.HashSeed(key, h.seed1)
}

// Hash2 returns the second base hash of key, independent of Hash1.
func (h *SeededHasher) Hash2(key []byte) uint64 {
	return xxh3.HashSeed(key, h.seed2)
}
