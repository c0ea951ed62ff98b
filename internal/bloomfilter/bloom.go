// Package bloomfilter implements C3: an exact-duplicate membership filter
// over canonicalized URLs, offering no false negatives and a tunable
// false-positive rate with bounded memory (spec §4.2).
package bloomfilter

import (
	"math"
	"sync/atomic"

	"github.com/fathomcrawl/dedupcore/internal/hash64"
	"github.com/fathomcrawl/dedupcore/internal/xerrors"
)

const wordBits = 64

// Filter is a Bloom filter backed by atomically-addressable 64-bit words.
// Insert uses atomic OR and Contains uses atomic Load, so the two are safe
// to call concurrently with each other (spec §5): a reader observing a
// partially-applied insert can only see bits flip 0→1, never the reverse,
// which preserves the no-false-negative contract. Concurrent Inserts are
// also safe: each bit is set with an atomic OR and the inserted counter is
// atomic, so concurrent inserts of the same key stay idempotent on bits.
type Filter struct {
	bits     []atomic.Uint64 // len == ceil(m/64) words
	m        uint64          // number of bits
	k        uint64          // number of hash positions per element
	hasher   *hash64.SeededHasher
	inserted atomic.Uint64
}

// New constructs a Filter sized for capacity n expected elements at target
// false-positive rate p, per spec §3's sizing formulas:
//
//	m = ceil(-n * ln(p) / ln(2)^2)
//	k = ceil(m/n * ln(2))
//
// seed is the base seed for the filter's hasher; pass a value drawn from
// crypto/rand at startup for process-lifetime randomization (spec §3), or
// a fixed value in tests for determinism.
func New(n uint64, p float64, seed uint64) (*Filter, error) {
	if n == 0 {
		return nil, &xerrors.ConfigError{Component: "bloomfilter", Field: "capacity", Err: errCapacityZero}
	}
	if !(p > 0 && p < 1) {
		return nil, &xerrors.ConfigError{Component: "bloomfilter", Field: "fp_rate", Err: errFPRateRange}
	}

	nf := float64(n)
	m := uint64(math.Ceil(-nf * math.Log(p) / (math.Ln2 * math.Ln2)))
	k := uint64(math.Ceil((float64(m) / nf) * math.Ln2))
	if k < 1 {
		k = 1
	}

	words := (m + wordBits - 1) / wordBits
	return &Filter{
		bits:   make([]atomic.Uint64, words),
		m:      m,
		k:      k,
		hasher: hash64.NewSeededHasher(seed),
	}, nil
}

// Insert adds key to the filter. Repeated inserts of the same key are
// no-ops on the bit array (idempotent) though each call still increments
// the inserted counter, per spec §3's definition of "inserted" as a count
// of insert calls, not of distinct keys.
func (f *Filter) Insert(key []byte) {
	h1, h2 := f.hasher.Hash1(key), f.hasher.Hash2(key)
	for i := uint64(0); i < f.k; i++ {
		pos := (h1 + i*h2) % f.m
		f.setBit(pos)
	}
	f.inserted.Add(1)
}

// Contains reports whether key may have been inserted. A false result is
// certain; a true result may be a false positive.
func (f *Filter) Contains(key []byte) bool {
	h1, h2 := f.hasher.Hash1(key), f.hasher.Hash2(key)
	for i := uint64(0); i < f.k; i++ {
		pos := (h1 + i*h2) % f.m
		if !f.testBit(pos) {
			return false
		}
	}
	return true
}

// FalsePositiveRate returns the estimated current false-positive rate,
// (1 - exp(-k*inserted/m))^k. This is an estimate derived from the number
// of inserts performed, not a measurement of actual collisions.
func (f *Filter) FalsePositiveRate() float64 {
	k := float64(f.k)
	exponent := -k * float64(f.inserted.Load()) / float64(f.m)
	return math.Pow(1-math.Exp(exponent), k)
}

// Inserted returns the monotonically increasing count of Insert calls.
func (f *Filter) Inserted() uint64 { return f.inserted.Load() }

// M returns the bit array size in bits.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of hash positions per element.
func (f *Filter) K() uint64 { return f.k }

func (f *Filter) setBit(pos uint64) {
	word, bit := pos/wordBits, pos%wordBits
	f.bits[word].Or(1 << bit)
}

func (f *Filter) testBit(pos uint64) bool {
	word, bit := pos/wordBits, pos%wordBits
	return f.bits[word].Load()&(1<<bit) != 0
}

var (
	errCapacityZero = configError("capacity must be >= 1")
	errFPRateRange  = configError("fp_rate must be in (0, 1)")
)

type configError string

func (e configError) Error() string { return string(e) }
