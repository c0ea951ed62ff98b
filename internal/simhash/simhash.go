// Package simhash implements C4: a 64-bit locality-sensitive fingerprint
// over weighted features of a parsed URL (spec §4.3), enabling similarity
// queries by Hamming distance.
package simhash

import (
	"math/bits"

	"github.com/fathomcrawl/dedupcore/internal/hash64"
	"github.com/fathomcrawl/dedupcore/internal/urlinfo"
	"github.com/fathomcrawl/dedupcore/internal/xerrors"
)

const (
	bitWidth  = 64
	ngramSize = 3
)

// Engine computes SimHash fingerprints. It is immutable after construction
// and safe for unbounded concurrent use. Two Engine instances constructed
// with different seeds produce incomparable fingerprints; callers must use
// one Engine for an entire corpus.
type Engine struct {
	hasher *hash64.SeededHasher
}

// NewEngine constructs an Engine. bitWidthArg must be 64; any other value is
// a construction-time ConfigError, per spec §3.
func NewEngine(bitWidthArg int, seed uint64) (*Engine, error) {
	if bitWidthArg != bitWidth {
		return nil, &xerrors.ConfigError{
			Component: "simhash",
			Field:     "bit_width",
			Err:       errBitWidth,
		}
	}
	return &Engine{hasher: hash64.NewSeededHasher(seed)}, nil
}

// Compute parses raw and returns its 64-bit SimHash fingerprint.
func (e *Engine) Compute(raw string) (uint64, error) {
	p, err := urlinfo.Parse(raw)
	if err != nil {
		return 0, err
	}

	var acc [bitWidth]int64

	if p.Domain != "" {
		accumulateNgrams(&acc, e.hasher, []byte(p.Domain), constantWeight(3))
	}

	pathBytes := []byte(p.Path)
	accumulateNgrams(&acc, e.hasher, pathBytes, pathWeight(len(pathBytes)))

	for _, qp := range p.QueryPairs {
		accumulateToken(&acc, e.hasher, []byte(qp.Key), 1)
		accumulateToken(&acc, e.hasher, []byte(qp.Value), 1)
	}

	var out uint64
	for b := 0; b < bitWidth; b++ {
		if acc[b] > 0 {
			out |= 1 << uint(b)
		}
	}
	return out, nil
}

// HammingDistance returns the population count of a XOR b.
func HammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similarity returns 1 - dist/64: deterministic, in [0,1], symmetric, and
// exactly 1.0 iff a == b.
func Similarity(a, b uint64) float64 {
	return 1 - float64(HammingDistance(a, b))/float64(bitWidth)
}

// constantWeight returns a weight function that always returns w,
// used for domain features (spec §4.3 step 3: flat +-3 per bit).
func constantWeight(w int64) func(offset, length int) int64 {
	return func(_, _ int) int64 { return w }
}

// pathWeight implements spec §4.3 step 4's position-dependent weight:
// w = floor(2*(L-i)/L) for a window at byte offset i, L = max(pathLen, 1).
func pathWeight(pathLen int) func(offset, length int) int64 {
	l := pathLen
	if l < 1 {
		l = 1
	}
	return func(offset, _ int) int64 {
		return int64(2*(l-offset)) / int64(l)
	}
}

// accumulateNgrams slides a 3-byte window over data and accumulates
// +-weight(offset,len(data)) into acc for every bit of each window's hash.
func accumulateNgrams(acc *[bitWidth]int64, h *hash64.SeededHasher, data []byte, weight func(offset, length int) int64) {
	if len(data) < ngramSize {
		return
	}
	for i := 0; i+ngramSize <= len(data); i++ {
		w := weight(i, len(data))
		accumulateWindow(acc, h, data[i:i+ngramSize], w)
	}
}

func accumulateWindow(acc *[bitWidth]int64, h *hash64.SeededHasher, window []byte, weight int64) {
	hv := h.Hash1(window)
	for b := 0; b < bitWidth; b++ {
		if hv&(1<<uint(b)) != 0 {
			acc[b] += weight
		} else {
			acc[b] -= weight
		}
	}
}

// accumulateToken hashes an entire token (a query key or value, spec §4.3
// step 5) as a single unit rather than sliding an n-gram window over it.
func accumulateToken(acc *[bitWidth]int64, h *hash64.SeededHasher, token []byte, weight int64) {
	accumulateWindow(acc, h, token, weight)
}

var errBitWidth = bitWidthError("bit_width must be 64")

type bitWidthError string

func (e bitWidthError) Error() string { return string(e) }
