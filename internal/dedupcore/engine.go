// Package dedupcore implements C5, the deduplication facade: it wires the
// normalizer (C2) to the Bloom filter (C3) and, optionally, the SimHash
// engine (C4), and maintains the engine counters (spec §4.4).
package dedupcore

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"

	"github.com/fathomcrawl/dedupcore/internal/bloomfilter"
	"github.com/fathomcrawl/dedupcore/internal/lshindex"
	"github.com/fathomcrawl/dedupcore/internal/normalize"
	"github.com/fathomcrawl/dedupcore/internal/simhash"
	"github.com/fathomcrawl/dedupcore/internal/xerrors"
)

// Config configures an Engine. NormalizerConfig is used as given: a
// zero-valued NormalizerConfig turns every normalization flag off. Use
// normalize.DefaultConfig() to start from the all-flags-on baseline and flip
// individual fields.
type Config struct {
	Capacity uint64
	FPRate   float64

	NormalizerConfig normalize.Config

	// EnableSimHash turns on the optional C4 path (spec §4.4 expansion).
	// When false, NearDuplicates always returns nil and Compute is never
	// called.
	EnableSimHash         bool
	MaxNearDupHammingDist int

	Logger *slog.Logger
}

// Engine is the C5 facade. It requires exclusive access to the underlying
// Bloom filter for CheckAndInsert (which mutates); IsDuplicate and
// NearDuplicates require only shared access (spec §5).
type Engine struct {
	normalizer *normalize.Normalizer
	bloom      *bloomfilter.Filter
	counters   Counters
	logger     *slog.Logger

	simhashEngine  *simhash.Engine
	lsh            *lshindex.Index
	maxNearDupDist int
}

// New constructs an Engine per Config. Returns a ConfigError if capacity or
// fp_rate are out of range (delegated to bloomfilter.New) or if SimHash is
// enabled with an unsupported bit width (never the case here, since the
// engine always requests 64, but the error path is preserved for parity
// with spec §7's taxonomy).
func New(cfg Config) (*Engine, error) {
	bloomSeed, err := randomSeed()
	if err != nil {
		return nil, &xerrors.ConfigError{Component: "dedupcore", Field: "seed", Err: err}
	}
	bloom, err := bloomfilter.New(cfg.Capacity, cfg.FPRate, bloomSeed)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		normalizer:     normalize.New(cfg.NormalizerConfig),
		bloom:          bloom,
		logger:         logger,
		maxNearDupDist: cfg.MaxNearDupHammingDist,
	}

	if cfg.EnableSimHash {
		simhashSeed, err := randomSeed()
		if err != nil {
			return nil, &xerrors.ConfigError{Component: "dedupcore", Field: "seed", Err: err}
		}
		engine, err := simhash.NewEngine(64, simhashSeed)
		if err != nil {
			return nil, err
		}
		e.simhashEngine = engine
		e.lsh = lshindex.New()
	}

	return e, nil
}

// Normalizer exposes the engine's normalizer for callers that want to add
// tracking parameters or domain rules (spec §6).
func (e *Engine) Normalizer() *normalize.Normalizer { return e.normalizer }

// CheckAndInsert normalizes raw, checks it against the Bloom filter, and
// inserts it if new. It requires exclusive access to the engine (spec §5):
// callers must serialize concurrent CheckAndInsert calls themselves.
func (e *Engine) CheckAndInsert(raw string) (isDuplicate bool, err error) {
	e.counters.totalChecked.Add(1)

	canonical, err := e.normalizer.Normalize(raw)
	if err != nil {
		e.logger.Warn("dedupcore: parse error", "url", raw, "error", err)
		return false, err
	}

	key := []byte(canonical)
	if e.bloom.Contains(key) {
		e.counters.duplicatesFound.Add(1)
		e.logger.Debug("dedupcore: duplicate", "canonical", string(canonical))
		return true, nil
	}

	e.bloom.Insert(key)
	e.counters.urlsInserted.Add(1)
	e.indexNearDuplicate(raw)
	return false, nil
}

// IsDuplicate is a pure lookup: no mutation, no counter changes.
func (e *Engine) IsDuplicate(raw string) (bool, error) {
	canonical, err := e.normalizer.Normalize(raw)
	if err != nil {
		return false, err
	}
	return e.bloom.Contains([]byte(canonical)), nil
}

// Snapshot reads the three engine counters independently (spec §4.4).
func (e *Engine) Snapshot() Snapshot {
	return e.counters.snapshot()
}

// NearDuplicates returns fingerprints already indexed that are within the
// engine's configured max Hamming distance of raw's SimHash fingerprint.
// It returns nil (not an error) when SimHash is disabled, since this is an
// optional path (spec §4.4 expansion; spec §4.3's Non-goal is satisfied by
// lshindex rather than a linear scan).
func (e *Engine) NearDuplicates(raw string) ([]uint64, error) {
	if e.simhashEngine == nil {
		return nil, nil
	}
	fp, err := e.simhashEngine.Compute(raw)
	if err != nil {
		return nil, err
	}

	var matches []uint64
	for _, cand := range e.lsh.Candidates(fp) {
		if simhash.HammingDistance(fp, cand) <= e.maxNearDupDist {
			matches = append(matches, cand)
		}
	}
	return matches, nil
}

func (e *Engine) indexNearDuplicate(raw string) {
	if e.simhashEngine == nil {
		return
	}
	fp, err := e.simhashEngine.Compute(raw)
	if err != nil {
		// Already surfaced to the caller via the Bloom-path error
		// return; the SimHash side effect is best-effort only.
		return
	}
	e.lsh.Add(fp)
}

func randomSeed() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
