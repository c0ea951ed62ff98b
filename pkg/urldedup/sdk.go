// Package urldedup is the public SDK for embedding the URL deduplication
// core as a library.
//
// Example usage:
//
//	dd, err := urldedup.New(
//	    urldedup.WithCapacity(1_000_000),
//	    urldedup.WithFalsePositiveRate(0.01),
//	    urldedup.WithSimHash(6),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	isDup, err := dd.CheckAndInsert("https://example.com/page?utm_source=x")
package urldedup

import (
	"log/slog"
	"os"

	"github.com/fathomcrawl/dedupcore/internal/config"
	"github.com/fathomcrawl/dedupcore/internal/dedupcore"
	"github.com/fathomcrawl/dedupcore/internal/normalize"
)

// Dedup is the high-level API for using the dedup core as a library.
type Dedup struct {
	engine *dedupcore.Engine
}

// Option configures a Dedup.
type Option func(*config.Config)

// WithCapacity sets the expected number of distinct URLs (spec §3's n).
func WithCapacity(n uint64) Option {
	return func(c *config.Config) { c.Bloom.Capacity = n }
}

// WithFalsePositiveRate sets the Bloom filter's target false-positive rate
// (spec §3's p).
func WithFalsePositiveRate(p float64) Option {
	return func(c *config.Config) { c.Bloom.FPRate = p }
}

// WithSimHash enables the optional near-duplicate path and sets the
// maximum Hamming distance NearDuplicates treats as a match.
func WithSimHash(maxHammingDistance int) Option {
	return func(c *config.Config) {
		c.SimHash.Enabled = true
		c.SimHash.MaxHammingDistance = maxHammingDistance
	}
}

// WithTrackingParams adds additional query-parameter keys to strip during
// normalization, beyond spec §6's default set.
func WithTrackingParams(keys ...string) Option {
	return func(c *config.Config) {
		c.Normalizer.ExtraTrackingParams = append(c.Normalizer.ExtraTrackingParams, keys...)
	}
}

// WithDomainWhitelist restricts the query string kept for domain to only
// the given parameter keys, bypassing the generic normalization pipeline
// for that domain entirely (spec §4.1 step 2, §9's WhitelistRule variant).
func WithDomainWhitelist(domain string, allowedParams ...string) Option {
	return func(c *config.Config) {
		if c.Normalizer.DomainWhitelists == nil {
			c.Normalizer.DomainWhitelists = make(map[string][]string)
		}
		c.Normalizer.DomainWhitelists[domain] = allowedParams
	}
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// New creates a Dedup with the given options, defaulting to a 1,000,000
// capacity, 1% false-positive rate, SimHash disabled, and all normalizer
// flags on.
func New(opts ...Option) (*Dedup, error) {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	engine, err := dedupcore.New(dedupcore.Config{
		Capacity: cfg.Bloom.Capacity,
		FPRate:   cfg.Bloom.FPRate,
		NormalizerConfig: normalize.Config{
			LowercaseScheme:   cfg.Normalizer.LowercaseScheme,
			LowercaseHost:     cfg.Normalizer.LowercaseHost,
			RemoveWWW:         cfg.Normalizer.RemoveWWW,
			RemoveDefaultPort: cfg.Normalizer.RemoveDefaultPort,
			SortQueryParams:   cfg.Normalizer.SortQueryParams,
			RemoveFragment:    cfg.Normalizer.RemoveFragment,
		},
		EnableSimHash:         cfg.SimHash.Enabled,
		MaxNearDupHammingDist: cfg.SimHash.MaxHammingDistance,
		Logger:                logger,
	})
	if err != nil {
		return nil, err
	}

	for _, key := range cfg.Normalizer.ExtraTrackingParams {
		engine.Normalizer().AddTrackingParam(key)
	}
	for domain, allowed := range cfg.Normalizer.DomainWhitelists {
		engine.Normalizer().AddDomainRule(domain, normalize.WhitelistRule{AllowedParams: allowed})
	}

	return &Dedup{engine: engine}, nil
}

// CheckAndInsert normalizes rawURL, reports whether it is a duplicate of a
// previously seen URL, and inserts it into the filter if it is new.
func (d *Dedup) CheckAndInsert(rawURL string) (isDuplicate bool, err error) {
	return d.engine.CheckAndInsert(rawURL)
}

// IsDuplicate reports whether rawURL has already been seen, without
// mutating any state.
func (d *Dedup) IsDuplicate(rawURL string) (bool, error) {
	return d.engine.IsDuplicate(rawURL)
}

// NearDuplicates returns previously indexed SimHash fingerprints within the
// configured Hamming distance of rawURL's fingerprint. It always returns
// nil when SimHash was not enabled via WithSimHash.
func (d *Dedup) NearDuplicates(rawURL string) ([]uint64, error) {
	return d.engine.NearDuplicates(rawURL)
}

// Snapshot returns the engine's current counters.
func (d *Dedup) Snapshot() dedupcore.Snapshot {
	return d.engine.Snapshot()
}

// AddTrackingParam registers an additional query-parameter key to strip
// during normalization, after construction.
func (d *Dedup) AddTrackingParam(key string) {
	d.engine.Normalizer().AddTrackingParam(key)
}

// AddDomainRule registers a custom domain rule, after construction. For the
// common whitelist case, prefer WithDomainWhitelist at construction time.
func (d *Dedup) AddDomainRule(domain string, rule normalize.DomainRule) {
	d.engine.Normalizer().AddDomainRule(domain, rule)
}
