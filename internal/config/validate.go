package config

import (
	"github.com/fathomcrawl/dedupcore/internal/xerrors"
)

// Validate checks the configuration against the ConfigError conditions from
// spec §7: capacity == 0, fp_rate outside (0,1), bit_width != 64 (SimHash
// is always constructed at bit_width 64 internally, so there is nothing for
// a caller to get wrong there; MaxHammingDistance is range-checked instead
// since it is the one SimHash knob exposed through config).
func Validate(cfg *Config) error {
	if cfg.Bloom.Capacity == 0 {
		return &xerrors.ConfigError{Component: "config", Field: "bloom.capacity", Err: errMustBePositive}
	}
	if !(cfg.Bloom.FPRate > 0 && cfg.Bloom.FPRate < 1) {
		return &xerrors.ConfigError{Component: "config", Field: "bloom.fp_rate", Err: errMustBeUnitInterval}
	}
	if cfg.SimHash.Enabled && (cfg.SimHash.MaxHammingDistance < 0 || cfg.SimHash.MaxHammingDistance > 64) {
		return &xerrors.ConfigError{Component: "config", Field: "simhash.max_hamming_distance", Err: errMustBeInHammingRange}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Logging.Level] {
		return &xerrors.ConfigError{Component: "config", Field: "logging.level", Err: errInvalidLogLevel}
	}

	return nil
}

type validateError string

func (e validateError) Error() string { return string(e) }

const (
	errMustBePositive       = validateError("must be >= 1")
	errMustBeUnitInterval   = validateError("must be in (0, 1)")
	errMustBeInHammingRange = validateError("must be in [0, 64]")
	errInvalidLogLevel      = validateError("must be one of debug, info, warn, error")
)
