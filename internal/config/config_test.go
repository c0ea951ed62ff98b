package config

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("DefaultConfig() failed Validate: %v", err)
	}
}

func TestValidateRejectsZeroCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bloom.Capacity = 0
	if err := Validate(cfg); err == nil {
		t.Error("expected error for zero capacity")
	}
}

func TestValidateRejectsBadFPRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bloom.FPRate = 0
	if err := Validate(cfg); err == nil {
		t.Error("expected error for fp_rate == 0")
	}

	cfg = DefaultConfig()
	cfg.Bloom.FPRate = 1
	if err := Validate(cfg); err == nil {
		t.Error("expected error for fp_rate == 1")
	}
}

func TestValidateRejectsBadHammingDistanceOnlyWhenSimHashEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimHash.Enabled = false
	cfg.SimHash.MaxHammingDistance = -1
	if err := Validate(cfg); err != nil {
		t.Errorf("MaxHammingDistance should be ignored when SimHash is disabled, got error: %v", err)
	}

	cfg.SimHash.Enabled = true
	if err := Validate(cfg); err == nil {
		t.Error("expected error for negative max_hamming_distance when SimHash is enabled")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for invalid logging level")
	}
}
