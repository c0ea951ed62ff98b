package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("DEDUPCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dedupcore")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".dedupcore"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	return Load(path)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("bloom.capacity", cfg.Bloom.Capacity)
	v.SetDefault("bloom.fp_rate", cfg.Bloom.FPRate)

	v.SetDefault("simhash.enabled", cfg.SimHash.Enabled)
	v.SetDefault("simhash.max_hamming_distance", cfg.SimHash.MaxHammingDistance)

	v.SetDefault("normalizer.lowercase_scheme", cfg.Normalizer.LowercaseScheme)
	v.SetDefault("normalizer.lowercase_host", cfg.Normalizer.LowercaseHost)
	v.SetDefault("normalizer.remove_www", cfg.Normalizer.RemoveWWW)
	v.SetDefault("normalizer.remove_default_port", cfg.Normalizer.RemoveDefaultPort)
	v.SetDefault("normalizer.sort_query_params", cfg.Normalizer.SortQueryParams)
	v.SetDefault("normalizer.remove_fragment", cfg.Normalizer.RemoveFragment)
	v.SetDefault("normalizer.extra_tracking_params", cfg.Normalizer.ExtraTrackingParams)

	v.SetDefault("logging.level", cfg.Logging.Level)
}
