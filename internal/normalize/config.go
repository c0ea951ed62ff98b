package normalize

// Config is the flat set of normalization flags from spec §3, all
// defaulting to on.
type Config struct {
	LowercaseScheme   bool
	LowercaseHost     bool
	RemoveWWW         bool
	RemoveDefaultPort bool
	SortQueryParams   bool
	RemoveFragment    bool
}

// DefaultConfig returns a Config with every flag enabled.
func DefaultConfig() Config {
	return Config{
		LowercaseScheme:   true,
		LowercaseHost:     true,
		RemoveWWW:         true,
		RemoveDefaultPort: true,
		SortQueryParams:   true,
		RemoveFragment:    true,
	}
}

// defaultPorts maps a scheme to the port number considered default for it.
var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
}

// DefaultTrackingParams is the exact set from spec §6.
var DefaultTrackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
	"fbclid", "gclid", "msclkid", "_ga", "_gl", "mc_cid", "mc_eid",
	"ref", "referrer",
}
