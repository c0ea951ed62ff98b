// Package xerrors defines the two error kinds the dedup core can surface:
// ParseError (a bad raw URL, recoverable by the caller) and ConfigError
// (bad construction arguments, fatal to the constructor call).
package xerrors

import "fmt"

// ParseError wraps a failure to parse or canonicalize a raw URL.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %q: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError wraps a construction-time misuse of a core component.
type ConfigError struct {
	Component string
	Field     string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s.%s: %v", e.Component, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
