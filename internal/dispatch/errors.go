package dispatch

import "fmt"

// ConfigurationError reports a language code no parser exists for
type ConfigurationError struct {
	Code string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: unsupported language %q", e.Code)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvalidKindError reports a requested kind outside the known set
type InvalidKindError struct {
	Kind string
	Err  error
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid kind %q", e.Kind)
}

func (e *InvalidKindError) Unwrap() error { return e.Err }

// ParseFailure wraps an error raised by the parser itself
type ParseFailure struct {
	Query string
	Err   error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failure: %v", e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }
