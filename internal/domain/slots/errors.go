package slots

import "errors"

// ConfigError marks a scan configuration the loop must refuse to start with.
// Unlike fetch and booking failures it is fatal: there is nothing a later
// round could do differently.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid scan request: " + e.Reason
}

// AsConfigError attempts to unwrap an error into a ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}
