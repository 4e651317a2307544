package models

import "fmt"

// ConfigurationError indicates an invalid request or weight configuration.
// It is always raised synchronously, before any pillar is dispatched.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
