// Package scoring scores a single officer for a single bridge seat under one planning intent.
package scoring

import (
	"fmt"

	"github.com/jonathan/majel/internal/types"
)

// ConfigError indicates the scorer was called without the data it needs to run at all.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// UnknownIntentError indicates the requested intent has no entry in the effect bundle.
type UnknownIntentError struct {
	IntentKey types.IntentKey
}

func (e *UnknownIntentError) Error() string {
	return fmt.Sprintf("unknown intent: %q", string(e.IntentKey))
}

// errBundleRequired is returned whenever the effect bundle is missing.
func errBundleRequired() error {
	return &ConfigError{Message: "effect bundle is required"}
}
