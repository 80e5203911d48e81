// Package bundle loads effect bundles, rosters and reservations from files on disk.
package bundle

import "fmt"

// LoadError represents an error during file I/O or document parsing
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	prefix := "load error"
	if e.Path != "" {
		prefix = fmt.Sprintf("load error (%s)", e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NormalizationError represents a document that parsed but is not usable
type NormalizationError struct {
	Message string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: %s", e.Message)
}
