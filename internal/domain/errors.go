// Package domain defines the core entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrPermissionDenied is returned when the coarse-location capability
	// has not been granted. It is the only error that maps to a failed
	// task outcome.
	ErrPermissionDenied = errors.New("coarse location permission not granted")

	// ErrInvalidSample is returned when a sample carries coordinates outside
	// the valid latitude/longitude ranges.
	ErrInvalidSample = errors.New("invalid location sample")

	// ErrUnknownPriority is returned when a priority name cannot be parsed.
	ErrUnknownPriority = errors.New("unknown accuracy priority")
)
