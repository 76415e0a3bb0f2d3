package api

import (
	"errors"
	"net/http"

	"github.com/screenomics/locationworker/internal/task"
)

// MapErrorToStatusCode maps scheduler errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, task.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvocationActive):
		return http.StatusConflict
	case errors.Is(err, task.ErrSchedulerStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, task.ErrNotRegistered):
		return "Worker not found"
	case errors.Is(err, task.ErrInvocationActive):
		return "An invocation of this worker is already running"
	case errors.Is(err, task.ErrSchedulerStopped):
		return "Scheduler is shutting down"
	default:
		return "An unexpected error occurred"
	}
}
