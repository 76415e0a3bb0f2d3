package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/screenomics/locationworker/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: x", task.ErrNotRegistered), http.StatusNotFound, "Worker not found"},
		{task.ErrInvocationActive, http.StatusConflict, "An invocation of this worker is already running"},
		{task.ErrSchedulerStopped, http.StatusServiceUnavailable, "Scheduler is shutting down"},
		{errors.New("postgres://u:p@db/x unreachable"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
