package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/screenomics/locationworker/internal/api/shared"
	"github.com/screenomics/locationworker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	NewTraceMiddleware(log)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Len(t, traceID, 2*shared.TraceIDLength)

	entries, err := buf.EntriesWithMessage("inside handler")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, traceID, entries[0]["trace_id"])
}
