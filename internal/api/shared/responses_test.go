package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/screenomics/locationworker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	ctx := SetTraceID(logger.WithLogger(context.Background(), log))
	req := httptest.NewRequest(http.MethodPost, "/api/workers/x/invocations", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("dial postgres://worker:hunter22@db:5432/x failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Equal(t, GetTraceID(ctx), resp.TraceID)
	assert.NotContains(t, rec.Body.String(), "hunter22")

	assert.NotContains(t, buf.String(), "hunter22")
	logger.AssertLogContains(t, buf, "API error response")
}

func TestSubjectContext(t *testing.T) {
	_, ok := GetSubject(context.Background())
	assert.False(t, ok)

	subject, ok := GetSubject(SetSubject(context.Background(), "cron"))
	assert.True(t, ok)
	assert.Equal(t, "cron", subject)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	a := GetTraceID(SetTraceID(context.Background()))
	b := GetTraceID(SetTraceID(context.Background()))
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Len(t, generateFallbackTraceID(), 32)
}
