package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/api/shared"
	"github.com/screenomics/locationworker/internal/domain"
	"github.com/screenomics/locationworker/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockScheduler struct {
	RunNowFn func(ctx context.Context, name string) (task.InvocationRecord, error)
	statuses []task.RegistrationStatus
}

func (m *mockScheduler) RunNow(ctx context.Context, name string) (task.InvocationRecord, error) {
	return m.RunNowFn(ctx, name)
}

func (m *mockScheduler) Status() []task.RegistrationStatus {
	return m.statuses
}

func newTestRouter(h *WorkerHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/workers", h.ListWorkers)
	r.Post("/api/workers/{name}/invocations", h.Invoke)
	return r
}

func TestWorkerHandler_Invoke(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	recID := uuid.New()

	tests := []struct {
		name       string
		worker     string
		runErr     error
		outcome    domain.Outcome
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			worker:     task.DefaultLocationWorkerName,
			outcome:    domain.OutcomeSuccess,
			wantStatus: http.StatusOK,
		},
		{
			name:       "failure outcome is still reported",
			worker:     task.DefaultLocationWorkerName,
			outcome:    domain.OutcomeFailure,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown worker",
			worker:     "missing",
			runErr:     fmt.Errorf("%w: missing", task.ErrNotRegistered),
			wantStatus: http.StatusNotFound,
			wantError:  "Worker not found",
		},
		{
			name:       "already running",
			worker:     task.DefaultLocationWorkerName,
			runErr:     task.ErrInvocationActive,
			wantStatus: http.StatusConflict,
			wantError:  "An invocation of this worker is already running",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sched := &mockScheduler{
				RunNowFn: func(ctx context.Context, name string) (task.InvocationRecord, error) {
					assert.Equal(t, tc.worker, name)
					if tc.runErr != nil {
						return task.InvocationRecord{}, tc.runErr
					}
					return task.InvocationRecord{
						ID:         recID,
						Name:       name,
						Outcome:    tc.outcome,
						StartedAt:  started,
						FinishedAt: started.Add(5 * time.Millisecond),
					}, nil
				},
			}
			router := newTestRouter(NewWorkerHandler(sched, logger))

			req := httptest.NewRequest(http.MethodPost, "/api/workers/"+tc.worker+"/invocations", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantError != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantError, resp.Error)
				return
			}

			var resp InvocationResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, recID.String(), resp.ID)
			assert.Equal(t, tc.worker, resp.Worker)
			assert.Equal(t, tc.outcome.String(), resp.Outcome)
			assert.Equal(t, "2025-03-01T10:00:00.000Z", resp.StartedAt)
		})
	}
}

func TestWorkerHandler_ListWorkers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := &mockScheduler{
		statuses: []task.RegistrationStatus{
			{Name: task.DefaultLocationWorkerName, Interval: "15m0s", Policy: task.PolicyKeep, Runs: 2},
		},
	}
	router := newTestRouter(NewWorkerHandler(sched, logger))

	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp []task.RegistrationStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, task.DefaultLocationWorkerName, resp[0].Name)
	assert.Equal(t, 2, resp[0].Runs)
}

func TestWorkerHandler_WithScheduler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := task.NewScheduler(task.DefaultSchedulerConfig(), logger)
	t.Cleanup(sched.Stop)

	w := task.NewMockWorker("probe")
	require.NoError(t, sched.Register(task.Registration{Name: "probe", Interval: time.Hour}, w))

	router := newTestRouter(NewWorkerHandler(sched, logger))

	req := httptest.NewRequest(http.MethodPost, "/api/workers/probe/invocations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, w.Calls())
}
