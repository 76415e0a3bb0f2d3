package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/screenomics/locationworker/internal/api/shared"
	"github.com/screenomics/locationworker/internal/task"
)

// WorkerScheduler is the part of the scheduler the handler needs.
type WorkerScheduler interface {
	RunNow(ctx context.Context, name string) (task.InvocationRecord, error)
	Status() []task.RegistrationStatus
}

// InvocationResponse is returned after an on-demand invocation.
type InvocationResponse struct {
	ID         string `json:"id"`
	Worker     string `json:"worker"`
	Outcome    string `json:"outcome"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

// WorkerHandler handles worker listing and on-demand invocation.
type WorkerHandler struct {
	scheduler WorkerScheduler
	logger    *slog.Logger
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(scheduler WorkerScheduler, logger *slog.Logger) *WorkerHandler {
	return &WorkerHandler{
		scheduler: scheduler,
		logger:    logger.With("component", "worker_handler"),
	}
}

// ListWorkers handles GET /api/workers.
func (h *WorkerHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.scheduler.Status())
}

// Invoke handles POST /api/workers/{name}/invocations. It runs one
// invocation synchronously and returns its record.
func (h *WorkerHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Worker name is required")
		return
	}

	subject, _ := shared.GetSubject(r.Context())

	rec, err := h.scheduler.RunNow(r.Context(), name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("on-demand invocation finished",
		"worker", name,
		"invocation_id", rec.ID,
		"outcome", rec.Outcome.String(),
		"subject", subject,
		"trace_id", shared.GetTraceID(r.Context()))

	shared.RespondWithJSON(w, r, http.StatusOK, InvocationResponse{
		ID:         rec.ID.String(),
		Worker:     rec.Name,
		Outcome:    rec.Outcome.String(),
		StartedAt:  rec.StartedAt.Format(timeFormat),
		FinishedAt: rec.FinishedAt.Format(timeFormat),
	})
}

const timeFormat = "2006-01-02T15:04:05.000Z07:00"
