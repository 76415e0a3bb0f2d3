package task

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/domain"
	"github.com/screenomics/locationworker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("processes invocations", func(t *testing.T) {
		queue := NewInvocationQueue(10, log)
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 2}, log)
		pool.Start()

		w := NewMockWorker("worker")
		records := make(chan InvocationRecord, 5)
		for i := 0; i < 5; i++ {
			require.NoError(t, queue.Enqueue(NewInvocation(w, func(rec InvocationRecord) {
				records <- rec
			})))
		}

		for i := 0; i < 5; i++ {
			select {
			case rec := <-records:
				assert.Equal(t, domain.OutcomeSuccess, rec.Outcome)
				assert.Equal(t, "worker", rec.Name)
				assert.False(t, rec.FinishedAt.Before(rec.StartedAt))
			case <-time.After(2 * time.Second):
				t.Fatal("Timed out waiting for invocations")
			}
		}

		queue.Close()
		pool.Stop()
		assert.Equal(t, 5, w.Calls())
	})

	t.Run("failure handler", func(t *testing.T) {
		queue := NewInvocationQueue(10, log)
		pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), log)

		var failures atomic.Int32
		pool.SetFailureHandler(func(rec InvocationRecord) {
			failures.Add(1)
		})
		pool.Start()

		w := NewMockWorker("failing")
		w.RunFn = func(ctx context.Context) domain.Outcome { return domain.OutcomeFailure }

		done := make(chan struct{})
		require.NoError(t, queue.Enqueue(NewInvocation(w, func(InvocationRecord) { close(done) })))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for invocation")
		}

		queue.Close()
		pool.Stop()
		assert.Equal(t, int32(1), failures.Load())
	})

	t.Run("invalid worker count uses default", func(t *testing.T) {
		queue := NewInvocationQueue(1, log)
		pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 0}, log)
		assert.Equal(t, 1, pool.workerCount)
	})
}

func TestExecute(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("panicking worker reports failure", func(t *testing.T) {
		w := NewMockWorker("panics")
		w.RunFn = func(ctx context.Context) domain.Outcome { panic("boom") }

		id := uuid.New()
		rec := execute(context.Background(), id, w, log)

		assert.Equal(t, id, rec.ID)
		assert.Equal(t, domain.OutcomeFailure, rec.Outcome)
		assert.False(t, rec.FinishedAt.IsZero())
	})

	t.Run("context carries invocation id and logger", func(t *testing.T) {
		var gotID string
		var gotLogger *slog.Logger
		w := NewMockWorker("ctx")
		w.RunFn = func(ctx context.Context) domain.Outcome {
			gotID = logger.InvocationID(ctx)
			gotLogger = logger.FromContext(ctx)
			return domain.OutcomeSuccess
		}

		id := uuid.New()
		rec := execute(context.Background(), id, w, log)

		assert.Equal(t, domain.OutcomeSuccess, rec.Outcome)
		assert.Equal(t, id.String(), gotID)
		assert.NotNil(t, gotLogger)
	})
}
