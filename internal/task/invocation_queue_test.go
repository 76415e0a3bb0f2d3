package task

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocationQueue(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("enqueue and consume", func(t *testing.T) {
		queue := NewInvocationQueue(2, logger)
		w := NewMockWorker("worker")

		inv := NewInvocation(w, nil)
		require.NoError(t, queue.Enqueue(inv))

		got := <-queue.GetChannel()
		assert.Equal(t, inv.ID, got.ID)
		assert.Equal(t, "worker", got.Worker.Name())
		assert.False(t, got.EnqueuedAt.IsZero())
	})

	t.Run("full queue", func(t *testing.T) {
		queue := NewInvocationQueue(1, logger)
		w := NewMockWorker("worker")

		require.NoError(t, queue.Enqueue(NewInvocation(w, nil)))
		err := queue.Enqueue(NewInvocation(w, nil))
		assert.ErrorIs(t, err, ErrQueueFull)
	})

	t.Run("closed queue", func(t *testing.T) {
		queue := NewInvocationQueue(1, logger)
		queue.Close()
		queue.Close() // second close is a no-op

		err := queue.Enqueue(NewInvocation(NewMockWorker("worker"), nil))
		assert.ErrorIs(t, err, ErrQueueClosed)

		_, ok := <-queue.GetChannel()
		assert.False(t, ok)
	})
}
