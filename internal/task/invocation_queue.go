package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by the InvocationQueue
var (
	ErrQueueClosed = errors.New("invocation queue is closed")
	ErrQueueFull   = errors.New("invocation queue is full")
)

// Invocation is one request to run a worker.
type Invocation struct {
	ID         uuid.UUID
	Worker     Worker
	EnqueuedAt time.Time

	// onDone is called with the record once the invocation finished
	onDone func(InvocationRecord)

	// stale reports, just before running, that the invocation should be
	// dropped instead
	stale func() bool
}

// NewInvocation creates an Invocation for w. onDone may be nil.
func NewInvocation(w Worker, onDone func(InvocationRecord)) Invocation {
	return Invocation{
		ID:         uuid.New(),
		Worker:     w,
		EnqueuedAt: time.Now().UTC(),
		onDone:     onDone,
	}
}

// InvocationQueueReader provides read-only access to the invocation channel
// allowing workers to consume invocations without the ability to enqueue
type InvocationQueueReader interface {
	// GetChannel returns a read-only channel for consuming invocations
	GetChannel() <-chan Invocation
}

// InvocationQueue is a buffered queue of pending invocations.
type InvocationQueue struct {
	mu          sync.Mutex
	invocations chan Invocation
	logger      *slog.Logger
	closed      bool
}

// NewInvocationQueue creates a new queue with the specified buffer size
func NewInvocationQueue(size int, logger *slog.Logger) *InvocationQueue {
	return &InvocationQueue{
		invocations: make(chan Invocation, size),
		logger:      logger,
	}
}

// Enqueue adds an invocation to the queue for processing.
// Returns an error if the queue is full or closed
func (q *InvocationQueue) Enqueue(inv Invocation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.invocations <- inv:
		q.logger.Debug("invocation enqueued",
			"invocation_id", inv.ID,
			"worker", inv.Worker.Name(),
			"queue_len", len(q.invocations),
			"queue_cap", cap(q.invocations))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.invocations))
	}
}

// Close closes the queue, preventing further submissions
func (q *InvocationQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.invocations)
		q.logger.Info("invocation queue closed")
	}
}

// GetChannel returns a read-only channel for consuming invocations
func (q *InvocationQueue) GetChannel() <-chan Invocation {
	return q.invocations
}
