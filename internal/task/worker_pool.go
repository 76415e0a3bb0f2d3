package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/domain"
	"github.com/screenomics/locationworker/internal/platform/logger"
)

// WorkerPool manages a pool of goroutines that run invocations taken from
// an invocation queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	// queue provides read access to the invocations to be processed
	queue InvocationQueueReader

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// logger for structured logging
	logger *slog.Logger

	// failureHandler is called when an invocation reports a failure
	// If nil, failures are only logged
	failureHandler func(rec InvocationRecord)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 1,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool(queue InvocationQueueReader, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		queue:       queue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetFailureHandler sets a handler called for every failed invocation
func (p *WorkerPool) SetFailureHandler(handler func(rec InvocationRecord)) {
	p.failureHandler = handler
}

// Start launches the worker goroutines
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop signals the workers to exit and waits for them
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
}

// worker processes invocations from the queue
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", "worker_id", id)
			return

		case inv, ok := <-p.queue.GetChannel():
			if !ok {
				p.logger.Debug("invocation channel closed, stopping worker", "worker_id", id)
				return
			}

			if inv.stale != nil && inv.stale() {
				p.logger.Debug("dropping invocation of a cancelled registration",
					"worker_id", id,
					"invocation_id", inv.ID,
					"worker", inv.Worker.Name())
				continue
			}

			rec := execute(p.ctx, inv.ID, inv.Worker, p.logger.With("worker_id", id))
			if rec.Outcome == domain.OutcomeFailure && p.failureHandler != nil {
				p.failureHandler(rec)
			}
			if inv.onDone != nil {
				inv.onDone(rec)
			}
		}
	}
}

// execute runs one invocation of w and records the result. A panicking
// worker is reported as a failure instead of taking the process down.
func execute(ctx context.Context, id uuid.UUID, w Worker, log *slog.Logger) (rec InvocationRecord) {
	log = log.With("invocation_id", id, "worker", w.Name())

	ctx = logger.WithLogger(ctx, log)
	ctx = logger.WithInvocationID(ctx, id.String())

	rec = InvocationRecord{
		ID:        id,
		Name:      w.Name(),
		StartedAt: time.Now().UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("worker panicked", "panic", r)
			rec.Outcome = domain.OutcomeFailure
		}
		rec.FinishedAt = time.Now().UTC()

		if rec.Outcome == domain.OutcomeFailure {
			log.Warn("invocation failed")
		} else {
			log.Info("invocation succeeded")
		}
	}()

	log.Debug("running invocation")
	rec.Outcome = w.Run(ctx)
	return rec
}
