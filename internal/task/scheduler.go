package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/domain"
)

// SchedulerConfig holds configuration for the scheduler
type SchedulerConfig struct {
	// WorkerCount determines how many invocations may run concurrently
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory invocation queue
	QueueSize int
}

// DefaultSchedulerConfig returns a SchedulerConfig with reasonable defaults
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		WorkerCount: 1,
		QueueSize:   10,
	}
}

// RegistrationStatus is a snapshot of one registration.
type RegistrationStatus struct {
	Name         string            `json:"name"`
	Interval     string            `json:"interval"`
	InitialDelay string            `json:"initial_delay"`
	Policy       ExistingPolicy    `json:"policy"`
	Active       bool              `json:"active"`
	Runs         int               `json:"runs"`
	Failures     int               `json:"failures"`
	Skipped      int               `json:"skipped"`
	Last         *InvocationRecord `json:"last,omitempty"`
}

type entry struct {
	reg      Registration
	worker   Worker
	cancel   context.CancelFunc
	runs     int
	failures int
	skipped  int
	last     *InvocationRecord
}

// Scheduler invokes registered workers periodically. Names are unique
// process-wide and at most one invocation per name runs at a time.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]*entry
	started bool
	stopped bool

	// running holds the names with an invocation queued or in progress. It
	// is keyed by name, not entry, so the guard survives replace and cancel.
	running map[string]bool

	queue *InvocationQueue
	pool  *WorkerPool

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(config SchedulerConfig, logger *slog.Logger) *Scheduler {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultSchedulerConfig().QueueSize
	}

	poolConfig := DefaultWorkerPoolConfig()
	if config.WorkerCount > 0 {
		poolConfig.WorkerCount = config.WorkerCount
	}

	logger = logger.With("component", "scheduler")
	queue := NewInvocationQueue(config.QueueSize, logger)
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		entries:    make(map[string]*entry),
		running:    make(map[string]bool),
		queue:      queue,
		pool:       NewWorkerPool(queue, poolConfig, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger,
	}
	s.pool.SetFailureHandler(s.reportFailure)

	return s
}

// Register schedules w under reg.Name. If the name is already registered the
// registration policy decides: keep ignores the new registration, replace
// stops the old loop and installs the new one.
func (s *Scheduler) Register(reg Registration, w Worker) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: worker cannot be nil", ErrInvalidRegistration)
	}
	if reg.Policy == "" {
		reg.Policy = PolicyKeep
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}

	if existing, ok := s.entries[reg.Name]; ok {
		if reg.Policy == PolicyKeep {
			s.logger.Info("worker already registered, keeping existing registration",
				"worker", reg.Name)
			return nil
		}
		if existing.cancel != nil {
			existing.cancel()
		}
		s.logger.Info("replacing existing registration", "worker", reg.Name)
	}

	e := &entry{reg: reg, worker: w}
	s.entries[reg.Name] = e

	if s.started {
		s.startLoop(e)
	}

	s.logger.Info("worker registered",
		"worker", reg.Name,
		"interval", reg.Interval.String(),
		"initial_delay", reg.InitialDelay.String(),
		"policy", string(reg.Policy))

	return nil
}

// Cancel stops the registration with the given name.
func (s *Scheduler) Cancel(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	if e.cancel != nil {
		e.cancel()
	}
	delete(s.entries, name)

	s.logger.Info("registration cancelled", "worker", name)
	return nil
}

// Start begins periodic dispatch of all registrations
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if s.started {
		return nil
	}
	s.started = true

	s.pool.Start()
	for _, e := range s.entries {
		s.startLoop(e)
	}

	s.logger.Info("scheduler started", "registrations", len(s.entries))
	return nil
}

// Stop gracefully shuts down the scheduler. Invocations already running are
// allowed to finish; queued ones are dropped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.mu.Unlock()

	s.cancelFunc()
	s.wg.Wait()
	s.queue.Close()
	if started {
		s.pool.Stop()
	}

	s.logger.Info("scheduler stopped")
}

// RunNow runs the named worker immediately on the calling goroutine and
// returns its record. It fails with ErrInvocationActive if an invocation of
// the same name is already running.
func (s *Scheduler) RunNow(ctx context.Context, name string) (InvocationRecord, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return InvocationRecord{}, ErrSchedulerStopped
	}
	e, ok := s.entries[name]
	if !ok {
		s.mu.Unlock()
		return InvocationRecord{}, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	if s.running[name] {
		s.mu.Unlock()
		return InvocationRecord{}, fmt.Errorf("%w: %s", ErrInvocationActive, name)
	}
	s.running[name] = true
	s.mu.Unlock()

	rec := execute(ctx, uuid.New(), e.worker, s.logger)
	if rec.Outcome == domain.OutcomeFailure {
		s.reportFailure(rec)
	}
	s.finish(e, rec)

	return rec, nil
}

// Status returns a snapshot of all registrations sorted by name.
func (s *Scheduler) Status() []RegistrationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]RegistrationStatus, 0, len(s.entries))
	for _, e := range s.entries {
		st := RegistrationStatus{
			Name:         e.reg.Name,
			Interval:     e.reg.Interval.String(),
			InitialDelay: e.reg.InitialDelay.String(),
			Policy:       e.reg.Policy,
			Active:       s.running[e.reg.Name],
			Runs:         e.runs,
			Failures:     e.failures,
			Skipped:      e.skipped,
		}
		if e.last != nil {
			last := *e.last
			st.Last = &last
		}
		statuses = append(statuses, st)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	return statuses
}

// startLoop must be called with s.mu held.
func (s *Scheduler) startLoop(e *entry) {
	ctx, cancel := context.WithCancel(s.ctx)
	e.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx, e)
}

// loop waits for the initial delay, then dispatches e every interval
func (s *Scheduler) loop(ctx context.Context, e *entry) {
	defer s.wg.Done()

	timer := time.NewTimer(e.reg.InitialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	s.dispatch(e)

	ticker := time.NewTicker(e.reg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(e)
		}
	}
}

// dispatch enqueues one invocation of e unless one is already active
func (s *Scheduler) dispatch(e *entry) {
	s.mu.Lock()
	if s.entries[e.reg.Name] != e {
		// replaced or cancelled in the meantime
		s.mu.Unlock()
		return
	}
	if s.running[e.reg.Name] {
		e.skipped++
		s.mu.Unlock()
		s.logger.Debug("previous invocation still active, skipping", "worker", e.reg.Name)
		return
	}
	s.running[e.reg.Name] = true
	s.mu.Unlock()

	inv := NewInvocation(e.worker, func(rec InvocationRecord) {
		s.finish(e, rec)
	})
	inv.stale = func() bool {
		return s.release(e)
	}

	if err := s.queue.Enqueue(inv); err != nil {
		s.mu.Lock()
		delete(s.running, e.reg.Name)
		s.mu.Unlock()

		if errors.Is(err, ErrQueueClosed) {
			return
		}
		s.logger.Error("failed to enqueue invocation",
			"worker", e.reg.Name,
			"error", err)
	}
}

// finish records rec on e and frees the name. Only one invocation per name
// holds the running flag, so the finishing one owns it even if e has been
// replaced in the meantime.
func (s *Scheduler) finish(e *entry, rec InvocationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.running, e.reg.Name)
	e.runs++
	if rec.Outcome == domain.OutcomeFailure {
		e.failures++
	}
	e.last = &rec
}

// release frees the name of a queued invocation whose registration was
// replaced or cancelled, and reports whether it should be dropped.
func (s *Scheduler) release(e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[e.reg.Name] == e {
		return false
	}
	delete(s.running, e.reg.Name)
	return true
}

func (s *Scheduler) reportFailure(rec InvocationRecord) {
	s.logger.Warn("invocation reported failure",
		"worker", rec.Name,
		"invocation_id", rec.ID,
		"duration_ms", rec.FinishedAt.Sub(rec.StartedAt).Milliseconds())
}
