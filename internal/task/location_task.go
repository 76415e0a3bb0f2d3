package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/screenomics/locationworker/internal/domain"
	"github.com/screenomics/locationworker/internal/events"
	"github.com/screenomics/locationworker/internal/location"
	"github.com/screenomics/locationworker/internal/permission"
	"github.com/screenomics/locationworker/internal/platform/logger"
)

// DefaultLocationWorkerName is the registration name used when none is configured.
const DefaultLocationWorkerName = "ScreenomicsLocationWorker"

// LocationTaskConfig holds the fixed settings of the location task.
type LocationTaskConfig struct {
	// Name is the registration name; defaults to DefaultLocationWorkerName
	Name string

	// Priority is supplied to every sampling request; defaults to domain.DefaultPriority
	Priority domain.Priority
}

// LocationTaskOption customizes a LocationTask.
type LocationTaskOption func(*LocationTask)

// WithScopeFactory replaces the function creating the per-invocation scope.
func WithScopeFactory(f location.ScopeFactory) LocationTaskOption {
	return func(t *LocationTask) {
		t.newScope = f
	}
}

// LocationTask acquires the current approximate position once per invocation.
type LocationTask struct {
	name     string
	priority domain.Priority
	gate     permission.Gate
	sampler  location.Sampler
	emitter  events.EventEmitter
	newScope location.ScopeFactory
	logger   *slog.Logger

	mu          sync.Mutex
	lastRequest *location.Pending
}

var _ Worker = (*LocationTask)(nil)

// NewLocationTask creates a LocationTask with the given collaborators.
func NewLocationTask(
	cfg LocationTaskConfig,
	gate permission.Gate,
	sampler location.Sampler,
	emitter events.EventEmitter,
	log *slog.Logger,
	opts ...LocationTaskOption,
) (*LocationTask, error) {
	if gate == nil {
		return nil, errors.New("permission gate cannot be nil")
	}
	if sampler == nil {
		return nil, errors.New("location sampler cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Name == "" {
		cfg.Name = DefaultLocationWorkerName
	}
	if cfg.Priority == 0 {
		cfg.Priority = domain.DefaultPriority
	}
	if !cfg.Priority.IsValid() {
		return nil, domain.ErrUnknownPriority
	}

	t := &LocationTask{
		name:     cfg.Name,
		priority: cfg.Priority,
		gate:     gate,
		sampler:  sampler,
		emitter:  emitter,
		newScope: location.NewScope,
		logger:   log.With("component", "location_task", "worker", cfg.Name),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Name implements Worker.
func (t *LocationTask) Name() string {
	return t.name
}

// Priority returns the accuracy priority used for every request.
func (t *LocationTask) Priority() domain.Priority {
	return t.priority
}

// Run implements Worker. It reports Success as soon as the position request
// has been dispatched; the request's own result never changes the outcome.
// The only failure is a missing coarse-location grant.
func (t *LocationTask) Run(ctx context.Context) domain.Outcome {
	invocationID := logger.InvocationID(ctx)
	log := t.logger
	if invocationID != "" {
		log = log.With("invocation_id", invocationID)
	}

	if !t.gate.Check(ctx) {
		log.Warn("location task not run", "error", domain.ErrPermissionDenied)
		return domain.OutcomeFailure
	}

	scope := t.newScope(ctx)

	// NOTE: the scope is never cancelled, neither when the outcome is reported
	// nor on shutdown, so the request lives until the provider gives up on its
	// own. Whether it should be tied to the invocation instead is unresolved;
	// keep it this way until that is decided.
	pending := t.sampler.Fetch(t.priority, scope)
	t.mu.Lock()
	t.lastRequest = pending
	t.mu.Unlock()

	pending.OnSuccess(func(sample *domain.Sample) {
		if sample == nil {
			log.Debug("location request resolved without a fix", "scope_id", scope.ID())
			return
		}

		event := events.NewLocationSampleEvent(t.name, invocationID, scope.ID(), *sample)
		if err := t.emitter.EmitEvent(scope.Context(), event); err != nil {
			log.Warn("failed to emit location sample",
				"scope_id", scope.ID(),
				"error", err)
		}
	})

	log.Info("location request dispatched",
		"scope_id", scope.ID(),
		"priority", t.priority.String())

	return domain.OutcomeSuccess
}

// LastRequest returns the request dispatched by the most recent granted
// invocation, or nil if there has been none. It does not affect outcomes.
func (t *LocationTask) LastRequest() *location.Pending {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRequest
}
