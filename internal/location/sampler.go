package location

import (
	"context"
	"log/slog"

	"github.com/screenomics/locationworker/internal/domain"
)

// Sampler issues one asynchronous position request per call.
// Fetch must not block; the result is delivered through the returned handle.
type Sampler interface {
	Fetch(priority domain.Priority, scope *Scope) *Pending
}

// Provider is the underlying positioning capability.
// It returns (nil, nil) when no fix is available and an error when the
// capability itself failed. Implementations must honour ctx.
type Provider interface {
	CurrentLocation(ctx context.Context, priority domain.Priority) (*domain.Sample, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, priority domain.Priority) (*domain.Sample, error)

// CurrentLocation calls f(ctx, priority).
func (f ProviderFunc) CurrentLocation(ctx context.Context, priority domain.Priority) (*domain.Sample, error) {
	return f(ctx, priority)
}

// ProviderSampler runs each request against a Provider on its own goroutine.
type ProviderSampler struct {
	provider Provider
	logger   *slog.Logger
}

// NewProviderSampler creates a Sampler backed by provider.
func NewProviderSampler(provider Provider, logger *slog.Logger) *ProviderSampler {
	return &ProviderSampler{
		provider: provider,
		logger:   logger.With("component", "location_sampler"),
	}
}

// Fetch implements Sampler.
func (s *ProviderSampler) Fetch(priority domain.Priority, scope *Scope) *Pending {
	pending := NewPending(scope)

	s.logger.Debug("requesting current location",
		"priority", priority.String(),
		"scope_id", scope.ID())

	go func() {
		sample, err := s.provider.CurrentLocation(scope.Context(), priority)
		if err != nil {
			s.logger.Debug("location request failed",
				"scope_id", scope.ID(),
				"error", err)
			pending.Reject(err)
			return
		}
		pending.Resolve(sample)
	}()

	return pending
}
