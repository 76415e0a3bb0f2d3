package permission

import (
	"context"
	"log/slog"
	"time"
)

// CoarseLocation is the capability name checked before sampling a position.
const CoarseLocation = "coarse_location"

// Gate reports whether the coarse-location capability is granted.
// Check never fails: absence of the capability, or any trouble looking it
// up, is reported as false.
type Gate interface {
	Check(ctx context.Context) bool
}

// GateFunc adapts an ordinary function to the Gate interface.
type GateFunc func(ctx context.Context) bool

// Check calls f(ctx).
func (f GateFunc) Check(ctx context.Context) bool {
	return f(ctx)
}

// StaticGate is a Gate with a fixed answer, typically taken from configuration.
type StaticGate bool

// Check returns the fixed answer.
func (g StaticGate) Check(context.Context) bool {
	return bool(g)
}

// GrantStore looks up capability grants recorded by the consent flow.
type GrantStore interface {
	// IsGranted returns whether the named capability is granted.
	// A capability with no recorded grant is not granted.
	IsGranted(ctx context.Context, capability string) (bool, error)
}

// StoreGate is a Gate backed by a GrantStore.
type StoreGate struct {
	store      GrantStore
	capability string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewStoreGate creates a StoreGate checking the coarse-location capability.
// Lookups taking longer than timeout are abandoned and treated as not granted;
// a non-positive timeout disables the bound.
func NewStoreGate(store GrantStore, timeout time.Duration, logger *slog.Logger) *StoreGate {
	return &StoreGate{
		store:      store,
		capability: CoarseLocation,
		timeout:    timeout,
		logger:     logger.With("component", "permission_gate"),
	}
}

// Check implements Gate.
func (g *StoreGate) Check(ctx context.Context) bool {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	granted, err := g.store.IsGranted(ctx, g.capability)
	if err != nil {
		g.logger.Debug("grant lookup failed, treating capability as not granted",
			"capability", g.capability,
			"error", err)
		return false
	}

	return granted
}
