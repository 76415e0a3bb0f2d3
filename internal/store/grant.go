package store

import (
	"context"
	"time"
)

// Grant is the recorded consent state of one capability.
type Grant struct {
	Capability string    `json:"capability"`
	Granted    bool      `json:"granted"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GrantStore defines the interface for capability grant persistence.
// The worker only reads grants; writes come from the consent flow.
type GrantStore interface {
	// IsGranted reports whether capability is currently granted.
	// A capability without a recorded grant is not granted.
	IsGranted(ctx context.Context, capability string) (bool, error)

	// Get returns the recorded grant for capability.
	// Returns ErrGrantNotFound if none has been recorded.
	Get(ctx context.Context, capability string) (*Grant, error)

	// Set records the grant state for capability and returns the previous
	// state, which is false when nothing was recorded before.
	Set(ctx context.Context, capability string, granted bool) (previous bool, err error)
}
