package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/domain"
)

// Scheduler and registration errors
var (
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrNotRegistered       = errors.New("no worker registered under that name")
	ErrInvocationActive    = errors.New("an invocation of this worker is still active")
	ErrSchedulerStopped    = errors.New("scheduler is stopped")
)

// Worker is a unit of recurring background work.
// Run takes no caller-supplied arguments and reports exactly one outcome.
type Worker interface {
	// Name returns the process-wide unique registration name
	Name() string

	// Run performs one invocation
	Run(ctx context.Context) domain.Outcome
}

// ExistingPolicy decides what happens when a name is registered twice.
type ExistingPolicy string

// Supported policies
const (
	// PolicyKeep leaves the existing registration in place and ignores the new one
	PolicyKeep ExistingPolicy = "keep"

	// PolicyReplace stops the existing registration and installs the new one
	PolicyReplace ExistingPolicy = "replace"
)

// ParsePolicy converts a configuration value into an ExistingPolicy.
func ParsePolicy(s string) (ExistingPolicy, error) {
	switch p := ExistingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyKeep, PolicyReplace:
		return p, nil
	case "":
		return PolicyKeep, nil
	default:
		return "", fmt.Errorf("%w: unknown policy %q", ErrInvalidRegistration, s)
	}
}

// Registration describes how a worker is scheduled.
type Registration struct {
	Name         string
	Interval     time.Duration
	InitialDelay time.Duration
	Policy       ExistingPolicy
}

// Validate checks the registration values.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRegistration)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidRegistration)
	}
	if r.InitialDelay < 0 {
		return fmt.Errorf("%w: initial delay cannot be negative", ErrInvalidRegistration)
	}
	switch r.Policy {
	case PolicyKeep, PolicyReplace, "":
	default:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidRegistration, r.Policy)
	}
	return nil
}

// InvocationRecord is the result of one finished invocation.
type InvocationRecord struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Outcome    domain.Outcome `json:"outcome"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}
