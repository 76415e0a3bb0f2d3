package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/domain"
)

// EventTypeLocationSample identifies events carrying a resolved position.
const EventTypeLocationSample = "location_sample"

// LocationSampleEvent is published once for every sample that resolves with
// a position. Samples that resolve empty produce no event.
type LocationSampleEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is always EventTypeLocationSample
	Type string `json:"type"`

	// Worker is the registration name of the task that requested the sample
	Worker string `json:"worker"`

	// InvocationID identifies the task invocation, when known
	InvocationID string `json:"invocation_id,omitempty"`

	// ScopeID is the cancellation scope the request was bound to
	ScopeID uuid.UUID `json:"scope_id"`

	Sample domain.Sample `json:"sample"`

	// CreatedAt is the timestamp when the sample was received
	CreatedAt time.Time `json:"created_at"`
}

// NewLocationSampleEvent creates a LocationSampleEvent for sample.
func NewLocationSampleEvent(worker, invocationID string, scopeID uuid.UUID, sample domain.Sample) *LocationSampleEvent {
	return &LocationSampleEvent{
		ID:           uuid.New(),
		Type:         EventTypeLocationSample,
		Worker:       worker,
		InvocationID: invocationID,
		ScopeID:      scopeID,
		Sample:       sample,
		CreatedAt:    time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *LocationSampleEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the task to publish samples without direct knowledge of sinks.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *LocationSampleEvent) error
}
