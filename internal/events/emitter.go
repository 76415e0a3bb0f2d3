package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter fans location samples out to handlers registered in
// process. Every handler sees every sample, in registration order.
type InMemoryEventEmitter struct {
	handlers []EventHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		handlers: make([]EventHandler, 0),
		logger:   logger.With("component", "sample_emitter"),
	}
}

// RegisterHandler adds handler to the sinks receiving samples.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered sample handler",
		"handler", fmt.Sprintf("%T", handler),
		"handler_count", len(e.handlers))
}

// EmitEvent delivers event to every registered handler. A failing handler
// does not stop delivery to the others; the first error is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *LocationSampleEvent) error {
	e.mu.RLock()
	handlers := make([]EventHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	log := e.logger.With(
		"event_id", event.ID,
		"worker", event.Worker,
		"scope_id", event.ScopeID)
	if event.InvocationID != "" {
		log = log.With("invocation_id", event.InvocationID)
	}

	if len(handlers) == 0 {
		log.Warn("location sample dropped, no handlers registered")
		return nil
	}

	log.Debug("emitting location sample", "handler_count", len(handlers))

	var firstErr error
	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("sample handler failed",
				"handler", fmt.Sprintf("%T", handler),
				"error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
