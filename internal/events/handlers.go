package events

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// ConsoleHandler writes one human-readable line per sample:
//
//	Current Location = [lat : 37.7749, lng : -122.4194]
type ConsoleHandler struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleHandler creates a ConsoleHandler writing to out.
func NewConsoleHandler(out io.Writer) *ConsoleHandler {
	return &ConsoleHandler{out: out}
}

// HandleEvent implements EventHandler.
func (h *ConsoleHandler) HandleEvent(_ context.Context, event *LocationSampleEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := fmt.Fprintf(h.out, "Current Location = %s\n", event.Sample); err != nil {
		return fmt.Errorf("failed to write location line: %w", err)
	}
	return nil
}

// LogHandler records each sample as a structured log entry.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "location_log_handler")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *LocationSampleEvent) error {
	h.logger.InfoContext(ctx, "current location",
		"event_id", event.ID,
		"worker", event.Worker,
		"invocation_id", event.InvocationID,
		"scope_id", event.ScopeID,
		"latitude", event.Sample.Latitude,
		"longitude", event.Sample.Longitude)
	return nil
}
