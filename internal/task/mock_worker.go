package task

import (
	"context"
	"sync"

	"github.com/screenomics/locationworker/internal/domain"
)

// MockWorker is a simple implementation of the Worker interface for testing
type MockWorker struct {
	WorkerName string
	RunFn      func(ctx context.Context) domain.Outcome

	mu    sync.Mutex
	calls int
}

// NewMockWorker creates a MockWorker that always succeeds
func NewMockWorker(name string) *MockWorker {
	return &MockWorker{
		WorkerName: name,
		RunFn:      func(ctx context.Context) domain.Outcome { return domain.OutcomeSuccess },
	}
}

// Name returns the registration name
func (w *MockWorker) Name() string {
	return w.WorkerName
}

// Run counts the call and delegates to RunFn
func (w *MockWorker) Run(ctx context.Context) domain.Outcome {
	w.mu.Lock()
	w.calls++
	w.mu.Unlock()
	return w.RunFn(ctx)
}

// Calls returns how many times Run was called
func (w *MockWorker) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}
