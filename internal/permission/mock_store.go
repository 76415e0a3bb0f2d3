package permission

import (
	"context"
	"sync"
)

// MockGrantStore is an in-memory GrantStore for tests and local runs.
type MockGrantStore struct {
	mu     sync.RWMutex
	grants map[string]bool
	Calls  int

	// IsGrantedFn overrides the default lookup when set
	IsGrantedFn func(ctx context.Context, capability string) (bool, error)
}

// NewMockGrantStore creates a MockGrantStore with no grants recorded.
func NewMockGrantStore() *MockGrantStore {
	return &MockGrantStore{
		grants: make(map[string]bool),
	}
}

// SetGrant records a grant for capability.
func (s *MockGrantStore) SetGrant(capability string, granted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[capability] = granted
}

// IsGranted implements GrantStore.
func (s *MockGrantStore) IsGranted(ctx context.Context, capability string) (bool, error) {
	s.mu.Lock()
	s.Calls++
	fn := s.IsGrantedFn
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, capability)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grants[capability], nil
}
