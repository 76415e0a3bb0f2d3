package location

import (
	"context"

	"github.com/google/uuid"
)

// Scope bounds how long an acquisition request may remain pending.
// A new Scope is created for every task invocation and never reused.
type Scope struct {
	id     uuid.UUID
	ctx    context.Context
	cancel context.CancelFunc
}

// ScopeFactory creates the Scope for one invocation.
type ScopeFactory func(parent context.Context) *Scope

// NewScope creates a fresh Scope. The scope keeps the values of parent
// (logger, invocation ID) but not its cancellation: ending the invocation
// does not end the scope.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &Scope{
		id:     uuid.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID returns the unique identifier of the scope.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Context returns the context that providers must honour while the scope is live.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Cancel ends the scope. Pending requests bound to it will not notify listeners.
func (s *Scope) Cancel() {
	s.cancel()
}

// Cancelled reports whether Cancel has been called.
func (s *Scope) Cancelled() bool {
	return s.ctx.Err() != nil
}
