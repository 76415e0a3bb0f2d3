package location

import (
	"context"
	"testing"

	"github.com/screenomics/locationworker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestNewScope(t *testing.T) {
	t.Parallel()

	a := NewScope(context.Background())
	b := NewScope(context.Background())

	assert.NotEqual(t, a.ID(), b.ID(), "every scope gets its own ID")
	assert.False(t, a.Cancelled())

	a.Cancel()
	assert.True(t, a.Cancelled())
	assert.False(t, b.Cancelled(), "cancelling one scope must not affect another")
}

func TestScopeIsNotLinkedToParent(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(logger.WithInvocationID(context.Background(), "inv-1"))
	scope := NewScope(parent)

	cancel()

	assert.False(t, scope.Cancelled(), "ending the invocation does not end the scope")
	assert.Equal(t, "inv-1", logger.InvocationID(scope.Context()), "parent values are kept")
}
