package location

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/screenomics/locationworker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPendingResolve(t *testing.T) {
	t.Parallel()

	t.Run("listener registered before completion", func(t *testing.T) {
		p := NewPending(NewScope(context.Background()))

		var got []*domain.Sample
		p.OnSuccess(func(s *domain.Sample) { got = append(got, s) })

		p.Resolve(&domain.Sample{Latitude: 1, Longitude: 2})

		assert.Len(t, got, 1)
		assert.Equal(t, 1.0, got[0].Latitude)
		assert.Nil(t, p.Err())
	})

	t.Run("listener registered after completion fires immediately", func(t *testing.T) {
		p := NewPending(NewScope(context.Background()))
		p.Resolve(&domain.Sample{Latitude: 3, Longitude: 4})

		calls := 0
		p.OnSuccess(func(s *domain.Sample) { calls++ })

		assert.Equal(t, 1, calls)
	})

	t.Run("no fix delivers nil to success listeners", func(t *testing.T) {
		p := NewPending(NewScope(context.Background()))

		calls := 0
		var got *domain.Sample = &domain.Sample{}
		p.OnSuccess(func(s *domain.Sample) {
			calls++
			got = s
		})
		p.Resolve(nil)

		assert.Equal(t, 1, calls)
		assert.Nil(t, got)
	})

	t.Run("second completion is ignored", func(t *testing.T) {
		p := NewPending(NewScope(context.Background()))

		calls := 0
		p.OnSuccess(func(s *domain.Sample) { calls++ })
		p.Resolve(&domain.Sample{})
		p.Resolve(&domain.Sample{})
		p.Reject(errors.New("late"))

		assert.Equal(t, 1, calls)
		assert.Nil(t, p.Err())
	})
}

func TestPendingReject(t *testing.T) {
	t.Parallel()

	p := NewPending(NewScope(context.Background()))

	successCalls := 0
	var failure error
	p.OnSuccess(func(*domain.Sample) { successCalls++ })
	p.OnFailure(func(err error) { failure = err })

	providerErr := errors.New("provider disabled")
	p.Reject(providerErr)

	assert.Equal(t, 0, successCalls, "failures never reach success listeners")
	assert.ErrorIs(t, failure, providerErr)
	assert.ErrorIs(t, p.Err(), providerErr)

	select {
	case <-p.Done():
	default:
		t.Fatal("Done should be closed after completion")
	}
}

func TestPendingSuppressedByCancelledScope(t *testing.T) {
	t.Parallel()

	scope := NewScope(context.Background())
	p := NewPending(scope)

	calls := 0
	p.OnSuccess(func(*domain.Sample) { calls++ })

	scope.Cancel()
	p.Resolve(&domain.Sample{Latitude: 1, Longitude: 1})

	// Late registration is suppressed too
	p.OnSuccess(func(*domain.Sample) { calls++ })

	assert.Equal(t, 0, calls)
	assert.True(t, p.Suppressed())
}

func TestPendingConcurrentRegistration(t *testing.T) {
	t.Parallel()

	p := NewPending(NewScope(context.Background()))

	var mu sync.Mutex
	calls := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.OnSuccess(func(*domain.Sample) {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		}()
	}
	p.Resolve(&domain.Sample{})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 20, calls, "every listener fires exactly once")
}

func TestPendingDoneAfterListeners(t *testing.T) {
	t.Parallel()

	p := NewPending(NewScope(context.Background()))

	entered := make(chan struct{})
	release := make(chan struct{})
	p.OnSuccess(func(*domain.Sample) {
		close(entered)
		<-release
	})

	go p.Resolve(&domain.Sample{Latitude: 1, Longitude: 2})
	<-entered

	select {
	case <-p.Done():
		t.Fatal("Done closed while a listener was still running")
	default:
	}

	close(release)

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after the listener returned")
	}
}
