package location

import (
	"sync"

	"github.com/screenomics/locationworker/internal/domain"
)

// Pending is the handle for one outstanding acquisition request.
//
// Success listeners receive the sample, or nil when the provider produced no
// fix. Failure listeners receive provider errors. Listeners registered after
// completion are invoked immediately; each listener fires at most once.
type Pending struct {
	scope *Scope

	mu         sync.Mutex
	done       chan struct{}
	completed  bool
	suppressed bool
	sample     *domain.Sample
	err        error
	onSuccess  []func(*domain.Sample)
	onFailure  []func(error)
}

// NewPending creates an unresolved handle bound to scope.
func NewPending(scope *Scope) *Pending {
	return &Pending{
		scope: scope,
		done:  make(chan struct{}),
	}
}

// Scope returns the scope the request is bound to.
func (p *Pending) Scope() *Scope {
	return p.scope
}

// OnSuccess registers fn to receive the result of a successful request.
func (p *Pending) OnSuccess(fn func(*domain.Sample)) *Pending {
	p.mu.Lock()
	if !p.completed {
		p.onSuccess = append(p.onSuccess, fn)
		p.mu.Unlock()
		return p
	}
	fire := !p.suppressed && p.err == nil
	sample := p.sample
	p.mu.Unlock()

	if fire {
		fn(sample)
	}
	return p
}

// OnFailure registers fn to receive the error of a failed request.
func (p *Pending) OnFailure(fn func(error)) *Pending {
	p.mu.Lock()
	if !p.completed {
		p.onFailure = append(p.onFailure, fn)
		p.mu.Unlock()
		return p
	}
	fire := !p.suppressed && p.err != nil
	err := p.err
	p.mu.Unlock()

	if fire {
		fn(err)
	}
	return p
}

// Resolve completes the request with sample, which may be nil for "no fix".
func (p *Pending) Resolve(sample *domain.Sample) {
	p.complete(sample, nil)
}

// Reject completes the request with err.
func (p *Pending) Reject(err error) {
	p.complete(nil, err)
}

func (p *Pending) complete(sample *domain.Sample, err error) {
	p.mu.Lock()
	if p.completed {
		p.mu.Unlock()
		return
	}
	p.completed = true
	p.sample = sample
	p.err = err
	p.suppressed = p.scope != nil && p.scope.Cancelled()
	successes := p.onSuccess
	failures := p.onFailure
	p.onSuccess = nil
	p.onFailure = nil
	p.mu.Unlock()

	defer close(p.done)

	if p.suppressed {
		return
	}

	if err != nil {
		for _, fn := range failures {
			fn(err)
		}
		return
	}
	for _, fn := range successes {
		fn(sample)
	}
}

// Done is closed once the request has completed, suppressed or not, and after
// the listeners registered before completion have returned.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the provider error after completion, or nil.
func (p *Pending) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Suppressed reports whether the request completed after its scope was cancelled.
func (p *Pending) Suppressed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suppressed
}
