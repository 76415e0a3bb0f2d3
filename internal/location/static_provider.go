package location

import (
	"context"

	"github.com/screenomics/locationworker/internal/domain"
)

// StaticProvider always reports the same position, or no fix at all.
// It stands in for hardware positioning on hosts without it.
type StaticProvider struct {
	sample *domain.Sample
}

// NewStaticProvider returns a provider reporting latitude/longitude.
func NewStaticProvider(latitude, longitude float64) (*StaticProvider, error) {
	sample, err := domain.NewSample(latitude, longitude)
	if err != nil {
		return nil, err
	}
	return &StaticProvider{sample: sample}, nil
}

// NewNoFixProvider returns a provider that never acquires a fix.
func NewNoFixProvider() *StaticProvider {
	return &StaticProvider{}
}

// CurrentLocation implements Provider.
func (p *StaticProvider) CurrentLocation(ctx context.Context, _ domain.Priority) (*domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.sample == nil {
		return nil, nil
	}
	s := *p.sample
	return &s, nil
}
