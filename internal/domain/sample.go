package domain

import (
	"fmt"
	"math"
)

// Sample is one resolved latitude/longitude pair produced by a positioning
// provider. It is owned by the callback that receives it and never persisted.
type Sample struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewSample creates a Sample and validates its coordinates.
func NewSample(latitude, longitude float64) (*Sample, error) {
	s := &Sample{
		Latitude:  latitude,
		Longitude: longitude,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks that the coordinates are finite and within range.
func (s *Sample) Validate() error {
	if math.IsNaN(s.Latitude) || s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidSample, s.Latitude)
	}
	if math.IsNaN(s.Longitude) || s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidSample, s.Longitude)
	}
	return nil
}

// String renders the sample the way it is emitted to the console.
func (s Sample) String() string {
	return fmt.Sprintf("[lat : %v, lng : %v]", s.Latitude, s.Longitude)
}
