package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewSample(t *testing.T) {
	t.Parallel()

	sample, err := NewSample(37.7749, -122.4194)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sample.Latitude != 37.7749 {
		t.Errorf("Expected latitude 37.7749, got %v", sample.Latitude)
	}
	if sample.Longitude != -122.4194 {
		t.Errorf("Expected longitude -122.4194, got %v", sample.Longitude)
	}
}

func TestSampleValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sample  Sample
		wantErr bool
	}{
		{"origin", Sample{0, 0}, false},
		{"north pole", Sample{90, 0}, false},
		{"antimeridian", Sample{-12.5, 180}, false},
		{"latitude too high", Sample{90.01, 0}, true},
		{"latitude too low", Sample{-91, 0}, true},
		{"longitude too high", Sample{0, 181}, true},
		{"longitude too low", Sample{0, -180.5}, true},
		{"latitude NaN", Sample{math.NaN(), 0}, true},
		{"longitude NaN", Sample{0, math.NaN()}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.sample.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSample) {
					t.Errorf("Expected ErrInvalidSample, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestSampleString(t *testing.T) {
	t.Parallel()

	s := Sample{Latitude: 37.7749, Longitude: -122.4194}
	want := "[lat : 37.7749, lng : -122.4194]"
	if got := s.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
