package domain

import (
	"fmt"
	"strings"
)

// Priority trades positioning accuracy against power consumption.
// The numeric values follow the fused location provider constants so they
// can be passed through to platform bridges unchanged.
type Priority int

// Supported priorities
const (
	PriorityHighAccuracy          Priority = 100
	PriorityBalancedPowerAccuracy Priority = 102
	PriorityLowPower              Priority = 104
	PriorityPassive               Priority = 105
)

// DefaultPriority is the priority supplied to every sampling request
// unless configured otherwise.
const DefaultPriority = PriorityBalancedPowerAccuracy

var priorityNames = map[Priority]string{
	PriorityHighAccuracy:          "high_accuracy",
	PriorityBalancedPowerAccuracy: "balanced",
	PriorityLowPower:              "low_power",
	PriorityPassive:               "passive",
}

// String returns the configuration name of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// IsValid reports whether p is one of the supported priorities.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority converts a configuration name (case-insensitive) into a Priority.
func ParsePriority(name string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for p, n := range priorityNames {
		if n == normalized {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPriority, name)
}
