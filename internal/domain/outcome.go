package domain

// Outcome is the result of one task invocation as seen by the scheduler.
type Outcome int

// Possible outcomes
const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

// String returns the lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so outcomes render as names in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
