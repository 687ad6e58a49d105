package errors

import (
	"fmt"
	"time"
)

// Sentinel errors for the planner's failure taxonomy. Wrapper types below
// carry context; errors.Is against these sentinels classifies them.
var (
	ErrInsufficientData     = fmt.Errorf("insufficient training data")
	ErrInvalidHorizon       = fmt.Errorf("invalid forecast horizon")
	ErrInvalidParameter     = fmt.Errorf("invalid parameter")
	ErrMalformedObservation = fmt.Errorf("malformed observation")
)

// InsufficientDataError reports a fit attempt on too little history.
type InsufficientDataError struct {
	Got int
	Min int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient training data: got %d observations, need at least %d", e.Got, e.Min)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// InvalidHorizonError reports a forecast request for an empty or past range.
type InvalidHorizonError struct {
	Reason    string
	Timestamp time.Time
}

func (e *InvalidHorizonError) Error() string {
	if e.Timestamp.IsZero() {
		return fmt.Sprintf("invalid forecast horizon: %s", e.Reason)
	}
	return fmt.Sprintf("invalid forecast horizon: %s (%s)", e.Reason, e.Timestamp.Format("2006-01-02 15:04"))
}

func (e *InvalidHorizonError) Unwrap() error { return ErrInvalidHorizon }

// InvalidParameterError reports a tunable outside its legal range.
type InvalidParameterError struct {
	Name  string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v", e.Name, e.Value)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// MalformedObservationError wraps a row that could not be parsed with
// context about where it occurred.
type MalformedObservationError struct {
	Line   int
	Record []string
	Err    error
}

func (e *MalformedObservationError) Error() string {
	return fmt.Sprintf("malformed observation at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *MalformedObservationError) Unwrap() error { return ErrMalformedObservation }
