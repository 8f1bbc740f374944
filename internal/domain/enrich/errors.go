package enrich

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for derivation. Every per-record error matches
// ErrMalformedRecord plus one of the specific causes.
var (
	ErrMalformedRecord   = errors.New("malformed employee record")
	ErrInvalidHireDate   = errors.New("hire date has no leading 4-digit year")
	ErrFutureHire        = errors.New("hire year is after the reference year")
	ErrSameYearHire      = errors.New("hired in the reference year")
	ErrNonPositiveSalary = errors.New("salary must be positive")
	ErrNonFiniteValue    = errors.New("rating and salary must be finite numbers")
	ErrUnknownPolicy     = errors.New("unknown tenure policy")
)

// RecordError reports why the record at Index could not be enriched.
type RecordError struct {
	Index int
	Email string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Email == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.Email, e.Err)
}

// Unwrap exposes both ErrMalformedRecord and the specific cause to errors.Is.
func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
