package fcdict

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Build. They are fatal to construction: no
// partial dictionary is observable once one of these is returned.
var (
	// ErrSourceExhausted is returned when the Source produces fewer
	// completions than BuildParams.NumCompletions promised.
	ErrSourceExhausted = errors.New("fcdict: source exhausted before num_completions reached")

	// ErrOrderViolation is returned when a completion is not strictly
	// greater than its predecessor in the sorted stream.
	ErrOrderViolation = errors.New("fcdict: completion out of order")

	// ErrLengthExceeded is returned when a completion's term count
	// exceeds MaxTerms, and also when a completion is empty.
	ErrLengthExceeded = errors.New("fcdict: completion length exceeds MaxTerms")
)

// BuildError carries the offending completion's position (and, for
// ErrLengthExceeded, its term count) alongside one of the sentinel
// errors above, so callers can both errors.Is against the sentinel and
// inspect what went wrong.
type BuildError struct {
	Err        error
	Index      uint64
	Completion Completion
	TermCount  int
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case errors.Is(e.Err, ErrLengthExceeded):
		return fmt.Sprintf("fcdict: completion %d has %d terms, outside the allowed 1..%d", e.Index, e.TermCount, MaxTerms)
	case errors.Is(e.Err, ErrOrderViolation):
		return fmt.Sprintf("fcdict: completion %d (%v) is not strictly greater than its predecessor", e.Index, e.Completion)
	default:
		return fmt.Sprintf("fcdict: %v at completion %d", e.Err, e.Index)
	}
}

// Unwrap lets errors.Is/As see through BuildError to the sentinel.
func (e *BuildError) Unwrap() error { return e.Err }
