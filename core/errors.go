package core

import (
	"errors"
	"fmt"
)

// PolicyError is a rule violation caused by the caller: the request is
// well-formed transport-wise but not allowed. Callers render these as
// 4xx and never retry them.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return e.Reason
}

var (
	ErrDailyCapReached    = &PolicyError{Reason: "daily punch limit reached"}
	ErrInvalidPunchKind   = &PolicyError{Reason: "invalid punch kind"}
	ErrEmptyJustification = &PolicyError{Reason: "justification is required"}
	ErrInvalidOutcome     = &PolicyError{Reason: "outcome must be APPROVED or REJECTED"}
	ErrNotPending         = &PolicyError{Reason: "request is no longer pending"}
)

// SystemError wraps an unexpected persistence failure. Callers render
// these as 5xx; the engine does not retry because a retried punch is
// not idempotent.
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

func systemErr(op string, err error) error {
	return &SystemError{Op: op, Err: err}
}

// IsPolicy reports whether err is a policy rejection rather than a
// system fault.
func IsPolicy(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}
