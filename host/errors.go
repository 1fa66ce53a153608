package host

import (
	"fmt"

	"pkt.systems/scriptdialogue/schema"
)

// RejectError is the structured rejection a host returns when a form show fails.
type RejectError struct {
	Reason  schema.RejectReason
	Message string
	Err     error
}

// NewRejectError constructs a classified rejection.
func NewRejectError(reason schema.RejectReason, message string) *RejectError {
	return &RejectError{Reason: reason, Message: message}
}

func (e *RejectError) Error() string {
	if e == nil {
		return "form rejected"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Reason != schema.RejectNone {
		return fmt.Sprintf("form rejected: %s", e.Reason)
	}
	return "form rejected"
}

func (e *RejectError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
