package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingButtons indicates a button dialogue was opened without buttons.
	ErrMissingButtons = errors.New("missing buttons")
	// ErrMissingElements indicates an input dialogue was opened without elements.
	ErrMissingElements = errors.New("missing input elements")
	// ErrMissingPlayer indicates open was called without a player.
	ErrMissingPlayer = errors.New("missing player")
	// ErrMissingRuntime indicates a builder was not created from a runtime.
	ErrMissingRuntime = errors.New("dialogue runtime not configured")
	// ErrInvalidConfig indicates dialogue configuration values are out of range.
	ErrInvalidConfig = errors.New("invalid dialogue config")
)

// MissingDropdownOptionsError reports a dropdown without options.
type MissingDropdownOptionsError struct {
	Name string
}

func (e *MissingDropdownOptionsError) Error() string {
	return fmt.Sprintf("missing dropdown options for %s", e.Name)
}

// DropdownDefaultError reports a default index outside the dropdown options.
type DropdownDefaultError struct {
	Name    string
	Index   int
	Options int
}

func (e *DropdownDefaultError) Error() string {
	return fmt.Sprintf("dropdown %s default index %d out of range [0,%d)", e.Name, e.Index, e.Options)
}

// DuplicateElementError reports two input elements sharing a name.
type DuplicateElementError struct {
	Name string
}

func (e *DuplicateElementError) Error() string {
	return fmt.Sprintf("duplicate input element name %s", e.Name)
}

// UnknownElementError reports an element type the dialogue cannot map to a host control.
type UnknownElementError struct {
	Element any
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("unsupported dialogue element %T", e.Element)
}

// CallbackError wraps a failure returned by a button callback.
type CallbackError struct {
	Button string
	Err    error
}

func (e *CallbackError) Error() string {
	if e == nil {
		return "button callback failed"
	}
	if e.Err == nil {
		return fmt.Sprintf("button %s callback failed", e.Button)
	}
	return fmt.Sprintf("button %s callback: %v", e.Button, e.Err)
}

func (e *CallbackError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
