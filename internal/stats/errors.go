package stats

import (
	"errors"
	"fmt"
)

var ErrEmptyLogin = errors.New("login must not be empty")

// NotFoundError is returned when the API could not resolve the login. Message
// is the upstream text, unchanged.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// TransportError wraps a network or HTTP level failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a required field that is missing or has the
// wrong type.
type MalformedResponseError struct {
	Path   string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s %s", e.Path, e.Reason)
}

type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid from date %q: %v", e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}
