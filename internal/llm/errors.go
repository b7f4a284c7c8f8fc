package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure
type ErrorKind string

const (
	// KindConfiguration is a missing credential or unusable client setup
	KindConfiguration ErrorKind = "configuration"
	// KindTransport covers unreachable backends and non-success responses
	KindTransport ErrorKind = "transport"
	// KindEmpty means the call succeeded but produced no text
	KindEmpty ErrorKind = "empty"
)

// Error is the failure type returned by every Provider
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of a provider error, or "" for foreign errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
