package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFile indicates no artifact is selected
	ErrNoFile = errors.New("no file selected")
	// ErrInvalidType indicates the artifact is not a PDF
	ErrInvalidType = errors.New("invalid type")
	// ErrTooLarge indicates the artifact exceeds the size ceiling
	ErrTooLarge = errors.New("exceeds size limit")
	// ErrUnreadable indicates the selected file can no longer be read
	ErrUnreadable = errors.New("file cannot be read")
	// ErrEmptyQuery indicates the trimmed query text is empty
	ErrEmptyQuery = errors.New("empty query")
	// ErrMalformedResponse indicates the remote payload could not be interpreted
	ErrMalformedResponse = errors.New("malformed response")
)

// ValidationError is a local rejection that never reaches the network
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ServerError is an error reported by the remote operation itself
type ServerError struct {
	Op      string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server error: %s", e.Op, e.Message)
}

// TransportError means the remote call could not complete:
// connectivity loss or a response that could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is, or wraps, a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
