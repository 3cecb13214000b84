package github

import (
	"errors"
	"fmt"
	"net/http"
)

// Status is the closed classification of a rejected response.
type Status int

const (
	StatusOtherRejected Status = iota
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
)

// StatusFromCode maps an HTTP status code to its Status class.
func StatusFromCode(code int) Status {
	switch code {
	case http.StatusUnauthorized:
		return StatusUnauthorized
	case http.StatusForbidden:
		return StatusForbidden
	case http.StatusNotFound:
		return StatusNotFound
	default:
		return StatusOtherRejected
	}
}

func (s Status) String() string {
	switch s {
	case StatusUnauthorized:
		return "unauthorized"
	case StatusForbidden:
		return "forbidden"
	case StatusNotFound:
		return "not found"
	default:
		return "rejected"
	}
}

// Kind is the terminal state of a call.
type Kind int

const (
	KindSuccess Kind = iota
	KindValidation
	KindRejected
	KindNetwork
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation"
	case KindRejected:
		return "rejected"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ValidationError is a local, pre-network failure. The transport is never
// invoked when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// RejectedError is a response with a non-2xx status.
type RejectedError struct {
	Op         string
	StatusCode int
	Status     Status
	// Message is GitHub's "message" field when the body carried one.
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Op, e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Status, e.StatusCode)
}

// NetworkError means no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the response body did not have the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode error: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Classify maps an error returned by the client to its Kind. A nil error is
// KindSuccess; errors outside the taxonomy are reported as KindNetwork since
// they can only originate below the client.
func Classify(err error) Kind {
	if err == nil {
		return KindSuccess
	}
	var (
		verr *ValidationError
		rerr *RejectedError
		nerr *NetworkError
		derr *DecodeError
	)
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.As(err, &rerr):
		return KindRejected
	case errors.As(err, &derr):
		return KindDecode
	case errors.As(err, &nerr):
		return KindNetwork
	default:
		return KindNetwork
	}
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// RejectedError.
func StatusCode(err error) int {
	var rerr *RejectedError
	if errors.As(err, &rerr) {
		return rerr.StatusCode
	}
	return 0
}
