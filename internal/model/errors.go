package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("model: validation failed")
	ErrTransport  = errors.New("model: transport failed")
)

// ValidationError reports input rejected before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransportError covers network failures and non-2xx responses alike.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("failed to %s: %s %s", e.opText(), e.Method, e.URL)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) opText() string {
	if e.Op == "" {
		return "reach task service"
	}
	return e.Op
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
