package repository

import (
	"errors"
	"fmt"
)

// ErrMonitoringAPI matches every failure of a monitoring API call, see errors.Is.
var ErrMonitoringAPI = errors.New("monitoring api error")

// APIError is a monitoring API response outside the success status set, or a success
// response whose body could not be decoded.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Reason     string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("monitoring api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	return target == ErrMonitoringAPI
}

// TransportError is a network, DNS or timeout failure talking to the monitoring API.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("monitoring api %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrMonitoringAPI
}
