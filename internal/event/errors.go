package event

import (
	"errors"
	"fmt"
)

// ErrDeclined is returned for well-formed events whose check has no broadcast target.
// It is an expected outcome, not a failure.
var ErrDeclined = errors.New("no broadcast configured")

// MalformedEventError reports a required payload key that is missing or unusable.
type MalformedEventError struct {
	Key    string
	Reason string
}

func (e *MalformedEventError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("malformed event: missing %s", e.Key)
	}
	return fmt.Sprintf("malformed event: %s %s", e.Key, e.Reason)
}
