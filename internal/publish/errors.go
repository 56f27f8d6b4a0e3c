// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"fmt"
)

var (
	// ErrPublish is the sentinel error wrapped by PublishError.
	ErrPublish = errors.New("publish failed")
	// ErrSourceNotFound is returned as the cause when the source directory is missing.
	ErrSourceNotFound = errors.New("source directory does not exist")
	// ErrUnknownKind is returned when a publish kind is not recognized.
	ErrUnknownKind = errors.New("unknown publish kind")
)

// PublishError is returned when copying a component resource directory fails.
// It wraps ErrPublish for errors.Is() compatibility; the underlying cause is
// reachable through errors.Is/As as well.
//
//nolint:revive // PublishError reads better at call sites than publish.Error
type PublishError struct {
	Component   string
	Source      string
	Destination string
	Cause       error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %s from %s to %s: %v", e.Component, e.Source, e.Destination, e.Cause)
}

// Unwrap returns both ErrPublish and the cause.
func (e *PublishError) Unwrap() []error { return []error{ErrPublish, e.Cause} }
