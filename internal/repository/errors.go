// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrComponentNotFound is returned when no component matches a name or alias.
	ErrComponentNotFound = errors.New("component not found")
	// ErrComponentDisabled is returned when the used component is disabled.
	ErrComponentDisabled = errors.New("component disabled")
	// ErrNoUsedComponent is returned by GetUsedNow when no component is in use.
	ErrNoUsedComponent = errors.New("no component in use")
	// ErrInvalidAssetReference is returned when an asset reference is not "name:path".
	ErrInvalidAssetReference = errors.New("invalid asset reference")
)

type (
	// ComponentNotFoundError is returned by the failing lookup variants.
	// It wraps ErrComponentNotFound for errors.Is() compatibility.
	ComponentNotFoundError struct {
		Name string
	}

	// ComponentDisabledError is returned when an operation requires an
	// enabled component. It wraps ErrComponentDisabled.
	ComponentDisabledError struct {
		Name string
	}

	// InvalidAssetReferenceError is returned by Asset for malformed references.
	InvalidAssetReferenceError struct {
		Reference string
	}
)

// Error implements the error interface for ComponentNotFoundError.
func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component [%s] does not exist", e.Name)
}

// Unwrap returns ErrComponentNotFound for errors.Is() compatibility.
func (e *ComponentNotFoundError) Unwrap() error { return ErrComponentNotFound }

// Error implements the error interface for ComponentDisabledError.
func (e *ComponentDisabledError) Error() string {
	return fmt.Sprintf("component [%s] is disabled", e.Name)
}

// Unwrap returns ErrComponentDisabled for errors.Is() compatibility.
func (e *ComponentDisabledError) Unwrap() error { return ErrComponentDisabled }

// Error implements the error interface for InvalidAssetReferenceError.
func (e *InvalidAssetReferenceError) Error() string {
	return fmt.Sprintf("invalid asset reference %q: expected \"name:relative/path\"", e.Reference)
}

// Unwrap returns ErrInvalidAssetReference for errors.Is() compatibility.
func (e *InvalidAssetReferenceError) Unwrap() error { return ErrInvalidAssetReference }
