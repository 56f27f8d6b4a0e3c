// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestNotFound is returned when a manifest file does not exist.
	// Callers can check for this error using errors.Is(err, ErrManifestNotFound).
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestParse is returned when a manifest file is not a valid JSON object.
	ErrManifestParse = errors.New("malformed manifest")
	// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
	ErrInvalidManifest = errors.New("invalid manifest")
)

type (
	// NotFoundError is returned by Load when no file exists at Path.
	// It wraps ErrManifestNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Path string
	}

	// ParseError is returned by Load when the file content cannot be decoded
	// into a JSON object. It wraps both ErrManifestParse and the decoder error.
	ParseError struct {
		Path string
		Err  error
	}

	// InvalidManifestError is returned by Validate when the typed metadata view
	// violates one or more field rules. It wraps ErrInvalidManifest and collects
	// field-level validation errors.
	InvalidManifestError struct {
		Path        string
		FieldErrors []error
	}

	// InvalidFieldError describes a single rule violation on a manifest key.
	InvalidFieldError struct {
		Field string
		Rule  string
		Value any
	}
)

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

// Unwrap returns ErrManifestNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrManifestNotFound }

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed manifest %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying decoder error.
func (e *ParseError) Unwrap() []error { return []error{ErrManifestParse, e.Err} }

// Error implements the error interface for InvalidManifestError.
func (e *InvalidManifestError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid manifest %s: %d field error(s)", e.Path, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidManifest for errors.Is() compatibility.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

// Error implements the error interface for InvalidFieldError.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q fails rule %q (value %v)", e.Field, e.Rule, e.Value)
}
