// SPDX-License-Identifier: MPL-2.0

package component

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidName is returned when a Name value does not match the required format.
	ErrInvalidName = errors.New("invalid component name")

	// namePattern validates component names: starts with a letter, followed by
	// letters, digits, underscores, or hyphens. It matches directory names so a
	// component can always be located by its name.
	namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
)

type (
	// Name is the identifier of a component, normally the manifest "name" key.
	Name string

	// InvalidNameError is returned when a Name value does not match the
	// required format. It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Value Name
	}
)

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// Validate returns nil if the Name is non-empty, starts with a letter, and
// contains only letters, digits, underscores, or hyphens.
func (n Name) Validate() error {
	if n == "" || !namePattern.MatchString(string(n)) {
		return &InvalidNameError{Value: n}
	}
	return nil
}

// Lower returns the lowercase form used for asset directories and default aliases.
func (n Name) Lower() string { return strings.ToLower(string(n)) }

// Studly returns the name with word separators removed and each word
// capitalized: "order-items" and "order_items" both become "OrderItems".
func (n Name) Studly() string {
	words := strings.FieldsFunc(string(n), func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	var b strings.Builder
	for _, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// EqualFold reports whether n and other are equal under Unicode case folding.
func (n Name) EqualFold(other string) bool { return strings.EqualFold(string(n), other) }

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf(
		"invalid component name %q: must start with a letter and contain only letters, digits, underscores, or hyphens",
		string(e.Value),
	)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }
