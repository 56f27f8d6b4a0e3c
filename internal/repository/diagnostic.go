// SPDX-License-Identifier: MPL-2.0

package repository

import "github.com/consigliere/components/pkg/component"

const (
	// SeverityWarning indicates a component was loaded despite a problem.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a directory or root was skipped.
	SeverityError Severity = "error"

	// CodeManifestParse marks a manifest that could not be read or parsed.
	CodeManifestParse = "manifest_parse_skipped"
	// CodeManifestInvalid marks a manifest whose recognized keys break their rules.
	CodeManifestInvalid = "manifest_invalid"
	// CodeInvalidName marks a component whose name cannot be used for paths.
	CodeInvalidName = "component_name_invalid"
	// CodeDuplicateName marks a component shadowed by an earlier one with the same name.
	CodeDuplicateName = "component_duplicate_skipped"
	// CodeRootUnreadable marks a scan root that exists but could not be listed.
	CodeRootUnreadable = "root_unreadable"
	// CodeLocationPattern marks a glob location that could not be expanded.
	CodeLocationPattern = "location_pattern_invalid"
)

type (
	// Severity represents scan diagnostic severity.
	Severity string

	// Diagnostic is a structured, non-fatal scan problem returned to callers
	// for rendering. Each scan also logs them at warn level on the repository
	// logger; pass a quieter logger to keep them off stderr.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier (e.g., "manifest_parse_skipped").
		Code    string
		Message string
		// Path is the file or directory involved (optional).
		Path string
		// Cause is the underlying error (optional).
		Cause error
	}

	// ScanResult bundles the discovered components with the diagnostics
	// produced while discovering them.
	ScanResult struct {
		Components  Collection
		Diagnostics []Diagnostic
	}
)

// Collection is an ordered list of components.
type Collection []*component.Component

// Names returns the component names in collection order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for _, comp := range c {
		names = append(names, comp.Name().String())
	}
	return names
}

// Filter returns the components for which keep returns true.
func (c Collection) Filter(keep func(*component.Component) bool) Collection {
	out := make(Collection, 0, len(c))
	for _, comp := range c {
		if keep(comp) {
			out = append(out, comp)
		}
	}
	return out
}
