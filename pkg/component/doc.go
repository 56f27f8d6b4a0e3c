// SPDX-License-Identifier: MPL-2.0

// Package component models a discovered component: a named directory holding a
// component.json manifest plus optional resources.
//
// A Component is a thin view over its manifest. Metadata accessors read the
// manifest with defaults; path accessors join the component root with the
// configured Layout. Status changes are written through to the manifest file.
//
// Files:
//   - component.go: Component type, accessors and status transitions
//   - layout.go: relative resource layout inside a component directory
//   - name.go: Name type, validation and case conversions
package component
