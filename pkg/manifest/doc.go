// SPDX-License-Identifier: MPL-2.0

// Package manifest reads, queries, mutates and writes component manifests
// (component.json).
//
// A manifest is a JSON object decoded into an insertion-ordered attribute map so
// that serializing an unmodified manifest reproduces the input byte for byte
// (given the input was already pretty-printed with 4-space indentation).
// Strings written with optional escapes, such as "\/" or "\u00e9", keep
// their source spelling when written back.
//
// Reads are dotted ("migration.path" walks into the nested "migration" object),
// writes are shallow: Set only ever touches a top-level key.
//
// File organization:
//   - manifest.go: Manifest type, Load/Save and attribute access
//   - json.go: ordered decode and pretty encode
//   - metadata.go: typed Metadata view, validation and JSON Schema
//   - errors.go: error taxonomy
package manifest
