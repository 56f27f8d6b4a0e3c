// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog maps well-known failures (missing
// component, malformed manifest, failed publish) to Markdown guidance rendered
// with glamour below the error message.
package issue
