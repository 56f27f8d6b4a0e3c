// SPDX-License-Identifier: MPL-2.0

// Package repository discovers components under a set of scan roots and
// answers queries about them.
//
// A scan lists the immediate subdirectories of every root (configured
// components path, configured scan paths, then locations added at runtime)
// and loads the manifest inside each. Directories without a manifest are
// skipped silently. Manifests that fail to parse, unusable names, and
// duplicate names produce Diagnostics instead of aborting the scan.
//
// Results are cached until a location is added or Refresh is called. Status
// changes (Enable, Disable) update the cached component and write its
// manifest back to disk, so no rescan is needed. RequirementOrder sorts
// components so that each one follows everything listed in its "requires"
// key. All methods are safe for concurrent use.
//
// Returned components are the cached instances Enable and Disable mutate.
// Status queries on the Repository (Active, NotActive, ByStatus, Enabled,
// Disabled) read under its lock; reading a returned *component.Component
// while another goroutine changes its status needs external synchronization.
package repository
