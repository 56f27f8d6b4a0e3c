// SPDX-License-Identifier: MPL-2.0

// Package testutil holds fixtures shared by package tests: afero file
// helpers that fail the test on error (MustWriteFile, MustReadFile) and
// component fixtures (WriteComponent, WriteManifest, StubManifest).
package testutil
