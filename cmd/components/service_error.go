// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/consigliere/components/internal/issue"
	"github.com/consigliere/components/internal/publish"
	"github.com/consigliere/components/internal/repository"
	"github.com/consigliere/components/pkg/manifest"

	"github.com/charmbracelet/log"
)

// issueFor maps a failure to its help catalog entry, or 0 when none applies.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.Is(err, repository.ErrComponentNotFound):
		return issue.ComponentNotFoundId
	case errors.Is(err, repository.ErrComponentDisabled):
		return issue.ComponentDisabledId
	case errors.Is(err, repository.ErrInvalidAssetReference):
		return issue.InvalidAssetReferenceId
	case errors.Is(err, publish.ErrPublish):
		return issue.PublishFailedId
	case errors.Is(err, manifest.ErrManifestNotFound):
		return issue.ManifestNotFoundId
	case errors.Is(err, manifest.ErrManifestParse):
		return issue.ManifestParseErrorId
	case errors.Is(err, manifest.ErrInvalidManifest):
		return issue.InvalidManifestId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError prints the error and, in verbose mode, the matching help
// catalog entry.
func renderError(stderr io.Writer, err error, verbose bool) {
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if !verbose {
		return
	}
	id := issueFor(err)
	if id == 0 {
		return
	}
	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render("notty")
		if renderErr != nil {
			log.Warn("failed to render issue catalog entry", "issue", id, "error", renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}
