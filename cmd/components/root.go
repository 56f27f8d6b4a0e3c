// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for components.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	configPath string
	verbose    bool
	basePath   string
	paths      []string
}

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rf := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "components",
		Short: "Discover, enable and publish application components",
		Long: TitleStyle.Render("components") + SubtitleStyle.Render(" - Discover, enable and publish application components") + `

A component is a directory holding a component.json manifest. Components are
discovered under the configured components path, any extra scan paths, and
the locations passed with --path.

` + SubtitleStyle.Render("Examples:") + `
  components list                 List discovered components
  components enable Blog          Enable the Blog component
  components use Blog             Make Blog the used component
  components publish              Publish assets of every enabled component
  components asset blog:app.js    Print the public URL of a component asset`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/components/config.cue)")
	pf.BoolVarP(&rf.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&rf.basePath, "base-path", "", "host application root (overrides base_path)")
	pf.StringArrayVar(&rf.paths, "path", nil, "extra scan location, repeatable; doublestar globs allowed")

	rootCmd.AddCommand(
		newListCommand(app, rf),
		newShowCommand(app, rf),
		newEnableCommand(app, rf),
		newDisableCommand(app, rf),
		newUseCommand(app, rf),
		newUnuseCommand(app, rf),
		newUsedCommand(app, rf),
		newDeleteCommand(app, rf),
		newPublishCommand(app, rf),
		newAssetCommand(app, rf),
		newValidateCommand(app, rf),
		newSchemaCommand(app),
		newWatchCommand(app, rf),
		newConfigCommand(app, rf),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the command's exit code.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// errorHandler leaves already rendered command failures alone and defers to
// fang for usage errors.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
