// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/consigliere/components/internal/config"
	"github.com/consigliere/components/internal/repository"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App reference and reaches the filesystem and configuration
	// only through it.
	App struct {
		Config ConfigProvider
		Fs     afero.Fs
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// repoOptions tunes how a command opens the repository.
	repoOptions struct {
		// quiet suppresses scan diagnostics on stderr for commands that
		// render them themselves.
		quiet bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	return &App{
		Config: deps.Config,
		Fs:     deps.Fs,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// loadConfig loads configuration honoring --config and --base-path.
func (a *App) loadConfig(ctx context.Context, rf *rootFlagValues) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: rf.configPath,
		BasePath:       rf.basePath,
	})
}

// openRepository loads configuration and builds a repository over the App
// filesystem with the --path locations added.
func (a *App) openRepository(ctx context.Context, rf *rootFlagValues, opts repoOptions) (*repository.Repository, error) {
	cfg, err := a.loadConfig(ctx, rf)
	if err != nil {
		return nil, err
	}

	logger := a.newLogger(rf.verbose || cfg.UI.Verbose)
	if opts.quiet {
		logger.SetLevel(log.ErrorLevel)
	}

	return repository.New(cfg,
		repository.WithFs(a.Fs),
		repository.WithLogger(logger),
		repository.WithLocations(rf.paths...),
	), nil
}

// newLogger returns the stderr logger. Verbose mode logs at debug level.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: "components",
		Level:  level,
	})
}

// run adapts a handler to cobra.RunE, rendering failures once and turning
// them into an *ExitError.
func (a *App) run(rf *rootFlagValues, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		renderError(a.stderr, err, rf.verbose)
		return &ExitError{Code: 1, Err: err}
	}
}
