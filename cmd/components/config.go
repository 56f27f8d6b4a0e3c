// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/consigliere/components/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App, rf *rootFlagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage components configuration",
	}
	cmd.AddCommand(
		newConfigInitCommand(app, rf),
		newConfigShowCommand(app, rf),
		newConfigPathCommand(app, rf),
	)
	return cmd
}

func newConfigInitCommand(app *App, rf *rootFlagValues) *cobra.Command {
	var force, local bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the default configuration as CUE to the user config file, or with
--local to components.cue in the base path.`,
		Args: cobra.NoArgs,
		RunE: app.run(rf, func(cmd *cobra.Command, _ []string) error {
			path, err := configInitPath(app, cmd, rf, local)
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s Wrote %s\n", successIcon, path)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&local, "local", false, "write "+config.LocalConfigFile+" in the base path")
	return cmd
}

func configInitPath(app *App, cmd *cobra.Command, rf *rootFlagValues, local bool) (string, error) {
	if rf.configPath != "" {
		return rf.configPath, nil
	}
	if !local {
		return config.UserConfigPath()
	}
	cfg, err := app.loadConfig(cmd.Context(), rf)
	if err != nil {
		return "", err
	}
	return filepath.Join(string(cfg.BasePath), config.LocalConfigFile), nil
}

func newConfigShowCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: app.run(rf, func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context(), rf)
			if err != nil {
				return err
			}
			source := cfg.Source()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("// source: "+source))
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		}),
	}
}

func newConfigPathCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the user configuration file path",
		Args:  cobra.NoArgs,
		RunE: app.run(rf, func(_ *cobra.Command, _ []string) error {
			path, err := config.UserConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		}),
	}
}
