// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnableCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <name>...",
		Short: "Enable components",
		Long:  `Set "active" to 1 in each component's manifest.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, app, rf, args, true)
		}),
	}
}

func newDisableCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name>...",
		Short: "Disable components",
		Long:  `Set "active" to 0 in each component's manifest.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, app, rf, args, false)
		}),
	}
}

func runSetStatus(cmd *cobra.Command, app *App, rf *rootFlagValues, names []string, active bool) error {
	repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
	if err != nil {
		return err
	}

	for _, name := range names {
		c, err := repo.FindOrFail(name)
		if err != nil {
			return err
		}
		if active {
			err = repo.Enable(name)
		} else {
			err = repo.Disable(name)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, "%s Component %s %s\n", successIcon, CmdStyle.Render(c.Name().String()), statusText(active))
	}
	return nil
}
