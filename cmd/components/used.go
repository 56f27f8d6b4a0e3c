// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUseCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the used component",
		Long: `Record a component as the one in use. Later commands that act on "the
current component" read it back from the state file (used_file).`,
		Args: cobra.ExactArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
			if err != nil {
				return err
			}
			if err := repo.SetUsed(args[0]); err != nil {
				return err
			}
			name, err := repo.GetUsed()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s Using component %s\n", successIcon, CmdStyle.Render(name))
			return nil
		}),
	}
}

func newUnuseCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "unuse",
		Short: "Forget the used component",
		Args:  cobra.NoArgs,
		RunE: app.run(rf, func(cmd *cobra.Command, _ []string) error {
			repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
			if err != nil {
				return err
			}
			if err := repo.ForgetUsed(); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s No component in use\n", successIcon)
			return nil
		}),
	}
}

func newUsedCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "used",
		Short: "Print the used component",
		Long: `Print the name of the used component. Fails when none is set, or when
the stored component was deleted or disabled since.`,
		Args: cobra.NoArgs,
		RunE: app.run(rf, func(cmd *cobra.Command, _ []string) error {
			repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
			if err != nil {
				return err
			}
			c, err := repo.GetUsedNow()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, c.Name())
			return nil
		}),
	}
}
