// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCommand(app *App, rf *rootFlagValues) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a component directory",
		Long: `Remove the component directory and everything in it. This cannot be
undone. Without --force, confirmation is read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, app, rf, args[0], force)
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}

func runDelete(cmd *cobra.Command, app *App, rf *rootFlagValues, name string, force bool) error {
	repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
	if err != nil {
		return err
	}
	c, err := repo.FindOrFail(name)
	if err != nil {
		return err
	}

	if !force {
		fmt.Fprintf(app.stdout, "Delete component %s at %s? [y/N]: ", c.Name(), c.Path())
		answer, _ := bufio.NewReader(app.stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(app.stdout, "Aborted.")
			return nil
		}
	}

	used, err := repo.GetUsed()
	if err != nil {
		return err
	}
	if err := repo.Delete(name); err != nil {
		return err
	}
	if c.Name().EqualFold(used) {
		if err := repo.ForgetUsed(); err != nil {
			return err
		}
	}

	fmt.Fprintf(app.stdout, "%s Deleted component %s\n", successIcon, CmdStyle.Render(c.Name().String()))
	return nil
}
