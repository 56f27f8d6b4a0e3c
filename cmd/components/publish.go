// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/consigliere/components/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCommand(app *App, rf *rootFlagValues) *cobra.Command {
	var migrations bool
	cmd := &cobra.Command{
		Use:   "publish [name]",
		Short: "Publish component assets or migrations",
		Long: `Copy a component's Resources/assets into the public assets path, or with
--migrations its Database/Migrations into the host migrations path.

Without a name every enabled component is published; components with nothing
to publish are skipped. Existing files are overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			kind := publish.KindAssets
			if migrations {
				kind = publish.KindMigrations
			}
			if len(args) == 1 {
				return runPublishOne(cmd, app, rf, args[0], kind)
			}
			return runPublishAll(cmd, app, rf, kind)
		}),
	}
	cmd.Flags().BoolVar(&migrations, "migrations", false, "publish migrations instead of assets")
	return cmd
}

func runPublishOne(cmd *cobra.Command, app *App, rf *rootFlagValues, name string, kind publish.Kind) error {
	repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
	if err != nil {
		return err
	}
	c, err := repo.FindOrFail(name)
	if err != nil {
		return err
	}

	p, err := publish.New(repo, c, kind, publish.WithLogger(app.newLogger(rf.verbose)))
	if err != nil {
		return err
	}
	res, err := p.Publish()
	if err != nil {
		return err
	}
	printPublishResult(app, res)
	return nil
}

func runPublishAll(cmd *cobra.Command, app *App, rf *rootFlagValues, kind publish.Kind) error {
	repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
	if err != nil {
		return err
	}

	outcomes, err := publish.PublishAll(repo, kind, publish.WithLogger(app.newLogger(rf.verbose)))
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("No enabled components."))
		return nil
	}

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(app.stderr, "%s %s: %v\n", errorIcon, o.Component, o.Err)
			continue
		}
		printPublishResult(app, o.Result)
	}
	return publish.Errors(outcomes)
}

func printPublishResult(app *App, res *publish.Result) {
	if res.Skipped {
		fmt.Fprintf(app.stdout, "%s Skipped %s: no %s directory\n", skipIcon, res.Component, res.Kind)
		return
	}
	fmt.Fprintf(app.stdout, "%s Published %d %s file(s) of %s to %s\n",
		successIcon, len(res.Files), res.Kind, CmdStyle.Render(res.Component), res.Destination)
}
