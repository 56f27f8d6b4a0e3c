// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/consigliere/components/internal/repository"
	"github.com/consigliere/components/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App, rf *rootFlagValues) *cobra.Command {
	var (
		debounce time.Duration
		ignore   []string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-scan and list components when they change",
		Long: `Watch every scan root and re-list components whenever a component
directory appears or disappears or a manifest is edited. Stops on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: app.run(rf, func(cmd *cobra.Command, _ []string) error {
			repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
			if err != nil {
				return err
			}

			if err := writeListTable(app.stdout, repo.All()); err != nil {
				return err
			}

			w, err := watch.New(watch.Config{
				Roots:        repo.Roots(),
				ManifestFile: repo.Config().ManifestFile(),
				Ignore:       ignore,
				Debounce:     debounce,
				OnChange:     onComponentsChanged(app, repo),
				Stderr:       app.stderr,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(app.stderr, SubtitleStyle.Render("Watching for component changes..."))
			return w.Run(cmd.Context())
		}),
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before re-scanning (default 300ms)")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "extra doublestar pattern to ignore, repeatable")
	return cmd
}

func onComponentsChanged(app *App, repo *repository.Repository) func(context.Context, []string) error {
	return func(_ context.Context, changed []string) error {
		repo.Refresh()
		fmt.Fprintf(app.stdout, "\n%s %d path(s) changed\n", SubtitleStyle.Render(time.Now().Format(time.TimeOnly)), len(changed))
		return writeListTable(app.stdout, repo.All())
	}
}
