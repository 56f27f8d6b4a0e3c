// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAssetCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "asset <name:path>",
		Short: "Print the public URL of a component asset",
		Long: `Resolve a "name:relative/path" reference to a URL under assets_url.
The component does not need to exist.`,
		Example: `  components asset blog:js/app.js`,
		Args:    cobra.ExactArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
			if err != nil {
				return err
			}
			url, err := repo.Asset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, url)
			return nil
		}),
	}
}
