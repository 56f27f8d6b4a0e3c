// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/consigliere/components/pkg/manifest"

	"github.com/spf13/cobra"
)

func newSchemaCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of component.json",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := manifest.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.stdout, string(out))
			return err
		},
	}
}
