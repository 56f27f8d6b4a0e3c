// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/consigliere/components/internal/repository"
	"github.com/consigliere/components/pkg/component"

	"github.com/spf13/cobra"
)

type (
	listFlags struct {
		enabled  bool
		disabled bool
		ordered  string
		output   string
	}

	// listEntry is the JSON form of a listed component.
	listEntry struct {
		Name    string `json:"name"`
		Alias   string `json:"alias"`
		Version string `json:"version"`
		Active  bool   `json:"active"`
		Order   int    `json:"order"`
		Path    string `json:"path"`
	}
)

// orderedByRequires sorts the list so requirements come first.
const orderedByRequires = "requires"

func newListCommand(app *App, rf *rootFlagValues) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered components",
		Long: `List every component found under the scan roots, in scan order.

Use --ordered asc|desc to sort by the manifest "order" key instead, or
--ordered requires to place each component after the ones it requires.`,
		Args: cobra.NoArgs,
		RunE: app.run(rf, func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, app, rf, flags)
		}),
	}

	cmd.Flags().BoolVar(&flags.enabled, "enabled", false, "show only enabled components")
	cmd.Flags().BoolVar(&flags.disabled, "disabled", false, "show only disabled components")
	cmd.Flags().StringVar(&flags.ordered, "ordered", "", "sort by manifest order (asc|desc) or by requirements (requires)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "output format (text|json)")
	cmd.MarkFlagsMutuallyExclusive("enabled", "disabled")

	return cmd
}

func runList(cmd *cobra.Command, app *App, rf *rootFlagValues, flags *listFlags) error {
	switch flags.ordered {
	case "", string(repository.Asc), string(repository.Desc), orderedByRequires:
	default:
		return fmt.Errorf("invalid --ordered value %q (valid: asc, desc, requires)", flags.ordered)
	}
	if flags.output != "text" && flags.output != "json" {
		return fmt.Errorf("invalid --output value %q (valid: text, json)", flags.output)
	}

	repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
	if err != nil {
		return err
	}

	components, err := selectComponents(repo, flags)
	if err != nil {
		return err
	}
	if flags.output == "json" {
		return writeListJSON(app.stdout, components)
	}
	return writeListTable(app.stdout, components)
}

func selectComponents(repo *repository.Repository, flags *listFlags) (repository.Collection, error) {
	var components repository.Collection
	switch flags.ordered {
	case "":
		components = repo.All()
	case orderedByRequires:
		ordered, _, err := repo.RequirementOrder()
		if err != nil {
			return nil, err
		}
		components = ordered
	default:
		components = repo.Ordered(repository.Direction(flags.ordered))
	}

	switch {
	case flags.enabled:
		return components.Filter(func(c *component.Component) bool { return c.IsActive() }), nil
	case flags.disabled:
		return components.Filter(func(c *component.Component) bool { return !c.IsActive() }), nil
	default:
		return components, nil
	}
}

func writeListJSON(w io.Writer, components repository.Collection) error {
	entries := make([]listEntry, 0, len(components))
	for _, c := range components {
		entries = append(entries, listEntry{
			Name:    c.Name().String(),
			Alias:   c.Alias(),
			Version: c.Version(),
			Active:  c.IsActive(),
			Order:   c.Order(),
			Path:    c.Path(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// writeListTable prints an aligned table. Color is not applied inside the
// table because escape sequences break tabwriter alignment.
func writeListTable(w io.Writer, components repository.Collection) error {
	if len(components) == 0 {
		_, err := fmt.Fprintln(w, SubtitleStyle.Render("No components found."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tVERSION\tORDER\tPATH")
	for _, c := range components {
		status := "disabled"
		if c.IsActive() {
			status = "enabled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.Name(), status, c.Version(), c.Order(), c.Path())
	}
	return tw.Flush()
}
