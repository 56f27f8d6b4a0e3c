// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/consigliere/components/internal/config"
	"github.com/consigliere/components/pkg/component"

	"github.com/charmbracelet/glamour"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type (
	showFlags struct {
		output   string
		noReadme bool
	}

	// componentView is the structured form printed by show -o json|toml.
	componentView struct {
		Name          string          `json:"name" toml:"name"`
		Alias         string          `json:"alias" toml:"alias"`
		Description   string          `json:"description,omitempty" toml:"description,omitempty"`
		Version       string          `json:"version" toml:"version"`
		Active        bool            `json:"active" toml:"active"`
		Order         int             `json:"order" toml:"order"`
		Keywords      []string        `json:"keywords,omitempty" toml:"keywords,omitempty"`
		Providers     []string        `json:"providers,omitempty" toml:"providers,omitempty"`
		Aliases       []string        `json:"aliases,omitempty" toml:"aliases,omitempty"`
		Files         []string        `json:"files,omitempty" toml:"files,omitempty"`
		Requires      []string        `json:"requires,omitempty" toml:"requires,omitempty"`
		Path          string          `json:"path" toml:"path"`
		ManifestPath  string          `json:"manifest_path" toml:"manifest_path"`
		AssetPath     string          `json:"asset_path" toml:"asset_path"`
		MigrationPath string          `json:"migration_path" toml:"migration_path"`
		ConfigPath    string          `json:"config_path" toml:"config_path"`
		Manifest      json.RawMessage `json:"manifest" toml:"-"`
	}
)

func newShowCommand(app *App, rf *rootFlagValues) *cobra.Command {
	flags := &showFlags{}
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a component's metadata, paths and README",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, rf, flags, args[0])
		}),
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "output format (text|json|toml)")
	cmd.Flags().BoolVar(&flags.noReadme, "no-readme", false, "do not render README.md")

	return cmd
}

func runShow(cmd *cobra.Command, app *App, rf *rootFlagValues, flags *showFlags, name string) error {
	repo, err := app.openRepository(cmd.Context(), rf, repoOptions{})
	if err != nil {
		return err
	}
	c, err := repo.FindOrFail(name)
	if err != nil {
		return err
	}

	switch flags.output {
	case "json":
		view, err := newComponentView(c)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "toml":
		view, err := newComponentView(c)
		if err != nil {
			return err
		}
		enc := toml.NewEncoder(app.stdout)
		enc.SetIndentTables(true)
		return enc.Encode(view)
	case "text":
		writeComponentText(app.stdout, c)
		if flags.noReadme {
			return nil
		}
		return writeReadme(app.stdout, repo.Fs(), c, repo.Config().UI.ColorScheme)
	default:
		return fmt.Errorf("invalid --output value %q (valid: text, json, toml)", flags.output)
	}
}

func newComponentView(c *component.Component) (*componentView, error) {
	raw, err := c.Manifest().JSON()
	if err != nil {
		return nil, err
	}
	return &componentView{
		Name:          c.Name().String(),
		Alias:         c.Alias(),
		Description:   c.Description(),
		Version:       c.Version(),
		Active:        c.IsActive(),
		Order:         c.Order(),
		Keywords:      c.Keywords(),
		Providers:     c.Providers(),
		Aliases:       c.Aliases(),
		Files:         c.Files(),
		Requires:      c.Requires(),
		Path:          c.Path(),
		ManifestPath:  c.ManifestPath(),
		AssetPath:     c.AssetPath(),
		MigrationPath: c.MigrationPath(),
		ConfigPath:    c.ConfigPath(),
		Manifest:      raw,
	}, nil
}

func writeComponentText(w io.Writer, c *component.Component) {
	fmt.Fprintln(w, TitleStyle.Render(c.Name().String()))

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), value)
	}
	row("Alias", c.Alias())
	row("Status", statusText(c.IsActive()))
	row("Version", c.Version())
	row("Order", fmt.Sprint(c.Order()))
	row("Description", c.Description())
	row("Keywords", strings.Join(c.Keywords(), ", "))
	row("Requires", strings.Join(c.Requires(), ", "))
	row("Path", CmdStyle.Render(c.Path()))
	row("Assets", c.AssetPath())
	row("Migrations", c.MigrationPath())
	for _, p := range c.Providers() {
		row("Provider", p)
	}
}

// writeReadme renders the component README.md with glamour. A missing README
// is not an error.
func writeReadme(w io.Writer, fsys afero.Fs, c *component.Component, scheme config.ColorScheme) error {
	data, err := afero.ReadFile(fsys, c.ReadmePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read README: %w", err)
	}

	style := glamour.WithAutoStyle()
	if scheme == config.ColorSchemeDark || scheme == config.ColorSchemeLight {
		style = glamour.WithStandardStyle(string(scheme))
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(string(data))
	if err != nil {
		return fmt.Errorf("failed to render README: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}
