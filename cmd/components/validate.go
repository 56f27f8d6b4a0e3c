// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/consigliere/components/internal/repository"

	"github.com/spf13/cobra"
)

func newValidateCommand(app *App, rf *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [name]",
		Short: "Validate component manifests",
		Long: `Scan every location and report manifests that could not be loaded, names
that cannot be used for paths, duplicates, and recognized keys that break
their rules. With a name only that component is checked.

Exits with code 1 when any problem is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: app.run(rf, func(cmd *cobra.Command, args []string) error {
			repo, err := app.openRepository(cmd.Context(), rf, repoOptions{quiet: true})
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return runValidateOne(app, repo, args[0])
			}
			return runValidateAll(app, repo)
		}),
	}
}

func runValidateAll(app *App, repo *repository.Repository) error {
	result := repo.Scan()
	for _, d := range result.Diagnostics {
		renderDiagnostic(app, d)
	}
	problems := len(result.Diagnostics) + renderRequirementProblems(app, repo)

	if problems > 0 {
		fmt.Fprintf(app.stdout, "\n%s %d component(s), %d problem(s)\n",
			errorIcon, len(result.Components), problems)
		return &ExitError{Code: 1, Err: fmt.Errorf("%d manifest problem(s)", problems)}
	}

	fmt.Fprintf(app.stdout, "%s %d component(s), all manifests valid\n", successIcon, len(result.Components))
	return nil
}

func runValidateOne(app *App, repo *repository.Repository, name string) error {
	c, err := repo.FindOrFail(name)
	if err != nil {
		return err
	}

	err = errors.Join(c.Name().Validate(), c.Manifest().Validate())
	if err != nil {
		fmt.Fprintf(app.stdout, "%s %s: %v\n", errorIcon, c.ManifestPath(), err)
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintf(app.stdout, "%s %s is valid\n", successIcon, c.ManifestPath())
	return nil
}

// renderRequirementProblems reports unresolved "requires" entries and
// requirement cycles, returning how many it printed.
func renderRequirementProblems(app *App, repo *repository.Repository) int {
	_, missing, err := repo.RequirementOrder()
	for _, m := range missing {
		fmt.Fprintf(app.stdout, "%s [requirement_missing] %s requires unknown component %s\n",
			errorIcon, m.Component, m.Requires)
	}
	if err != nil {
		fmt.Fprintf(app.stdout, "%s [requirement_cycle] %v\n", errorIcon, err)
		return len(missing) + 1
	}
	return len(missing)
}

func renderDiagnostic(app *App, d repository.Diagnostic) {
	icon := WarningStyle.Render("!")
	if d.Severity == repository.SeverityError {
		icon = errorIcon
	}
	line := fmt.Sprintf("%s [%s] %s", icon, d.Code, d.Message)
	if d.Path != "" {
		line += " " + SubtitleStyle.Render("("+d.Path+")")
	}
	fmt.Fprintln(app.stdout, line)
	if d.Cause != nil {
		fmt.Fprintf(app.stdout, "    %v\n", d.Cause)
	}
}
