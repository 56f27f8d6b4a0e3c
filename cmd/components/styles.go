// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette. Status colors follow the component state they describe.
var (
	colorAccent   = lipgloss.Color("#7C3AED")
	colorMuted    = lipgloss.Color("#6B7280")
	colorEnabled  = lipgloss.Color("#10B981")
	colorFailed   = lipgloss.Color("#EF4444")
	colorDisabled = lipgloss.Color("#F59E0B")
	colorName     = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle renders the command banner and component headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// SubtitleStyle renders secondary text: hints, sources, empty results.
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)

	// SuccessStyle renders completed actions and the enabled state.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorEnabled)

	// ErrorStyle renders failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFailed)

	// WarningStyle renders scan warnings and the disabled state.
	WarningStyle = lipgloss.NewStyle().Foreground(colorDisabled)

	// CmdStyle renders component names, paths and URLs.
	CmdStyle = lipgloss.NewStyle().Foreground(colorName)

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(12)

	successIcon = SuccessStyle.Render("✓")
	errorIcon   = ErrorStyle.Render("✗")
	skipIcon    = SubtitleStyle.Render("•")
)

// statusText renders an enabled/disabled label.
func statusText(active bool) string {
	if active {
		return SuccessStyle.Render("enabled")
	}
	return WarningStyle.Render("disabled")
}
