// SPDX-License-Identifier: MPL-2.0

package component

// Default relative resource directories inside a component.
const (
	DefaultAssetsDir    = "Resources/assets"
	DefaultMigrationDir = "Database/Migrations"
	DefaultConfigDir    = "Config"
	ReadmeFile          = "README.md"
)

// Layout names the resource directories of a component, relative to its root.
// Empty fields fall back to the defaults.
type Layout struct {
	Assets    string
	Migration string
	Config    string
}

// DefaultLayout returns the conventional component layout.
func DefaultLayout() Layout {
	return Layout{
		Assets:    DefaultAssetsDir,
		Migration: DefaultMigrationDir,
		Config:    DefaultConfigDir,
	}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.Assets == "" {
		l.Assets = d.Assets
	}
	if l.Migration == "" {
		l.Migration = d.Migration
	}
	if l.Config == "" {
		l.Config = d.Config
	}
	return l
}
