// SPDX-License-Identifier: MPL-2.0

package component

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/consigliere/components/pkg/manifest"
	"github.com/spf13/afero"
)

type (
	// Component is a discovered component: a name, a root directory and the
	// manifest read from it.
	Component struct {
		name     Name
		path     string
		manifest *manifest.Manifest
		layout   Layout
	}

	// Option configures a Component.
	Option func(*Component)
)

// WithLayout overrides the relative resource layout.
func WithLayout(l Layout) Option {
	return func(c *Component) { c.layout = l.withDefaults() }
}

// New creates a component from an already loaded manifest.
func New(name Name, rootPath string, m *manifest.Manifest, opts ...Option) *Component {
	c := &Component{
		name:     name,
		path:     rootPath,
		manifest: m,
		layout:   DefaultLayout(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the manifest named manifestFile inside dir and builds the
// component. The name is the manifest "name" key, or the directory name when
// the key is absent. An empty manifestFile means manifest.FileName.
func Load(fsys afero.Fs, dir, manifestFile string, opts ...Option) (*Component, error) {
	if manifestFile == "" {
		manifestFile = manifest.FileName
	}
	m, err := manifest.Load(fsys, filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}

	name := Name(m.GetString("name", ""))
	if name == "" {
		name = Name(filepath.Base(dir))
	}
	return New(name, dir, m, opts...), nil
}

// Name returns the component name as declared.
func (c *Component) Name() Name { return c.name }

// LowerName returns the lowercase component name.
func (c *Component) LowerName() string { return c.name.Lower() }

// StudlyName returns the StudlyCase component name.
func (c *Component) StudlyName() string { return c.name.Studly() }

// String returns the StudlyCase component name.
func (c *Component) String() string { return c.StudlyName() }

// Manifest returns the underlying manifest.
func (c *Component) Manifest() *manifest.Manifest { return c.manifest }

// Get is a dotted-path manifest lookup.
func (c *Component) Get(key string, def any) any { return c.manifest.Get(key, def) }

// Alias returns the manifest alias, defaulting to the lowercase name.
func (c *Component) Alias() string { return c.manifest.GetString("alias", c.LowerName()) }

// Description returns the manifest description.
func (c *Component) Description() string { return c.manifest.GetString("description", "") }

// Version returns the manifest version string.
func (c *Component) Version() string { return c.manifest.GetString("version", "") }

// Keywords returns the manifest keywords.
func (c *Component) Keywords() []string { return c.manifest.GetStrings("keywords") }

// Order returns the manifest "order" used to sort components; 0 when unset.
func (c *Component) Order() int { return c.manifest.GetInt("order", 0) }

// Providers returns the service provider class names the host registers.
func (c *Component) Providers() []string { return c.manifest.GetStrings("providers") }

// Aliases returns the class aliases the host registers.
func (c *Component) Aliases() []string { return c.manifest.GetStrings("aliases") }

// Files returns the files the host loads on boot.
func (c *Component) Files() []string { return c.manifest.GetStrings("files") }

// Requires returns the names of components that must be present first.
func (c *Component) Requires() []string { return c.manifest.GetStrings("requires") }

// Matches reports whether name equals the component name or alias, ignoring case.
func (c *Component) Matches(name string) bool {
	return c.name.EqualFold(name) || Name(c.Alias()).EqualFold(name)
}

// IsActive reports whether the manifest "active" key is truthy.
func (c *Component) IsActive() bool { return c.manifest.GetBool("active", false) }

// IsStatus reports whether the component's status equals active.
func (c *Component) IsStatus(active bool) bool { return c.IsActive() == active }

// SetActive writes the "active" key as 1 or 0 and saves the manifest. On a
// failed save the previous value is restored in memory.
func (c *Component) SetActive(active bool) error {
	prev, had := c.manifest.Lookup("active")

	status := manifest.StatusDisabled
	if active {
		status = manifest.StatusEnabled
	}
	c.manifest.Set("active", int(status))

	if err := c.manifest.Save(); err != nil {
		if had {
			c.manifest.Set("active", prev)
		} else {
			c.manifest.Delete("active")
		}
		return fmt.Errorf("failed to persist status of component %s: %w", c.name, err)
	}
	return nil
}

// Enable marks the component active and persists the manifest.
func (c *Component) Enable() error { return c.SetActive(true) }

// Disable marks the component inactive and persists the manifest.
func (c *Component) Disable() error { return c.SetActive(false) }

// Path returns the component root directory.
func (c *Component) Path() string { return c.path }

// ExtraPath joins rel onto the component root.
func (c *Component) ExtraPath(rel string) string { return filepath.Join(c.path, rel) }

// ManifestPath returns the manifest file path.
func (c *Component) ManifestPath() string { return c.manifest.Path() }

// AssetPath returns the component-local assets directory.
func (c *Component) AssetPath() string { return c.ExtraPath(c.layout.Assets) }

// MigrationPath returns the component-local migrations directory. A manifest
// "migration.path" key overrides the layout; relative values are joined onto
// the component root.
func (c *Component) MigrationPath() string {
	if p := c.manifest.GetString("migration.path", ""); p != "" {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return c.ExtraPath(p)
	}
	return c.ExtraPath(c.layout.Migration)
}

// ConfigPath returns the component-local config directory.
func (c *Component) ConfigPath() string { return c.ExtraPath(c.layout.Config) }

// ReadmePath returns the component README path.
func (c *Component) ReadmePath() string { return c.ExtraPath(ReadmeFile) }

// Sort orders components in place by manifest order, then by lowercase name.
// When desc is true the order is reversed; ties still break by name.
func Sort(cs []*Component, desc bool) {
	slices.SortStableFunc(cs, func(a, b *Component) int {
		if a.Order() != b.Order() {
			if desc {
				return b.Order() - a.Order()
			}
			return a.Order() - b.Order()
		}
		switch {
		case a.LowerName() < b.LowerName():
			return -1
		case a.LowerName() > b.LowerName():
			return 1
		default:
			return 0
		}
	})
}
