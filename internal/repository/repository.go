// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/consigliere/components/internal/config"
	"github.com/consigliere/components/pkg/component"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// Asc orders components by ascending manifest "order".
	Asc Direction = "asc"
	// Desc orders components by descending manifest "order".
	Desc Direction = "desc"
)

type (
	// Direction is the sort direction for Ordered.
	Direction string

	// Repository is the registry of components discovered under its scan roots.
	Repository struct {
		mu        sync.Mutex
		cfg       *config.Config
		fs        afero.Fs
		logger    *log.Logger
		locations []string
		stubPath  string
		cache     *ScanResult
	}

	// Option configures a Repository.
	Option func(*Repository)
)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(r *Repository) { r.fs = fs }
}

// WithLogger sets the logger used to report scan problems and state changes.
func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// WithLocations adds scan locations at construction time.
func WithLocations(paths ...string) Option {
	return func(r *Repository) { r.locations = append(r.locations, paths...) }
}

// New creates a Repository. A nil cfg means config.DefaultConfig().
func New(cfg *config.Config, opts ...Option) *Repository {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Repository{
		cfg: cfg,
		fs:  afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "components",
			Level:  log.WarnLevel,
		})
	}
	return r
}

// Config returns the configuration the repository was built with.
func (r *Repository) Config() *config.Config { return r.cfg }

// Fs returns the repository filesystem.
func (r *Repository) Fs() afero.Fs { return r.fs }

// AddLocation appends a scan root. Duplicates are kept. Doublestar patterns
// such as "modules/**/components" are expanded at scan time.
func (r *Repository) AddLocation(path string) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, path)
	r.cache = nil
	return r
}

// AddPath is an alias of AddLocation.
func (r *Repository) AddPath(path string) *Repository { return r.AddLocation(path) }

// Paths returns the locations added with AddLocation, in insertion order.
func (r *Repository) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.locations)
}

// ScanPaths returns every root in scan order: the configured components
// path, the configured scan paths when enabled, then the added locations.
// Relative locations resolve against the base path.
func (r *Repository) ScanPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scanPaths()
}

// Roots returns the directories a scan lists: ScanPaths with doublestar
// patterns expanded to the directories they currently match and repeated
// roots removed.
func (r *Repository) Roots() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roots(&ScanResult{})
}

func (r *Repository) scanPaths() []string {
	paths := []string{r.cfg.ComponentsPath()}
	paths = append(paths, r.cfg.ScanPaths()...)
	for _, loc := range r.locations {
		paths = append(paths, r.cfg.Resolve(loc))
	}
	return paths
}

// Scan rescans every root and returns the fresh result.
func (r *Repository) Scan() *ScanResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = r.scan()
	return r.cache
}

// Refresh drops the cached scan; the next query rescans.
func (r *Repository) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
}

// Diagnostics returns the diagnostics of the current scan, scanning if needed.
func (r *Repository) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.result().Diagnostics)
}

// result returns the cached scan, scanning when the cache is empty.
// The caller must hold r.mu.
func (r *Repository) result() *ScanResult {
	if r.cache == nil {
		r.cache = r.scan()
	}
	return r.cache
}

// All returns every discovered component in scan order.
func (r *Repository) All() Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.result().Components)
}

// ToCollection is an alias of All.
func (r *Repository) ToCollection() Collection { return r.All() }

// Ordered returns every component sorted by manifest "order", ties broken by name.
func (r *Repository) Ordered(dir Direction) Collection {
	all := r.All()
	component.Sort(all, dir == Desc)
	return all
}

// ByStatus returns the components whose active flag equals active.
func (r *Repository) ByStatus(active bool) Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result().Components.Filter(func(c *component.Component) bool { return c.IsStatus(active) })
}

// Enabled returns the active components.
func (r *Repository) Enabled() Collection { return r.ByStatus(true) }

// Disabled returns the inactive components.
func (r *Repository) Disabled() Collection { return r.ByStatus(false) }

// Count returns the number of discovered components.
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.result().Components)
}

// Find returns the component whose name or alias matches, ignoring case, or nil.
func (r *Repository) Find(name string) *component.Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(name)
}

// Get is an alias of Find.
func (r *Repository) Get(name string) *component.Component { return r.Find(name) }

// Has reports whether a component matches name.
func (r *Repository) Has(name string) bool { return r.Find(name) != nil }

func (r *Repository) find(name string) *component.Component {
	if name == "" {
		return nil
	}
	components := r.result().Components
	// Names take precedence over aliases.
	for _, c := range components {
		if c.Name().EqualFold(name) {
			return c
		}
	}
	for _, c := range components {
		if c.Matches(name) {
			return c
		}
	}
	return nil
}

// FindOrFail is Find returning *ComponentNotFoundError on a miss.
func (r *Repository) FindOrFail(name string) (*component.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findOrFail(name)
}

func (r *Repository) findOrFail(name string) (*component.Component, error) {
	if c := r.find(name); c != nil {
		return c, nil
	}
	return nil, &ComponentNotFoundError{Name: name}
}

// Active reports whether the named component exists and is enabled.
func (r *Repository) Active(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.find(name)
	return c != nil && c.IsActive()
}

// NotActive reports whether the named component exists and is disabled.
// Both Active and NotActive are false for an unknown name.
func (r *Repository) NotActive(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.find(name)
	return c != nil && !c.IsActive()
}

// Enable sets the component's manifest "active" to 1 and saves it.
func (r *Repository) Enable(name string) error { return r.setActive(name, true) }

// Disable sets the component's manifest "active" to 0 and saves it.
func (r *Repository) Disable(name string) error { return r.setActive(name, false) }

func (r *Repository) setActive(name string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.findOrFail(name)
	if err != nil {
		return err
	}
	if err := c.SetActive(active); err != nil {
		return err
	}
	r.logger.Info("component status changed", "component", c.Name(), "active", active)
	return nil
}

// Delete removes the component directory recursively and drops the component
// from the cache. It is irreversible.
func (r *Repository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.findOrFail(name)
	if err != nil {
		return err
	}
	if err := r.fs.RemoveAll(c.Path()); err != nil {
		return fmt.Errorf("failed to delete component %s: %w", c.Name(), err)
	}

	r.cache.Components = slices.DeleteFunc(r.cache.Components, func(other *component.Component) bool {
		return other == c
	})
	r.logger.Info("component deleted", "component", c.Name(), "path", c.Path())
	return nil
}

// BasePath returns the host application root.
func (r *Repository) BasePath() string { return string(r.cfg.BasePath) }

// AssetsPath returns the public directory component assets are published into.
func (r *Repository) AssetsPath() string { return r.cfg.AssetsPath() }

// AssetPath returns the public asset directory of the named component. The
// component does not need to exist.
func (r *Repository) AssetPath(name string) string {
	return filepath.Join(r.AssetsPath(), strings.ToLower(name))
}

// MigrationPath returns the host migrations directory.
func (r *Repository) MigrationPath() string { return r.cfg.MigrationPath() }

// ComponentPath returns the root directory of the named component.
func (r *Repository) ComponentPath(name string) (string, error) {
	c, err := r.FindOrFail(name)
	if err != nil {
		return "", err
	}
	return c.Path(), nil
}

// Asset resolves a "name:relative/path" reference to a URL under the
// configured assets URL. The component does not need to exist.
func (r *Repository) Asset(ref string) (string, error) {
	name, rel, ok := strings.Cut(ref, ":")
	name = strings.TrimSpace(name)
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	if !ok || name == "" || rel == "" {
		return "", &InvalidAssetReferenceError{Reference: ref}
	}
	base := strings.TrimRight(r.cfg.AssetsURL, "/")
	return base + "/" + strings.ToLower(name) + "/" + rel, nil
}

// StubPath returns the explicit stub path if set, else the configured stub
// path when stubs are enabled, else "".
func (r *Repository) StubPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stubPath != "" {
		return r.stubPath
	}
	return r.cfg.StubsPath()
}

// SetStubPath sets an explicit stub path that takes precedence over configuration.
func (r *Repository) SetStubPath(path string) *Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubPath = path
	return r
}

// Layout returns the component resource layout from configuration.
func (r *Repository) Layout() component.Layout {
	g := r.cfg.Paths.Generator
	return component.Layout{Assets: g.Assets, Migration: g.Migration, Config: g.Config}
}
