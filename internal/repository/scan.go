// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/consigliere/components/pkg/component"
	"github.com/consigliere/components/pkg/manifest"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// scan walks every root in order. The caller must hold r.mu.
func (r *Repository) scan() *ScanResult {
	result := &ScanResult{Components: Collection{}}
	seen := make(map[string]*component.Component)

	for _, root := range r.roots(result) {
		r.scanRoot(root, seen, result)
	}

	for _, d := range result.Diagnostics {
		r.logger.Warn(d.Message, "code", d.Code, "path", d.Path)
	}
	r.logger.Debug("scan complete", "components", len(result.Components), "diagnostics", len(result.Diagnostics))
	return result
}

// roots returns the scan roots with globs expanded and repeats removed,
// keeping the first occurrence. The caller must hold r.mu.
func (r *Repository) roots(result *ScanResult) []string {
	expanded := r.expandRoots(r.scanPaths(), result)
	roots := make([]string, 0, len(expanded))
	for _, root := range expanded {
		root = filepath.Clean(root)
		if slices.Contains(roots, root) {
			continue
		}
		roots = append(roots, root)
	}
	return roots
}

// expandRoots replaces glob locations by the directories they match, in
// lexical order. Plain locations pass through unchanged, existing or not.
func (r *Repository) expandRoots(locations []string, result *ScanResult) []string {
	roots := make([]string, 0, len(locations))
	for _, loc := range locations {
		if !hasMeta(loc) {
			roots = append(roots, loc)
			continue
		}
		matches, err := r.glob(loc)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeLocationPattern,
				Message:  fmt.Sprintf("cannot expand location pattern %q", loc),
				Path:     loc,
				Cause:    err,
			})
			continue
		}
		roots = append(roots, matches...)
	}
	return roots
}

// glob returns the directories matching a doublestar pattern. The static
// prefix of the pattern is walked; "**" lifts the depth limit.
func (r *Repository) glob(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if !doublestar.ValidatePattern(rest) {
		return nil, doublestar.ErrBadPattern
	}
	base = filepath.FromSlash(base)

	maxDepth := -1
	if !strings.Contains(rest, "**") {
		maxDepth = strings.Count(rest, "/") + 1
	}

	var matches []string
	err := afero.Walk(r.fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // missing bases and unreadable subtrees match nothing
		}
		if !info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil || rel == "." {
			return nil //nolint:nilerr // the base itself never matches
		}
		slashed := filepath.ToSlash(rel)
		if ok, _ := doublestar.Match(rest, slashed); ok {
			matches = append(matches, path)
		}
		if maxDepth > 0 && strings.Count(slashed, "/")+1 >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	return matches, nil
}

// scanRoot loads every immediate subdirectory of root holding a manifest.
func (r *Repository) scanRoot(root string, seen map[string]*component.Component, result *ScanResult) {
	entries, err := afero.ReadDir(r.fs, root)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeRootUnreadable,
				Message:  fmt.Sprintf("cannot list scan root %s", root),
				Path:     root,
				Cause:    err,
			})
		}
		return
	}

	// afero.ReadDir sorts entries by name.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		c, ok := r.loadComponent(dir, result)
		if !ok {
			continue
		}

		key := c.LowerName()
		if first, dup := seen[key]; dup {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeDuplicateName,
				Message:  fmt.Sprintf("component %s at %s is shadowed by %s", c.Name(), dir, first.Path()),
				Path:     dir,
			})
			continue
		}
		seen[key] = c
		result.Components = append(result.Components, c)
	}
}

// loadComponent loads the component in dir. It reports false for directories
// without a manifest (silently) and for unusable manifests (with a diagnostic).
func (r *Repository) loadComponent(dir string, result *ScanResult) (*component.Component, bool) {
	c, err := component.Load(r.fs, dir, r.cfg.ManifestFile(), component.WithLayout(r.Layout()))
	if err != nil {
		if errors.Is(err, manifest.ErrManifestNotFound) {
			return nil, false
		}
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeManifestParse,
			Message:  fmt.Sprintf("skipping %s: %v", dir, err),
			Path:     filepath.Join(dir, r.cfg.ManifestFile()),
			Cause:    err,
		})
		return nil, false
	}

	if err := c.Name().Validate(); err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeInvalidName,
			Message:  fmt.Sprintf("skipping %s: %v", dir, err),
			Path:     c.ManifestPath(),
			Cause:    err,
		})
		return nil, false
	}

	if err := c.Manifest().Validate(); err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeManifestInvalid,
			Message:  fmt.Sprintf("component %s: %v", c.Name(), err),
			Path:     c.ManifestPath(),
			Cause:    err,
		})
	}

	return c, true
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
