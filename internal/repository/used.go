// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/consigliere/components/pkg/component"

	"github.com/spf13/afero"
)

// UsedStoragePath returns the state file holding the used component name.
func (r *Repository) UsedStoragePath() string { return r.cfg.UsedFilePath() }

// SetUsed records name as the used component. The component must exist; its
// declared name is written, not the spelling passed in.
func (r *Repository) SetUsed(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.findOrFail(name)
	if err != nil {
		return err
	}

	path := r.UsedStoragePath()
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := afero.WriteFile(r.fs, path, []byte(c.Name()), 0o644); err != nil {
		return fmt.Errorf("failed to write used component: %w", err)
	}
	r.logger.Debug("used component set", "component", c.Name(), "file", path)
	return nil
}

// GetUsed returns the stored used component name, or "" when none is stored.
// The name is returned as stored, even if the component no longer exists.
func (r *Repository) GetUsed() (string, error) {
	data, err := afero.ReadFile(r.fs, r.UsedStoragePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read used component: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// GetUsedNow resolves the used component. It fails with ErrNoUsedComponent
// when none is stored, *ComponentNotFoundError when it no longer exists, and
// *ComponentDisabledError when it is disabled.
func (r *Repository) GetUsedNow() (*component.Component, error) {
	name, err := r.GetUsed()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNoUsedComponent
	}

	c, err := r.FindOrFail(name)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, &ComponentDisabledError{Name: c.Name().String()}
	}
	return c, nil
}

// ForgetUsed removes the used component state file. It is not an error when
// no component is in use.
func (r *Repository) ForgetUsed() error {
	err := r.fs.Remove(r.UsedStoragePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to forget used component: %w", err)
	}
	return nil
}
