// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/consigliere/components/internal/repository"
	"github.com/consigliere/components/pkg/component"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// KindAssets publishes Resources/assets into the public assets path.
	KindAssets Kind = "assets"
	// KindMigrations publishes Database/Migrations into the host migrations path.
	KindMigrations Kind = "migrations"
)

type (
	// Kind selects which component resource is published.
	Kind string

	// Host is the part of the repository a publisher needs: the filesystem
	// and the host destination directories.
	Host interface {
		Fs() afero.Fs
		AssetPath(name string) string
		MigrationPath() string
	}

	// Catalog is a Host that can also list its enabled components.
	Catalog interface {
		Host
		Enabled() repository.Collection
	}

	// Publisher copies one component resource directory to its destination.
	Publisher interface {
		Publish() (*Result, error)
	}

	// Result describes a completed (or skipped) publish.
	Result struct {
		Component   string
		Kind        Kind
		Source      string
		Destination string
		// Files lists the copied files relative to Source.
		Files []string
		// Skipped is set by PublishAll when the component has nothing to publish.
		Skipped bool
	}

	// Outcome pairs a component with its publish result or error.
	Outcome struct {
		Component string
		Result    *Result
		Err       error
	}

	// DirPublisher copies a source directory to a destination directory on the host filesystem.
	DirPublisher struct {
		fs          afero.Fs
		logger      *log.Logger
		component   *component.Component
		kind        Kind
		source      string
		destination string
	}

	// Option configures a DirPublisher.
	Option func(*DirPublisher)
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Validate returns ErrUnknownKind for anything other than KindAssets or KindMigrations.
func (k Kind) Validate() error {
	switch k {
	case KindAssets, KindMigrations:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// WithLogger logs every copied file at debug level.
func WithLogger(l *log.Logger) Option {
	return func(p *DirPublisher) { p.logger = l }
}

// NewAssetPublisher publishes the component assets into the host public
// assets directory, under the lowercase component name.
func NewAssetPublisher(host Host, c *component.Component, opts ...Option) *DirPublisher {
	return newDirPublisher(host.Fs(), c, KindAssets, c.AssetPath(), host.AssetPath(c.LowerName()), opts)
}

// NewMigrationPublisher publishes the component migrations into the host
// migrations directory.
func NewMigrationPublisher(host Host, c *component.Component, opts ...Option) *DirPublisher {
	return newDirPublisher(host.Fs(), c, KindMigrations, c.MigrationPath(), host.MigrationPath(), opts)
}

// New returns the publisher for kind.
func New(host Host, c *component.Component, kind Kind, opts ...Option) (*DirPublisher, error) {
	switch kind {
	case KindAssets:
		return NewAssetPublisher(host, c, opts...), nil
	case KindMigrations:
		return NewMigrationPublisher(host, c, opts...), nil
	default:
		return nil, kind.Validate()
	}
}

func newDirPublisher(fsys afero.Fs, c *component.Component, kind Kind, src, dst string, opts []Option) *DirPublisher {
	p := &DirPublisher{
		fs:          fsys,
		component:   c,
		kind:        kind,
		source:      src,
		destination: dst,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Source returns the component directory being copied.
func (p *DirPublisher) Source() string { return p.source }

// Destination returns the host directory files are copied into.
func (p *DirPublisher) Destination() string { return p.destination }

// Kind returns the published resource kind.
func (p *DirPublisher) Kind() Kind { return p.kind }

// Publish copies every regular file below Source into Destination, creating
// directories as needed and overwriting existing files.
func (p *DirPublisher) Publish() (*Result, error) {
	info, err := p.fs.Stat(p.source)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, p.fail(ErrSourceNotFound)
	case err != nil:
		return nil, p.fail(err)
	case !info.IsDir():
		return nil, p.fail(fmt.Errorf("%s is not a directory", p.source))
	}

	files, err := copyDir(p.fs, p.source, p.destination)
	if err != nil {
		return nil, p.fail(err)
	}

	if p.logger != nil {
		for _, f := range files {
			p.logger.Debug("published file", "component", p.component.Name(), "kind", p.kind, "file", f)
		}
	}

	return &Result{
		Component:   p.component.Name().String(),
		Kind:        p.kind,
		Source:      p.source,
		Destination: p.destination,
		Files:       files,
	}, nil
}

func (p *DirPublisher) fail(cause error) error {
	return &PublishError{
		Component:   p.component.Name().String(),
		Source:      p.source,
		Destination: p.destination,
		Cause:       cause,
	}
}

// PublishAll publishes kind for every enabled component, in scan order.
// Components without a source directory are reported as skipped. A failure
// for one component does not stop the others.
func PublishAll(catalog Catalog, kind Kind, opts ...Option) ([]Outcome, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	enabled := catalog.Enabled()
	outcomes := make([]Outcome, 0, len(enabled))
	for _, c := range enabled {
		p, _ := New(catalog, c, kind, opts...)
		res, err := p.Publish()
		if errors.Is(err, ErrSourceNotFound) {
			res, err = &Result{
				Component:   c.Name().String(),
				Kind:        kind,
				Source:      p.Source(),
				Destination: p.Destination(),
				Skipped:     true,
			}, nil
		}
		outcomes = append(outcomes, Outcome{Component: c.Name().String(), Result: res, Err: err})
	}
	return outcomes, nil
}

// Errors joins the errors of failed outcomes, or returns nil.
func Errors(outcomes []Outcome) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}
