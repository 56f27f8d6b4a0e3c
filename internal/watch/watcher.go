// SPDX-License-Identifier: MPL-2.0

// Package watch watches component scan roots and fires a debounced callback
// when components appear, disappear, or have their manifest edited.
//
// Each root is watched together with its immediate subdirectories, matching
// the one-level layout the repository scans. Events within the debounce
// window are coalesced so the callback fires once with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last event before the
// callback fires. Editors often write a temp file then rename it.
const defaultDebounce = 300 * time.Millisecond

// defaultManifest is the manifest file name watched when Config.ManifestFile is empty.
const defaultManifest = "component.json"

// ErrNoRoots is returned by New when none of the configured roots can be watched.
var ErrNoRoots = errors.New("watch: no existing root to watch")

// defaultIgnores lists path patterns, relative to a root, that never trigger
// callbacks: VCS metadata, editor swap files and OS metadata.
var defaultIgnores = []string{
	".git",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/*.tmp",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are the component scan roots. Roots that do not exist are
		// reported on Stderr and skipped.
		Roots []string

		// ManifestFile is the manifest file name inside a component directory.
		ManifestFile string

		// Ignore are extra doublestar patterns, relative to a root, that never
		// trigger callbacks.
		Ignore []string

		// Debounce is the quiet period after the last event. Zero or negative
		// values fall back to defaultDebounce.
		Debounce time.Duration

		// OnChange receives the deduplicated, sorted absolute paths that
		// changed. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stderr receives warnings. nil defaults to os.Stderr.
		Stderr io.Writer
	}

	// Watcher monitors scan roots. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		roots    []string
		patterns []string
		ignores  []string
		stderr   io.Writer
		debounce time.Duration
		started  atomic.Bool
	}
)

// Patterns returns the root-relative patterns that trigger a callback: a
// component directory itself, or its manifest.
func Patterns(manifestFile string) []string {
	if manifestFile == "" {
		manifestFile = defaultManifest
	}
	return []string{"*", "*/" + manifestFile}
}

// New creates a Watcher and registers every existing root and its immediate
// subdirectories with fsnotify.
func New(cfg Config) (*Watcher, error) {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q", pat)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: Patterns(cfg.ManifestFile),
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		stderr:   stderr,
		debounce: debounce,
	}

	if err := w.addRoots(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			fmt.Fprintf(stderr, "watch: close after init failure: %v\n", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Roots returns the absolute roots being watched.
func (w *Watcher) Roots() []string { return slices.Clone(w.roots) }

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when fsnotify fails fatally.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may run after cancellation via time.AfterFunc, hence the ctx check.
	// A callback still running when the next window closes is not re-entered;
	// the timer is re-armed so pending paths are not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: callback error: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.relevant(evt) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// addRoots registers each existing root and its immediate, non-ignored
// subdirectories.
func (w *Watcher) addRoots() error {
	for _, root := range w.cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("watch: resolve root %q: %w", root, err)
		}
		if slices.Contains(w.roots, abs) {
			continue
		}

		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			fmt.Fprintf(w.stderr, "watch: skipping missing root %q\n", root)
			continue
		}

		if err := w.fsw.Add(abs); err != nil {
			return fmt.Errorf("watch: add root %q: %w", abs, err)
		}
		w.roots = append(w.roots, abs)

		entries, err := os.ReadDir(abs)
		if err != nil {
			fmt.Fprintf(w.stderr, "watch: skipping unreadable root %q: %v\n", abs, err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || w.isIgnored(entry.Name()) {
				continue
			}
			if err := w.fsw.Add(filepath.Join(abs, entry.Name())); err != nil {
				return fmt.Errorf("watch: add directory %q: %w", entry.Name(), err)
			}
		}
	}

	if len(w.roots) == 0 {
		return ErrNoRoots
	}
	return nil
}

// maybeAddDir starts watching a component directory created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if _, rel, ok := w.relative(path); !ok || filepath.Dir(rel) != "." || w.isIgnored(rel) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		fmt.Fprintf(w.stderr, "watch: add new directory %q: %v\n", path, err)
	}
}

// relevant reports whether evt touches a component directory or manifest.
// Chmod-only events are dropped.
func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod {
		return false
	}
	_, rel, ok := w.relative(evt.Name)
	if !ok || w.isIgnored(rel) {
		return false
	}
	return matchAny(w.patterns, rel)
}

// relative returns the watched root holding path and path relative to it.
func (w *Watcher) relative(path string) (string, string, bool) {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return root, rel, true
	}
	return "", "", false
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// isFatal reports whether an fsnotify error leaves the watcher unable to
// deliver further events.
func isFatal(err error) bool {
	return slices.ContainsFunc(fatalErrnos, func(errno syscall.Errno) bool {
		return errors.Is(err, errno)
	})
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}
