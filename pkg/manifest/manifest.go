// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// FileName is the conventional manifest file name inside a component directory.
const FileName = "component.json"

// Manifest is a component manifest loaded from (or destined for) a JSON file.
// It is not safe for concurrent mutation.
type Manifest struct {
	fs    afero.Fs
	path  string
	attrs *Object
	lits  literals
}

// New returns an empty manifest bound to path. Nothing is read or written until
// Save is called.
func New(fsys afero.Fs, path string) *Manifest {
	return &Manifest{fs: fsys, path: path, attrs: NewObject()}
}

// Load reads and decodes the manifest at path.
func Load(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	attrs, lits, err := decodeObject(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Manifest{fs: fsys, path: path, attrs: attrs, lits: lits}, nil
}

// Path returns the file path the manifest was loaded from or will be saved to.
func (m *Manifest) Path() string { return m.path }

// SetPath changes the file path used by Save.
func (m *Manifest) SetPath(path string) { m.path = path }

// Attributes returns the underlying ordered attribute map.
func (m *Manifest) Attributes() *Object { return m.attrs }

// Len returns the number of top-level keys.
func (m *Manifest) Len() int { return m.attrs.Len() }

// Keys returns the top-level keys in manifest order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, m.attrs.Len())
	for pair := m.attrs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Lookup resolves a dotted key path. A key that exists verbatim at the top level
// (dots included) wins over nested traversal.
func (m *Manifest) Lookup(key string) (any, bool) {
	if v, ok := m.attrs.Get(key); ok {
		return v, true
	}

	var current any = m.attrs
	for _, segment := range strings.Split(key, ".") {
		obj, ok := current.(*Object)
		if !ok {
			return nil, false
		}
		current, ok = obj.Get(segment)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Get returns the value at the dotted key path, or def when any segment is
// missing or traverses a non-object.
func (m *Manifest) Get(key string, def any) any {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return def
}

// Has reports whether the dotted key path resolves.
func (m *Manifest) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// GetString returns the value at key rendered as a string, or def when missing.
// Numbers and booleans are formatted; lists and objects yield def.
func (m *Manifest) GetString(key, def string) string {
	switch v := m.Get(key, nil).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return def
	}
}

// GetInt returns the value at key as an integer, or def when missing or not numeric.
func (m *Manifest) GetInt(key string, def int) int {
	switch v := m.Get(key, nil).(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(math.Trunc(f))
		}
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(math.Trunc(v))
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	case bool:
		if v {
			return 1
		}
		return 0
	}
	return def
}

// GetBool returns the truthiness of the value at key, or def when missing.
func (m *Manifest) GetBool(key string, def bool) bool {
	v, ok := m.Lookup(key)
	if !ok {
		return def
	}
	return Truthy(v)
}

// GetStrings returns the list at key with non-string items formatted. A missing
// key or a non-list value yields nil.
func (m *Manifest) GetStrings(key string) []string {
	switch v := m.Get(key, nil).(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case nil:
			default:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return nil
	}
}

// Set inserts or overwrites the top-level key. Dotted keys are stored verbatim;
// nested writes are not supported.
func (m *Manifest) Set(key string, value any) *Manifest {
	m.attrs.Set(key, value)
	return m
}

// Delete removes the top-level key and reports whether it existed.
func (m *Manifest) Delete(key string) bool {
	_, ok := m.attrs.Delete(key)
	return ok
}

// PrettyJSON renders the manifest with 4-space indentation in key order,
// without a trailing newline.
func (m *Manifest) PrettyJSON() (string, error) {
	out, err := encodePretty(m.attrs, m.lits)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest %s: %w", m.path, err)
	}
	return string(out), nil
}

// JSON renders the manifest as compact JSON in key order.
func (m *Manifest) JSON() ([]byte, error) {
	return encodeCompact(m.attrs, m.lits)
}

// String implements fmt.Stringer; encoding failures render as an empty string.
func (m *Manifest) String() string {
	out, err := m.PrettyJSON()
	if err != nil {
		return ""
	}
	return out
}

// Save writes the pretty JSON form plus a trailing newline to Path, replacing
// the file atomically.
func (m *Manifest) Save() error {
	out, err := m.PrettyJSON()
	if err != nil {
		return err
	}

	if err := m.fs.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	return atomicWriteFile(m.fs, m.path, []byte(out+"\n"))
}

// Truthy applies loose truthiness: false, nil, zero numbers, "", "0" and empty
// lists or objects are false; everything else is true.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != "" && val != "0"
	case []any:
		return len(val) > 0
	case *Object:
		return val.Len() > 0
	default:
		return true
	}
}

// atomicWriteFile writes data to a sibling temp file and renames it over path.
func atomicWriteFile(fsys afero.Fs, path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fsys, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath) // Best-effort cleanup
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
