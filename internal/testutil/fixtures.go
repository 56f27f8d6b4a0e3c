// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// StubManifest is a complete pretty-printed manifest for a component named Order.
const StubManifest = `{
    "name": "Order",
    "alias": "order",
    "description": "My demo component",
    "version": "0.1",
    "keywords": [
        "my",
        "stub",
        "component"
    ],
    "active": 1,
    "order": 1,
    "providers": [
        "Components\\Order\\Providers\\OrderServiceProvider",
        "Components\\Order\\Providers\\EventServiceProvider",
        "Components\\Order\\Providers\\RouteServiceProvider"
    ],
    "aliases": [],
    "files": []
}`

// WriteManifest writes content as dir/component.json.
func WriteManifest(t testing.TB, fs afero.Fs, dir, content string) {
	t.Helper()
	MustWriteFile(t, fs, filepath.Join(dir, "component.json"), content)
}

// WriteComponent creates root/name with a minimal manifest and returns the
// component directory. The alias is the lowercase name.
func WriteComponent(t testing.TB, fs afero.Fs, root, name string, active bool) string {
	t.Helper()
	flag := 0
	if active {
		flag = 1
	}
	dir := filepath.Join(root, name)
	WriteManifest(t, fs, dir, fmt.Sprintf(
		`{"name": %q, "alias": %q, "version": "0.1", "active": %d}`,
		name, strings.ToLower(name), flag,
	))
	return dir
}
