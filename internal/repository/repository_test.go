// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/consigliere/components/internal/config"
	"github.com/consigliere/components/internal/testutil"
	"github.com/consigliere/components/pkg/component"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const appRoot = "/app"

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.BasePath = appRoot
	return cfg
}

func newTestRepo(t *testing.T, fs afero.Fs, cfg *config.Config, opts ...Option) *Repository {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	opts = append([]Option{WithFs(fs), WithLogger(log.New(io.Discard))}, opts...)
	return New(cfg, opts...)
}

func componentsRoot() string { return filepath.Join(appRoot, "components") }

func TestScan_TwoRoots(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Order", true)
	testutil.WriteComponent(t, fs, "/app/modules", "Blog", false)

	repo := newTestRepo(t, fs, nil)
	repo.AddLocation("/app/modules")

	if got := repo.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	if got := repo.All().Names(); !reflect.DeepEqual(got, []string{"Order", "Blog"}) {
		t.Errorf("All().Names() = %v, want [Order Blog]", got)
	}
	if got := repo.ToCollection(); len(got) != 2 {
		t.Errorf("ToCollection() has %d components, want 2", len(got))
	}
}

func TestScan_SkipsDirectoriesWithoutManifest(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Order", true)
	testutil.MustMkdirAll(t, fs, filepath.Join(componentsRoot(), "Empty"))
	testutil.MustWriteFile(t, fs, filepath.Join(componentsRoot(), "Notes", "README.md"), "notes")
	testutil.MustWriteFile(t, fs, filepath.Join(componentsRoot(), "stray.json"), "{}")

	repo := newTestRepo(t, fs, nil)
	result := repo.Scan()

	if got := result.Components.Names(); !reflect.DeepEqual(got, []string{"Order"}) {
		t.Errorf("Names() = %v, want [Order]", got)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %+v", result.Diagnostics)
	}
}

func TestScan_SortsSubdirectoriesByName(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	for _, name := range []string{"Shop", "Blog", "Order"} {
		testutil.WriteComponent(t, fs, componentsRoot(), name, true)
	}

	repo := newTestRepo(t, fs, nil)
	if got := repo.All().Names(); !reflect.DeepEqual(got, []string{"Blog", "Order", "Shop"}) {
		t.Errorf("All().Names() = %v, want sorted", got)
	}
}

func TestScan_MissingRootsAreIgnored(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, afero.NewMemMapFs(), nil)
	repo.AddLocation("/nowhere")

	result := repo.Scan()
	if len(result.Components) != 0 || len(result.Diagnostics) != 0 {
		t.Errorf("Scan() = %+v, want empty result", result)
	}
}

func TestScan_DiagnosticsDoNotAbort(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := componentsRoot()
	testutil.WriteComponent(t, fs, root, "Order", true)
	testutil.WriteManifest(t, fs, filepath.Join(root, "Broken"), `{"name": "Broken",`)
	testutil.WriteManifest(t, fs, filepath.Join(root, "Weird"), `{"name": "../escape", "version": "1"}`)
	testutil.WriteManifest(t, fs, filepath.Join(root, "Loose"), `{"name": "Loose"}`)
	testutil.WriteComponent(t, fs, "/app/extra", "order", false)

	repo := newTestRepo(t, fs, nil)
	repo.AddLocation("/app/extra")
	result := repo.Scan()

	if got := result.Components.Names(); !reflect.DeepEqual(got, []string{"Loose", "Order"}) {
		t.Errorf("Names() = %v, want [Loose Order]", got)
	}

	codes := make(map[string]Severity)
	for _, d := range result.Diagnostics {
		codes[d.Code] = d.Severity
		if d.Path == "" || d.Message == "" {
			t.Errorf("diagnostic %+v should carry a path and message", d)
		}
	}
	want := map[string]Severity{
		CodeManifestParse:   SeverityError,
		CodeInvalidName:     SeverityError,
		CodeManifestInvalid: SeverityWarning,
		CodeDuplicateName:   SeverityWarning,
	}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("diagnostic codes = %v, want %v", codes, want)
	}

	// First root wins for duplicates.
	if c := repo.Find("order"); c == nil || c.Path() != filepath.Join(root, "Order") || !c.IsActive() {
		t.Errorf("Find(order) = %v, want the component from the first root", c)
	}
	if got := len(repo.Diagnostics()); got != 4 {
		t.Errorf("Diagnostics() has %d entries, want 4", got)
	}
}

func TestScan_GlobLocations(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, "/app/modules/billing/components", "Invoice", true)
	testutil.WriteComponent(t, fs, "/app/modules/shop/components", "Cart", true)
	testutil.WriteComponent(t, fs, "/app/modules/shop/nested/deep/components", "Deep", true)

	tests := []struct {
		name     string
		location string
		want     []string
	}{
		{"single star", "/app/modules/*/components", []string{"Invoice", "Cart"}},
		{"double star", "/app/modules/**/components", []string{"Invoice", "Cart", "Deep"}},
		{"relative", "modules/*/components", []string{"Invoice", "Cart"}},
		{"no match", "/app/plugins/*/components", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := newTestRepo(t, fs, nil)
			repo.AddLocation(tt.location)
			if got := repo.All().Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("All().Names() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_InvalidGlobReportsDiagnostic(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, afero.NewMemMapFs(), nil)
	repo.AddLocation("/app/modules/[unclosed/components")

	diags := repo.Scan().Diagnostics
	if len(diags) != 1 || diags[0].Code != CodeLocationPattern {
		t.Errorf("Diagnostics = %+v, want one %s", diags, CodeLocationPattern)
	}
}

func TestScan_RepeatedRootsScanOnce(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Order", true)
	testutil.WriteComponent(t, fs, "/app/modules/shop/components", "Cart", true)

	repo := newTestRepo(t, fs, nil)
	repo.AddLocation(componentsRoot()).
		AddLocation("components/").
		AddLocation("/app/modules/*/components").
		AddLocation("/app/modules/shop/components")

	result := repo.Scan()
	if got := result.Components.Names(); !reflect.DeepEqual(got, []string{"Order", "Cart"}) {
		t.Errorf("Names() = %v, want [Order Cart]", got)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if got := repo.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestRoots(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, "/app/modules/billing/components", "Invoice", true)
	testutil.WriteComponent(t, fs, "/app/modules/shop/components", "Cart", true)

	repo := newTestRepo(t, fs, nil)
	repo.AddLocation("modules/*/components").AddLocation(componentsRoot())

	want := []string{
		"/app/components",
		"/app/modules/billing/components",
		"/app/modules/shop/components",
	}
	if got := repo.Roots(); !reflect.DeepEqual(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
	if got := repo.ScanPaths(); !reflect.DeepEqual(got, []string{"/app/components", "/app/modules/*/components", "/app/components"}) {
		t.Errorf("ScanPaths() = %v, want unexpanded locations", got)
	}
}

func TestScan_LogsDiagnosticsAtWarn(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "Broken"), `{"name": "Broken",`)

	var buf bytes.Buffer
	repo := newTestRepo(t, fs, nil, WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})))
	if got := len(repo.Diagnostics()); got != 1 {
		t.Fatalf("Diagnostics() has %d entries, want 1", got)
	}
	if !strings.Contains(buf.String(), CodeManifestParse) {
		t.Errorf("log output = %q, want %s", buf.String(), CodeManifestParse)
	}

	buf.Reset()
	quiet := newTestRepo(t, fs, nil, WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.ErrorLevel})))
	if got := len(quiet.Diagnostics()); got != 1 {
		t.Fatalf("Diagnostics() has %d entries, want 1", got)
	}
	if buf.Len() != 0 {
		t.Errorf("error-level logger should not print diagnostics, got %q", buf.String())
	}
}

func TestScanPaths(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Scan.Enabled = true
	cfg.Scan.Paths = []string{"vendor/acme", "/opt/components"}

	repo := newTestRepo(t, afero.NewMemMapFs(), cfg)
	repo.AddPath("extra").AddLocation("extra")

	want := []string{
		"/app/components",
		"/app/vendor/acme",
		"/opt/components",
		"/app/extra",
		"/app/extra",
	}
	if got := repo.ScanPaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("ScanPaths() = %v, want %v", got, want)
	}
	if got := repo.Paths(); !reflect.DeepEqual(got, []string{"extra", "extra"}) {
		t.Errorf("Paths() = %v, want duplicates kept", got)
	}

	cfg2 := testConfig()
	cfg2.Scan.Paths = []string{"vendor/acme"}
	if got := newTestRepo(t, afero.NewMemMapFs(), cfg2).ScanPaths(); !reflect.DeepEqual(got, []string{"/app/components"}) {
		t.Errorf("ScanPaths() with scanning disabled = %v", got)
	}
}

func TestAddLocation_InvalidatesCache(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Order", true)
	testutil.WriteComponent(t, fs, "/app/late", "Blog", true)

	repo := newTestRepo(t, fs, nil)
	if repo.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", repo.Count())
	}
	repo.AddLocation("/app/late")
	if repo.Count() != 2 {
		t.Errorf("Count() after AddLocation = %d, want 2", repo.Count())
	}

	testutil.WriteComponent(t, fs, componentsRoot(), "Shop", true)
	if repo.Count() != 2 {
		t.Error("cached scan should not see new directories before Refresh")
	}
	repo.Refresh()
	if repo.Count() != 3 {
		t.Errorf("Count() after Refresh = %d, want 3", repo.Count())
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", true)
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "ShopCart"),
		`{"name": "ShopCart", "alias": "cart", "version": "1.0", "active": 1}`)
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "Cart"),
		`{"name": "Cart", "alias": "basket", "version": "1.0", "active": 1}`)

	repo := newTestRepo(t, fs, nil)

	tests := []struct {
		query string
		want  string
	}{
		{"Recipe", "Recipe"},
		{"recipe", "Recipe"},
		{"RECIPE", "Recipe"},
		{"shopcart", "ShopCart"},
		{"basket", "Cart"},
		// A name match beats an alias match.
		{"cart", "Cart"},
	}
	for _, tt := range tests {
		c := repo.Find(tt.query)
		if c == nil {
			t.Errorf("Find(%q) = nil, want %s", tt.query, tt.want)
			continue
		}
		if c.Name().String() != tt.want {
			t.Errorf("Find(%q) = %s, want %s", tt.query, c.Name(), tt.want)
		}
	}

	if repo.Get("recipe") != repo.Find("recipe") {
		t.Error("Get should be an alias of Find")
	}
	if !repo.Has("recipe") || repo.Has("missing") {
		t.Error("Has() mismatch")
	}
	if repo.Find("missing") != nil || repo.Find("") != nil {
		t.Error("Find() on a miss should return nil")
	}
}

func TestFindOrFail(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", true)
	repo := newTestRepo(t, fs, nil)

	c, err := repo.FindOrFail("recipe")
	if err != nil || c.Name() != "Recipe" {
		t.Fatalf("FindOrFail(recipe) = %v, %v", c, err)
	}

	_, err = repo.FindOrFail("missing")
	if !errors.Is(err, ErrComponentNotFound) {
		t.Fatalf("FindOrFail(missing) error = %v, want ErrComponentNotFound", err)
	}
	var nf *ComponentNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("expected *ComponentNotFoundError{Name: missing}, got %v", err)
	}
}

func TestStubManifestScenario(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "Order"),
		`{"name":"Order","alias":"order","version":"0.1","active":1}`)
	repo := newTestRepo(t, fs, nil)

	c := repo.Find("Order")
	if c == nil {
		t.Fatal("Find(Order) = nil")
	}
	if got := c.Get("name", nil); got != "Order" {
		t.Errorf("get(name) = %v, want Order", got)
	}
	if got := c.Get("version", nil); got != "0.1" {
		t.Errorf("get(version) = %v, want 0.1", got)
	}
	if !repo.Active("Order") {
		t.Error("Active(Order) = false, want true")
	}
}

func TestEnableDisable(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", false)
	repo := newTestRepo(t, fs, nil)

	if err := repo.Enable("recipe"); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	if !repo.Active("recipe") || repo.NotActive("recipe") {
		t.Error("after Enable: Active should be true and NotActive false")
	}

	if err := repo.Disable("Recipe"); err != nil {
		t.Fatalf("Disable() error: %v", err)
	}
	if repo.Active("recipe") || !repo.NotActive("recipe") {
		t.Error("after Disable: Active should be false and NotActive true")
	}

	// The change is on disk: a fresh repository sees it.
	fresh := newTestRepo(t, fs, nil)
	if !fresh.NotActive("recipe") {
		t.Error("fresh repository should see the persisted disabled status")
	}
	manifest := testutil.MustReadFile(t, fs, filepath.Join(componentsRoot(), "Recipe", "component.json"))
	want := "{\n    \"name\": \"Recipe\",\n    \"alias\": \"recipe\",\n    \"version\": \"0.1\",\n    \"active\": 0\n}\n"
	if manifest != want {
		t.Errorf("persisted manifest = %q, want %q", manifest, want)
	}

	if err := repo.Enable("missing"); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("Enable(missing) error = %v, want ErrComponentNotFound", err)
	}
	if repo.Active("missing") || repo.NotActive("missing") {
		t.Error("Active and NotActive should both be false for an unknown component")
	}
}

func TestStatusQueriesDuringToggle(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", false)
	testutil.WriteComponent(t, fs, componentsRoot(), "Shop", true)
	repo := newTestRepo(t, fs, nil)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := range 20 {
				var err error
				if (i+j)%2 == 0 {
					err = repo.Enable("recipe")
				} else {
					err = repo.Disable("recipe")
				}
				if err != nil {
					t.Errorf("toggle error: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for range 20 {
				_ = repo.Active("recipe")
				_ = repo.NotActive("recipe")
				if n := len(repo.Enabled()); n < 1 || n > 2 {
					t.Errorf("len(Enabled()) = %d, want 1 or 2", n)
					return
				}
			}
		}()
	}
	wg.Wait()

	if !repo.Active("shop") {
		t.Error("Shop should stay enabled")
	}
}

func TestByStatus(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Blog", true)
	testutil.WriteComponent(t, fs, componentsRoot(), "Order", false)
	testutil.WriteComponent(t, fs, componentsRoot(), "Shop", true)
	repo := newTestRepo(t, fs, nil)

	if got := repo.Enabled().Names(); !reflect.DeepEqual(got, []string{"Blog", "Shop"}) {
		t.Errorf("Enabled() = %v", got)
	}
	if got := repo.Disabled().Names(); !reflect.DeepEqual(got, []string{"Order"}) {
		t.Errorf("Disabled() = %v", got)
	}
	if got := repo.ByStatus(true).Names(); !reflect.DeepEqual(got, repo.Enabled().Names()) {
		t.Errorf("ByStatus(true) = %v", got)
	}
}

func TestOrdered(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "Alpha"), `{"name": "Alpha", "version": "1", "order": 3}`)
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "Beta"), `{"name": "Beta", "version": "1", "order": 1}`)
	testutil.WriteManifest(t, fs, filepath.Join(componentsRoot(), "Gamma"), `{"name": "Gamma", "version": "1", "order": 2}`)
	repo := newTestRepo(t, fs, nil)

	if got := repo.Ordered(Asc).Names(); !reflect.DeepEqual(got, []string{"Beta", "Gamma", "Alpha"}) {
		t.Errorf("Ordered(Asc) = %v", got)
	}
	if got := repo.Ordered(Desc).Names(); !reflect.DeepEqual(got, []string{"Alpha", "Gamma", "Beta"}) {
		t.Errorf("Ordered(Desc) = %v", got)
	}
	// Ordering must not disturb scan order.
	if got := repo.All().Names(); !reflect.DeepEqual(got, []string{"Alpha", "Beta", "Gamma"}) {
		t.Errorf("All() after Ordered = %v", got)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Blog", true)
	dir := testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", true)
	testutil.MustWriteFile(t, fs, filepath.Join(dir, "Resources", "assets", "app.js"), "x")
	repo := newTestRepo(t, fs, nil)

	before := repo.Count()
	if err := repo.Delete("recipe"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if testutil.Exists(t, fs, dir) {
		t.Error("component directory should be removed")
	}
	if repo.Find("recipe") != nil {
		t.Error("Find() after Delete should return nil")
	}
	if repo.Count() != before-1 {
		t.Errorf("Count() = %d, want %d", repo.Count(), before-1)
	}

	repo.Refresh()
	if repo.Count() != before-1 {
		t.Errorf("Count() after rescan = %d, want %d", repo.Count(), before-1)
	}

	if err := repo.Delete("recipe"); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("second Delete() error = %v, want ErrComponentNotFound", err)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", true)
	repo := newTestRepo(t, fs, nil)

	if got := repo.BasePath(); got != appRoot {
		t.Errorf("BasePath() = %q", got)
	}
	if got := repo.AssetsPath(); got != "/app/public/components" {
		t.Errorf("AssetsPath() = %q", got)
	}
	if got := repo.AssetPath("Recipe"); got != "/app/public/components/recipe" {
		t.Errorf("AssetPath(Recipe) = %q", got)
	}
	if got := repo.MigrationPath(); got != "/app/database/migrations" {
		t.Errorf("MigrationPath() = %q", got)
	}
	if got, err := repo.ComponentPath("recipe"); err != nil || got != "/app/components/Recipe" {
		t.Errorf("ComponentPath(recipe) = %q, %v", got, err)
	}
	if _, err := repo.ComponentPath("missing"); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("ComponentPath(missing) error = %v", err)
	}
}

func TestLayoutFromConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, componentsRoot(), "Recipe", true)
	cfg := testConfig()
	cfg.Paths.Generator.Assets = "assets"
	repo := newTestRepo(t, fs, cfg)

	c := repo.Find("recipe")
	if c == nil {
		t.Fatal("Find(recipe) = nil")
	}
	if got := c.AssetPath(); got != "/app/components/Recipe/assets" {
		t.Errorf("AssetPath() = %q, want configured layout", got)
	}
	if got := repo.Layout(); got != (component.Layout{Assets: "assets", Migration: "Database/Migrations", Config: "Config"}) {
		t.Errorf("Layout() = %+v", got)
	}
}

func TestAsset(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, afero.NewMemMapFs(), nil)

	tests := []struct {
		ref  string
		want string
	}{
		// The component does not need to exist.
		{"recipe:test.js", "/components/recipe/test.js"},
		{"Recipe:js/app.js", "/components/recipe/js/app.js"},
		{"recipe:/css/app.css", "/components/recipe/css/app.css"},
		{"recipe:a:b.png", "/components/recipe/a:b.png"},
	}
	for _, tt := range tests {
		got, err := repo.Asset(tt.ref)
		if err != nil {
			t.Errorf("Asset(%q) error: %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Asset(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}

	for _, ref := range []string{"recipe", ":test.js", "recipe:", ""} {
		_, err := repo.Asset(ref)
		if !errors.Is(err, ErrInvalidAssetReference) {
			t.Errorf("Asset(%q) error = %v, want ErrInvalidAssetReference", ref, err)
		}
	}

	cfg := testConfig()
	cfg.AssetsURL = "//localhost/components/"
	got, err := newTestRepo(t, afero.NewMemMapFs(), cfg).Asset("recipe:test.js")
	if err != nil || got != "//localhost/components/recipe/test.js" {
		t.Errorf("Asset() with custom URL = %q, %v", got, err)
	}
}

func TestStubPath(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, afero.NewMemMapFs(), nil)
	if got := repo.StubPath(); got != "" {
		t.Errorf("StubPath() with stubs disabled = %q, want empty", got)
	}

	cfg := testConfig()
	cfg.Stubs.Enabled = true
	enabled := newTestRepo(t, afero.NewMemMapFs(), cfg)
	if got := enabled.StubPath(); got != "/app/vendor/consigliere/components/src/Commands/stubs" {
		t.Errorf("StubPath() with stubs enabled = %q", got)
	}

	enabled.SetStubPath("/some/stub/path")
	if got := enabled.StubPath(); got != "/some/stub/path" {
		t.Errorf("StubPath() after SetStubPath = %q", got)
	}
	if got := repo.SetStubPath("/explicit").StubPath(); got != "/explicit" {
		t.Errorf("explicit stub path should win even when stubs are disabled, got %q", got)
	}
}
