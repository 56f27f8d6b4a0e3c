// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/consigliere/components/internal/config"
	"github.com/consigliere/components/internal/repository"
	"github.com/consigliere/components/internal/testutil"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

func newRepo(t *testing.T, fs afero.Fs, base string) *repository.Repository {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BasePath = config.FilesystemPath(base)
	return repository.New(cfg, repository.WithFs(fs), repository.WithLogger(log.New(io.Discard)))
}

func TestAssetPublisher_CopiesNestedFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := testutil.WriteComponent(t, fs, "/app/components", "Recipe", true)
	assets := filepath.Join(dir, "Resources", "assets")
	testutil.MustWriteFile(t, fs, filepath.Join(assets, "app.js"), "console.log(1)")
	testutil.MustWriteFile(t, fs, filepath.Join(assets, "css", "app.css"), "body{}")
	testutil.MustWriteFile(t, fs, filepath.Join(assets, "img", "icons", "logo.svg"), "<svg/>")

	repo := newRepo(t, fs, "/app")
	c, err := repo.FindOrFail("recipe")
	if err != nil {
		t.Fatal(err)
	}

	p := NewAssetPublisher(repo, c)
	if p.Destination() != "/app/public/components/recipe" {
		t.Errorf("Destination() = %q", p.Destination())
	}

	res, err := p.Publish()
	if err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	wantFiles := []string{"app.js", filepath.Join("css", "app.css"), filepath.Join("img", "icons", "logo.svg")}
	if !reflect.DeepEqual(res.Files, wantFiles) {
		t.Errorf("Files = %v, want %v", res.Files, wantFiles)
	}
	if res.Kind != KindAssets || res.Component != "Recipe" || res.Source != assets {
		t.Errorf("unexpected result: %+v", res)
	}
	if got := testutil.MustReadFile(t, fs, "/app/public/components/recipe/img/icons/logo.svg"); got != "<svg/>" {
		t.Errorf("published logo = %q", got)
	}
}

func TestAssetPublisher_OverwritesExistingFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := testutil.WriteComponent(t, fs, "/app/components", "Recipe", true)
	testutil.MustWriteFile(t, fs, filepath.Join(dir, "Resources", "assets", "app.js"), "new")
	testutil.MustWriteFile(t, fs, "/app/public/components/recipe/app.js", "old content that is longer")
	testutil.MustWriteFile(t, fs, "/app/public/components/recipe/keep.txt", "untouched")

	repo := newRepo(t, fs, "/app")
	if _, err := NewAssetPublisher(repo, repo.Find("Recipe")).Publish(); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	if got := testutil.MustReadFile(t, fs, "/app/public/components/recipe/app.js"); got != "new" {
		t.Errorf("app.js = %q, want overwritten content", got)
	}
	if got := testutil.MustReadFile(t, fs, "/app/public/components/recipe/keep.txt"); got != "untouched" {
		t.Errorf("unrelated destination files should be kept, got %q", got)
	}
}

func TestMigrationPublisher(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := testutil.WriteComponent(t, fs, "/app/components", "Order", true)
	testutil.MustWriteFile(t, fs, filepath.Join(dir, "Database", "Migrations", "2024_01_01_create_orders.php"), "<?php")

	repo := newRepo(t, fs, "/app")
	p := NewMigrationPublisher(repo, repo.Find("order"))
	res, err := p.Publish()
	if err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}
	if res.Destination != "/app/database/migrations" || res.Kind != KindMigrations {
		t.Errorf("unexpected result: %+v", res)
	}
	if !testutil.Exists(t, fs, "/app/database/migrations/2024_01_01_create_orders.php") {
		t.Error("migration was not published")
	}
}

func TestPublish_MissingSource(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, "/app/components", "Recipe", true)
	repo := newRepo(t, fs, "/app")

	_, err := NewAssetPublisher(repo, repo.Find("recipe")).Publish()
	if !errors.Is(err, ErrPublish) || !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("Publish() error = %v, want ErrPublish and ErrSourceNotFound", err)
	}
	var pe *PublishError
	if !errors.As(err, &pe) || pe.Component != "Recipe" || pe.Destination != "/app/public/components/recipe" {
		t.Errorf("expected *PublishError with context, got %#v", err)
	}
	if testutil.Exists(t, fs, "/app/public/components/recipe") {
		t.Error("destination should not be created when the source is missing")
	}
}

func TestPublish_UnwritableDestination(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	dir := testutil.WriteComponent(t, base, "/app/components", "Recipe", true)
	testutil.MustWriteFile(t, base, filepath.Join(dir, "Resources", "assets", "app.js"), "x")

	repo := newRepo(t, afero.NewReadOnlyFs(base), "/app")
	_, err := NewAssetPublisher(repo, repo.Find("recipe")).Publish()
	if !errors.Is(err, ErrPublish) {
		t.Fatalf("Publish() error = %v, want ErrPublish", err)
	}
}

func TestPublish_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	t.Parallel()

	root := t.TempDir()
	fs := afero.NewOsFs()
	dir := testutil.WriteComponent(t, fs, filepath.Join(root, "components"), "Recipe", true)
	assets := filepath.Join(dir, "Resources", "assets")
	testutil.MustWriteFile(t, fs, filepath.Join(assets, "app.js"), "x")
	outside := filepath.Join(root, "secret.txt")
	testutil.MustWriteFile(t, fs, outside, "secret")
	if err := os.Symlink(outside, filepath.Join(assets, "link.txt")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	repo := newRepo(t, fs, root)
	res, err := NewAssetPublisher(repo, repo.Find("recipe")).Publish()
	if err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}
	if !reflect.DeepEqual(res.Files, []string{"app.js"}) {
		t.Errorf("Files = %v, want only app.js", res.Files)
	}
	if testutil.Exists(t, fs, filepath.Join(res.Destination, "link.txt")) {
		t.Error("symlink should not be published")
	}
}

func TestPublishAll(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	blog := testutil.WriteComponent(t, fs, "/app/components", "Blog", true)
	testutil.MustWriteFile(t, fs, filepath.Join(blog, "Resources", "assets", "blog.js"), "b")
	testutil.WriteComponent(t, fs, "/app/components", "Empty", true)
	off := testutil.WriteComponent(t, fs, "/app/components", "Off", false)
	testutil.MustWriteFile(t, fs, filepath.Join(off, "Resources", "assets", "off.js"), "o")

	repo := newRepo(t, fs, "/app")
	outcomes, err := PublishAll(repo, KindAssets)
	if err != nil {
		t.Fatalf("PublishAll() returned error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2 (enabled components only)", len(outcomes))
	}
	if o := outcomes[0]; o.Component != "Blog" || o.Err != nil || o.Result.Skipped || len(o.Result.Files) != 1 {
		t.Errorf("Blog outcome = %+v", o)
	}
	if o := outcomes[1]; o.Component != "Empty" || o.Err != nil || !o.Result.Skipped {
		t.Errorf("Empty outcome = %+v, want skipped", o)
	}
	if Errors(outcomes) != nil {
		t.Errorf("Errors() = %v, want nil", Errors(outcomes))
	}
	if testutil.Exists(t, fs, "/app/public/components/off") {
		t.Error("disabled components must not be published")
	}

	if _, err := PublishAll(repo, "views"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("PublishAll(views) error = %v, want ErrUnknownKind", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.WriteComponent(t, fs, "/app/components", "Recipe", true)
	repo := newRepo(t, fs, "/app")
	c := repo.Find("recipe")

	for _, kind := range []Kind{KindAssets, KindMigrations} {
		p, err := New(repo, c, kind)
		if err != nil || p.Kind() != kind {
			t.Errorf("New(%s) = %v, %v", kind, p, err)
		}
	}
	if _, err := New(repo, c, "lang"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(lang) error = %v, want ErrUnknownKind", err)
	}
}
