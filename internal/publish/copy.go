// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// copyFile copies a single file from src to dst, truncating dst if it exists.
func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) (err error) {
	srcFile, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = srcFile.Close() }() // Read-only file; close error non-critical

	dstFile, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dstFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	return nil
}

// copyDir recursively copies src into dst and returns the copied files
// relative to src in walk order. Symbolic links are skipped.
func copyDir(fs afero.Fs, src, dst string) ([]string, error) {
	var copied []string
	err := copyTree(fs, src, dst, "", &copied)
	return copied, err
}

func copyTree(fs afero.Fs, src, dst, rel string, copied *[]string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}
	if err := fs.MkdirAll(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// afero.ReadDir sorts by name and reports links unresolved on OsFs.
	entries, err := afero.ReadDir(fs, src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)
		relPath := filepath.Join(rel, name)

		switch {
		case entry.Mode()&os.ModeSymlink != 0:
			continue
		case entry.IsDir():
			if err := copyTree(fs, srcPath, dstPath, relPath, copied); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := copyFile(fs, srcPath, dstPath, entry.Mode()); err != nil {
				return fmt.Errorf("%s: %w", relPath, err)
			}
			*copied = append(*copied, relPath)
		}
	}
	return nil
}
