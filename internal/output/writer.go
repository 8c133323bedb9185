// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output places generated files under the output root and writes
// them atomically.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// Writer writes generated text to <root>/<relative input path>.
type Writer struct {
	fs   afero.Fs
	root string
}

// NewWriter returns a writer rooted at root on fs.
func NewWriter(fs afero.Fs, root string) *Writer {
	return &Writer{fs: fs, root: root}
}

// Path returns where the output for the input at rel is written. The
// relative layout of the input tree is kept and the extension is .lua.
func (w *Writer) Path(rel string) string {
	rel = filepath.Clean(rel)
	if ext := filepath.Ext(rel); ext != ".lua" {
		rel = rel[:len(rel)-len(ext)] + ".lua"
	}
	return filepath.Join(w.root, rel)
}

// Write stores content for rel. When the file already holds exactly
// content nothing is written and changed is false, so repeated runs
// leave modification times alone.
func (w *Writer) Write(rel, content string) (changed bool, err error) {
	path := w.Path(rel)

	existing, err := afero.ReadFile(w.fs, path)
	if err == nil && string(existing) == content {
		return false, nil
	}

	if err := atomicWrite(w.fs, path, []byte(content)); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Compare reports whether the file for rel differs from content and
// returns a unified diff from the file on disk to content. A missing file
// counts as empty.
func (w *Writer) Compare(rel, content string) (changed bool, diff string, err error) {
	path := w.Path(rel)

	existing, err := afero.ReadFile(w.fs, path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, "", fmt.Errorf("reading %s: %w", path, err)
	}
	if string(existing) == content {
		return false, "", nil
	}

	diff, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(content),
		FromFile: path,
		ToFile:   path + " (regenerated)",
		Context:  3,
	})
	if err != nil {
		return true, "", fmt.Errorf("diffing %s: %w", path, err)
	}
	return true, diff, nil
}

// atomicWrite writes data to a temp file in the target directory and
// renames it into place. The existing file's permissions are kept;
// new files get 0644.
func atomicWrite(fs afero.Fs, path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".ldocgen-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
