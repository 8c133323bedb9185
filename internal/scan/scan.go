// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan resolves an input path into the Lua files to convert.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const luaExt = ".lua"

// skipDirs contains directory names that Files never descends into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	".ldoc_gen":    true,
}

// Options control which files Files returns.
type Options struct {
	// Exclude lists directories to skip, typically the output directory.
	Exclude []string
}

// Result is the set of files found under Root.
type Result struct {
	Root  string   // Directory the relative paths are relative to
	Files []string // Sorted paths relative to Root
}

// Files resolves path. A file must have the .lua extension and is
// returned on its own. A directory is walked recursively for .lua files,
// skipping VCS directories, node_modules, the Exclude list and anything
// matched by the .gitignore at its root.
func Files(fs afero.Fs, path string, opts Options) (*Result, error) {
	path = filepath.Clean(path)

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if filepath.Ext(path) != luaExt {
			return nil, fmt.Errorf("%s is not a %s file", path, luaExt)
		}
		return &Result{Root: filepath.Dir(path), Files: []string{filepath.Base(path)}}, nil
	}

	exclude := make(map[string]bool, len(opts.Exclude))
	for _, e := range opts.Exclude {
		exclude[absolute(e)] = true
	}
	ignorer := loadGitignore(fs, path)

	result := &Result{Root: path}
	err = afero.Walk(fs, path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if p == path {
			return nil
		}

		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			rel = p
		}

		if fi.IsDir() {
			if skipDirs[fi.Name()] || exclude[absolute(p)] || ignorer.isIgnored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(fi.Name()) != luaExt || ignorer.isIgnored(rel) {
			return nil
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}

	sort.Strings(result.Files)
	return result, nil
}

// absolute resolves p against the working directory, so that "docs" and
// "/proj/docs" name the same directory when run from /proj.
func absolute(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// gitignorer provides simple .gitignore matching.
type gitignorer struct {
	patterns []string
}

// loadGitignore reads .gitignore from root. A missing or unreadable file
// yields an ignorer that matches nothing.
func loadGitignore(fs afero.Fs, root string) gitignorer {
	data, err := afero.ReadFile(fs, filepath.Join(root, ".gitignore"))
	if err != nil {
		return gitignorer{}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		// Negations are not supported.
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		patterns = append(patterns, line)
	}
	return gitignorer{patterns: patterns}
}

// isIgnored checks whether a relative path matches any pattern. Only a
// subset of gitignore is supported: name globs matched against every
// path component, and globs anchored with a leading slash matched
// against the whole path.
func (g gitignorer) isIgnored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range g.patterns {
		pattern = strings.TrimSuffix(pattern, "/")

		if strings.HasPrefix(pattern, "/") || strings.Contains(pattern, "/") {
			anchored := strings.TrimPrefix(pattern, "/")
			if matched, _ := filepath.Match(anchored, relPath); matched {
				return true
			}
			continue
		}

		for _, part := range strings.Split(relPath, "/") {
			if matched, _ := filepath.Match(pattern, part); matched {
				return true
			}
		}
	}
	return false
}
