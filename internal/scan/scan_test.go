// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.FromSlash(path), []byte(content), 0o644))
}

func setupFixtures(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	writeFixture(t, fs, "/proj/init.lua", "return {}\n")
	writeFixture(t, fs, "/proj/lib/util.lua", "local M = {}\nreturn M\n")
	writeFixture(t, fs, "/proj/lib/deep/core.lua", "function f() end\n")
	writeFixture(t, fs, "/proj/README.md", "# docs\n")
	writeFixture(t, fs, "/proj/lib/helper.luac", "binary")

	// Skipped.
	writeFixture(t, fs, "/proj/.git/hooks.lua", "")
	writeFixture(t, fs, "/proj/node_modules/dep/index.lua", "")
	writeFixture(t, fs, "/proj/.ldoc_gen/init.lua", "")
	writeFixture(t, fs, "/proj/docs/out/init.lua", "")
	writeFixture(t, fs, "/proj/build/gen.lua", "")
	writeFixture(t, fs, "/proj/lib/scratch_test.lua", "")

	writeFixture(t, fs, "/proj/.gitignore", "# generated\nbuild/\n*_test.lua\n!keep.lua\n")
	return fs
}

func TestFiles_Directory(t *testing.T) {
	fs := setupFixtures(t)

	res, err := Files(fs, "/proj", Options{Exclude: []string{"/proj/docs/out"}})
	require.NoError(t, err)

	assert.Equal(t, filepath.FromSlash("/proj"), res.Root)
	assert.Equal(t, []string{
		"init.lua",
		filepath.FromSlash("lib/deep/core.lua"),
		filepath.FromSlash("lib/util.lua"),
	}, res.Files)
}

func TestFiles_SingleFile(t *testing.T) {
	fs := setupFixtures(t)

	res, err := Files(fs, "/proj/lib/util.lua", Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/proj/lib"), res.Root)
	assert.Equal(t, []string{"util.lua"}, res.Files)
}

func TestFiles_Errors(t *testing.T) {
	fs := setupFixtures(t)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing path", "/nope", "stat"},
		{"not a lua file", "/proj/README.md", "is not a .lua file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Files(fs, tt.path, Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFiles_ExcludeResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	fs := afero.NewOsFs()
	writeFixture(t, fs, filepath.Join(dir, "a.lua"), "return 1\n")
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	writeFixture(t, fs, filepath.Join(dir, "docs", "a.lua"), "return 1\n")

	tests := []struct {
		name    string
		path    string
		exclude string
	}{
		{"absolute input, relative output", dir, "docs"},
		{"relative input, absolute output", ".", filepath.Join(dir, "docs")},
		{"both relative", ".", "./docs/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Files(fs, tt.path, Options{Exclude: []string{tt.exclude}})
			require.NoError(t, err)
			assert.Equal(t, []string{"a.lua"}, res.Files)
		})
	}
}

func TestFiles_EmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))

	res, err := Files(fs, "/empty", Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
}

func TestGitignorer(t *testing.T) {
	g := gitignorer{patterns: []string{"build/", "*.gen.lua", "/vendor/lib", "tmp"}}

	tests := []struct {
		path string
		want bool
	}{
		{"build", true},
		{"src/build", true},
		{"a.gen.lua", true},
		{"lib/a.gen.lua", true},
		{"vendor/lib", true},
		{"other/vendor/lib", false},
		{"lib/tmp/x.lua", true},
		{"lib/main.lua", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, g.isIgnored(filepath.FromSlash(tt.path)))
		})
	}
}
