// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ldocgen converts LuaLS-annotated Lua sources into LDoc-ready
// stubs: annotations are rewritten to LDoc tags and every function body
// is replaced with an empty one.
package ldocgen

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/spf13/afero"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

// Error types for the ldocgen API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrIOFailure     = errors.New("I/O failure")
	ErrParseFailure  = errors.New("failed to parse Lua source")
	ErrStaleOutput   = errors.New("generated output is stale")
)

// Config configures a Converter.
type Config struct {
	Path         string     // Lua file or directory to convert (required)
	OutDir       string     // Output root (default ".ldoc_gen")
	Jobs         int        // Files converted in parallel (default runtime.NumCPU())
	GroupMembers bool       // Put class members right after their class
	DropTags     []string   // Unrecognized tags to omit, without the @
	Logger       log.Logger // Default discards everything
	Fs           afero.Fs   // Default is the OS filesystem
}

// Report holds the outcome of a run.
type Report struct {
	Files     []types.FileReport // One per input file, in path order
	Succeeded int                // Files converted without failure
	Failed    int                // Files that failed
	Changed   int                // Outputs written (Run) or found stale (Check)
	Warnings  int                // Warnings across all files
}

// Converter converts a tree of Lua files.
type Converter interface {
	// Run converts every file and writes the results under OutDir. The
	// report is returned even when the error is non-nil. The error wraps
	// ErrIOFailure when any file could not be read or written.
	Run(ctx context.Context) (*Report, error)

	// Check converts every file in memory and compares the results with
	// what is under OutDir. The error wraps ErrStaleOutput when any
	// output is missing or differs.
	Check(ctx context.Context) (*Report, error)
}
