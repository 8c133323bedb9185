// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ldocgen

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/petar-djukic/ldocgen/internal/pipeline"
	"github.com/petar-djukic/ldocgen/internal/report"
	"github.com/petar-djukic/ldocgen/internal/scan"
	"github.com/petar-djukic/ldocgen/pkg/types"
)

const defaultOutDir = ".ldoc_gen"

// New validates the config and returns a ready-to-use Converter. Files
// are discovered when Run or Check is called.
func New(cfg Config) (Converter, error) {
	applyDefaults(&cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &converter{cfg: cfg}, nil
}

// ConvertSource converts one file held in memory. Only the GroupMembers
// and DropTags fields of cfg are used.
func ConvertSource(ctx context.Context, src types.SourceFile, cfg Config) (string, []types.Warning, error) {
	res, err := pipeline.ConvertFile(ctx, src, pipelineOptions(cfg))
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return res.Output, res.Warnings, nil
}

type converter struct {
	cfg Config
}

func (c *converter) Run(ctx context.Context) (*Report, error) {
	return c.run(ctx, (*pipeline.Runner).Run)
}

func (c *converter) Check(ctx context.Context) (*Report, error) {
	rep, err := c.run(ctx, (*pipeline.Runner).Check)
	if err == nil && rep.Changed > 0 {
		err = fmt.Errorf("%w: %d of %d files", ErrStaleOutput, rep.Changed, len(rep.Files))
	}
	return rep, err
}

type runFunc func(*pipeline.Runner, context.Context, []string) ([]types.FileReport, error)

func (c *converter) run(ctx context.Context, fn runFunc) (*Report, error) {
	found, err := scan.Files(c.cfg.Fs, c.cfg.Path, scan.Options{Exclude: []string{c.cfg.OutDir}})
	if err != nil {
		return &Report{}, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	level.Info(c.cfg.Logger).Log("msg", "converting", "path", c.cfg.Path, "files", len(found.Files), "out", c.cfg.OutDir)

	runner := pipeline.NewRunner(pipeline.Deps{
		Fs:         c.cfg.Fs,
		InputRoot:  found.Root,
		OutputRoot: c.cfg.OutDir,
		Jobs:       c.cfg.Jobs,
		Options:    pipelineOptions(c.cfg),
		Logger:     c.cfg.Logger,
	})

	files, err := fn(runner, ctx, found.Files)
	rep := newReport(files)
	level.Info(c.cfg.Logger).Log("msg", "done", "succeeded", rep.Succeeded, "failed", rep.Failed,
		"changed", rep.Changed, "warnings", rep.Warnings)

	if err != nil {
		if ctx.Err() != nil && !hasIOFailure(files) {
			return rep, err
		}
		return rep, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return rep, nil
}

func newReport(files []types.FileReport) *Report {
	s := report.Summarize(files)
	rep := &Report{
		Files:     files,
		Succeeded: s.Succeeded,
		Failed:    s.Failed,
		Changed:   s.Changed,
	}
	for _, n := range s.Warnings {
		rep.Warnings += n
	}
	return rep
}

func hasIOFailure(files []types.FileReport) bool {
	for _, f := range files {
		if f.Failure != nil && f.Failure.Kind.IsIO() {
			return true
		}
	}
	return false
}

func pipelineOptions(cfg Config) pipeline.Options {
	return pipeline.Options{DropTags: cfg.DropTags, GroupMembers: cfg.GroupMembers}
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("Path is required")
	}
	if _, err := cfg.Fs.Stat(cfg.Path); err != nil {
		return fmt.Errorf("Path %q does not exist", cfg.Path)
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("Jobs must not be negative, got %d", cfg.Jobs)
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.OutDir == "" {
		cfg.OutDir = defaultOutDir
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
}
