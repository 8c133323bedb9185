// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/ldocgen/internal/output"
	"github.com/petar-djukic/ldocgen/pkg/types"
)

var errNotUTF8 = errors.New("not valid UTF-8")

// Deps holds what a Runner needs.
type Deps struct {
	Fs         afero.Fs
	InputRoot  string // Relative file paths are resolved against it
	OutputRoot string
	Jobs       int // Files converted in parallel; <= 0 means runtime.NumCPU()
	Options    Options
	Logger     log.Logger
}

// Runner converts many files on a bounded pool of goroutines.
type Runner struct {
	deps   Deps
	writer *output.Writer
}

// NewRunner returns a runner, filling in defaults for unset Deps.
func NewRunner(deps Deps) *Runner {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Jobs <= 0 {
		deps.Jobs = runtime.NumCPU()
	}
	if deps.Logger == nil {
		deps.Logger = log.NewNopLogger()
	}
	return &Runner{deps: deps, writer: output.NewWriter(deps.Fs, deps.OutputRoot)}
}

// Run converts files and writes the results. Reports come back in the
// order of files. A failing file never stops the others; the returned
// error combines every I/O failure, plus the context error when the run
// was cancelled.
func (r *Runner) Run(ctx context.Context, files []string) ([]types.FileReport, error) {
	return r.each(ctx, files, r.write)
}

// Check converts files in memory and compares the results with the
// output already on disk. Nothing is written.
func (r *Runner) Check(ctx context.Context, files []string) ([]types.FileReport, error) {
	return r.each(ctx, files, r.compare)
}

type finishFunc func(rep *types.FileReport, output string)

func (r *Runner) each(ctx context.Context, files []string, finish finishFunc) ([]types.FileReport, error) {
	reports := make([]types.FileReport, len(files))
	if len(files) == 0 {
		return reports, nil
	}

	// Each goroutine writes only its own index.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.deps.Jobs, len(files)))

	for i, rel := range files {
		g.Go(func() error {
			reports[i] = r.process(gctx, rel, finish)
			return nil
		})
	}
	_ = g.Wait()

	var err error
	for _, rep := range reports {
		if rep.Failure != nil && rep.Failure.Kind.IsIO() {
			err = multierr.Append(err, fmt.Errorf("%s: %w", rep.Path, rep.Failure))
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = multierr.Append(err, ctxErr)
	}
	return reports, err
}

func (r *Runner) process(ctx context.Context, rel string, finish finishFunc) types.FileReport {
	rep := types.FileReport{Path: rel, OutputPath: r.writer.Path(rel)}
	logger := log.With(r.deps.Logger, "path", rel)

	fail := func(kind types.FailureKind, err error) types.FileReport {
		rep.Failure = &types.Failure{Kind: kind, Err: err}
		if kind == types.FailureCancelled {
			level.Debug(logger).Log("msg", "skipped", "err", err)
		} else {
			level.Error(logger).Log("msg", "conversion failed", "kind", kind, "err", err)
		}
		return rep
	}

	if err := ctx.Err(); err != nil {
		return fail(types.FailureCancelled, err)
	}

	data, err := afero.ReadFile(r.deps.Fs, filepath.Join(r.deps.InputRoot, rel))
	if err != nil {
		return fail(types.FailureRead, err)
	}
	if !utf8.Valid(data) {
		return fail(types.FailureRead, errNotUTF8)
	}

	res, err := ConvertFile(ctx, types.SourceFile{Path: rel, Text: string(data)}, r.deps.Options)
	if err != nil {
		if ctx.Err() != nil {
			return fail(types.FailureCancelled, ctx.Err())
		}
		return fail(types.FailureParse, err)
	}

	rep.Declarations = res.Declarations
	rep.Warnings = res.Warnings
	for _, w := range res.Warnings {
		level.Warn(logger).Log("msg", w.Message, "kind", w.Kind, "line", w.Line)
	}

	finish(&rep, res.Output)
	if rep.Failure != nil {
		return fail(rep.Failure.Kind, rep.Failure.Err)
	}

	level.Debug(logger).Log("msg", "converted", "declarations", rep.Declarations,
		"warnings", len(rep.Warnings), "changed", rep.Changed)
	return rep
}

func (r *Runner) write(rep *types.FileReport, text string) {
	changed, err := r.writer.Write(rep.Path, text)
	if err != nil {
		rep.Failure = &types.Failure{Kind: types.FailureWrite, Err: err}
		return
	}
	rep.Changed = changed
}

func (r *Runner) compare(rep *types.FileReport, text string) {
	changed, diff, err := r.writer.Compare(rep.Path, text)
	if err != nil {
		rep.Failure = &types.Failure{Kind: types.FailureRead, Err: err}
		return
	}
	rep.Changed = changed
	rep.Diff = diff
}
