// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders the outcome of a run as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

// Summary counts the outcome of a run.
type Summary struct {
	Files     int            `json:"files"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Changed   int            `json:"changed"`
	Warnings  map[string]int `json:"warnings"` // By warning kind
	Failures  map[string]int `json:"failures"` // By failure kind
}

// Summarize counts reports by outcome and warnings by kind.
func Summarize(reports []types.FileReport) Summary {
	s := Summary{
		Files:    len(reports),
		Warnings: map[string]int{},
		Failures: map[string]int{},
	}
	for _, r := range reports {
		if r.OK() {
			s.Succeeded++
		} else {
			s.Failed++
			s.Failures[r.Failure.Kind.String()]++
		}
		if r.Changed {
			s.Changed++
		}
		for _, w := range r.Warnings {
			s.Warnings[w.Kind.String()]++
		}
	}
	return s
}

// TextOptions control WriteText.
type TextOptions struct {
	Color    bool // Colorize status words
	Warnings bool // List every warning under its file
	Diffs    bool // Print the diff of stale files
	Check    bool // Reports come from a check run: Changed means stale
}

type palette struct {
	ok, warn, fail, stale *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
		stale: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.stale} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WriteText writes one status line per file followed by a summary line.
func WriteText(w io.Writer, reports []types.FileReport, opts TextOptions) error {
	p := newPalette(opts.Color)
	var buf strings.Builder

	for _, r := range reports {
		switch {
		case !r.OK():
			fmt.Fprintf(&buf, "%s %s: %v\n", p.fail.Sprint("FAIL "), r.Path, r.Failure)
		case opts.Check && r.Changed:
			fmt.Fprintf(&buf, "%s %s -> %s\n", p.stale.Sprint("stale"), r.Path, r.OutputPath)
		case len(r.Warnings) > 0:
			fmt.Fprintf(&buf, "%s %s -> %s (%s, %s)\n", p.warn.Sprint("warn "), r.Path, r.OutputPath,
				plural(r.Declarations, "declaration"), plural(len(r.Warnings), "warning"))
		default:
			fmt.Fprintf(&buf, "%s %s -> %s (%s)\n", p.ok.Sprint("ok   "), r.Path, r.OutputPath,
				plural(r.Declarations, "declaration"))
		}

		if opts.Warnings {
			for _, wr := range r.Warnings {
				fmt.Fprintf(&buf, "      %s:%d: %s: %s\n", r.Path, wr.Line, wr.Kind, wr.Message)
			}
		}
		if opts.Diffs && r.Diff != "" {
			buf.WriteString(r.Diff)
			if !strings.HasSuffix(r.Diff, "\n") {
				buf.WriteByte('\n')
			}
		}
	}

	buf.WriteString(summaryLine(Summarize(reports), opts.Check))
	buf.WriteByte('\n')

	_, err := io.WriteString(w, buf.String())
	return err
}

func summaryLine(s Summary, check bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d ok, %d failed", plural(s.Files, "file"), s.Succeeded, s.Failed)
	if check {
		fmt.Fprintf(&b, ", %d stale", s.Changed)
	} else {
		fmt.Fprintf(&b, ", %d written", s.Changed)
	}
	if len(s.Warnings) > 0 {
		b.WriteString("; warnings:")
		for _, k := range sortedKeys(s.Warnings) {
			fmt.Fprintf(&b, " %s=%d", k, s.Warnings[k])
		}
	}
	return b.String()
}

type jsonWarning struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type jsonFile struct {
	Path         string        `json:"path"`
	Output       string        `json:"output"`
	Status       string        `json:"status"`
	Error        string        `json:"error,omitempty"`
	Declarations int           `json:"declarations"`
	Changed      bool          `json:"changed"`
	Warnings     []jsonWarning `json:"warnings"`
	Diff         string        `json:"diff,omitempty"`
}

type jsonReport struct {
	Files   []jsonFile `json:"files"`
	Summary Summary    `json:"summary"`
}

// WriteJSON writes the reports and their summary as one indented JSON
// document.
func WriteJSON(w io.Writer, reports []types.FileReport) error {
	doc := jsonReport{Files: make([]jsonFile, 0, len(reports)), Summary: Summarize(reports)}
	for _, r := range reports {
		f := jsonFile{
			Path:         r.Path,
			Output:       r.OutputPath,
			Status:       "ok",
			Declarations: r.Declarations,
			Changed:      r.Changed,
			Warnings:     make([]jsonWarning, 0, len(r.Warnings)),
			Diff:         r.Diff,
		}
		if !r.OK() {
			f.Status = r.Failure.Kind.String()
			f.Error = r.Failure.Err.Error()
		}
		for _, wr := range r.Warnings {
			f.Warnings = append(f.Warnings, jsonWarning{Kind: wr.Kind.String(), Line: wr.Line, Message: wr.Message})
		}
		doc.Files = append(doc.Files, f)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
