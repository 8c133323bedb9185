// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "fmt"

// WarningKind classifies a recovered, non-fatal condition.
type WarningKind int

const (
	ParseMismatch        WarningKind = iota // Known tag whose arguments do not fit its grammar
	UnsupportedConstruct                    // Source structure left unchanged
	ParamMismatch                           // @param name differs from the declared parameter
)

func (k WarningKind) String() string {
	switch k {
	case ParseMismatch:
		return "parse_mismatch"
	case UnsupportedConstruct:
		return "unsupported_construct"
	case ParamMismatch:
		return "param_mismatch"
	default:
		return "unknown"
	}
}

// Warning is recorded against a file; processing always continues.
type Warning struct {
	Kind    WarningKind
	Line    int // 1-based, 0 when not tied to a line
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// FailureKind classifies a fatal, per-file failure.
type FailureKind int

const (
	FailureRead      FailureKind = iota // Input unreadable or not UTF-8
	FailureParse                        // Parser could not produce a tree
	FailureWrite                        // Output could not be written
	FailureCancelled                    // Run aborted before the file was processed
)

func (k FailureKind) String() string {
	switch k {
	case FailureRead:
		return "read"
	case FailureParse:
		return "parse"
	case FailureWrite:
		return "write"
	case FailureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsIO reports whether the failure is an I/O failure, which is what
// decides the overall exit status of a run.
func (k FailureKind) IsIO() bool {
	return k == FailureRead || k == FailureWrite
}

// Failure describes why a single file could not be converted.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// FileReport is the outcome of processing one file.
type FileReport struct {
	Path         string    // Input path relative to the input root
	OutputPath   string    // Where the output was (or would be) written
	Declarations int       // Declarations found
	Warnings     []Warning // Recovered conditions, sorted by line
	Failure      *Failure  // Nil on success
	Changed      bool      // Output differed from what was on disk
	Diff         string    // Unified diff against the on-disk output (check mode)
}

// OK reports whether the file was processed without failure.
func (r FileReport) OK() bool {
	return r.Failure == nil
}

// WarningCount returns how many warnings of the given kind were recorded.
func (r FileReport) WarningCount(kind WarningKind) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
