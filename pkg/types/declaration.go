// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across ldocgen packages.
package types

// SourceFile is one Lua file handed to the engine. Path is the path
// relative to the input root and is only used for reporting and for
// mirroring the output location.
type SourceFile struct {
	Path string
	Text string
}

// Span is a half-open byte range [Start, End) into SourceFile.Text.
type Span struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return int(s.End - s.Start)
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Len() == 0
}

// DeclKind identifies the category of a declaration.
type DeclKind int

const (
	Function      DeclKind = iota // function f() / local function f() / function M.f()
	Method                        // function M:f(), implicit self
	FieldFunction                 // M.f = function() ... end / local f = function() ... end
	Value                         // table constructor or documented statement, emitted without member bodies
)

// String returns the human-readable name of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case Function:
		return "function"
	case Method:
		return "method"
	case FieldFunction:
		return "field_function"
	case Value:
		return "value"
	default:
		return "unknown"
	}
}

// Declaration is a top-level construct located by the source walker.
type Declaration struct {
	Kind          DeclKind
	Name          string   // Full name as written: f, M.f, M:f
	Table         string   // Receiver table (M in M.f / M:f), or the variable name for Value
	Signature     string   // Verbatim header text; for Value the whole statement
	SignatureSpan Span     // Where Signature came from
	BodySpan      Span     // Bytes between the parameter list and the terminator
	CommentSpan   Span     // Preceding comment run, empty when undocumented
	Terminator    string   // Closing token of the construct (end)
	Params        []string // Declared parameter names in order, "..." for varargs
	Line          int      // 1-based line of the first signature byte
	ClassLike     bool     // Set when the doc block carries @class or @classmod
	Trailing      string   // Same-line comment after the construct, with the blanks before it
	Members       []*Member
}

// Member is a function stored in a field of a table constructor, such as
// f in local M = { f = function(x) end }. Its spans point into the source
// like those of the enclosing Value declaration.
type Member struct {
	Decl     *Declaration
	Comments []CommentLine // Comment run directly above the field
	Indent   string        // Leading blanks of the field's line
	Doc      []string      // Rewritten comment lines, set before emitting
}

// GroupKey returns the name used to group class members under a class:
// the receiver table when there is one, otherwise the declared name.
func (d *Declaration) GroupKey() string {
	if d.Table != "" {
		return d.Table
	}
	return d.Name
}

// ElementKind identifies what a top-level output element carries.
type ElementKind int

const (
	ElementDeclaration ElementKind = iota // Declaration plus its comment run
	ElementDetached                       // Comment run not attached to any statement
	ElementPassthrough                    // Verbatim text, never decomposed
)

// String returns the human-readable name of the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementDeclaration:
		return "declaration"
	case ElementDetached:
		return "detached"
	case ElementPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Element is one unit of output in source order.
type Element struct {
	Kind     ElementKind
	Decl     *Declaration  // Set for ElementDeclaration
	Comments []CommentLine // Comment run for ElementDeclaration and ElementDetached
	Text     string        // Verbatim text for ElementPassthrough
	Span     Span          // Source bytes covered by the element
	Line     int           // 1-based first line
	Lead     string        // Whitespace between the previous element and this one
}
