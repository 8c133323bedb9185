// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package comment splits a comment run into summary text, fenced code
// blocks and annotation lines.
package comment

import (
	"regexp"
	"strings"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

const fence = "```"

// docLine matches the comments that carry documentation. Plain "--"
// comments in a run are not documentation and are dropped.
var docLine = regexp.MustCompile(`^[ \t]*---`)

// Extracted is a comment run split into its parts. Annotation lines are
// left unparsed.
type Extracted struct {
	Summary     []types.SummaryItem
	Annotations []types.CommentLine
	Warnings    []types.Warning
}

// IsDocLine reports whether raw is a single-line documentation comment.
func IsDocLine(raw string) bool {
	return docLine.MatchString(raw) && !strings.ContainsAny(raw, "\r\n")
}

// Clean strips leading whitespace, the --- marker and one following
// space or tab.
func Clean(raw string) string {
	s := strings.TrimLeft(raw, " \t")
	s = strings.TrimPrefix(s, "---")
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\t") {
		s = s[1:]
	}
	return s
}

// IsAnnotation reports whether a cleaned line starts with @tag.
func IsAnnotation(text string) bool {
	t := strings.TrimLeft(text, " \t")
	if len(t) < 2 || t[0] != '@' {
		return false
	}
	c := t[1]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsAliasVariant reports whether raw is a ---| line listing one value of
// the preceding @alias.
func IsAliasVariant(raw string) bool {
	return strings.HasPrefix(strings.TrimLeft(raw, " \t"), "---|")
}

// Extract splits lines into summary items and annotation lines, in
// source order. Fenced code spans are collected into CodeBlocks; a line
// reading "Example" or "Examples" directly above a fence marks it as an
// example and is removed from the summary. An unterminated
// fence is kept as plain text.
func Extract(lines []types.CommentLine) *Extracted {
	var docs []types.CommentLine
	for _, l := range lines {
		if IsDocLine(l.Raw) {
			docs = append(docs, l)
		}
	}

	ex := &Extracted{}
	prevText := false // whether docs[i-1] went into the summary as text

	for i := 0; i < len(docs); i++ {
		line := docs[i]
		text := Clean(line.Raw)

		if IsAnnotation(text) || IsAliasVariant(line.Raw) {
			ex.Annotations = append(ex.Annotations, line)
			prevText = false
			continue
		}

		if lang, ok := openingFence(text); ok {
			end := closingFence(docs, i+1)
			if end < 0 {
				ex.Warnings = append(ex.Warnings, types.Warning{
					Kind:    types.ParseMismatch,
					Line:    line.Line,
					Message: "unterminated code fence left as text",
				})
			} else {
				block := &types.CodeBlock{Language: lang, Line: line.Line}
				for _, inner := range docs[i+1 : end] {
					block.Lines = append(block.Lines, Clean(inner.Raw))
					block.RawLines = append(block.RawLines, inner.Raw)
				}
				if prevText && isExampleHeading(ex.lastText()) {
					block.IsExample = true
					ex.Summary = ex.Summary[:len(ex.Summary)-1]
				}
				ex.Summary = append(ex.Summary, types.SummaryItem{Code: block})
				i = end
				prevText = false
				continue
			}
		}

		l := line
		ex.Summary = append(ex.Summary, types.SummaryItem{Text: &l})
		prevText = true
	}

	return ex
}

// lastText returns the cleaned text of the last summary item when it is
// a text line.
func (ex *Extracted) lastText() string {
	if len(ex.Summary) == 0 || ex.Summary[len(ex.Summary)-1].Text == nil {
		return ""
	}
	return Clean(ex.Summary[len(ex.Summary)-1].Text.Raw)
}

// openingFence reports whether text opens a fence and returns its
// language hint.
func openingFence(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, fence) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(t, "`")), true
}

// closingFence returns the index of the first bare fence line at or
// after from, or -1.
func closingFence(docs []types.CommentLine, from int) int {
	for j := from; j < len(docs); j++ {
		t := strings.TrimSpace(Clean(docs[j].Raw))
		if strings.HasPrefix(t, fence) && strings.Trim(t, "`") == "" {
			return j
		}
	}
	return -1
}

// isExampleHeading reports whether text reads Example or Examples in any
// case, optionally as a markdown heading.
func isExampleHeading(text string) bool {
	h := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(text), "#"))
	return strings.EqualFold(h, "example") || strings.EqualFold(h, "examples")
}
