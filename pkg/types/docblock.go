// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// CommentLine is one comment exactly as it appears in the source.
type CommentLine struct {
	Raw  string // Full comment text including the leading dashes
	Line int    // 1-based line number
}

// CodeBlock is a fenced code span found in a doc comment summary.
type CodeBlock struct {
	Language  string   // Hint after the opening fence, may be empty
	Lines     []string // Inner lines with the comment marker removed
	RawLines  []string // Inner lines exactly as written
	IsExample bool     // Headed by an "Example" or "Examples" heading
	Line      int      // Line of the opening fence
}

// SummaryItem is either a free-form text line or a code block.
// Exactly one of Text and Code is set.
type SummaryItem struct {
	Text *CommentLine
	Code *CodeBlock
}

// DocBlock is the parsed form of the comment run preceding a declaration.
type DocBlock struct {
	Summary     []SummaryItem
	Annotations []Annotation
}

// Empty reports whether the block has neither summary nor annotations.
func (b DocBlock) Empty() bool {
	return len(b.Summary) == 0 && len(b.Annotations) == 0
}

// Has reports whether any annotation carries the given tag.
func (b DocBlock) Has(tag Tag) bool {
	return b.Find(tag) != nil
}

// Find returns the first annotation with the given tag, or nil.
func (b DocBlock) Find(tag Tag) *Annotation {
	for i := range b.Annotations {
		if b.Annotations[i].Tag == tag {
			return &b.Annotations[i]
		}
	}
	return nil
}
