// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package walker

import (
	"bytes"
	"sort"
)

// luaComment is one comment found in the source, either a line comment
// or a --[[ ]] block.
type luaComment struct {
	start, end uint32
	leading    bool // only blanks precede it on its first line
}

// scanComments returns a copy of src with every comment blanked out,
// together with the comments it removed. Newlines are kept, so offsets
// and line numbers in the copy match src. Strings are skipped so that
// "--" inside them is not taken for a comment.
//
// The Lua grammar folds ---@ lines into its own documentation nodes and
// parses their words as code, so the parser only ever sees the copy.
func scanComments(src []byte) ([]byte, []luaComment) {
	masked := bytes.Clone(src)
	var comments []luaComment

	for i := 0; i < len(src); {
		switch c := src[i]; {
		case c == '"' || c == '\'':
			i = skipShortString(src, i)
		case c == '[':
			if level := longBracket(src, i); level >= 0 {
				i = skipLongBracket(src, i, level)
			} else {
				i++
			}
		case c == '-' && i+1 < len(src) && src[i+1] == '-':
			end := lineCommentEnd(src, i)
			if j := i + 2; j < len(src) && src[j] == '[' {
				if level := longBracket(src, j); level >= 0 {
					end = skipLongBracket(src, j, level)
				}
			}
			comments = append(comments, luaComment{
				start:   uint32(i),
				end:     uint32(end),
				leading: len(bytes.TrimLeft(src[lineStart(src, i):i], " \t")) == 0,
			})
			blank(masked[i:end])
			i = end
		default:
			i++
		}
	}
	return masked, comments
}

// skipShortString returns the offset after the quoted string at i. An
// unterminated string stops at the end of its line.
func skipShortString(src []byte, i int) int {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(src)
}

// longBracket returns the level of the [==[ opener at i, or -1 when i
// does not start one.
func longBracket(src []byte, i int) int {
	j := i + 1
	for j < len(src) && src[j] == '=' {
		j++
	}
	if j < len(src) && src[j] == '[' {
		return j - i - 1
	}
	return -1
}

// skipLongBracket returns the offset after the ]==] that closes the
// opener at i, or len(src) when it is never closed.
func skipLongBracket(src []byte, i, level int) int {
	closer := make([]byte, 0, level+2)
	closer = append(closer, ']')
	closer = append(closer, bytes.Repeat([]byte{'='}, level)...)
	closer = append(closer, ']')

	from := i + level + 2
	if k := bytes.Index(src[from:], closer); k >= 0 {
		return from + k + len(closer)
	}
	return len(src)
}

// lineCommentEnd returns the end of the line comment at i, excluding the
// line break.
func lineCommentEnd(src []byte, i int) int {
	end := len(src)
	if k := bytes.IndexByte(src[i:], '\n'); k >= 0 {
		end = i + k
	}
	if end > i && src[end-1] == '\r' {
		end--
	}
	return end
}

func lineStart(src []byte, i int) int {
	return bytes.LastIndexByte(src[:i], '\n') + 1
}

func blank(b []byte) {
	for i, c := range b {
		if c != '\n' && c != '\r' {
			b[i] = ' '
		}
	}
}

// lineIndex maps byte offsets to 0-based line numbers.
type lineIndex []uint32

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, c := range src {
		if c == '\n' {
			idx = append(idx, uint32(i+1))
		}
	}
	return idx
}

func (idx lineIndex) row(off uint32) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > off }) - 1
}
