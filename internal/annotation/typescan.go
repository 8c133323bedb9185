// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package annotation

import "strings"

var closers = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
	'<': '>',
}

// ScanType reads one type expression from the start of s. It returns the
// type text and the unread remainder. ok is false when s does not start
// with a type.
//
// Accepted forms are names (string, my.Class), string literals, fun(...)
// with an optional ": ret" part, table<K, V>, { ... }, ( ... ), tuples
// [a, b], followed by any number of [] and ? suffixes, joined by | with
// optional spaces around it.
func ScanType(s string) (typ, rest string, ok bool) {
	i, ok := scanMember(s, 0)
	if !ok {
		return "", s, false
	}

	for {
		j := skipSpaces(s, i)
		if j >= len(s) || s[j] != '|' {
			break
		}
		k, ok := scanMember(s, skipSpaces(s, j+1))
		if !ok {
			return "", s, false
		}
		i = k
	}

	return s[:i], s[i:], true
}

// SplitUnion splits a type on its top-level | separators.
func SplitUnion(typ string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(typ); i++ {
		switch c := typ[i]; c {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			if depth > 0 {
				depth--
			}
		case '"', '\'', '`':
			if end := skipString(typ, i); end > i {
				i = end - 1
			}
		case '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(typ[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(typ[start:]))
}

// scanMember reads one union member starting at i and returns the index
// just past it.
func scanMember(s string, i int) (int, bool) {
	if i >= len(s) {
		return i, false
	}

	switch c := s[i]; {
	case strings.HasPrefix(s[i:], "fun("):
		end, ok := balanced(s, i+3)
		if !ok {
			return i, false
		}
		i = end
		// fun(x: T): R
		if j := skipSpaces(s, i); j < len(s) && s[j] == ':' {
			if k, ok := scanMember(s, skipSpaces(s, j+1)); ok {
				i = k
			}
		}
	case c == '"' || c == '\'' || c == '`':
		end := skipString(s, i)
		if end < 0 {
			return i, false
		}
		i = end
	case c == '(' || c == '{' || c == '[':
		end, ok := balanced(s, i)
		if !ok {
			return i, false
		}
		i = end
	case isNameByte(c) || c == '.':
		start := i
		for i < len(s) && (isNameByte(s[i]) || s[i] == '.') {
			i++
		}
		if s[start:i] == "." || s[start:i] == ".." {
			return start, false
		}
		if i < len(s) && s[i] == '<' {
			end, ok := balanced(s, i)
			if !ok {
				return start, false
			}
			i = end
		}
	default:
		return i, false
	}

	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "[]"):
			i += 2
		case s[i] == '?':
			i++
		default:
			return i, true
		}
	}
	return i, true
}

// balanced returns the index just past the bracket that closes s[open].
func balanced(s string, open int) (int, bool) {
	var stack []byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if closer, ok := closers[c]; ok {
			stack = append(stack, closer)
			continue
		}
		switch c {
		case '"', '\'', '`':
			end := skipString(s, i)
			if end < 0 {
				return open, false
			}
			i = end - 1
		case ')', '}', ']', '>':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return open, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, true
			}
		}
	}
	return open, false
}

// skipString returns the index just past the string literal opening at
// s[i], or -1 when it is not closed.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if s[j] == quote {
			return j + 1
		}
	}
	return -1
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
