// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package emit renders rewritten elements into the final file text,
// replacing every function body with an empty placeholder.
package emit

import (
	"strings"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

// Unit is one element ready for output.
type Unit struct {
	Kind    types.ElementKind
	Decl    *types.Declaration // Set for declarations
	Comment []string           // Rewritten comment lines, may be empty
	Text    string             // Verbatim text for passthrough units
	Lead    string             // Whitespace that preceded the unit in the source
}

// Options control file assembly.
type Options struct {
	// GroupMembers moves class-like declarations to the top of the file,
	// each followed by the declarations defined on its table.
	GroupMembers bool
}

// blankLine separates units that were not adjacent in the source.
const blankLine = "\n\n"

// Dummy returns the declaration with its body removed: the signature, an
// empty line and the terminator. Value declarations are returned as
// written, except that the bodies of their member functions are removed
// too. A trailing comment on the same line is kept.
func Dummy(decl *types.Declaration) string {
	if decl.Kind == types.Value {
		return withEmptyMembers(decl) + decl.Trailing
	}
	return decl.Signature + "\n\n" + decl.Terminator + decl.Trailing
}

// withEmptyMembers rebuilds a Value declaration, replacing each member's
// comment run with its rewritten lines and its body with an empty line.
func withEmptyMembers(decl *types.Declaration) string {
	if len(decl.Members) == 0 {
		return decl.Signature
	}

	text := decl.Signature
	base := decl.SignatureSpan.Start
	rel := func(off uint32) int { return int(off - base) }

	var b strings.Builder
	pos := 0
	for _, m := range decl.Members {
		d := m.Decl
		start := rel(d.SignatureSpan.Start)
		if d.CommentSpan.Empty() {
			b.WriteString(text[pos:start])
		} else {
			b.WriteString(text[pos:rel(d.CommentSpan.Start)])
			if len(m.Doc) > 0 {
				b.WriteString(strings.Join(m.Doc, "\n"+m.Indent))
				b.WriteString(text[rel(d.CommentSpan.End):start])
			}
		}
		b.WriteString(d.Signature)
		b.WriteString("\n\n")
		b.WriteString(m.Indent)
		b.WriteString(d.Terminator)
		pos = rel(d.BodySpan.End) + len(d.Terminator)
	}
	b.WriteString(text[pos:])
	return b.String()
}

// Render returns the text of one unit without a trailing newline.
func Render(u Unit) string {
	switch u.Kind {
	case types.ElementPassthrough:
		return u.Text
	case types.ElementDetached:
		return strings.Join(u.Comment, "\n")
	}

	var b strings.Builder
	for _, l := range u.Comment {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(Dummy(u.Decl))
	return b.String()
}

// Assemble joins the rendered units, each preceded by the whitespace that
// preceded it in the source, and ends the file with a newline. A file
// without units yields "".
func Assemble(units []Unit, opts Options) string {
	if opts.GroupMembers {
		units = Group(units)
	}

	var b strings.Builder
	for _, u := range units {
		s := Render(u)
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(u.Lead)
		}
		b.WriteString(s)
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteByte('\n')
	return b.String()
}

// Group reorders units so that every class-like declaration comes first,
// followed by the declarations whose receiver table is that class. The
// remaining units keep their source order after all classes. A unit that
// no longer follows its source neighbour is set apart by a blank line.
func Group(units []Unit) []Unit {
	placed := make([]bool, len(units))
	order := make([]int, 0, len(units))

	for i, u := range units {
		if !isClass(u) {
			continue
		}
		order = append(order, i)
		placed[i] = true

		key := u.Decl.GroupKey()
		for j, m := range units {
			if placed[j] || m.Decl == nil || isClass(m) {
				continue
			}
			if m.Decl.Table == key {
				order = append(order, j)
				placed[j] = true
			}
		}
	}

	for i := range units {
		if !placed[i] {
			order = append(order, i)
		}
	}

	out := make([]Unit, 0, len(units))
	for k, i := range order {
		u := units[i]
		if k > 0 && order[k-1] != i-1 {
			u.Lead = blankLine
		}
		out = append(out, u)
	}
	return out
}

func isClass(u Unit) bool {
	return u.Kind == types.ElementDeclaration && u.Decl != nil && u.Decl.ClassLike
}
