// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rewrite turns a parsed LuaLS doc block into LDoc comment lines.
package rewrite

import (
	"strings"

	"github.com/petar-djukic/ldocgen/internal/annotation"
	"github.com/petar-djukic/ldocgen/pkg/types"
)

// Options control optional rewrite behavior.
type Options struct {
	// DropTags lists names of unrecognized tags (without @) whose lines
	// are omitted from the output, for example "type" or "diagnostic".
	DropTags []string
}

// Output is the rewritten comment of one element.
type Output struct {
	Lines      []string // Comment lines to emit, in order
	Suppressed bool     // @nodoc removed the whole block
	ClassLike  bool     // Block carries @class or @classmod
	Warnings   []types.Warning
}

// Rewrite converts block into LDoc lines. decl is the declaration the
// block documents and may be nil for a detached block; it is only used
// to check @param names against the declared parameters.
//
// The output holds the summary first (plain code blocks translated in
// place), then one @usage section per example, then the annotations in
// source order.
func Rewrite(block types.DocBlock, decl *types.Declaration, opts Options) *Output {
	out := &Output{
		ClassLike: block.Has(types.TagClass) || block.Has(types.TagClassMod),
	}
	if block.Has(types.TagNoDoc) {
		out.Suppressed = true
		return out
	}

	var usage []string
	for _, item := range block.Summary {
		switch {
		case item.Text != nil:
			out.Lines = append(out.Lines, item.Text.Raw)
		case item.Code.IsExample:
			usage = append(usage, TranslateCode(item.Code)...)
		default:
			out.Lines = append(out.Lines, TranslateCode(item.Code)...)
		}
	}
	out.Lines = append(out.Lines, usage...)

	drop := make(map[string]bool, len(opts.DropTags))
	for _, t := range opts.DropTags {
		drop[strings.TrimPrefix(t, "@")] = true
	}

	class := block.Find(types.TagClass)
	classMod := block.Find(types.TagClassMod)
	merged := class != nil && classMod != nil && strings.TrimSpace(classMod.Text) == ""

	for i := range block.Annotations {
		a := &block.Annotations[i]
		switch a.Tag {
		case types.TagParam:
			out.Lines = append(out.Lines, tparam(a))
		case types.TagReturn:
			out.Lines = append(out.Lines, joinNonEmpty("---@treturn", NormalizeType(a.Type), a.Description))
		case types.TagField:
			out.Lines = append(out.Lines, joinNonEmpty("---@tfield", NormalizeType(a.Type), a.Name, a.Description))
		case types.TagSee:
			out.Lines = append(out.Lines, joinNonEmpty("---@see", a.Name, a.Description))
		case types.TagClass:
			if merged {
				out.Lines = append(out.Lines, "---@classmod "+a.Name)
			} else {
				out.Lines = append(out.Lines, "---", "---@module "+a.Name)
			}
		case types.TagClassMod:
			if !merged {
				out.Lines = append(out.Lines, a.Raw)
			}
		case types.TagOpaque:
			if a.TagName == "" || !drop[a.TagName] {
				out.Lines = append(out.Lines, a.Raw)
			}
		default:
			out.Lines = append(out.Lines, a.Raw)
		}
	}

	if decl != nil && decl.Kind != types.Value {
		out.Warnings = checkParams(block.Annotations, decl)
	}
	return out
}

func tparam(a *types.Annotation) string {
	tag := "---@tparam"
	if a.Optional {
		tag = "---@tparam[opt]"
	}
	return joinNonEmpty(tag, NormalizeType(a.Type), a.Name, a.Description)
}

// NormalizeType maps LuaLS type syntax LDoc does not know onto LDoc
// names: function types become function, table literals become table,
// and a trailing ? becomes |nil.
func NormalizeType(typ string) string {
	members := annotation.SplitUnion(typ)
	optional, hasNil := false, false

	for i, m := range members {
		if strings.HasSuffix(m, "?") {
			m = strings.TrimSuffix(m, "?")
			optional = true
		}
		switch {
		case strings.HasPrefix(m, "fun(") && !strings.HasSuffix(m, "[]"):
			m = "function"
		case strings.HasPrefix(m, "{") && strings.HasSuffix(m, "}"):
			m = "table"
		}
		if m == "nil" {
			hasNil = true
		}
		members[i] = m
	}

	if optional && !hasNil {
		members = append(members, "nil")
	}
	return strings.Join(members, "|")
}

// TranslateCode renders a code block. An example becomes an @usage
// section holding the block's lines exactly as written. Any other block
// becomes indented comment lines so that LDoc shows it as preformatted.
func TranslateCode(block *types.CodeBlock) []string {
	if block.IsExample {
		return append([]string{"---@usage"}, block.RawLines...)
	}
	lines := make([]string, 0, len(block.Lines))
	for _, l := range block.Lines {
		if strings.TrimSpace(l) == "" {
			lines = append(lines, "---")
			continue
		}
		lines = append(lines, "---     "+l)
	}
	return lines
}

func joinNonEmpty(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
