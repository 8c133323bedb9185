// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline runs the conversion of single files and of whole
// trees.
package pipeline

import (
	"context"
	"sort"

	"github.com/petar-djukic/ldocgen/internal/annotation"
	"github.com/petar-djukic/ldocgen/internal/comment"
	"github.com/petar-djukic/ldocgen/internal/emit"
	"github.com/petar-djukic/ldocgen/internal/rewrite"
	"github.com/petar-djukic/ldocgen/internal/walker"
	"github.com/petar-djukic/ldocgen/pkg/types"
)

// Options control the conversion of one file.
type Options struct {
	DropTags     []string
	GroupMembers bool
}

// FileResult is the converted text of one file.
type FileResult struct {
	Output       string
	Declarations int
	Warnings     []types.Warning // Sorted by line
}

// ConvertFile converts one source file. It touches no filesystem and
// holds no state between calls. The only errors are a failed parse and
// a cancelled context.
func ConvertFile(ctx context.Context, src types.SourceFile, opts Options) (*FileResult, error) {
	walked, err := walker.Walk(ctx, src)
	if err != nil {
		return nil, err
	}

	res := &FileResult{}
	res.Warnings = append(res.Warnings, walked.Warnings...)
	ropts := rewrite.Options{DropTags: opts.DropTags}

	units := make([]emit.Unit, 0, len(walked.Elements))
	for _, el := range walked.Elements {
		switch el.Kind {
		case types.ElementPassthrough:
			units = append(units, emit.Unit{Kind: el.Kind, Text: el.Text, Lead: el.Lead})

		case types.ElementDetached:
			block, warns := DocBlock(el.Comments)
			res.Warnings = append(res.Warnings, warns...)
			out := rewrite.Rewrite(block, nil, ropts)
			res.Warnings = append(res.Warnings, out.Warnings...)
			if !out.Suppressed && len(out.Lines) > 0 {
				units = append(units, emit.Unit{Kind: el.Kind, Comment: out.Lines, Lead: el.Lead})
			}

		case types.ElementDeclaration:
			res.Declarations++
			block, warns := DocBlock(el.Comments)
			res.Warnings = append(res.Warnings, warns...)
			out := rewrite.Rewrite(block, el.Decl, ropts)
			res.Warnings = append(res.Warnings, out.Warnings...)
			el.Decl.ClassLike = out.ClassLike
			u := emit.Unit{Kind: el.Kind, Decl: el.Decl, Lead: el.Lead}
			if !out.Suppressed {
				u.Comment = out.Lines
			}
			units = append(units, u)

			for _, m := range el.Decl.Members {
				res.Declarations++
				res.Warnings = append(res.Warnings, convertMember(m, ropts)...)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(res.Warnings, func(i, j int) bool {
		return res.Warnings[i].Line < res.Warnings[j].Line
	})
	res.Output = emit.Assemble(units, emit.Options{GroupMembers: opts.GroupMembers})
	return res, nil
}

// convertMember rewrites the comment run above a table field function.
func convertMember(m *types.Member, opts rewrite.Options) []types.Warning {
	if len(m.Comments) == 0 {
		return nil
	}
	block, warnings := DocBlock(m.Comments)
	out := rewrite.Rewrite(block, m.Decl, opts)
	warnings = append(warnings, out.Warnings...)
	if !out.Suppressed {
		m.Doc = out.Lines
	}
	return warnings
}

// DocBlock parses a comment run into a doc block.
func DocBlock(lines []types.CommentLine) (types.DocBlock, []types.Warning) {
	ex := comment.Extract(lines)
	block := types.DocBlock{Summary: ex.Summary}
	warnings := ex.Warnings

	for _, l := range ex.Annotations {
		a, w := annotation.Parse(l)
		block.Annotations = append(block.Annotations, a)
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	return block, warnings
}
