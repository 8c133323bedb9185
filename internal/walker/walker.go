// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package walker locates top-level Lua declarations and the comment runs
// that precede them, using the tree-sitter Lua grammar so that body
// boundaries are exact.
package walker

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/lua"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

// Node types of the Lua grammar the walker relies on. Tokens of this
// grammar include the blanks before them, so node starts are always
// advanced past leading whitespace before use.
const (
	nodeError               = "ERROR"
	nodeFunctionStatement   = "function_statement"
	nodeFunction            = "function"
	nodeFunctionName        = "function_name"
	nodeFunctionEnd         = "function_end"
	nodeBodyParen           = "function_body_paren"
	nodeParameterList       = "parameter_list"
	nodeVariableDeclaration = "variable_declaration"
	nodeVariableDeclarator  = "variable_declarator"
	nodeModuleReturn        = "module_return_statement"
	nodeTableConstructor    = "tableconstructor"
	nodeFieldList           = "fieldlist"
	nodeField               = "field"
	nodeIdentifier          = "identifier"
	nodeEllipsis            = "ellipsis"
	nodeTableColon          = "table_colon"
)

// Result holds the elements of one file in source order.
type Result struct {
	Elements []types.Element
	Warnings []types.Warning
}

// Walk parses src and returns its top-level elements. Only a nil tree is
// an error; syntax errors inside the file are reported as
// UnsupportedConstruct warnings and the affected statements are passed
// through unchanged.
func Walk(ctx context.Context, src types.SourceFile) (*Result, error) {
	content := []byte(src.Text)
	masked, comments := scanComments(content)

	root, err := sitter.ParseCtx(ctx, masked, lua.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.Path, err)
	}
	if root == nil {
		return nil, fmt.Errorf("parsing %s: no syntax tree", src.Path)
	}

	w := &walker{
		content:  content,
		masked:   masked,
		lines:    newLineIndex(content),
		comments: comments,
		last:     -1,
	}
	w.walk(root)

	return &Result{Elements: w.elements, Warnings: w.warnings}, nil
}

// walker accumulates elements while visiting the children of the chunk.
type walker struct {
	content  []byte
	masked   []byte
	lines    lineIndex
	comments []luaComment

	elements []types.Element
	warnings []types.Warning

	run    []luaComment // pending comment run
	runEnd int          // row of the last comment in run

	last    int // index of the last statement element, -1 if none
	lastEnd int // end row of that statement
}

func (w *walker) walk(root *sitter.Node) {
	next := 0 // first comment not yet placed

	for i := 0; i < int(root.ChildCount()); i++ {
		n := root.Child(i)
		if n == nil {
			continue
		}
		start := w.start(n)
		if start >= n.EndByte() {
			continue
		}

		for ; next < len(w.comments) && w.comments[next].start < start; next++ {
			w.comment(w.comments[next])
		}
		for next < len(w.comments) && w.comments[next].start < n.EndByte() {
			next++
		}

		var attached []luaComment
		if len(w.run) > 0 {
			if w.row(start) == w.runEnd+1 {
				attached = w.run
			} else {
				w.flushDetached()
			}
			w.run = nil
		}

		w.statement(n, start, attached)
		w.last = len(w.elements) - 1
		w.lastEnd = w.row(n.EndByte())
	}

	for ; next < len(w.comments); next++ {
		w.comment(w.comments[next])
	}
	if len(w.run) > 0 {
		w.flushDetached()
	}
}

// comment adds c to the pending run, or glues it to the statement it
// trails when it starts on that statement's last row.
func (w *walker) comment(c luaComment) {
	start := w.row(c.start)

	if len(w.run) == 0 && w.last >= 0 && start == w.lastEnd {
		el := &w.elements[w.last]
		tail := string(w.content[el.Span.End:c.end])
		switch el.Kind {
		case types.ElementPassthrough:
			el.Text += tail
		case types.ElementDeclaration:
			el.Decl.Trailing += tail
		}
		el.Span.End = c.end
		w.lastEnd = w.row(c.end)
		return
	}

	if len(w.run) > 0 && start != w.runEnd && start != w.runEnd+1 {
		w.flushDetached()
	}
	w.run = append(w.run, c)
	w.runEnd = w.row(c.end)
}

func (w *walker) flushDetached() {
	first, last := w.run[0], w.run[len(w.run)-1]
	w.add(types.Element{
		Kind:     types.ElementDetached,
		Comments: w.commentLines(w.run),
		Span:     types.Span{Start: first.start, End: last.end},
		Line:     w.row(first.start) + 1,
	})
	w.run = nil
}

// add appends el, recording the whitespace that separated it from the
// previous element.
func (w *walker) add(el types.Element) {
	if k := len(w.elements); k > 0 {
		el.Lead = string(w.content[w.elements[k-1].Span.End:el.Span.Start])
	}
	w.elements = append(w.elements, el)
}

// statement classifies one top-level statement and records its element.
func (w *walker) statement(n *sitter.Node, start uint32, comments []luaComment) {
	documented := len(comments) > 0

	var decl *types.Declaration
	var reason string

	switch {
	case n.Type() == nodeError || n.HasError():
		reason = "syntax error"
	case n.Type() == nodeFunctionStatement:
		decl, reason = w.functionStatement(n, start)
	case n.Type() == nodeVariableDeclaration:
		decl = w.variableDeclaration(n, start, documented)
	case n.Type() == nodeModuleReturn:
		if table := childOfType(n, nodeTableConstructor); table != nil {
			decl = w.tableDeclaration(n, start, table, "", documented)
		}
	}
	if decl == nil && reason == "" && documented {
		reason = fmt.Sprintf("documented %s", n.Type())
	}

	if decl != nil {
		span := types.Span{Start: start, End: n.EndByte()}
		if documented {
			decl.CommentSpan = types.Span{Start: comments[0].start, End: comments[len(comments)-1].end}
			span.Start = decl.CommentSpan.Start
		}
		w.add(types.Element{
			Kind:     types.ElementDeclaration,
			Decl:     decl,
			Comments: w.commentLines(comments),
			Span:     span,
			Line:     decl.Line,
		})
		return
	}

	w.passthrough(n, start, comments, reason)
}

// passthrough records n (and its comment run, if any) verbatim. A
// non-empty reason means the construct was not understood and a warning
// is recorded.
func (w *walker) passthrough(n *sitter.Node, start uint32, comments []luaComment, reason string) {
	if reason != "" {
		w.warnings = append(w.warnings, types.Warning{
			Kind:    types.UnsupportedConstruct,
			Line:    w.row(start) + 1,
			Message: reason + " left unchanged",
		})
	}

	if len(comments) > 0 {
		start = comments[0].start
	}
	w.add(types.Element{
		Kind: types.ElementPassthrough,
		Text: string(w.content[start:n.EndByte()]),
		Span: types.Span{Start: start, End: n.EndByte()},
		Line: w.row(start) + 1,
	})
}

// functionStatement handles function f(), local function f(),
// function M.f() and function M:f().
func (w *walker) functionStatement(n *sitter.Node, start uint32) (*types.Declaration, string) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return nil, "function declaration without a readable name"
	}

	decl, reason := w.function(n, start)
	if decl == nil {
		return nil, reason
	}

	decl.Name = w.text(name)
	if name.Type() == nodeFunctionName {
		if childOfType(name, nodeTableColon) != nil {
			decl.Kind = types.Method
		}
		decl.Table = w.receiver(name)
	}
	return decl, ""
}

// variableDeclaration handles local and global assignments. A single
// function value makes a FieldFunction; a single table constructor makes
// a Value whose function fields are members. Any other statement is a
// Value only when documented.
func (w *walker) variableDeclaration(n *sitter.Node, start uint32, documented bool) *types.Declaration {
	var names, values []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.FieldNameForChild(i) {
		case "name":
			names = append(names, n.Child(i))
		case "value":
			values = append(values, n.Child(i))
		}
	}

	if len(names) == 1 && len(values) == 1 {
		target, value := names[0], values[0]
		switch value.Type() {
		case nodeFunction:
			if decl, _ := w.function(value, start); decl != nil {
				decl.Kind = types.FieldFunction
				decl.Name = w.text(target)
				decl.Table = w.receiver(target)
				return decl
			}
		case nodeTableConstructor:
			return w.tableDeclaration(n, start, value, w.text(target), documented)
		}
	}

	if !documented {
		return nil
	}
	decl := w.value(n, start)
	if len(names) > 0 {
		decl.Name = w.text(names[0])
		decl.Table = decl.Name
	}
	return decl
}

// tableDeclaration records a statement built around a table constructor.
// Without function fields it is only a declaration when documented.
func (w *walker) tableDeclaration(n *sitter.Node, start uint32, table *sitter.Node, name string, documented bool) *types.Declaration {
	members := w.members(table, name)
	if len(members) == 0 && !documented {
		return nil
	}
	decl := w.value(n, start)
	decl.Name = name
	decl.Table = name
	decl.Members = members
	return decl
}

// members lists the function fields of table in source order, descending
// into nested table constructors. path names the table.
func (w *walker) members(table *sitter.Node, path string) []*types.Member {
	var out []*types.Member
	floor := w.start(table) + 1

	for _, f := range namedChildren(childOfType(table, nodeFieldList)) {
		if f.Type() != nodeField {
			continue
		}
		value := f.ChildByFieldName("value")
		if value == nil {
			continue
		}
		key := fieldPath(path, w.fieldKey(f))

		switch value.Type() {
		case nodeFunction:
			start := w.start(f)
			decl, _ := w.function(value, start)
			if decl == nil {
				break
			}
			decl.Kind = types.FieldFunction
			decl.Name = key
			decl.Table = path

			m := &types.Member{Decl: decl, Indent: w.indent(start)}
			if run := w.fieldComments(start, floor); len(run) > 0 {
				m.Comments = w.commentLines(run)
				decl.CommentSpan = types.Span{Start: run[0].start, End: run[len(run)-1].end}
			}
			out = append(out, m)
		case nodeTableConstructor:
			out = append(out, w.members(value, key)...)
		}
		floor = f.EndByte()
	}
	return out
}

// fieldComments returns the comment run directly above the field that
// starts at start, ignoring comments before floor.
func (w *walker) fieldComments(start, floor uint32) []luaComment {
	var run []luaComment
	want := w.row(start) - 1

	for i := len(w.comments) - 1; i >= 0; i-- {
		c := w.comments[i]
		if c.end > start {
			continue
		}
		if c.start < floor || !c.leading || w.row(c.end) != want {
			break
		}
		run = append([]luaComment{c}, run...)
		want = w.row(c.start) - 1
	}
	return run
}

// function builds the declaration shared by every function form. start
// is where the signature begins; fn is the node that owns the parameter
// list and the closing end.
func (w *walker) function(fn *sitter.Node, start uint32) (*types.Declaration, string) {
	var closing, term *sitter.Node
	var params []string
	for i := 0; i < int(fn.ChildCount()); i++ {
		c := fn.Child(i)
		switch c.Type() {
		case nodeBodyParen:
			closing = c
		case nodeParameterList:
			params = w.paramNames(c)
		case nodeFunctionEnd:
			term = c
		}
	}

	if closing == nil || w.text(closing) != ")" {
		return nil, "function with unreadable parameters"
	}
	if term == nil || term.IsMissing() {
		return nil, "function without a closing end"
	}

	termStart := w.start(term)
	sig := types.Span{Start: start, End: closing.EndByte()}
	return &types.Declaration{
		Kind:          types.Function,
		Signature:     string(w.content[sig.Start:sig.End]),
		SignatureSpan: sig,
		BodySpan:      types.Span{Start: sig.End, End: termStart},
		Terminator:    string(w.content[termStart:term.EndByte()]),
		Params:        params,
		Line:          w.row(start) + 1,
	}, ""
}

// value records a statement that is re-emitted as written, such as
// local M = {} under a @class comment.
func (w *walker) value(n *sitter.Node, start uint32) *types.Declaration {
	span := types.Span{Start: start, End: n.EndByte()}
	return &types.Declaration{
		Kind:          types.Value,
		Signature:     string(w.content[span.Start:span.End]),
		SignatureSpan: span,
		Line:          w.row(start) + 1,
	}
}

// paramNames lists the declared parameter names, "..." for varargs.
func (w *walker) paramNames(params *sitter.Node) []string {
	var names []string
	for _, c := range namedChildren(params) {
		if c.Type() == nodeIdentifier || c.Type() == nodeEllipsis {
			names = append(names, w.text(c))
		}
	}
	return names
}

// receiver returns the table part of a dotted or method name: M.a in
// M.a.f or M.a:f. Plain names have none.
func (w *walker) receiver(name *sitter.Node) string {
	var sep *sitter.Node
	for i := 0; i < int(name.ChildCount()); i++ {
		c := name.Child(i)
		if t := w.text(c); t == "." || t == ":" {
			sep = c
		}
	}
	if sep == nil {
		return ""
	}
	return strings.TrimSpace(string(w.content[w.start(name):sep.StartByte()]))
}

// fieldKey returns how a field names its value: f for f = ..., ["f"] for
// bracketed keys, "" for positional entries.
func (w *walker) fieldKey(f *sitter.Node) string {
	if name := f.ChildByFieldName("name"); name != nil {
		return w.text(name)
	}
	if key := f.ChildByFieldName("key"); key != nil {
		return "[" + w.text(key) + "]"
	}
	return ""
}

func fieldPath(path, key string) string {
	switch {
	case key == "":
		return path
	case path == "":
		return key
	case strings.HasPrefix(key, "["):
		return path + key
	default:
		return path + "." + key
	}
}

func (w *walker) commentLines(run []luaComment) []types.CommentLine {
	if len(run) == 0 {
		return nil
	}
	lines := make([]types.CommentLine, 0, len(run))
	for _, c := range run {
		lines = append(lines, types.CommentLine{
			Raw:  string(w.content[c.start:c.end]),
			Line: w.row(c.start) + 1,
		})
	}
	return lines
}

// start returns the offset of the first non-blank byte of n.
func (w *walker) start(n *sitter.Node) uint32 {
	i := n.StartByte()
	for i < n.EndByte() && isSpace(w.masked[i]) {
		i++
	}
	return i
}

// text returns the source of n without the blanks its tokens carry.
func (w *walker) text(n *sitter.Node) string {
	return strings.TrimSpace(string(w.content[w.start(n):n.EndByte()]))
}

// indent returns the blanks before off on its line.
func (w *walker) indent(off uint32) string {
	from := w.lines[w.row(off)]
	line := w.content[from:off]
	return string(line[:len(line)-len(strings.TrimLeft(string(line), " \t"))])
}

func (w *walker) row(off uint32) int {
	return w.lines.row(off)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// namedChildren returns the named children of n.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, c := range namedChildren(n) {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}
