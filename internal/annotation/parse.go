// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package annotation parses LuaLS annotation lines into structured
// annotations. Recognition is best-effort: unknown tags are kept opaque
// and known tags whose arguments do not fit are kept opaque with a
// warning.
package annotation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/petar-djukic/ldocgen/internal/comment"
	"github.com/petar-djukic/ldocgen/pkg/types"
)

var (
	errMissingName = errors.New("missing name")
	errMissingType = errors.New("missing type")
	errMissingRef  = errors.New("missing reference")
)

// grammar fills a from the text following the tag name.
type grammar func(rest string, a *types.Annotation) error

var grammars = map[string]grammar{
	"param":    parseParam,
	"return":   parseReturn,
	"field":    parseField,
	"class":    parseClass,
	"see":      parseSee,
	"nodoc":    verbatim(types.TagNoDoc),
	"classmod": verbatim(types.TagClassMod),
	"usage":    verbatim(types.TagUsage),
}

var (
	tagName    = regexp.MustCompile(`^@([A-Za-z_][A-Za-z0-9_.-]*)`)
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	className  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*`)

	// name # description, the LuaLS way of separating a return name.
	hashName = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*#\s*(.*)$`)
	// name description, where name starts lowercase.
	bareName = regexp.MustCompile(`^([a-z_][A-Za-z0-9_]*)\s+(\S.*)$`)
)

// descriptionWords are words that start a return description rather than
// name the returned value.
var descriptionWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "not": true,
	"if": true, "when": true, "whether": true, "of": true, "to": true,
	"for": true, "on": true, "in": true, "is": true, "are": true, "was": true,
	"true": true, "false": true, "nil": true, "returns": true, "return": true,
	"either": true, "with": true, "without": true, "this": true, "that": true,
	"which": true, "from": true, "by": true, "as": true, "at": true, "it": true,
	"its": true, "all": true, "any": true, "each": true, "every": true,
	"some": true, "no": true, "none": true, "otherwise": true, "only": true,
	"always": true, "never": true, "will": true, "can": true, "may": true,
}

var scopes = map[string]bool{
	"private":   true,
	"protected": true,
	"public":    true,
	"package":   true,
}

// Parse parses one annotation comment line. It never fails: the returned
// annotation always carries Raw, and a warning is returned when a known
// tag does not fit its grammar.
func Parse(line types.CommentLine) (types.Annotation, *types.Warning) {
	a := types.Annotation{Tag: types.TagOpaque, Raw: line.Raw, Line: line.Line}

	text := strings.TrimLeft(comment.Clean(line.Raw), " \t")
	m := tagName.FindStringSubmatch(text)
	if m == nil {
		a.Text = text
		return a, nil
	}
	a.TagName = m[1]
	rest := strings.TrimSpace(text[len(m[0]):])

	parse, ok := grammars[strings.ToLower(a.TagName)]
	if !ok {
		a.Text = rest
		return a, nil
	}

	if err := parse(rest, &a); err != nil {
		opaque := types.Annotation{
			Tag:     types.TagOpaque,
			TagName: a.TagName,
			Text:    rest,
			Raw:     line.Raw,
			Line:    line.Line,
		}
		return opaque, &types.Warning{
			Kind:    types.ParseMismatch,
			Line:    line.Line,
			Message: fmt.Sprintf("@%s: %v, line kept unchanged", a.TagName, err),
		}
	}
	return a, nil
}

// parseParam reads name[?] type [description].
func parseParam(rest string, a *types.Annotation) error {
	a.Tag = types.TagParam

	name := identifier.FindString(rest)
	if name == "" && strings.HasPrefix(rest, "...") {
		name = "..."
	}
	if name == "" {
		return errMissingName
	}
	rest = rest[len(name):]
	if strings.HasPrefix(rest, "?") {
		a.Optional = true
		rest = rest[1:]
	}
	a.Name = name

	typ, rest, err := leadingType(rest)
	if err != nil {
		return err
	}
	a.Type = typ
	a.Description = description(rest)
	return nil
}

// parseReturn reads type [name] [description].
func parseReturn(rest string, a *types.Annotation) error {
	a.Tag = types.TagReturn

	typ, rest, err := leadingType(" " + rest)
	if err != nil {
		return err
	}
	a.Type = typ
	a.Name, a.Description = splitReturnName(strings.TrimSpace(rest))
	return nil
}

// splitReturnName separates an optional return-value name from the
// description that follows the type.
func splitReturnName(rest string) (name, desc string) {
	if rest == "" {
		return "", ""
	}
	if strings.HasPrefix(rest, "#") {
		return "", description(rest)
	}
	if m := hashName.FindStringSubmatch(rest); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if m := bareName.FindStringSubmatch(rest); m != nil && !descriptionWords[m[1]] {
		return m[1], description(m[2])
	}
	return "", rest
}

// parseField reads [scope] name[?] type [description].
func parseField(rest string, a *types.Annotation) error {
	a.Tag = types.TagField

	if word := identifier.FindString(rest); scopes[word] && len(rest) > len(word) &&
		(rest[len(word)] == ' ' || rest[len(word)] == '\t') {
		rest = strings.TrimLeft(rest[len(word):], " \t")
	}

	var name string
	switch {
	case strings.HasPrefix(rest, "["):
		end, ok := balanced(rest, 0)
		if !ok {
			return errMissingName
		}
		name = rest[:end]
	default:
		name = identifier.FindString(rest)
	}
	if name == "" {
		return errMissingName
	}
	rest = rest[len(name):]
	if strings.HasPrefix(rest, "?") {
		a.Optional = true
		rest = rest[1:]
	}
	a.Name = name

	typ, rest, err := leadingType(rest)
	if err != nil {
		return err
	}
	a.Type = typ
	a.Description = description(rest)
	return nil
}

// parseClass reads [(exact)] Name [: Parent].
func parseClass(rest string, a *types.Annotation) error {
	a.Tag = types.TagClass

	if strings.HasPrefix(rest, "(") {
		if end := strings.IndexByte(rest, ')'); end > 0 {
			rest = strings.TrimLeft(rest[end+1:], " \t")
		}
	}

	name := className.FindString(rest)
	if name == "" {
		return errMissingName
	}
	a.Name = name
	a.Text = strings.TrimSpace(rest[len(name):])
	return nil
}

// parseSee reads ref [description].
func parseSee(rest string, a *types.Annotation) error {
	a.Tag = types.TagSee

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return errMissingRef
	}
	a.Name = fields[0]
	a.Description = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
	return nil
}

// verbatim accepts any text and keeps it in Text.
func verbatim(tag types.Tag) grammar {
	return func(rest string, a *types.Annotation) error {
		a.Tag = tag
		a.Text = rest
		return nil
	}
}

// leadingType reads a type that must be separated from what precedes it
// by whitespace.
func leadingType(s string) (string, string, error) {
	trimmed := strings.TrimLeft(s, " \t")
	if len(trimmed) == len(s) {
		return "", s, errMissingType
	}
	typ, rest, ok := ScanType(trimmed)
	if !ok {
		return "", s, errMissingType
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", s, fmt.Errorf("unexpected %q after type %s", rest[:1], typ)
	}
	return typ, rest, nil
}

// description trims a description and drops the LuaLS # marker.
func description(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		s = strings.TrimSpace(s[1:])
	}
	return s
}
