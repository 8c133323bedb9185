// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package annotation

import (
	"testing"

	"github.com/petar-djukic/ldocgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) types.Annotation {
	t.Helper()
	a, w := Parse(types.CommentLine{Raw: raw, Line: 7})
	require.Nil(t, w, "unexpected warning for %q", raw)
	assert.Equal(t, raw, a.Raw)
	assert.Equal(t, 7, a.Line)
	return a
}

func TestParse_Param(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantType string
		wantDesc string
		wantOpt  bool
	}{
		{"with description", "---@param str string The input string", "str", "string", "The input string", false},
		{"without description", "---@param n integer", "n", "integer", "", false},
		{"optional", "---@param opts? table Options", "opts", "table", "Options", true},
		{"varargs", "---@param ... any Extra values", "...", "any", "Extra values", false},
		{"union type", "---@param mode \"r\"|\"w\" Open mode", "mode", `"r"|"w"`, "Open mode", false},
		{"function type", "---@param cb fun(err: string?): boolean Callback", "cb", "fun(err: string?): boolean", "Callback", false},
		{"hash description", "---@param x number # the value", "x", "number", "the value", false},
		{"indented marker", "  --- @param x number", "x", "number", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := parse(t, tt.raw)
			assert.Equal(t, types.TagParam, a.Tag)
			assert.Equal(t, "param", a.TagName)
			assert.Equal(t, tt.wantName, a.Name)
			assert.Equal(t, tt.wantType, a.Type)
			assert.Equal(t, tt.wantDesc, a.Description)
			assert.Equal(t, tt.wantOpt, a.Optional)
		})
	}
}

func TestParse_Return(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantType string
		wantName string
		wantDesc string
	}{
		{"capitalized description", "---@return integer The returned number", "integer", "", "The returned number"},
		{"type only", "---@return boolean", "boolean", "", ""},
		{"hash separated name", "---@return boolean ok # whether it worked", "boolean", "ok", "whether it worked"},
		{"leading hash", "---@return string # the value", "string", "", "the value"},
		{"lowercase name", "---@return string name the value", "string", "name", "the value"},
		{"description word", "---@return boolean true when found", "boolean", "", "true when found"},
		{"single word", "---@return integer count", "integer", "", "count"},
		{"optional union", "---@return string|nil err Error message", "string|nil", "err", "Error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := parse(t, tt.raw)
			assert.Equal(t, types.TagReturn, a.Tag)
			assert.Equal(t, tt.wantType, a.Type)
			assert.Equal(t, tt.wantName, a.Name)
			assert.Equal(t, tt.wantDesc, a.Description)
		})
	}
}

func TestParse_Field(t *testing.T) {
	a := parse(t, "---@field private name string The name")
	assert.Equal(t, types.TagField, a.Tag)
	assert.Equal(t, "name", a.Name)
	assert.Equal(t, "string", a.Type)
	assert.Equal(t, "The name", a.Description)

	a = parse(t, "---@field [string] integer")
	assert.Equal(t, types.TagField, a.Tag)
	assert.Equal(t, "[string]", a.Name)
	assert.Equal(t, "integer", a.Type)

	a = parse(t, "---@field size? integer")
	assert.True(t, a.Optional)
	assert.Equal(t, "size", a.Name)
}

func TestParse_Class(t *testing.T) {
	a := parse(t, "---@class Account")
	assert.Equal(t, types.TagClass, a.Tag)
	assert.Equal(t, "Account", a.Name)
	assert.Empty(t, a.Text)

	a = parse(t, "---@class (exact) bank.Account: Base")
	assert.Equal(t, "bank.Account", a.Name)
	assert.Equal(t, ": Base", a.Text)
}

func TestParse_Verbatim(t *testing.T) {
	tests := []struct {
		raw      string
		wantTag  types.Tag
		wantText string
	}{
		{"---@nodoc", types.TagNoDoc, ""},
		{"---@nodoc internal", types.TagNoDoc, "internal"},
		{"---@classmod", types.TagClassMod, ""},
		{"---@classmod Account", types.TagClassMod, "Account"},
		{"---@usage local x = f()", types.TagUsage, "local x = f()"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			a := parse(t, tt.raw)
			assert.Equal(t, tt.wantTag, a.Tag)
			assert.Equal(t, tt.wantText, a.Text)
		})
	}
}

func TestParse_See(t *testing.T) {
	a := parse(t, "---@see Account.new for construction")
	assert.Equal(t, types.TagSee, a.Tag)
	assert.Equal(t, "Account.new", a.Name)
	assert.Equal(t, "for construction", a.Description)
}

func TestParse_Opaque(t *testing.T) {
	tests := []struct {
		raw     string
		wantTag string
	}{
		{"---@type string", "type"},
		{"---@deprecated", "deprecated"},
		{"---@diagnostic disable-next-line: undefined-global", "diagnostic"},
		{`---| "r" # read`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			a := parse(t, tt.raw)
			assert.Equal(t, types.TagOpaque, a.Tag)
			assert.Equal(t, tt.wantTag, a.TagName)
		})
	}
}

func TestParse_MismatchKeepsLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"param without type", "---@param x"},
		{"param without name", "---@param"},
		{"return without type", "---@return"},
		{"param with broken type", "---@param x fun(a"},
		{"type glued to punctuation", "---@param x string, more"},
		{"see without reference", "---@see"},
		{"class without name", "---@class"},
		{"field without type", "---@field name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, w := Parse(types.CommentLine{Raw: tt.raw, Line: 3})
			assert.Equal(t, types.TagOpaque, a.Tag)
			assert.Equal(t, tt.raw, a.Raw)
			require.NotNil(t, w)
			assert.Equal(t, types.ParseMismatch, w.Kind)
			assert.Equal(t, 3, w.Line)
		})
	}
}
