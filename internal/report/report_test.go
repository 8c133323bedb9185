// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

func sampleReports() []types.FileReport {
	return []types.FileReport{
		{Path: "a.lua", OutputPath: "out/a.lua", Declarations: 3, Changed: true},
		{
			Path:         "b.lua",
			OutputPath:   "out/b.lua",
			Declarations: 1,
			Warnings: []types.Warning{
				{Kind: types.ParamMismatch, Line: 4, Message: "@param x does not match parameter 1 (y) of f"},
				{Kind: types.ParseMismatch, Line: 2, Message: "@param: missing type, line kept unchanged"},
			},
		},
		{
			Path:       "c.lua",
			OutputPath: "out/c.lua",
			Failure:    &types.Failure{Kind: types.FailureRead, Err: errors.New("permission denied")},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleReports())

	assert.Equal(t, 3, s.Files)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Changed)
	assert.Equal(t, map[string]int{"param_mismatch": 1, "parse_mismatch": 1}, s.Warnings)
	assert.Equal(t, map[string]int{"read": 1}, s.Failures)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReports(), TextOptions{Warnings: true}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"ok    a.lua -> out/a.lua (3 declarations)",
		"warn  b.lua -> out/b.lua (1 declaration, 2 warnings)",
		"      b.lua:4: param_mismatch: @param x does not match parameter 1 (y) of f",
		"      b.lua:2: parse_mismatch: @param: missing type, line kept unchanged",
		"FAIL  c.lua: read failure: permission denied",
		"3 files: 2 ok, 1 failed, 1 written; warnings: param_mismatch=1 parse_mismatch=1",
	}, lines)
}

func TestWriteText_Check(t *testing.T) {
	reports := []types.FileReport{
		{Path: "a.lua", OutputPath: "out/a.lua", Changed: true, Diff: "--- out/a.lua\n+++ out/a.lua (regenerated)\n"},
		{Path: "b.lua", OutputPath: "out/b.lua"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reports, TextOptions{Check: true, Diffs: true}))

	out := buf.String()
	assert.Contains(t, out, "stale a.lua -> out/a.lua\n--- out/a.lua\n")
	assert.Contains(t, out, "ok    b.lua")
	assert.Contains(t, out, "2 files: 2 ok, 0 failed, 1 stale")
}

func TestWriteText_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	require.NoError(t, WriteText(&plain, sampleReports(), TextOptions{Color: false}))
	require.NoError(t, WriteText(&colored, sampleReports(), TextOptions{Color: true}))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReports()))

	var doc struct {
		Files []struct {
			Path     string `json:"path"`
			Status   string `json:"status"`
			Error    string `json:"error"`
			Warnings []struct {
				Kind string `json:"kind"`
				Line int    `json:"line"`
			} `json:"warnings"`
		} `json:"files"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Files, 3)
	assert.Equal(t, "ok", doc.Files[0].Status)
	assert.NotNil(t, doc.Files[0].Warnings)
	assert.Len(t, doc.Files[1].Warnings, 2)
	assert.Equal(t, "param_mismatch", doc.Files[1].Warnings[0].Kind)
	assert.Equal(t, "read", doc.Files[2].Status)
	assert.Equal(t, "permission denied", doc.Files[2].Error)
	assert.Equal(t, 1, doc.Summary.Failed)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Contains(t, buf.String(), `"files": []`)
}
