// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ldocgen

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/petar-djukic/ldocgen/pkg/types"
)

const accountSource = `---@class Account
local Account = {}

--- Opens an account.
---@param owner string Owner name
---@return Account
function Account.open(owner)
    return setmetatable({ owner = owner }, Account)
end

return Account
`

const accountOutput = `---
---@module Account
local Account = {}

--- Opens an account.
---@tparam string owner Owner name
---@treturn Account
function Account.open(owner)

end

return Account
`

func projectFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/src/account.lua", []byte(accountSource), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/src/util/str.lua", []byte("function trim(s)\n  return s\nend\n"), 0o644))
	return fs
}

func TestNew_Validation(t *testing.T) {
	fs := projectFs(t)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing path", Config{Fs: fs}},
		{"path does not exist", Config{Fs: fs, Path: "/nope"}},
		{"negative jobs", Config{Fs: fs, Path: "/proj/src", Jobs: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := Config{Path: "x"}
	applyDefaults(&cfg)

	assert.Equal(t, ".ldoc_gen", cfg.OutDir)
	assert.Positive(t, cfg.Jobs)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Fs)
}

func TestConverter_Run(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fs := projectFs(t)
	c, err := New(Config{Fs: fs, Path: "/proj/src", OutDir: "/proj/docs"})
	require.NoError(t, err)

	rep, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, rep.Files, 2)
	assert.Equal(t, 2, rep.Succeeded)
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, 2, rep.Changed)
	assert.Equal(t, 0, rep.Warnings)

	data, err := afero.ReadFile(fs, "/proj/docs/account.lua")
	require.NoError(t, err)
	assert.Equal(t, accountOutput, string(data))

	data, err = afero.ReadFile(fs, "/proj/docs/util/str.lua")
	require.NoError(t, err)
	assert.Equal(t, "function trim(s)\n\nend\n", string(data))
}

func TestConverter_OutputInsideInputIsSkipped(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fs := projectFs(t)
	c, err := New(Config{Fs: fs, Path: "/proj/src", OutDir: "/proj/src/gen"})
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	require.NoError(t, err)

	rep, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.Files, 2, "generated files must not be picked up as input")
	assert.Equal(t, 0, rep.Changed)
}

func TestConverter_Check(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fs := projectFs(t)
	c, err := New(Config{Fs: fs, Path: "/proj/src", OutDir: "/proj/docs"})
	require.NoError(t, err)

	rep, err := c.Check(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaleOutput))
	assert.Equal(t, 2, rep.Changed)

	_, err = c.Run(context.Background())
	require.NoError(t, err)

	rep, err = c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Changed)
}

func TestConverter_IOFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fs := afero.NewReadOnlyFs(projectFs(t))
	c, err := New(Config{Fs: fs, Path: "/proj/src", OutDir: "/proj/docs"})
	require.NoError(t, err)

	rep, err := c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.Equal(t, 2, rep.Failed)
	for _, f := range rep.Files {
		assert.Equal(t, types.FailureWrite, f.Failure.Kind)
	}
}

func TestConverter_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := New(Config{Fs: projectFs(t), Path: "/proj/src", OutDir: "/proj/docs"})
	require.NoError(t, err)

	rep, err := c.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrIOFailure))
	assert.Equal(t, 2, rep.Failed)
}

func TestConvertSource(t *testing.T) {
	out, warnings, err := ConvertSource(context.Background(), types.SourceFile{
		Path: "a.lua",
		Text: "---@param str string The input string\n" +
			"---@return integer ret_val The returned number\n" +
			"function a_function(str)\n" +
			"    -- body\n" +
			"end\n",
	}, Config{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t,
		"---@tparam string str The input string\n"+
			"---@treturn integer The returned number\n"+
			"function a_function(str)\n\nend\n",
		out)
}
