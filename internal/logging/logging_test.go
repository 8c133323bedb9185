// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"", false, true, true},
		{"WARN", false, false, true},
		{"error", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(&buf, FormatLogfmt, tt.level)
			require.NoError(t, err)

			level.Debug(logger).Log("msg", "d")
			level.Info(logger).Log("msg", "i")
			level.Warn(logger).Log("msg", "w")
			level.Error(logger).Log("msg", "e")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "msg=d"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "msg=i"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "msg=w"))
			assert.Contains(t, out, "msg=e")
		})
	}
}

func TestNew_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "logfmt", "info")
	require.NoError(t, err)

	level.Info(logger).Log("msg", "converted", "path", "a.lua")

	out := buf.String()
	assert.Contains(t, out, "ts=")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "path=a.lua")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "json", "info")
	require.NoError(t, err)

	level.Warn(logger).Log("msg", "param mismatch", "line", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "param mismatch", record["msg"])
	assert.Equal(t, "warn", record["level"])
	assert.EqualValues(t, 3, record["line"])
	assert.Contains(t, record, "ts")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	assert.ErrorContains(t, err, "unknown log format")

	_, err = New(&bytes.Buffer{}, "logfmt", "loud")
	assert.ErrorContains(t, err, "unknown log level")
}
