// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logging builds the go-kit logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Formats accepted by New.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// New returns a logger writing to w in the given format, with UTC
// timestamps, that drops records below lvl (debug, info, warn or error).
func New(w io.Writer, format, lvl string) (log.Logger, error) {
	option, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}

	sw := log.NewSyncWriter(w)
	var logger log.Logger
	switch strings.ToLower(format) {
	case "", FormatLogfmt:
		logger = log.NewLogfmtLogger(sw)
	case FormatJSON:
		logger = log.NewJSONLogger(sw)
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatLogfmt, FormatJSON)
	}

	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	// Must put the level filter last for efficiency.
	return level.NewFilter(logger, option), nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
}
