// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// debugEnvironment forces debug logging when set to any non-empty
// value.
const debugEnvironment = "CLERR_DEBUG"

// newLogger creates the supervisor's own logger on the real stderr,
// which is never the relayed pipe. When stderr is a terminal it uses
// slog.TextHandler for human-readable output; when stderr is piped or
// redirected it uses slog.JSONHandler for machine-parseable output.
func newLogger(stderr *os.File, level slog.Level) *slog.Logger {
	if os.Getenv(debugEnvironment) != "" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(stderr.Fd())) {
		handler = slog.NewTextHandler(stderr, options)
	} else {
		handler = slog.NewJSONHandler(stderr, options)
	}
	return slog.New(handler).With("component", "clerr")
}
