// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/pipe"
	"github.com/bureau-foundation/clerr/lib/process"
	"github.com/bureau-foundation/clerr/lib/relay"
)

// Config describes one supervised run.
type Config struct {
	// Command is the program and its arguments. Command[0] is looked
	// up in PATH.
	Command []string

	// Color wraps every relayed chunk.
	Color color.Code

	// Output receives the colored error stream: the real stderr, or
	// stdout in merged mode.
	Output io.Writer

	// Stdin and Stdout are passed to the child unchanged. Nil means the
	// supervisor's own.
	Stdin  *os.File
	Stdout *os.File

	// Environment is the child's environment. Nil inherits the
	// supervisor's.
	Environment []string

	Logger *slog.Logger
}

// Run supervises one child until it terminates and its error stream is
// drained, and returns how it terminated. Errors are the typed errors of
// this package, lib/pipe and lib/relay; each carries its exit code.
//
// After a relay read error the child may still be running; it is left
// alone.
func Run(config Config) (process.Status, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stdin := config.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := config.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	channel, err := pipe.Create()
	if err != nil {
		return process.Status{}, err
	}

	signals := NewSignalRelay(logger)

	child, err := Launch(config.Command, stdin, stdout, channel.Writer(), config.Environment)
	if err != nil {
		signals.Stop()
		channel.Close()
		return process.Status{}, err
	}
	logger.Debug("child started", "pid", child.Pid, "command", config.Command)

	signals.Start(child, channel.CloseWriter)

	relayErr := relay.Run(channel.Reader(), config.Color, config.Output, relay.Options{Logger: logger})
	channel.Reader().Close()

	disposition := signals.Finish()
	if relayErr != nil {
		return process.Status{}, relayErr
	}

	status := disposition.Status()
	logger.Debug("child finished", "pid", child.Pid, "status", status.String())
	return status, nil
}
