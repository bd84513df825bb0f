// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"os"

	"github.com/bureau-foundation/clerr/lib/process"
	"github.com/bureau-foundation/clerr/lib/supervisor"
)

func main() {
	process.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run supervises the command named by args and returns how clerr must
// finish: the command's own status, or one of the process.Exit*
// codes for conditions clerr detected itself. Diagnostics for the
// latter are written to stderr before returning.
func run(args []string, stdin, stdout, stderr *os.File) process.Status {
	parsed, err := parseArgs(args)
	if err != nil {
		return fail(stderr, err)
	}
	if parsed.help {
		printHelp(stdout)
		return process.Exited(process.ExitOK)
	}
	if parsed.version {
		printVersion(stdout)
		return process.Exited(process.ExitOK)
	}

	effective, err := resolve(parsed)
	if err != nil {
		return fail(stderr, err)
	}
	level, err := effective.config.Level()
	if err != nil {
		return fail(stderr, err)
	}
	logger := newLogger(stderr, level)

	var output io.Writer = stderr
	if effective.merge {
		output = stdout
	}

	status, err := supervisor.Run(supervisor.Config{
		Command: parsed.command,
		Color:   effective.color,
		Output:  output,
		Stdin:   stdin,
		Stdout:  stdout,
		Logger:  logger,
	})
	if err != nil {
		return fail(stderr, err)
	}

	if parsed.exitCodeFile != "" {
		if err := writeExitCode(parsed.exitCodeFile, status.ShellCode()); err != nil {
			logger.Warn("exit code file not written", "path", parsed.exitCodeFile, "error", err)
		}
	}
	return status
}

// fail reports err on stderr and returns the exit status it carries.
func fail(stderr io.Writer, err error) process.Status {
	process.Fprintf(stderr, "%v", err)
	return process.Exited(process.ExitCode(err))
}
