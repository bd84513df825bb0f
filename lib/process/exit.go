// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes for conditions detected by the supervisor itself. A child
// that runs to completion determines the exit code instead.
const (
	ExitOK          = 0
	ExitPipe        = 1
	ExitSyntax      = 2
	ExitFork        = 3
	ExitRelay       = 4
	ExitBadArgument = 9
	ExitExecFailed  = 126
)

// Program is the prefix of every diagnostic.
var Program = "clerr"

// Errorf writes "clerr: message" to stderr.
func Errorf(format string, args ...any) {
	Fprintf(os.Stderr, format, args...)
}

// Fprintf writes a program-prefixed diagnostic line to w.
func Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s: %s\n", Program, fmt.Sprintf(format, args...))
}

// ExitCode returns the exit code carried by err. Errors that implement
// ExitCode() int supply their own; anything else maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Fatal writes "clerr: err" to stderr and exits with the code carried by
// err. Use it in main() for errors detected before the child exists.
func Fatal(err error) {
	Errorf("%v", err)
	os.Exit(ExitCode(err))
}
