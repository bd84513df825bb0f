// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"os"
	"syscall"
)

// Status is how a process finished: a normal exit with Code, or death by
// Signal. Signal is zero for normal exits.
type Status struct {
	Code   int
	Signal syscall.Signal
}

// Exited returns the Status of a normal exit with code.
func Exited(code int) Status {
	return Status{Code: code}
}

// Signaled returns the Status of a process killed by sig.
func Signaled(sig syscall.Signal) Status {
	return Status{Signal: sig}
}

// Signaled reports whether the process was killed by a signal.
func (s Status) Signaled() bool {
	return s.Signal != 0
}

// ShellCode returns the exit code a POSIX shell would report: Code for
// normal exits, 128+signal for signal deaths.
func (s Status) ShellCode() int {
	if s.Signaled() {
		return 128 + int(s.Signal)
	}
	return s.Code
}

func (s Status) String() string {
	if s.Signaled() {
		return fmt.Sprintf("killed by signal %d (%v)", int(s.Signal), s.Signal)
	}
	return fmt.Sprintf("exit code %d", s.Code)
}

// Exit terminates the current process the same way s describes: by
// raising s.Signal against itself, or by exiting with s.Code. It does
// not return.
func Exit(s Status) {
	if s.Signaled() {
		Raise(s.Signal)
	}
	os.Exit(s.Code)
}
