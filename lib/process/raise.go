// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// raiseGrace bounds how long Raise waits for an asynchronous self-kill
// to take effect before falling back to a shell-style exit code.
const raiseGrace = 2 * time.Second

// Raise kills the current process with sig, so that a waiting parent
// observes death by sig (including any core dump) rather than an exit
// code. All os/signal registrations are undone and the disposition of
// sig is reset to SIG_DFL first; otherwise the signal would be caught
// by the Go runtime instead of terminating the process.
//
// If the process survives (a signal whose default action is not to
// terminate), Raise exits with 128+sig. It does not return.
func Raise(sig syscall.Signal) {
	signal.Reset()
	_ = setDefaultDisposition(sig)

	if err := unix.Kill(unix.Getpid(), sig); err == nil {
		time.Sleep(raiseGrace) //nolint:realclock bounded wait for self-delivered signal
	}
	os.Exit(128 + int(sig))
}
