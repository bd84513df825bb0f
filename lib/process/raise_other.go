// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(linux && (amd64 || arm64))

package process

import "syscall"

// setDefaultDisposition relies on signal.Reset alone: the Go runtime
// handler terminates the process for SIGHUP, SIGINT and SIGTERM once
// no channel is registered.
func setDefaultDisposition(sig syscall.Signal) error {
	return nil
}
