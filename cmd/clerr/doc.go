// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// clerr runs a command and colorizes everything it writes to stderr.
//
// The command's stdin and stdout are inherited untouched. Its stderr is
// redirected into a pipe; clerr reads that pipe and writes every chunk
// to its own stderr (or stdout with -1) wrapped in "ESC[1;NNm" and
// "ESC[0m". Chunks are relayed as the kernel delivers them, without
// line reassembly.
//
// Usage:
//
//	clerr [-c COLOR] [-1] [-h] [-V] [--config PATH] [--exit-code-file PATH] [--] COMMAND [ARGS...]
//
// Option parsing stops at the first non-option argument, so the
// command's own options are passed through unchanged.
//
// Exit status: clerr exits with the command's exit code. If the command
// is killed by a signal, clerr kills itself with the same signal, so a
// calling shell sees exactly what it would have seen without clerr.
// Conditions detected by clerr itself have their own codes: 2 for a
// missing command or unknown option, 9 for an unknown color or invalid
// config, 1 when the pipe cannot be created, 3 when fork fails, 126
// when the command cannot be executed, and 4 when reading the pipe
// fails.
//
// Signal forwarding: SIGINT, SIGTERM, SIGQUIT, SIGALRM and SIGHUP
// received by clerr are forwarded to the command instead of terminating
// clerr. clerr exits only after the command has terminated and its
// last error bytes have been relayed.
//
// Environment:
//
//	CLERR_CONFIG  config file used when --config is absent
//	CLERR_DEBUG   enable debug logging of child and signal events
package main
