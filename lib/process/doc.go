// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the entrypoint and exit helpers for clerr.
// These functions centralize the raw I/O and process-exit patterns that
// exist outside the structured logger:
//
//   - Diagnostics to the real stderr, prefixed with the program name,
//     when the logger may not be initialized or must not be involved.
//   - The exit code table: every terminal condition of the supervisor
//     has its own small integer.
//   - Reproducing a child's fate in the supervisor: [Exit] either exits
//     with the child's code or kills the current process with the signal
//     that killed the child, after restoring the default disposition so
//     the signal is not caught again.
package process
