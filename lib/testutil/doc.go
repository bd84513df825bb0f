// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for clerr packages.
//
// [RequireReceive], [RequireClosed] and [RequireOpen] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. Tests that
// supervise real child processes use them to bound every wait on a
// signal or state change.
//
// [Buffer] is a goroutine-safe output sink for the relay loop. Tests
// that must act only after the child has written something (sending a
// signal once the child has installed a trap, for example) wait on it
// with [Buffer.WaitFor].
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no clerr-internal dependencies.
package testutil
