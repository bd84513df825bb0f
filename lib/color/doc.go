// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package color maps color names to ANSI SGR foreground codes and
// produces the escape sequences that clerr wraps around each chunk of
// relayed error output.
//
// Only six colors are accepted: red, green, yellow, blue, cyan and
// white. Each has one or two documented two-letter abbreviations
// (for example "gr" and "gn" for green). Names are case-sensitive
// lowercase. [Parse] rejects anything else with [ErrUnknown], which
// callers report as a configuration error before any process is
// created.
//
// The start sequence is always bold plus the foreground code,
// "ESC[1;NNm", and the reset sequence is "ESC[0m".
package color
