// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads clerr's optional configuration file.
//
// The file is located by the --config flag or, failing that, the
// CLERR_CONFIG environment variable. When neither names a file, the
// built-in defaults apply and nothing is read from disk; there is no
// search path. Values given on the command line override the file.
//
// The file is YAML:
//
//	color: green
//	stdout: false
//	log_level: warn
//
// Files named *.json or *.jsonc are accepted too: comments and trailing
// commas are stripped first, and the remaining JSON is decoded with the
// same field names. Unknown keys are rejected in both formats.
package config
