// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
)

// writeExitCode writes code and a newline to path. The content goes to
// path+".tmp" first and is renamed into place, so readers never observe
// a partial file.
func writeExitCode(path string, code int) error {
	temporary := path + ".tmp"
	if err := os.WriteFile(temporary, []byte(fmt.Sprintf("%d\n", code)), 0o644); err != nil {
		return fmt.Errorf("writing exit code: %w", err)
	}
	if err := os.Rename(temporary, path); err != nil {
		os.Remove(temporary)
		return fmt.Errorf("renaming exit code file: %w", err)
	}
	return nil
}
