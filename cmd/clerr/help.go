// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/version"
)

// printHelp writes the usage text. Names are bold and each color is
// shown in itself when w is a terminal; otherwise the text is plain.
func printHelp(w io.Writer) {
	output := termenv.NewOutput(w)
	bold := func(text string) string {
		return output.String(text).Bold().String()
	}

	renderer := lipgloss.NewRenderer(w)
	names := make([]string, 0, len(color.Table))
	for _, entry := range color.Table {
		style := renderer.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(entry.Code.Basic())))
		names = append(names, style.Render(entry.Name))
	}

	program := bold(version.Program)
	fmt.Fprintf(w, `%s executes another program and colorizes all error output.
Usage: %s [%s] %s [%s]
Options:
    %s  Select error color, choose from
              %s.
    %s  Program output will be printed on stdout only.
    %s  This help.
    %s  Program version.
    %s
              Read defaults from PATH (default $CLERR_CONFIG).
    %s
              Write the command's exit code to PATH.
Example:
    %s  make -C ..

`,
		program, program, bold("OPTIONS"), bold("COMMAND"), bold("ARGUMENTS"),
		bold("-c COLOR"), strings.Join(names, ", "),
		bold("-1      "),
		bold("-h      "),
		bold("-V      "),
		bold("--config PATH"),
		bold("--exit-code-file PATH"),
		version.Program,
	)
}

// printVersion writes the -V text.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s\n  Build: %s\n\n", version.Banner(), version.Full())
}
