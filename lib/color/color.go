// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package color

import (
	"errors"
	"fmt"
)

// Code is an ANSI SGR foreground color code (30-37).
type Code int

const (
	Red    Code = 31
	Green  Code = 32
	Yellow Code = 33
	Blue   Code = 34
	Cyan   Code = 36
	White  Code = 37
)

// Default is the color used when none is selected.
const Default = Red

// Reset is the escape sequence that ends a colored chunk.
const Reset = "\x1b[0m"

// ErrUnknown is returned by Parse for names outside the color table.
var ErrUnknown = errors.New("unknown color")

// Entry describes one selectable color and the names that select it.
type Entry struct {
	Name    string
	Aliases []string
	Code    Code
}

// Table lists the selectable colors in the order they appear in help
// output.
var Table = []Entry{
	{Name: "white", Aliases: []string{"wh"}, Code: White},
	{Name: "red", Aliases: []string{"re", "rd"}, Code: Red},
	{Name: "green", Aliases: []string{"gr", "gn"}, Code: Green},
	{Name: "blue", Aliases: []string{"bl"}, Code: Blue},
	{Name: "yellow", Aliases: []string{"ye", "yw"}, Code: Yellow},
	{Name: "cyan", Aliases: []string{"cy", "cn"}, Code: Cyan},
}

// Parse returns the code selected by a color name or abbreviation.
func Parse(name string) (Code, error) {
	for _, entry := range Table {
		if entry.Name == name {
			return entry.Code, nil
		}
		for _, alias := range entry.Aliases {
			if alias == name {
				return entry.Code, nil
			}
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknown, name)
}

// Valid reports whether c is one of the codes in Table.
func (c Code) Valid() bool {
	for _, entry := range Table {
		if entry.Code == c {
			return true
		}
	}
	return false
}

// Name returns the canonical name of c, or its number if c is not in
// Table.
func (c Code) Name() string {
	for _, entry := range Table {
		if entry.Code == c {
			return entry.Name
		}
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// String implements fmt.Stringer.
func (c Code) String() string {
	return c.Name()
}

// Start returns the escape sequence that begins a chunk in color c:
// bold plus the two-digit foreground code.
func (c Code) Start() string {
	return fmt.Sprintf("\x1b[1;%02dm", int(c))
}

// Basic returns the 0-7 palette index of c, as used by terminal
// styling libraries that address the basic ANSI palette.
func (c Code) Basic() int {
	return int(c) - 30
}
