// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/config"
	"github.com/bureau-foundation/clerr/lib/process"
)

// options is the parsed command line. colorName and merge are only
// meaningful when the corresponding *Set field is true; otherwise the
// config file or the default decides.
type options struct {
	command      []string
	colorName    string
	colorSet     bool
	merge        bool
	mergeSet     bool
	configPath   string
	exitCodeFile string
	help         bool
	version      bool
}

// usageError is a malformed command line: an unknown option or a
// missing command.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func (e *usageError) ExitCode() int { return process.ExitSyntax }

// newFlagSet declares clerr's options. Parsing stops at the first
// non-option argument, like getopt with a leading '+'.
func newFlagSet(parsed *options) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("clerr", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(false)

	flagSet.StringVarP(&parsed.colorName, "color", "c", "", "error color: white, red, green, blue, yellow, cyan")
	flagSet.BoolVarP(&parsed.merge, "stdout", "1", false, "print the colored error output on stdout")
	flagSet.BoolVarP(&parsed.help, "help", "h", false, "show this help")
	flagSet.BoolVarP(&parsed.version, "version", "V", false, "show the program version")
	flagSet.StringVar(&parsed.configPath, "config", "", "configuration file (default $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&parsed.exitCodeFile, "exit-code-file", "", "write the command's exit code to this file")
	return flagSet
}

// parseArgs parses the command line. An unknown color is rejected here,
// before anything is started.
func parseArgs(args []string) (*options, error) {
	parsed := &options{}
	flagSet := newFlagSet(parsed)
	if err := flagSet.Parse(args); err != nil {
		return nil, &usageError{err: err}
	}

	parsed.colorSet = flagSet.Changed("color")
	parsed.mergeSet = flagSet.Changed("stdout")

	if parsed.colorSet {
		if _, err := color.Parse(parsed.colorName); err != nil {
			return nil, &config.Error{Err: err}
		}
	}
	if flagSet.Changed("exit-code-file") && parsed.exitCodeFile == "" {
		return nil, &usageError{err: errors.New("--exit-code-file requires a path")}
	}

	if parsed.help || parsed.version {
		return parsed, nil
	}

	parsed.command = flagSet.Args()
	if len(parsed.command) == 0 {
		return nil, &usageError{err: fmt.Errorf("no command given")}
	}
	return parsed, nil
}

// settings are the effective values after merging the command line
// over the config file.
type settings struct {
	color  color.Code
	merge  bool
	config *config.Config
}

func resolve(parsed *options) (*settings, error) {
	cfg, err := config.Load(parsed.configPath)
	if err != nil {
		return nil, err
	}
	if parsed.colorSet {
		cfg.Color = parsed.colorName
	}
	if parsed.mergeSet {
		cfg.Stdout = parsed.merge
	}

	code, err := cfg.ColorCode()
	if err != nil {
		return nil, err
	}
	return &settings{color: code, merge: cfg.Stdout, config: cfg}, nil
}
