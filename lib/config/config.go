// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/process"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "CLERR_CONFIG"

// Config holds the settings that may come from a file.
type Config struct {
	// Color is a color name or abbreviation from lib/color.
	Color string `yaml:"color" json:"color"`

	// Stdout merges the colored error stream into standard output.
	Stdout bool `yaml:"stdout" json:"stdout"`

	// LogLevel is the minimum level of the supervisor's own log
	// output: debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Error is a configuration error. It is reported before any process is
// created, so there is nothing to unwind.
type Error struct {
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// ExitCode implements the exit-code convention checked by main.
func (e *Error) ExitCode() int { return process.ExitBadArgument }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Color:    color.Default.Name(),
		Stdout:   false,
		LogLevel: "warn",
	}
}

// Load reads the file named by path, or by CLERR_CONFIG when path is
// empty. With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a configuration file, merging it over
// the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("reading config: %w", err)}
	}

	cfg := Default()
	if err := cfg.decode(path, data); err != nil {
		return nil, &Error{Err: fmt.Errorf("%s: %w", path, err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Err: fmt.Errorf("%s: %w", path, err)}
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing config: %w", err)
		}
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error

	if _, err := color.Parse(c.Color); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

// ColorCode returns the configured color.
func (c *Config) ColorCode() (color.Code, error) {
	code, err := color.Parse(c.Color)
	if err != nil {
		return 0, &Error{Err: err}
	}
	return code, nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return 0, &Error{Err: err}
	}
	return level, nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
