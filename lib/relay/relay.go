// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package relay implements the color relay loop: it copies a child's
// error stream from the read end of a pipe to the real output, wrapping
// every chunk in ANSI color escapes.
//
// Chunks are relayed exactly as the kernel delivers them. One read
// produces one output write of start escape + bytes + reset escape,
// even if the chunk ends mid-line; nothing is buffered across reads.
//
// The loop expects read(2) semantics from its source: an interrupted
// read is reported as EINTR and retried, io.EOF ends the loop, and any
// other error ends it with a [ReadError].
package relay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"syscall"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/process"
)

// BufferSize is the maximum number of bytes taken from the source per
// read.
const BufferSize = 4096

// ReadError reports an unexpected failure reading the source.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read(): %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ExitCode implements the exit-code convention checked by main.
func (e *ReadError) ExitCode() int { return process.ExitRelay }

// Flusher is implemented by buffered outputs. Run flushes after every
// chunk so colored output is never held back.
type Flusher interface {
	Flush() error
}

// Options configures Run. The zero value is usable.
type Options struct {
	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
}

// Run reads source until end-of-stream, writing each chunk to output in
// the given color. It returns nil at end-of-stream and a *ReadError if
// a read fails with anything other than EINTR.
//
// Failures writing to output do not end the loop: the source must keep
// being drained or the writer on the other side of the pipe blocks.
func Run(source io.Reader, code color.Code, output io.Writer, options Options) error {
	start := code.Start()
	buffer := make([]byte, BufferSize)
	chunk := make([]byte, 0, len(start)+BufferSize+len(color.Reset))

	for {
		count, err := source.Read(buffer)
		if count > 0 {
			chunk = append(chunk[:0], start...)
			chunk = append(chunk, buffer[:count]...)
			chunk = append(chunk, color.Reset...)
			if _, writeErr := output.Write(chunk); writeErr != nil {
				logDebug(options.Logger, "writing relayed chunk", "bytes", count, "error", writeErr)
			}
			if flusher, ok := output.(Flusher); ok {
				if flushErr := flusher.Flush(); flushErr != nil {
					logDebug(options.Logger, "flushing relayed chunk", "error", flushErr)
				}
			}
		}

		switch {
		case err == nil:
		case err == io.EOF:
			logDebug(options.Logger, "relay reached end of stream")
			return nil
		case errors.Is(err, syscall.EINTR):
			continue
		default:
			return &ReadError{Err: err}
		}
	}
}

func logDebug(logger *slog.Logger, message string, args ...any) {
	if logger != nil {
		logger.Debug(message, args...)
	}
}
