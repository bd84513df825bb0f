// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipe provides the unidirectional byte channel between a
// supervised child's error stream and the supervisor. The write end is
// handed to the child as its stderr; the read end is consumed by the
// relay loop with read(2) semantics.
//
// Both ends are created close-on-exec. Passing the write end to a child
// as one of its standard descriptors duplicates it without that flag,
// so only the child's stderr and the supervisor's own copy refer to the
// write end. The supervisor closes its copy exactly once, through
// [Pipe.CloseWriter], when the child terminates; the relay loop then
// observes end-of-stream.
package pipe

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/clerr/lib/process"
)

// ResourceError reports that the kernel could not allocate the pipe,
// typically because of descriptor exhaustion.
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("pipe(): %v", e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ExitCode implements the exit-code convention checked by main.
func (e *ResourceError) ExitCode() int { return process.ExitPipe }

// Pipe holds both ends of the channel.
type Pipe struct {
	reader *Reader
	writer *os.File
}

// Create allocates a new pipe.
func Create() (*Pipe, error) {
	var descriptors [2]int
	if err := unix.Pipe2(descriptors[:], unix.O_CLOEXEC); err != nil {
		return nil, &ResourceError{Err: err}
	}
	return &Pipe{
		reader: &Reader{fd: descriptors[0]},
		writer: os.NewFile(uintptr(descriptors[1]), "|1"),
	}, nil
}

// Reader returns the read end.
func (p *Pipe) Reader() *Reader {
	return p.reader
}

// Writer returns the write end, suitable as a child's stderr.
func (p *Pipe) Writer() *os.File {
	return p.writer
}

// CloseWriter closes the supervisor's copy of the write end. Once every
// child holding a copy has also exited, reads return io.EOF. Only the
// owner of the child's lifecycle may call this, and only once.
func (p *Pipe) CloseWriter() error {
	return p.writer.Close()
}

// Close closes both ends. It is for cleanup on error paths before a
// child has been started.
func (p *Pipe) Close() error {
	writerErr := p.writer.Close()
	readerErr := p.reader.Close()
	if writerErr != nil {
		return writerErr
	}
	return readerErr
}

// Reader is the read end of a Pipe. It is an io.Reader with read(2)
// semantics made explicit: a zero-length read is io.EOF, and an
// interrupted read returns unix.EINTR unchanged so the caller decides
// whether to retry. The descriptor is in blocking mode and is not
// registered with the Go network poller.
type Reader struct {
	fd int
}

// Read performs a single read(2).
func (r *Reader) Read(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}
	count, err := unix.Read(r.fd, buffer)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, io.EOF
	}
	return count, nil
}

// Close closes the read end.
func (r *Reader) Close() error {
	return unix.Close(r.fd)
}

// Fd returns the raw descriptor.
func (r *Reader) Fd() int {
	return r.fd
}
