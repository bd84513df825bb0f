// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/pipe"
	"github.com/bureau-foundation/clerr/lib/process"
)

// step is one scripted result of a Read call.
type step struct {
	data string
	err  error
}

// scriptedSource returns each step in order, then io.EOF forever.
type scriptedSource struct {
	steps []step
	reads int
}

func (s *scriptedSource) Read(buffer []byte) (int, error) {
	s.reads++
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	count := copy(buffer, next.data)
	return count, next.err
}

// countingWriter records each Write call separately.
type countingWriter struct {
	writes []string
}

func (w *countingWriter) Write(data []byte) (int, error) {
	w.writes = append(w.writes, string(data))
	return len(data), nil
}

func TestRunWrapsEachChunk(t *testing.T) {
	source := &scriptedSource{steps: []step{
		{data: "oops\n"},
		{data: "partial line"},
		{data: " rest\nnext\n"},
	}}
	var output countingWriter

	if err := Run(source, color.Red, &output, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"\x1b[1;31moops\n\x1b[0m",
		"\x1b[1;31mpartial line\x1b[0m",
		"\x1b[1;31m rest\nnext\n\x1b[0m",
	}
	if len(output.writes) != len(want) {
		t.Fatalf("got %d writes, want %d: %q", len(output.writes), len(want), output.writes)
	}
	for i := range want {
		if output.writes[i] != want[i] {
			t.Errorf("write %d = %q, want %q", i, output.writes[i], want[i])
		}
	}
}

func TestRunEveryColor(t *testing.T) {
	for _, entry := range color.Table {
		t.Run(entry.Name, func(t *testing.T) {
			source := &scriptedSource{steps: []step{{data: "a"}, {data: "b"}}}
			var output bytes.Buffer
			if err := Run(source, entry.Code, &output, Options{}); err != nil {
				t.Fatalf("Run: %v", err)
			}

			got := output.String()
			if strings.Count(got, entry.Code.Start()) != 2 {
				t.Errorf("output %q does not contain two start sequences", got)
			}
			if strings.Count(got, color.Reset) != 2 {
				t.Errorf("output %q does not contain two reset sequences", got)
			}
			if stripped := ansi.Strip(got); stripped != "ab" {
				t.Errorf("stripped output = %q, want %q", stripped, "ab")
			}
		})
	}
}

func TestRunEmptyStream(t *testing.T) {
	var output bytes.Buffer
	if err := Run(&scriptedSource{}, color.Green, &output, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output.Len() != 0 {
		t.Errorf("empty stream produced output %q", output.String())
	}
}

func TestRunRetriesInterruptedReads(t *testing.T) {
	source := &scriptedSource{steps: []step{
		{err: syscall.EINTR},
		{data: "one"},
		{err: syscall.EINTR},
		{err: syscall.EINTR},
		{data: "two"},
	}}
	var output bytes.Buffer
	if err := Run(source, color.Blue, &output, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "\x1b[1;34mone\x1b[0m\x1b[1;34mtwo\x1b[0m"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
	if source.reads != 6 {
		t.Errorf("source read %d times, want 6", source.reads)
	}
}

func TestRunReadError(t *testing.T) {
	source := &scriptedSource{steps: []step{
		{data: "before"},
		{err: syscall.EBADF},
		{data: "never relayed"},
	}}
	var output bytes.Buffer
	err := Run(source, color.Red, &output, Options{})

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Run returned %v, want *ReadError", err)
	}
	if !errors.Is(err, syscall.EBADF) {
		t.Errorf("ReadError does not wrap EBADF: %v", err)
	}
	if process.ExitCode(err) != process.ExitRelay {
		t.Errorf("ExitCode = %d, want %d", process.ExitCode(err), process.ExitRelay)
	}
	if ansi.Strip(output.String()) != "before" {
		t.Errorf("output = %q, want only the chunk read before the error", output.String())
	}
}

func TestRunDataWithEOF(t *testing.T) {
	source := &scriptedSource{steps: []step{{data: "last", err: io.EOF}}}
	var output bytes.Buffer
	if err := Run(source, color.Cyan, &output, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output.String() != "\x1b[1;36mlast\x1b[0m" {
		t.Errorf("output = %q", output.String())
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, syscall.EPIPE
}

func TestRunKeepsDrainingAfterWriteFailure(t *testing.T) {
	source := &scriptedSource{steps: []step{{data: "a"}, {data: "b"}, {data: "c"}}}
	output := &failingWriter{}
	if err := Run(source, color.White, output, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output.calls != 3 {
		t.Errorf("writer called %d times, want 3", output.calls)
	}
}

func TestRunFlushesBufferedOutput(t *testing.T) {
	var underlying bytes.Buffer
	buffered := bufio.NewWriter(&underlying)
	source := &scriptedSource{steps: []step{{data: "flushed"}}}

	if err := Run(source, color.Yellow, buffered, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if underlying.String() != "\x1b[1;33mflushed\x1b[0m" {
		t.Errorf("underlying = %q, want the chunk flushed through", underlying.String())
	}
}

func TestRunLargeChunkBoundedByBuffer(t *testing.T) {
	channel, err := pipe.Create()
	if err != nil {
		t.Fatalf("pipe.Create: %v", err)
	}
	defer channel.Reader().Close()

	payload := strings.Repeat("x", BufferSize+100)
	if _, err := channel.Writer().Write([]byte(payload)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := channel.CloseWriter(); err != nil {
		t.Fatalf("CloseWriter: %v", err)
	}

	var output countingWriter
	if err := Run(channel.Reader(), color.Red, &output, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(output.writes) < 2 {
		t.Fatalf("got %d writes, want the payload split across reads", len(output.writes))
	}
	var relayed strings.Builder
	for _, write := range output.writes {
		if !strings.HasPrefix(write, color.Red.Start()) || !strings.HasSuffix(write, color.Reset) {
			t.Errorf("write %q is not wrapped in one start/reset pair", write)
		}
		if len(ansi.Strip(write)) > BufferSize {
			t.Errorf("write carries %d payload bytes, more than one buffer", len(ansi.Strip(write)))
		}
		relayed.WriteString(ansi.Strip(write))
	}
	if relayed.String() != payload {
		t.Error("relayed payload differs from what was written")
	}
}
