// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"strings"
	"sync"
	"time"
)

// Buffer is a bytes.Buffer safe for one writer goroutine and any number
// of readers.
type Buffer struct {
	mutex   sync.Mutex
	buffer  bytes.Buffer
	changed chan struct{}
}

// Write appends data and wakes any WaitFor callers.
func (b *Buffer) Write(data []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	count, err := b.buffer.Write(data)
	if b.changed != nil {
		close(b.changed)
		b.changed = nil
	}
	return count, err
}

// String returns everything written so far.
func (b *Buffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.String()
}

// WaitFor blocks until the buffer contains substring, or fails the test
// after timeout.
func (b *Buffer) WaitFor(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, substring string, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout) //nolint:realclock test hang prevention
	for {
		b.mutex.Lock()
		if strings.Contains(b.buffer.String(), substring) {
			b.mutex.Unlock()
			return
		}
		if b.changed == nil {
			b.changed = make(chan struct{})
		}
		changed := b.changed
		b.mutex.Unlock()

		select {
		case <-changed:
		case <-deadline:
			t.Fatalf("timed out after %v waiting for %q in output %q", timeout, substring, b.String())
		}
	}
}
