// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/clerr/lib/color"
	"github.com/bureau-foundation/clerr/lib/pipe"
	"github.com/bureau-foundation/clerr/lib/process"
	"github.com/bureau-foundation/clerr/lib/testutil"
)

const testTimeout = 10 * time.Second

// devNull opens /dev/null for the child's stdin and stdout so tests do
// not depend on the test binary's own descriptors.
func devNull(t *testing.T) *os.File {
	t.Helper()
	file, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("opening %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { file.Close() })
	return file
}

type runResult struct {
	status process.Status
	err    error
}

// runAsync supervises command in a goroutine, relaying into output.
func runAsync(t *testing.T, command []string, code color.Code, output *testutil.Buffer) <-chan runResult {
	t.Helper()
	null := devNull(t)
	results := make(chan runResult, 1)
	go func() {
		status, err := Run(Config{
			Command: command,
			Color:   code,
			Output:  output,
			Stdin:   null,
			Stdout:  null,
		})
		results <- runResult{status: status, err: err}
	}()
	return results
}

func TestRunExitCodeAndColoredStderr(t *testing.T) {
	var output testutil.Buffer
	result := testutil.RequireReceive(t,
		runAsync(t, []string{"sh", "-c", "echo oops 1>&2; exit 3"}, color.Red, &output),
		testTimeout, "supervising sh")

	if result.err != nil {
		t.Fatalf("Run: %v", result.err)
	}
	if result.status != process.Exited(3) {
		t.Errorf("status = %v, want exit code 3", result.status)
	}
	if got, want := output.String(), "\x1b[1;31moops\n\x1b[0m"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunSilentSuccess(t *testing.T) {
	var output testutil.Buffer
	result := testutil.RequireReceive(t,
		runAsync(t, []string{"true"}, color.Green, &output),
		testTimeout, "supervising true")

	if result.err != nil {
		t.Fatalf("Run: %v", result.err)
	}
	if result.status != process.Exited(0) {
		t.Errorf("status = %v, want exit code 0", result.status)
	}
	if output.String() != "" {
		t.Errorf("output = %q, want nothing", output.String())
	}
}

func TestRunNonzeroExitWithoutOutput(t *testing.T) {
	var output testutil.Buffer
	result := testutil.RequireReceive(t,
		runAsync(t, []string{"false"}, color.Green, &output),
		testTimeout, "supervising false")

	if result.err != nil {
		t.Fatalf("Run: %v", result.err)
	}
	if result.status != process.Exited(1) {
		t.Errorf("status = %v, want exit code 1", result.status)
	}
	if output.String() != "" {
		t.Errorf("output = %q, want nothing", output.String())
	}
}

func TestRunChildKilledBySignal(t *testing.T) {
	var output testutil.Buffer
	result := testutil.RequireReceive(t,
		runAsync(t, []string{"sh", "-c", "echo dying >&2; kill -TERM $$"}, color.Yellow, &output),
		testTimeout, "supervising self-killing sh")

	if result.err != nil {
		t.Fatalf("Run: %v", result.err)
	}
	if result.status != process.Signaled(syscall.SIGTERM) {
		t.Errorf("status = %v, want killed by SIGTERM", result.status)
	}
	if ansi.Strip(output.String()) != "dying\n" {
		t.Errorf("output = %q, want the bytes written before death", output.String())
	}
}

func TestRunPreservesChunkOrder(t *testing.T) {
	var output testutil.Buffer
	script := "for i in 1 2 3 4 5; do echo line$i >&2; done; exit 0"
	result := testutil.RequireReceive(t,
		runAsync(t, []string{"sh", "-c", script}, color.Cyan, &output),
		testTimeout, "supervising sh loop")

	if result.err != nil {
		t.Fatalf("Run: %v", result.err)
	}
	got := output.String()
	if want := "line1\nline2\nline3\nline4\nline5\n"; ansi.Strip(got) != want {
		t.Errorf("stripped output = %q, want %q", ansi.Strip(got), want)
	}
	if strings.Count(got, color.Cyan.Start()) != strings.Count(got, color.Reset) {
		t.Errorf("unbalanced escapes in %q", got)
	}
}

func TestRunCommandNotFound(t *testing.T) {
	var output testutil.Buffer
	result := testutil.RequireReceive(t,
		runAsync(t, []string{"clerr-test-nonexistent-command"}, color.Red, &output),
		testTimeout, "supervising missing command")

	var launchErr *LaunchError
	if !errors.As(result.err, &launchErr) {
		t.Fatalf("Run error = %v, want *LaunchError", result.err)
	}
	if !strings.Contains(result.err.Error(), "clerr-test-nonexistent-command") {
		t.Errorf("error %q does not name the command", result.err)
	}
	if process.ExitCode(result.err) != process.ExitExecFailed {
		t.Errorf("ExitCode = %d, want %d", process.ExitCode(result.err), process.ExitExecFailed)
	}
}

func TestLaunchNotExecutable(t *testing.T) {
	path := t.TempDir() + "/script"
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	null := devNull(t)

	_, err := Launch([]string{path}, null, null, null, nil)
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("Launch error = %v, want *LaunchError", err)
	}
}

func TestLaunchEmptyCommand(t *testing.T) {
	null := devNull(t)
	if _, err := Launch(nil, null, null, null, nil); err == nil {
		t.Fatal("Launch(nil) succeeded")
	}
}

func TestSignalRelayForwardsToChild(t *testing.T) {
	channel, err := pipe.Create()
	if err != nil {
		t.Fatalf("pipe.Create: %v", err)
	}
	defer channel.Reader().Close()
	null := devNull(t)

	relay := NewSignalRelay(nil)
	child, err := Launch([]string{"sh", "-c", "trap 'exit 7' INT; while :; do sleep 0.05; done"},
		null, null, channel.Writer(), nil)
	if err != nil {
		relay.Stop()
		t.Fatalf("Launch: %v", err)
	}
	relay.Start(child, channel.CloseWriter)

	// Give sh time to install its trap before the interrupt arrives.
	time.Sleep(200 * time.Millisecond)

	// Inject the notification as os/signal would deliver it.
	relay.signals <- syscall.SIGINT

	testutil.RequireClosed(t, relay.Terminated(), testTimeout, "child terminated after forwarded SIGINT")
	disposition := relay.Finish()
	if disposition != (Disposition{State: Exited, ExitCode: 7}) {
		t.Errorf("disposition = %+v, want exit code 7 from the trap", disposition)
	}
}

func TestSignalRelayIgnoresStopAndContinue(t *testing.T) {
	channel, err := pipe.Create()
	if err != nil {
		t.Fatalf("pipe.Create: %v", err)
	}
	defer channel.Reader().Close()
	null := devNull(t)

	relay := NewSignalRelay(nil)
	child, err := Launch([]string{"sh", "-c", "sleep 0.3; exit 5"}, null, null, channel.Writer(), nil)
	if err != nil {
		relay.Stop()
		t.Fatalf("Launch: %v", err)
	}
	relay.Start(child, channel.CloseWriter)

	if err := unix.Kill(child.Pid, unix.SIGSTOP); err != nil {
		t.Fatalf("stopping child: %v", err)
	}
	testutil.RequireOpen(t, relay.Terminated(), 500*time.Millisecond, "stopped child reported terminated")

	if err := unix.Kill(child.Pid, unix.SIGCONT); err != nil {
		t.Fatalf("continuing child: %v", err)
	}
	testutil.RequireClosed(t, relay.Terminated(), testTimeout, "child terminated after continue")

	if disposition := relay.Finish(); disposition != (Disposition{State: Exited, ExitCode: 5}) {
		t.Errorf("disposition = %+v, want exit code 5", disposition)
	}
}

func TestSignalRelayClosesWriterOnce(t *testing.T) {
	null := devNull(t)
	closes := 0
	relay := NewSignalRelay(nil)
	child, err := Launch([]string{"true"}, null, null, null, nil)
	if err != nil {
		relay.Stop()
		t.Fatalf("Launch: %v", err)
	}
	relay.Start(child, func() error {
		closes++
		return nil
	})

	testutil.RequireClosed(t, relay.Terminated(), testTimeout, "true terminated")
	relay.signals <- syscall.SIGCHLD
	relay.signals <- syscall.SIGTERM
	relay.Finish()

	if closes != 1 {
		t.Errorf("write end closed %d times, want 1", closes)
	}
}
