// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/clerr/lib/process"
)

// LaunchError reports that the command could not be executed: not
// found, not executable, or not a valid executable image.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("execvp(): %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitCode implements the exit-code convention checked by main.
func (e *LaunchError) ExitCode() int { return process.ExitExecFailed }

// ForkError reports that the kernel refused to create the child.
type ForkError struct {
	Err error
}

func (e *ForkError) Error() string {
	return fmt.Sprintf("fork(): %v", e.Err)
}

func (e *ForkError) Unwrap() error { return e.Err }

// ExitCode implements the exit-code convention checked by main.
func (e *ForkError) ExitCode() int { return process.ExitFork }

// Child is a started child process.
type Child struct {
	Pid     int
	Process *os.Process
}

// Launch starts command with stdin and stdout inherited and stderr
// connected to errorWriter. command[0] is resolved through PATH the way
// execvp does.
//
// The Go runtime forks and execs in one step and reports a failed exec
// back to this process, so an exec failure is returned here as a
// *LaunchError instead of surfacing as the child's exit code. The
// child's signal dispositions are the defaults: handlers registered
// with os/signal do not survive exec.
func Launch(command []string, stdin, stdout, errorWriter *os.File, environment []string) (*Child, error) {
	if len(command) == 0 {
		return nil, &LaunchError{Err: errors.New("empty command")}
	}

	path, err := exec.LookPath(command[0])
	if err != nil {
		return nil, &LaunchError{Command: command[0], Err: unwrapExecError(err)}
	}

	started, err := os.StartProcess(path, command, &os.ProcAttr{
		Env:   environment,
		Files: []*os.File{stdin, stdout, errorWriter},
	})
	if err != nil {
		cause := unwrapExecError(err)
		if errors.Is(cause, unix.EAGAIN) || errors.Is(cause, unix.ENOMEM) {
			return nil, &ForkError{Err: cause}
		}
		return nil, &LaunchError{Command: command[0], Err: cause}
	}

	return &Child{Pid: started.Pid, Process: started}, nil
}

// unwrapExecError strips the path and operation wrappers added by
// exec.LookPath and os.StartProcess, leaving the system error.
func unwrapExecError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
