// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/clerr/lib/process"
)

// State is the child's disposition as seen by the signal relay.
//
//	Running ─┬─▶ Stopped   ─▶ (Running)
//	         ├─▶ Continued ─▶ (Running)
//	         ├─▶ Exited      terminal
//	         └─▶ Signaled    terminal
type State int

const (
	Running State = iota
	Stopped
	Continued
	Exited
	Signaled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Continued:
		return "continued"
	case Exited:
		return "exited"
	case Signaled:
		return "signaled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Exited || s == Signaled
}

// Disposition is a state together with the data a terminal state
// carries. ExitCode is meaningful only for Exited and Signal only for
// Signaled.
type Disposition struct {
	State    State
	ExitCode int
	Signal   syscall.Signal
}

// Status converts a terminal disposition to the process.Status the exit
// reconciler applies. A non-terminal disposition yields exit code zero.
func (d Disposition) Status() process.Status {
	if d.State == Signaled {
		return process.Signaled(d.Signal)
	}
	return process.Exited(d.ExitCode)
}

// Classify maps a wait status to a disposition.
func Classify(status unix.WaitStatus) Disposition {
	switch {
	case status.Exited():
		return Disposition{State: Exited, ExitCode: status.ExitStatus()}
	case status.Signaled():
		return Disposition{State: Signaled, Signal: status.Signal()}
	case status.Stopped():
		return Disposition{State: Stopped, Signal: status.StopSignal()}
	case status.Continued():
		return Disposition{State: Continued}
	default:
		return Disposition{State: Running}
	}
}
