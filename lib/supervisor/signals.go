// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// ForwardedSignals are delivered to the child unchanged instead of
// acting on the supervisor.
var ForwardedSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	syscall.SIGALRM,
	syscall.SIGHUP,
}

// signalBuffer is the capacity of the notification channel. os/signal
// drops notifications when the channel is full; SIGCHLD is additionally
// drained with a reap loop, so one pending SIGCHLD covers any number of
// child state changes.
const signalBuffer = 32

// SignalRelay owns the child's disposition. A single goroutine consumes
// signal notifications in arrival order, so transitions never run
// concurrently with each other. The main goroutine reads the
// disposition only through [SignalRelay.Finish], after that goroutine
// has exited.
type SignalRelay struct {
	logger *slog.Logger

	signals    chan os.Signal
	stop       chan struct{}
	finished   chan struct{}
	terminated chan struct{}
	started    bool

	child       *Child
	closeWriter func() error
	disposition Disposition
}

// NewSignalRelay registers for SIGCHLD and the forwarded signals. Call
// it before the child is started so that no notification is lost;
// notifications queue until [SignalRelay.Start].
func NewSignalRelay(logger *slog.Logger) *SignalRelay {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	relay := &SignalRelay{
		logger:     logger,
		signals:    make(chan os.Signal, signalBuffer),
		stop:       make(chan struct{}),
		finished:   make(chan struct{}),
		terminated: make(chan struct{}),
	}
	signal.Notify(relay.signals, append([]os.Signal{syscall.SIGCHLD}, ForwardedSignals...)...)
	return relay
}

// Start begins handling notifications for child. closeWriter is called
// exactly once, when the child has exited or been killed, to release
// the supervisor's copy of the pipe's write end.
func (r *SignalRelay) Start(child *Child, closeWriter func() error) {
	r.child = child
	r.closeWriter = closeWriter
	r.started = true
	go r.loop()
}

// Terminated is closed once the child has reached a terminal state.
func (r *SignalRelay) Terminated() <-chan struct{} {
	return r.terminated
}

// Stop unregisters the signal notifications without starting. Use it
// when the child could not be launched.
func (r *SignalRelay) Stop() {
	signal.Stop(r.signals)
}

// Finish stops signal handling and returns the child's disposition.
// If the child was not seen to terminate, one final non-blocking reap
// is attempted; a child still running at that point is reported as
// Running, which converts to exit code zero.
func (r *SignalRelay) Finish() Disposition {
	signal.Stop(r.signals)
	if !r.started {
		return r.disposition
	}
	close(r.stop)
	<-r.finished

	if !r.disposition.State.Terminal() {
		r.childStateChanged()
	}
	return r.disposition
}

func (r *SignalRelay) loop() {
	defer close(r.finished)
	for {
		select {
		case <-r.stop:
			return
		case received := <-r.signals:
			sig, ok := received.(syscall.Signal)
			if !ok {
				continue
			}
			if sig == syscall.SIGCHLD {
				r.childStateChanged()
			} else {
				r.forward(sig)
			}
		}
	}
}

// childStateChanged reaps the child without blocking until no state
// change is pending. Stops and continues are logged and otherwise
// ignored; an exit or a fatal signal is recorded and the write end is
// closed, which ends the relay loop once the pipe drains.
func (r *SignalRelay) childStateChanged() {
	for !r.disposition.State.Terminal() {
		disposition, changed, err := reap(r.child.Pid)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			r.logger.Debug("reaping child", "pid", r.child.Pid, "error", err)
			return
		}
		if !changed {
			return
		}

		switch disposition.State {
		case Stopped:
			r.logger.Debug("child stopped", "pid", r.child.Pid, "signal", disposition.Signal)
		case Continued:
			r.logger.Debug("child continued", "pid", r.child.Pid)
		case Exited:
			r.logger.Debug("child exited", "pid", r.child.Pid, "code", disposition.ExitCode)
			r.terminate(disposition)
		case Signaled:
			r.logger.Debug("child killed by signal", "pid", r.child.Pid, "signal", disposition.Signal)
			r.terminate(disposition)
		}
	}
}

func (r *SignalRelay) terminate(disposition Disposition) {
	r.disposition = disposition
	if err := r.closeWriter(); err != nil {
		r.logger.Debug("closing pipe write end", "error", err)
	}
	close(r.terminated)
}

// forward delivers sig to the child. Once the child is gone there is
// nothing to deliver to.
func (r *SignalRelay) forward(sig syscall.Signal) {
	if r.disposition.State.Terminal() {
		return
	}
	r.logger.Debug("forwarding signal", "pid", r.child.Pid, "signal", sig)
	if err := r.child.Process.Signal(sig); err != nil {
		r.logger.Debug("forwarding signal failed", "pid", r.child.Pid, "signal", sig, "error", err)
	}
}

// reap performs one non-blocking wait for pid only. changed is false
// when the child has no state change to report.
func reap(pid int) (disposition Disposition, changed bool, err error) {
	var status unix.WaitStatus
	waited, err := unix.Wait4(pid, &status, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
	if err != nil {
		return Disposition{}, false, err
	}
	if waited != pid {
		return Disposition{}, false, nil
	}
	return Classify(status), true, nil
}
