// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package supervisor runs a single child process with its stderr
// redirected into a pipe, relays that stream in color, and reports how
// the child finished so the caller can reproduce it exactly.
//
// The flow of [Run]:
//
//  1. Create the pipe (lib/pipe).
//  2. Register for SIGCHLD and the terminal-interrupt signals before
//     the child exists, so no notification is lost.
//  3. Launch the child with stdin and stdout inherited and stderr set
//     to the pipe's write end ([Launch]).
//  4. Start the [SignalRelay] goroutine. It forwards SIGINT, SIGTERM,
//     SIGQUIT, SIGALRM and SIGHUP to the child untouched, and on
//     SIGCHLD reaps the child (never any other process) without
//     blocking. When the child has exited or been killed it records
//     the outcome and closes the supervisor's copy of the write end.
//  5. Run the relay loop (lib/relay) on the read end. The loop ends at
//     end-of-stream, which can only happen after step 4 closed the
//     write end and the child's own copy died with it.
//  6. [SignalRelay.Finish] stops signal delivery and returns the
//     recorded outcome as a process.Status.
//
// The supervisor never exits on a terminal signal itself: it must
// outlive the child so that the child's last error bytes are drained
// and its exit status is reproduced.
//
// Process tree:
//
//	shell → clerr → command
//	             ↑ stderr via pipe
package supervisor
