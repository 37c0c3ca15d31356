// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runtask

import (
	"context"
	"io"
)

// WaitStatus is the observable outcome of one child process.
type WaitStatus struct {
	// Code is the numeric exit status.
	Code int
	// Signal is the terminating signal name, or empty when the child
	// exited on its own.
	Signal string
}

// Handle controls one in-flight attempt's child process.
type Handle interface {
	// Wait blocks until the child exits and its output has been drained.
	Wait() WaitStatus
	// Abort requests termination of the entire process subtree. It is
	// idempotent and safe to call concurrently with Wait.
	Abort()
	// Aborted reports whether Abort has been called.
	Aborted() bool
}

// Spawner starts one attempt of a task. The engine owns exactly one Handle
// per attempt; tests substitute fake spawners.
type Spawner interface {
	Spawn(ctx context.Context, task Task, stdout, stderr io.Writer, stdin io.Reader) (Handle, error)
}
