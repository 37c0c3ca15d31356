// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package runtask

import (
	"errors"
	"os"
	"syscall"
)

// sysProcAttr places each child in its own process group so the whole
// subtree can be signalled at once.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killTree terminates the process group of ps, falling back to a direct kill
// when the group signal fails.
func killTree(ps *os.Process) {
	if err := syscall.Kill(-ps.Pid, syscall.SIGTERM); err == nil {
		return
	}

	if err := ps.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		// A kill error other than an already finished process leaves
		// nothing further to try.
		return
	}
}

// signalName returns the terminating signal name, or empty when the process
// exited normally.
func signalName(state *os.ProcessState) string {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return ""
	}

	return ws.Signal().String()
}
