// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package runtask

import (
	"errors"
	"os"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// killTree performs a best-effort direct kill; Windows has no process-group
// signal equivalent for arbitrary subtrees.
func killTree(ps *os.Process) {
	if err := ps.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return
	}
}

func signalName(_ *os.ProcessState) string {
	return ""
}
