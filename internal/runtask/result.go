// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runtask

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// TaskResult is the final observable outcome of one scheduled task.
type TaskResult struct {
	// Name is the task display name.
	Name string
	// Code is the exit code of the last attempt, KilledExitCode when the
	// task was aborted mid-flight, or nil when the task was never started.
	Code *int
	// Retries is the 0-based attempt index of the attempt whose result is
	// reported.
	Retries int
	// Duration is the wall-clock time from the start of the first attempt
	// to the end of the last one. Zero when the task never started.
	Duration time.Duration
}

// Succeeded reports whether the task ultimately exited with code 0.
func (r TaskResult) Succeeded() bool {
	return r.Code != nil && *r.Code == 0
}

// Killed reports whether the task was aborted by the engine.
func (r TaskResult) Killed() bool {
	return r.Code != nil && *r.Code == KilledExitCode
}

// Failed reports whether the task completed with a non-zero exit code.
func (r TaskResult) Failed() bool {
	return r.Code != nil && *r.Code != 0
}

// TasksError is the structured failure returned when one or more tasks did
// not succeed. It carries a snapshot of every scheduled task's result, in
// input order.
type TasksError struct {
	// Results is the full per-task snapshot, including successes.
	Results []TaskResult

	err *multierror.Error
}

func newTasksError(results []TaskResult) *TasksError {
	e := &TasksError{Results: results}

	for _, r := range results {
		if !r.Failed() {
			continue
		}

		e.err = multierror.Append(e.err, fmt.Errorf("task %q exited with code %d", r.Name, *r.Code))
	}

	if e.err == nil {
		e.err = multierror.Append(e.err, fmt.Errorf("run aborted"))
	}

	return e
}

func (e *TasksError) Error() string {
	return e.err.Error()
}

func (e *TasksError) Unwrap() error {
	return e.err
}

func intPtr(v int) *int {
	return &v
}
