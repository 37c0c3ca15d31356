// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package npmrunall provides the version and commit information used by the
// three command line tools of the npm-run-all-next application, plus the
// library entry point RunAll.
package npmrunall

import (
	"context"
	"io"

	"github.com/alecmestroni/npm-run-all-next/internal/manifest"
	"github.com/alecmestroni/npm-run-all-next/internal/pattern"
	"github.com/alecmestroni/npm-run-all-next/internal/runtask"
)

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// Options configures a library invocation of the runner.
type Options struct {
	// Patterns are the task patterns to expand against the manifest scripts.
	Patterns []string
	// Parallel runs the expanded tasks as one parallel group instead of a
	// sequential one.
	Parallel bool
	// Policy carries the per-group execution settings. The Parallel field of
	// the policy is set from Parallel above.
	Policy runtask.GroupPolicy
	// Stdout and Stderr are the sinks for child process output. When nil,
	// os.Stdout and os.Stderr are used.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is the source wired to child processes. Nil means no input.
	Stdin io.Reader
}

// RunAll expands the patterns of opts against the scripts of pkg and runs the
// resulting tasks as a single group. It returns the per-task results; on any
// task failure err is a *runtask.TasksError carrying the same snapshot.
func RunAll(ctx context.Context, pkg *manifest.Package, opts Options) ([]runtask.TaskResult, error) {
	tasks, err := pattern.Expand(pkg.ScriptNames, opts.Patterns)
	if err != nil {
		return nil, err
	}

	policy := opts.Policy
	policy.Parallel = opts.Parallel

	group := &runtask.Group{Tasks: tasks, Policy: policy}

	pipeline := runtask.NewPipeline(runtask.PipelineOptions{
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		Stdin:  opts.Stdin,
	})

	return pipeline.Run(ctx, []*runtask.Group{group})
}
