// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runtask

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/alecmestroni/npm-run-all-next/internal/ctxlog"
)

var (
	// ErrRaceRequiresParallel is returned when race is requested for a
	// sequential group.
	ErrRaceRequiresParallel = errors.New("Invalid options.race: only valid with a parallel group")
	// ErrAggregateRequiresParallel is returned when aggregate output is
	// requested for a sequential group.
	ErrAggregateRequiresParallel = errors.New("Invalid options.aggregateOutput: only valid with a parallel group")
	// ErrMaxParallelRequiresParallel is returned when a concurrency cap is
	// requested for a sequential group.
	ErrMaxParallelRequiresParallel = errors.New("Invalid options.maxParallel: only valid with a parallel group")
)

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	// Stdout and Stderr are the shared sinks for child output. Nil means
	// the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is wired to children. Nil means no input.
	Stdin io.Reader
	// Spawner overrides the real script runner; used by tests. When nil, a
	// ScriptRunner is built from NpmPath and the config maps.
	Spawner Spawner
	// NpmPath overrides the script runner executable.
	NpmPath string
	// Config holds --KEY=VALUE run-time variables for child environments.
	Config map[string]string
	// PackageConfig holds --PKG:VAR=VALUE overwrites for child environments.
	PackageConfig map[string]map[string]string
}

// Pipeline runs an ordered list of groups, short-circuiting on failure
// unless continue-on-error is set, and concatenates the per-group result
// snapshots in order.
type Pipeline struct {
	opts PipelineOptions

	mu      sync.Mutex
	current *groupRun
	aborted bool
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts PipelineOptions) *Pipeline {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &Pipeline{opts: opts}
}

// Abort tears down the running group and prevents later groups from
// starting. It is idempotent and safe to call from a signal handler
// goroutine.
func (p *Pipeline) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.aborted = true

	if p.current != nil {
		p.current.Abort()
	}
}

// Run executes the groups in declaration order. Once the groups run, the
// returned slice contains one result per scheduled task, in input order; when
// any task did not succeed err is a *TasksError carrying the same snapshot.
// A policy validation error or a script runner that cannot be resolved is
// returned with a nil slice before any task starts.
func (p *Pipeline) Run(ctx context.Context, groups []*Group) ([]TaskResult, error) {
	for _, group := range groups {
		if err := validatePolicy(group.Policy); err != nil {
			return nil, err
		}
	}

	spawner := p.opts.Spawner
	if spawner == nil {
		s, err := NewScriptRunner(p.opts.NpmPath, p.opts.Config, p.opts.PackageConfig)
		if err != nil {
			return nil, err
		}

		spawner = s
	}

	width := labelWidth(groups)
	flushMu := &sync.Mutex{}

	all := make([]TaskResult, 0, taskCount(groups))
	failed := false

	for i, group := range groups {
		p.mu.Lock()

		if p.aborted {
			p.mu.Unlock()

			// Groups that never start contribute never-started results
			// so every scheduled task appears in the snapshot.
			for _, t := range group.Tasks {
				all = append(all, TaskResult{Name: t.DisplayName})
			}

			failed = true

			continue
		}

		gr := newGroupRun(group, spawner, p.opts.Stdout, p.opts.Stderr, p.opts.Stdin, width, flushMu)
		p.current = gr
		p.mu.Unlock()

		ctxlog.Debug(ctx, "running group", "index", i, "parallel", group.Policy.Parallel, "tasks", len(group.Tasks))

		results, err := gr.run(ctx)
		all = append(all, results...)

		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()

		if err == nil {
			continue
		}

		failed = true

		if !group.Policy.ContinueOnError {
			// Later groups never start; mark the pipeline aborted so
			// their tasks are reported as never started.
			p.mu.Lock()
			p.aborted = true
			p.mu.Unlock()
		}
	}

	if failed {
		return all, newTasksError(all)
	}

	return all, nil
}

func validatePolicy(policy GroupPolicy) error {
	if policy.Parallel {
		return nil
	}

	switch {
	case policy.Race:
		return ErrRaceRequiresParallel
	case policy.AggregateOutput:
		return ErrAggregateRequiresParallel
	case policy.ConcurrencyCap > 0:
		return ErrMaxParallelRequiresParallel
	}

	return nil
}

func labelWidth(groups []*Group) int {
	width := 0

	for _, g := range groups {
		for _, t := range g.Tasks {
			if len(t.DisplayName) > width {
				width = len(t.DisplayName)
			}
		}
	}

	return width
}

func taskCount(groups []*Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Tasks)
	}

	return n
}
