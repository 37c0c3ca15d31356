// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runtask

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/alecmestroni/npm-run-all-next/internal/color"
	"github.com/alecmestroni/npm-run-all-next/internal/ctxlog"
	"github.com/alecmestroni/npm-run-all-next/internal/output"
	"golang.org/x/sync/semaphore"
)

// groupRun executes the tasks of one group under its policy. A single
// one-way aborted flag coordinates teardown: in-flight attempts register
// their child handles here and the transition to aborted kills every
// registered handle exactly once.
type groupRun struct {
	group      *Group
	spawner    Spawner
	stdout     io.Writer
	stderr     io.Writer
	stdin      io.Reader
	labelWidth int
	flushMu    *sync.Mutex

	mu             sync.Mutex
	aborted        bool
	externalAbort  bool
	raceWon        bool
	cancelDispatch context.CancelFunc
	inflight       map[int]Handle
	results        []TaskResult
}

func newGroupRun(group *Group, spawner Spawner, stdout, stderr io.Writer, stdin io.Reader, labelWidth int, flushMu *sync.Mutex) *groupRun {
	results := make([]TaskResult, len(group.Tasks))
	for i, task := range group.Tasks {
		results[i] = TaskResult{Name: task.DisplayName}
	}

	return &groupRun{
		group:      group,
		spawner:    spawner,
		stdout:     stdout,
		stderr:     stderr,
		stdin:      stdin,
		labelWidth: labelWidth,
		flushMu:    flushMu,
		inflight:   make(map[int]Handle),
		results:    results,
	}
}

// run executes the group and returns the results in input order together
// with the group error, if any.
func (g *groupRun) run(ctx context.Context) ([]TaskResult, error) {
	if g.group.Policy.Parallel {
		g.runParallel(ctx)
	} else {
		g.runSequential(ctx)
	}

	return g.results, g.err()
}

func (g *groupRun) runSequential(ctx context.Context) {
	for i := range g.group.Tasks {
		if g.abortRequested() || ctx.Err() != nil {
			// Remaining tasks were never started; their results keep a
			// nil code.
			return
		}

		g.complete(ctx, i, g.runOne(ctx, i))
	}
}

func (g *groupRun) runParallel(ctx context.Context) {
	dispatchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.mu.Lock()
	g.cancelDispatch = cancel
	g.mu.Unlock()

	sem := semaphore.NewWeighted(int64(g.group.cap()))

	wg := &sync.WaitGroup{}

	for i := range g.group.Tasks {
		// Admission is FIFO: the dispatcher blocks here until a slot
		// frees, so pending tasks start in input order.
		if err := sem.Acquire(dispatchCtx, 1); err != nil {
			break
		}

		if g.abortRequested() {
			sem.Release(1)
			break
		}

		wg.Add(1)

		go func(idx int) {
			defer wg.Done()
			defer sem.Release(1)

			g.complete(ctx, idx, g.runOne(ctx, idx))
		}(i)
	}

	wg.Wait()
}

// complete records a task result and drives the group-level transitions:
// race win and fail-fast both flip the aborted flag.
func (g *groupRun) complete(ctx context.Context, idx int, res TaskResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.results[idx] = res

	if g.aborted {
		return
	}

	switch {
	case g.group.Policy.Race && res.Succeeded():
		ctxlog.Debug(ctx, "race won", "task", res.Name)

		g.raceWon = true
		g.abortLocked()
	case res.Failed() && !g.group.Policy.ContinueOnError:
		ctxlog.Debug(ctx, "task failed, aborting group", "task", res.Name, "code", *res.Code)

		g.abortLocked()
	}
}

// Abort requests teardown of the whole group, typically on an OS signal.
// Repeated calls are no-ops.
func (g *groupRun) Abort() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted {
		return
	}

	g.externalAbort = true
	g.abortLocked()
}

// abortLocked is the one-way transition of the aborted flag. It kills every
// in-flight child and stops the dispatcher. Callers hold g.mu.
func (g *groupRun) abortLocked() {
	g.aborted = true

	if g.cancelDispatch != nil {
		g.cancelDispatch()
	}

	for _, h := range g.inflight {
		h.Abort()
	}
}

func (g *groupRun) abortRequested() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.aborted
}

// register makes an attempt's child handle visible to the abort path. It
// returns false when the group aborted between spawn and registration, in
// which case the caller must abort the handle itself.
func (g *groupRun) register(idx int, h Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted {
		return false
	}

	g.inflight[idx] = h

	return true
}

func (g *groupRun) unregister(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inflight, idx)
}

// runOne drives the retry loop of a single task. Ownership of each child
// handle stays with this method; on abort the handle is killed through the
// registry but Wait is still observed here before the result is finalized.
func (g *groupRun) runOne(ctx context.Context, idx int) TaskResult {
	task := g.group.Tasks[idx]
	res := TaskResult{Name: task.DisplayName}

	stdout, stderr, finish := g.taskSinks(task)
	defer finish()

	start := time.Now()
	started := false

	for attempt := 0; attempt <= g.group.Policy.RetryLimit; attempt++ {
		if g.abortRequested() {
			// Abort observed between retries: stop before spawning
			// another child. A task that never started keeps a nil code.
			if started {
				res.Code = intPtr(KilledExitCode)
				res.Retries = attempt - 1
				res.Duration = time.Since(start)
			}

			return res
		}

		if attempt == 0 && g.group.Policy.PrintName {
			writeNameHeader(stdout, task.DisplayName)
		}

		if attempt > 0 {
			ctxlog.Debug(ctx, "retrying task", "task", task.DisplayName, "attempt", attempt)
		}

		h, err := g.spawner.Spawn(ctx, task, stdout, stderr, g.stdin)
		if err != nil {
			ctxlog.Error(ctx, "could not start task", "task", task.DisplayName, "error", err)

			res.Code = intPtr(-1)
			res.Retries = attempt
			res.Duration = time.Since(start)

			return res
		}

		started = true

		if !g.register(idx, h) {
			h.Abort()
		}

		st := h.Wait()
		g.unregister(idx)

		res.Duration = time.Since(start)
		res.Retries = attempt

		if h.Aborted() {
			res.Code = intPtr(KilledExitCode)

			return res
		}

		switch {
		case st.Code == 0:
			res.Code = intPtr(0)

			return res
		case st.Signal != "":
			// Killed from outside the engine; report the conventional
			// killed code rather than a raw -1.
			res.Code = intPtr(KilledExitCode)
		default:
			res.Code = intPtr(st.Code)
		}
	}

	// Retries exhausted: the last attempt's code and index stand.
	return res
}

// taskSinks builds the output chain for one task:
// child -> label prefixer -> aggregation buffer -> shared sink.
// finish flushes the chain when the task completes.
func (g *groupRun) taskSinks(task Task) (io.Writer, io.Writer, func()) {
	stdout := g.stdout
	stderr := g.stderr

	var aggOut, aggErr *output.Aggregator

	if g.group.Policy.AggregateOutput {
		aggOut = output.NewAggregator(stdout)
		aggErr = output.NewAggregator(stderr)
		stdout = aggOut
		stderr = aggErr
	}

	var lwOut, lwErr *output.LabelWriter

	if g.group.Policy.PrintLabel {
		lwOut = output.NewLabelWriter(stdout, task.DisplayName, g.labelWidth)
		lwErr = output.NewLabelWriter(stderr, task.DisplayName, g.labelWidth)
		stdout = lwOut
		stderr = lwErr
	}

	finish := func() {
		if lwOut != nil {
			_ = lwOut.Close()
			_ = lwErr.Close()
		}

		if aggOut != nil {
			// One flush mutex per pipeline keeps each task's block
			// contiguous in the shared sinks.
			g.flushMu.Lock()
			defer g.flushMu.Unlock()

			_ = aggOut.Flush()
			_ = aggErr.Flush()
		}
	}

	return stdout, stderr, finish
}

func writeNameHeader(w io.Writer, name string) {
	_, _ = fmt.Fprintf(w, "\n%s\n", color.Colorize("> "+name, color.Bold))
}

// err computes the group outcome. A race win without a natural failure is a
// success even though the losers carry the killed code.
func (g *groupRun) err() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	anyFailed := false
	naturalFailure := false

	for _, r := range g.results {
		if r.Failed() {
			anyFailed = true
		}

		if r.Failed() && !r.Killed() {
			naturalFailure = true
		}
	}

	if g.raceWon && !naturalFailure {
		return nil
	}

	if anyFailed || g.externalAbort {
		return newTasksError(g.results)
	}

	return nil
}
