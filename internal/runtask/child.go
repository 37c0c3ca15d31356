// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runtask

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alecmestroni/npm-run-all-next/internal/ctxlog"
)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrRunnerNotFound is returned when the script runner executable cannot be resolved.
	ErrRunnerNotFound = errors.New("script runner not found")
)

// interpreterExts are runner path extensions that are invoked through node
// rather than executed directly.
var interpreterExts = []string{".js", ".mjs", ".cjs"}

// ScriptRunner spawns script invocations through the package script runner
// (npm by default). It implements Spawner.
type ScriptRunner struct {
	// Path is the resolved executable to start.
	Path string
	// PrefixArgs precede the "run" verb, e.g. the runner script path when
	// invoking through node.
	PrefixArgs []string
	// ExtraEnv entries are appended to the inherited environment.
	ExtraEnv []string
	// Dir is the working directory for children.
	Dir string
}

// NewScriptRunner resolves the script runner executable and prepares the
// child environment.
//
// The runner path is taken from npmPath when non-empty, else from the
// npm_execpath environment variable, else "npm" from PATH. A runner path
// ending in .js, .mjs or .cjs is invoked through node.
//
// config entries become npm_config_<KEY> environment variables; packageConfig
// entries become <PKG>_config_<VAR> variables overwriting the package-scoped
// configuration of child scripts.
func NewScriptRunner(npmPath string, config map[string]string, packageConfig map[string]map[string]string) (*ScriptRunner, error) {
	path := npmPath
	if path == "" {
		path = os.Getenv("npm_execpath")
	}

	if path == "" {
		path = "npm"
	}

	r := &ScriptRunner{}

	if slices.Contains(interpreterExts, strings.ToLower(filepath.Ext(path))) {
		node := os.Getenv("npm_node_execpath")
		if node == "" {
			node = "node"
		}

		resolved, err := exec.LookPath(node)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrRunnerNotFound, node, err)
		}

		r.Path = resolved
		r.PrefixArgs = []string{path}
	} else {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrRunnerNotFound, path, err)
		}

		r.Path = resolved
	}

	for k, v := range config {
		r.ExtraEnv = append(r.ExtraEnv, fmt.Sprintf("npm_config_%s=%s", k, v))
	}

	for pkg, vars := range packageConfig {
		for k, v := range vars {
			r.ExtraEnv = append(r.ExtraEnv, fmt.Sprintf("%s_config_%s=%s", pkg, k, v))
		}
	}

	slices.Sort(r.ExtraEnv)

	return r, nil
}

// Spawn implements Spawner. It starts one invocation of the script runner for
// the task, wiring the child's standard streams into the given sinks.
func (r *ScriptRunner) Spawn(ctx context.Context, task Task, stdout, stderr io.Writer, stdin io.Reader) (Handle, error) {
	logger := ctxlog.Logger(ctx).With("script", task.ScriptName)

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	stdinFile, stdinCopy, err := stdinPipe(stdin)
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()
		_ = rErr.Close()
		_ = wErr.Close()

		return nil, err
	}

	execName := filepath.Base(r.Path)
	args := slices.Concat([]string{execName}, r.PrefixArgs, []string{"run", task.ScriptName}, task.ExtraArgs)
	env := slices.Concat(os.Environ(), r.ExtraEnv)

	logger.Debug("starting process", "path", r.Path, "args", args[1:], "cwd", r.Dir)

	ps, err := os.StartProcess(r.Path, args, &os.ProcAttr{
		Dir:   r.Dir,
		Env:   env,
		Files: []*os.File{stdinFile, wOut, wErr},
		Sys:   sysProcAttr(),
	})
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()
		_ = rErr.Close()
		_ = wErr.Close()

		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	// The child owns the write ends now; closing ours makes the copy
	// goroutines observe EOF when the whole process group exits.
	_ = wOut.Close()
	_ = wErr.Close()

	c := &child{ps: ps, logger: logger}

	c.copyWg.Add(2)

	go func() {
		defer c.copyWg.Done()
		_, _ = io.Copy(stdout, rOut)
		_ = rOut.Close()
	}()

	go func() {
		defer c.copyWg.Done()
		_, _ = io.Copy(stderr, rErr)
		_ = rErr.Close()
	}()

	if stdinCopy != nil {
		go stdinCopy()
	}

	return c, nil
}

// stdinPipe adapts an arbitrary reader into a file usable as a child's
// standard input. A nil reader means no input; an *os.File is passed through.
func stdinPipe(stdin io.Reader) (*os.File, func(), error) {
	if stdin == nil {
		return nil, nil, nil
	}

	if f, ok := stdin.(*os.File); ok {
		return f, nil, nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	return r, func() {
		_, _ = io.Copy(w, stdin)
		_ = w.Close()
		_ = r.Close()
	}, nil
}

type child struct {
	ps      *os.Process
	logger  *slog.Logger
	aborted atomic.Bool
	copyWg  sync.WaitGroup

	waitOnce sync.Once
	status   WaitStatus
}

// Wait implements Handle. It blocks until the process exits and both output
// pipes are drained.
func (c *child) Wait() WaitStatus {
	c.waitOnce.Do(func() {
		state, err := c.ps.Wait()
		if err != nil {
			c.status = WaitStatus{Code: -1}
		} else {
			c.status = WaitStatus{Code: state.ExitCode(), Signal: signalName(state)}
		}

		c.copyWg.Wait()
		c.logger.Debug("process finished", "exitCode", c.status.Code, "signal", c.status.Signal)
	})

	return c.status
}

// Abort implements Handle. It kills the entire process subtree; repeated
// calls are no-ops.
func (c *child) Abort() {
	if !c.aborted.CompareAndSwap(false, true) {
		return
	}

	c.logger.Debug("aborting process", "pid", c.ps.Pid)
	killTree(c.ps)
}

// Aborted implements Handle.
func (c *child) Aborted() bool {
	return c.aborted.Load()
}
