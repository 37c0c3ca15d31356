// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cli wires the shared entry point logic of npm-run-all, run-s and
// run-p: argument parsing, manifest loading, placeholder substitution,
// pattern expansion, pipeline execution, and exit code mapping.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecmestroni/npm-run-all-next/internal/cliargs"
	"github.com/alecmestroni/npm-run-all-next/internal/ctxlog"
	"github.com/alecmestroni/npm-run-all-next/internal/manifest"
	"github.com/alecmestroni/npm-run-all-next/internal/pattern"
	"github.com/alecmestroni/npm-run-all-next/internal/placeholder"
	"github.com/alecmestroni/npm-run-all-next/internal/runtask"
	"github.com/alecmestroni/npm-run-all-next/internal/signalbroker"
	"github.com/alecmestroni/npm-run-all-next/internal/summary"
	"github.com/spf13/afero"
)

// Tool describes one of the three binaries.
type Tool struct {
	// Name is the executable name. Help output shows Usage, not Name.
	Name string
	// Mode selects the grouping behavior.
	Mode cliargs.Mode
	// Usage is the one-line usage string.
	Usage string
	// Version is the version string printed by --version.
	Version string
}

// Main is the shared entry point. It returns the process exit code.
func Main(tool Tool, args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	res, err := cliargs.Parse(tool.Mode, args)
	if err != nil {
		reportError(os.Stderr, err, cliargs.SilentFromEnv())

		return 1
	}

	silent := res.Policy.Silent || cliargs.SilentFromEnv()
	if silent {
		res.Policy.Silent = true

		ctxlog.SetSilent()
	}

	switch {
	case res.Help:
		writeHelp(os.Stdout, tool)

		return 0
	case res.Version:
		fmt.Fprintln(os.Stdout, tool.Version)

		return 0
	}

	results, err := run(ctx, cancel, tool, res)

	if res.Summary {
		_ = summary.Write(os.Stdout, results)
	}

	if err != nil {
		reportError(os.Stderr, err, silent)

		return 1
	}

	return 0
}

func run(ctx context.Context, cancel context.CancelFunc, tool Tool, res *cliargs.Result) ([]runtask.TaskResult, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	pkg, err := manifest.Load(afero.NewOsFs(), cwd)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "manifest loaded", "package", pkg.Name, "scripts", len(pkg.ScriptNames))

	groups := make([]*runtask.Group, 0, len(res.Groups))

	for _, section := range res.Groups {
		patterns, err := placeholder.Substitute(section.Patterns, res.Rest)
		if err != nil {
			return nil, err
		}

		tasks, err := pattern.Expand(pkg.ScriptNames, patterns)
		if err != nil {
			return nil, err
		}

		policy := res.Policy
		policy.Parallel = section.Parallel

		groups = append(groups, &runtask.Group{Tasks: tasks, Policy: policy})
	}

	// CLI --PKG:VAR=VALUE assignments overwrite same-named entries read
	// from the environment.
	packageConfig := manifest.ConfigVariables(os.Environ())
	for pkgName, vars := range res.PackageConfig {
		if packageConfig[pkgName] == nil {
			packageConfig[pkgName] = make(map[string]string)
		}

		for k, v := range vars {
			packageConfig[pkgName][k] = v
		}
	}

	pipeline := runtask.NewPipeline(runtask.PipelineOptions{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Stdin:         os.Stdin,
		NpmPath:       res.NpmPath,
		Config:        res.Config,
		PackageConfig: packageConfig,
	})

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, pipeline.Abort, cancel)

	return pipeline.Run(ctx, groups)
}

func reportError(w io.Writer, err error, silent bool) {
	if silent {
		return
	}

	fmt.Fprintf(w, "ERROR: %s\n", err)
}
