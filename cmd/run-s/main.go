// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the run-s command-line tool, which
// runs its tasks as one sequential group.
package main

import (
	"fmt"
	"os"

	npmrunall "github.com/alecmestroni/npm-run-all-next"
	"github.com/alecmestroni/npm-run-all-next/internal/cli"
	"github.com/alecmestroni/npm-run-all-next/internal/cliargs"
)

func main() {
	os.Exit(cli.Main(cli.Tool{
		Name:    "run-s",
		Mode:    cliargs.ModeSequential,
		Usage:   "run-s [--help | -h | --version | -v] [OPTIONS] <tasks>",
		Version: fmt.Sprintf("%s (commit: %s)", npmrunall.Version, npmrunall.Commit),
	}, os.Args[1:]))
}
