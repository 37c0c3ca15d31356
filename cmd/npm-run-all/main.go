// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the npm-run-all command-line tool.
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
		Name:    "npm-run-all",
		Mode:    cliargs.ModeAll,
		Usage:   "npm-run-all [--help | -h | --version | -v] [tasks] [OPTIONS] [-s tasks] [-p tasks]",
		Version: fmt.Sprintf("%s (commit: %s)", npmrunall.Version, npmrunall.Commit),
	}, os.Args[1:]))
}
