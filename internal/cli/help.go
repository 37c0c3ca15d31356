// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
)

const commonFlags = `  Options:
    -c, --continue-on-error  - Keep running the remaining tasks after a failure.
    -l, --print-label        - Prefix every output line with the task name.
    -n, --print-name         - Print a header line before each task runs.
        --silent             - Suppress engine log output.
        --retry <n>          - Retry failing tasks up to <n> times (n >= 1).
        --print-summary      - Print the per-task summary table on completion.
        --npm-path <path>    - Override the invoked script runner path.
    -h, --help               - Print this text and exit.
    -v, --version            - Print the version and exit.

  Parallel groups also accept:
    -r, --race               - Kill the other tasks when one exits with code 0.
        --max-parallel <n>   - Run at most <n> tasks at the same time.
        --aggregate-output   - Flush each task's output as one block when it completes.

  Patterns match the script names of ./package.json. "*" matches within one
  colon-delimited segment, "**" across segments, and a leading "!" excludes.
  Arguments after "--" fill {1}..{N}, {@} and {*} placeholders.
`

func writeHelp(w io.Writer, tool Tool) {
	fmt.Fprintf(w, "\n  Usage: %s\n\n%s\n", tool.Usage, commonFlags)
}
