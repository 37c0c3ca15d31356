// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alecmestroni/npm-run-all-next/internal/cliargs"
	"github.com/stretchr/testify/assert"
)

func TestWriteHelpMentionsUsageAndFlags(t *testing.T) {
	buf := &bytes.Buffer{}

	writeHelp(buf, Tool{
		Name:  "run-s",
		Mode:  cliargs.ModeSequential,
		Usage: "run-s [OPTIONS] <tasks>",
	})

	out := buf.String()
	assert.Contains(t, out, "run-s [OPTIONS] <tasks>")
	assert.Contains(t, out, "--continue-on-error")
	assert.Contains(t, out, "--retry")
	assert.Contains(t, out, "--print-summary")
}

func TestReportError(t *testing.T) {
	buf := &bytes.Buffer{}
	reportError(buf, errors.New("boom"), false)
	assert.Equal(t, "ERROR: boom\n", buf.String())
}

func TestReportErrorSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	reportError(buf, errors.New("boom"), true)
	assert.Empty(t, buf.String())
}
