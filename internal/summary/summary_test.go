// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package summary

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alecmestroni/npm-run-all-next/internal/runtask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestWriteRowsInOrder(t *testing.T) {
	buf := &bytes.Buffer{}

	results := []runtask.TaskResult{
		{Name: "build", Code: intPtr(0), Retries: 0, Duration: 1230 * time.Millisecond},
		{Name: "test", Code: intPtr(1), Retries: 2, Duration: 450 * time.Millisecond},
		{Name: "watch:js", Code: intPtr(130), Retries: 0, Duration: 2 * time.Second},
		{Name: "never-ran"},
	}

	require.NoError(t, Write(buf, results))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "Task")
	assert.Contains(t, lines[0], "FinalExitCode")
	assert.Contains(t, lines[0], "Retries")
	assert.Contains(t, lines[0], "Time(s)")

	assert.Contains(t, lines[1], "build")
	assert.Contains(t, lines[1], "1.23")

	assert.Contains(t, lines[2], "test")
	assert.Contains(t, lines[2], "0.45")

	assert.Contains(t, lines[3], "130 (Killed)")

	assert.Contains(t, lines[4], "never-ran")
	assert.Contains(t, lines[4], "-")
}

func TestWriteColumnWidths(t *testing.T) {
	buf := &bytes.Buffer{}

	results := []runtask.TaskResult{
		{Name: "a", Code: intPtr(0)},
	}

	require.NoError(t, Write(buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	header := strings.Split(lines[0], "|")
	row := strings.Split(lines[1], "|")
	require.Len(t, header, 4)
	require.Len(t, row, 4)

	// The final column is not asserted: trailing padding is trimmed above.
	for i := range 3 {
		assert.Equal(t, len(header[i]), len(row[i]), "column %d width mismatch", i)
	}
}
