// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecmestroni/npm-run-all-next/internal/color"
)

// LabelWriter is a line-buffered writer that prepends "[name] " to every line
// it forwards, with the name right-padded to the widest task name of the run.
// Blank lines are preserved; a final partial line is flushed on Close.
type LabelWriter struct {
	w       io.Writer
	prefix  string
	partial bytes.Buffer
}

// NewLabelWriter creates a LabelWriter for the given task name. width is the
// widest display name across the run; the label color is the task's palette
// color.
func NewLabelWriter(w io.Writer, name string, width int) *LabelWriter {
	label := fmt.Sprintf("[%s]%s ", name, strings.Repeat(" ", max(0, width-len(name))))

	return &LabelWriter{
		w:      w,
		prefix: color.Colorize(label, color.ForLabel(name)),
	}
}

// Write implements io.Writer. Complete lines are forwarded with the label
// prefix in a single write; the trailing partial line is held until the next
// write or Close.
func (lw *LabelWriter) Write(p []byte) (int, error) {
	lw.partial.Write(p)

	data := lw.partial.Bytes()

	last := bytes.LastIndexByte(data, '\n')
	if last < 0 {
		return len(p), nil
	}

	out := bytes.Buffer{}

	for line := range bytes.Lines(data[:last+1]) {
		out.WriteString(lw.prefix)
		out.Write(line)
	}

	rest := append([]byte(nil), data[last+1:]...)
	lw.partial.Reset()
	lw.partial.Write(rest)

	if _, err := lw.w.Write(out.Bytes()); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close flushes any final partial line without appending a newline.
func (lw *LabelWriter) Close() error {
	if lw.partial.Len() == 0 {
		return nil
	}

	out := lw.prefix + lw.partial.String()
	lw.partial.Reset()

	_, err := io.WriteString(lw.w, out)

	return err
}
