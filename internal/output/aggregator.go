// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"io"
	"sync"
)

// Aggregator is a memory-backed sink that captures everything a task writes
// across all of its attempts. On task completion Flush writes the captured
// bytes verbatim to the real sink as one contiguous block, then discards
// them.
type Aggregator struct {
	mu  sync.Mutex
	buf bytes.Buffer
	w   io.Writer
}

// NewAggregator creates an Aggregator in front of the real sink w.
func NewAggregator(w io.Writer) *Aggregator {
	return &Aggregator{w: w}
}

// Write implements io.Writer.
func (a *Aggregator) Write(p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.buf.Write(p)
}

// Flush writes the captured output to the real sink and discards it. The
// caller serializes Flush calls across tasks so that each task's block stays
// contiguous in the shared sink.
func (a *Aggregator) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.buf.Len() == 0 {
		return nil
	}

	_, err := a.w.Write(a.buf.Bytes())
	a.buf.Reset()

	return err
}
