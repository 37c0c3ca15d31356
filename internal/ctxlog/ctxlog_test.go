// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPretty(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf)))

	ctx := New(context.Background(), logger)
	require.Same(t, logger, Logger(ctx))

	Info(ctx, "hello", "key", "value")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "value")
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))
}

func TestSetSilentSuppressesOutput(t *testing.T) {
	prev := LevelVar.Level()
	defer LevelVar.Set(prev)

	buf := &bytes.Buffer{}
	logger := slog.New(NewPretty(&slog.HandlerOptions{Level: LevelVar}, WithDestinationWriter(buf)))
	ctx := New(context.Background(), logger)

	SetSilent()
	Error(ctx, "must not appear")
	assert.Empty(t, buf.String())
}
