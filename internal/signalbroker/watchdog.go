// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/alecmestroni/npm-run-all-next/internal/ctxlog"
)

// Watch monitors the signal channel and handles signals.
// On the first signal of a given type it calls abort, which asks the running
// pipeline to tear down its child processes. On the second signal of the same
// type it cancels the context, forcing termination.
func Watch(ctx context.Context, sigCh chan os.Signal, abort func(), cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})
	for sig := range sigCh {
		if _, ok := sigMap[sig]; ok {
			ctxlog.Logger(ctx).Info("watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received first signal of type, aborting tasks", "signal", sig.String())

		sigMap[sig] = struct{}{}

		if abort != nil {
			abort()
		}
	}
}
