// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runtask is the execution engine: it drives scheduled tasks through
// an ordered list of sequential or parallel groups, managing child processes
// with bounded concurrency, retry semantics, race-to-finish, abort
// propagation, continue-on-error, and deterministic result accounting.
package runtask
