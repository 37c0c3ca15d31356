// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output provides the plumbing between child process streams and the
// shared stdout/stderr of the run: a line-buffered label prefixer and a
// per-task aggregation buffer.
package output
