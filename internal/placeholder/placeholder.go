// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package placeholder rewrites {1}..{N}, {@}, {*}, {n:-default} and
// {n:=default} markers inside task patterns with the positional arguments
// given after "--" on the command line. It is a pure string-rewrite step
// whose output feeds pattern expansion.
package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrInvalidPlaceholder is wrapped by errors for unknown {...} syntax.
var ErrInvalidPlaceholder = errors.New("Invalid Placeholder")

var (
	markerRe = regexp.MustCompile(`\{[^{}]*\}`)
	// index, optionally followed by :-default or :=default
	indexedRe = regexp.MustCompile(`^(\d+)(?::(-|=)(.*))?$`)
)

// Substitute rewrites every placeholder in patterns using args. Defaults set
// with {n:=default} are remembered for later {n} references, in pattern
// order.
func Substitute(patterns, args []string) ([]string, error) {
	defaults := make(map[int]string)

	out := make([]string, len(patterns))

	for i, p := range patterns {
		rewritten, err := substituteOne(p, args, defaults)
		if err != nil {
			return nil, err
		}

		out[i] = rewritten
	}

	return out, nil
}

func substituteOne(pattern string, args []string, defaults map[int]string) (string, error) {
	var substErr error

	rewritten := markerRe.ReplaceAllStringFunc(pattern, func(marker string) string {
		if substErr != nil {
			return marker
		}

		value, err := resolve(marker[1:len(marker)-1], args, defaults)
		if err != nil {
			substErr = err

			return marker
		}

		return value
	})

	return rewritten, substErr
}

func resolve(body string, args []string, defaults map[int]string) (string, error) {
	switch body {
	case "@":
		return shellquote.Join(args...), nil
	case "*":
		if len(args) == 0 {
			return "", nil
		}

		return shellquote.Join(strings.Join(args, " ")), nil
	}

	m := indexedRe.FindStringSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("%w: {%s}", ErrInvalidPlaceholder, body)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return "", fmt.Errorf("%w: {%s}", ErrInvalidPlaceholder, body)
	}

	if n <= len(args) {
		return shellquote.Join(args[n-1]), nil
	}

	switch m[2] {
	case "-":
		return shellquote.Join(m[3]), nil
	case "=":
		defaults[n] = m[3]

		return shellquote.Join(m[3]), nil
	}

	if d, ok := defaults[n]; ok {
		return shellquote.Join(d), nil
	}

	return "", nil
}
