// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pattern expands glob-like task patterns against the script names of
// the package manifest. Single-segment wildcards match within one
// colon-delimited segment; "**" matches across segments; a leading "!"
// excludes.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecmestroni/npm-run-all-next/internal/runtask"
)

// matcher is one compiled positive or negative pattern together with the
// inline arguments that follow it.
type matcher struct {
	// source is the pattern occurrence as typed, args included.
	source string
	// re matches candidate script names.
	re *regexp.Regexp
	// args are the inline tokens after the pattern itself.
	args []string
}

// Expand computes the ordered task list for the user patterns. scriptNames is
// the manifest's script map keys in declaration order.
//
// Matches preserve manifest order inside each pattern and user order across
// patterns. A task produced by two different pattern occurrences with
// different literals is kept once; repeating the same literal keeps every
// occurrence. An overall empty result is an error.
func Expand(scriptNames, patterns []string) ([]runtask.Task, error) {
	positives := make([]matcher, 0, len(patterns))
	negatives := make([]matcher, 0)

	for _, p := range patterns {
		if name, ok := strings.CutPrefix(p, "!"); ok {
			m, err := compile(name)
			if err != nil {
				return nil, err
			}

			negatives = append(negatives, m)

			continue
		}

		m, err := compile(p)
		if err != nil {
			return nil, err
		}

		positives = append(positives, m)
	}

	tasks := make([]runtask.Task, 0, len(positives))
	// first positive literal that produced each task identity
	seen := make(map[string]string)

	for _, pos := range positives {
		for _, script := range scriptNames {
			if !pos.re.MatchString(script) {
				continue
			}

			if excluded(negatives, script) {
				continue
			}

			key := strings.Join(append([]string{script}, pos.args...), "\x00")
			if first, ok := seen[key]; ok && first != pos.source {
				continue
			}

			seen[key] = pos.source

			tasks = append(tasks, runtask.Task{
				DisplayName: displayName(script, pos.args),
				ScriptName:  script,
				ExtraArgs:   pos.args,
			})
		}
	}

	if len(tasks) == 0 {
		return nil, fmt.Errorf("task not found: %q", strings.Join(patterns, ", "))
	}

	return tasks, nil
}

func excluded(negatives []matcher, script string) bool {
	for _, neg := range negatives {
		if neg.re.MatchString(script) {
			return true
		}
	}

	return false
}

func displayName(script string, args []string) string {
	if len(args) == 0 {
		return script
	}

	return script + " " + strings.Join(args, " ")
}

// compile splits a pattern occurrence into the pattern token and its inline
// arguments, and builds the glob regexp for the token.
func compile(p string) (matcher, error) {
	fields := strings.Fields(p)
	if len(fields) == 0 {
		fields = []string{""}
	}

	re, err := globToRegexp(fields[0])
	if err != nil {
		return matcher{}, err
	}

	return matcher{source: p, re: re, args: fields[1:]}, nil
}

// globToRegexp converts a task glob to an anchored regexp. "*" and "?" stay
// within one colon-delimited segment; "**" crosses segments.
func globToRegexp(glob string) (*regexp.Regexp, error) {
	sb := strings.Builder{}
	sb.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				sb.WriteString(".*")
				i++

				continue
			}

			sb.WriteString("[^:]*")
		case '?':
			sb.WriteString("[^:]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	sb.WriteString("$")

	return regexp.Compile(sb.String())
}
