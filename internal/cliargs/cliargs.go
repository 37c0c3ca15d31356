// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cliargs parses the argument vectors of the three command line
// tools. The surface cannot be expressed with a flag framework: -s and -p
// open new ordered groups, short flags cluster, and any --KEY=VALUE or
// --PKG:VAR=VALUE token is a config assignment rather than a known flag, so
// the lexer is written by hand.
package cliargs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecmestroni/npm-run-all-next/internal/runtask"
)

// Mode selects the grouping behavior of the entry point.
type Mode int

const (
	// ModeAll is npm-run-all: the initial group is sequential and -s/-p
	// open new groups.
	ModeAll Mode = iota
	// ModeSequential is run-s: one sequential group.
	ModeSequential
	// ModeParallel is run-p: one parallel group.
	ModeParallel
)

// ErrInvalidOption is wrapped by every malformed or inapplicable flag error.
var ErrInvalidOption = errors.New("Invalid Option")

// GroupSpec is one ordered group of patterns as typed on the command line.
type GroupSpec struct {
	Parallel bool
	Patterns []string
}

// Result is the parsed argument vector.
type Result struct {
	// Groups are the non-empty pattern groups in declaration order.
	Groups []GroupSpec
	// Rest holds the tokens after "--"; they feed placeholder
	// substitution and are passed to child scripts.
	Rest []string
	// Policy carries the flag-controlled execution settings shared by all
	// groups. The Parallel field is set per group, not here.
	Policy runtask.GroupPolicy
	// Summary enables the final summary table.
	Summary bool
	// Help and Version request the respective output and exit 0.
	Help    bool
	Version bool
	// NpmPath overrides the invoked script runner path.
	NpmPath string
	// Config holds --KEY=VALUE run-time variables.
	Config map[string]string
	// PackageConfig holds --PKG:VAR=VALUE package-scoped overwrites.
	PackageConfig map[string]map[string]string
}

type parser struct {
	mode   Mode
	args   []string
	pos    int
	result *Result
	group  GroupSpec
}

// Parse lexes args (without the program name) for the given entry point.
func Parse(m Mode, args []string) (*Result, error) {
	p := &parser{
		mode: m,
		args: args,
		result: &Result{
			Config:        make(map[string]string),
			PackageConfig: make(map[string]map[string]string),
		},
		group: GroupSpec{Parallel: m == ModeParallel},
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	p.closeGroup()

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p.result, nil
}

// SilentFromEnv reports whether the conventional loglevel environment
// variable asks for silence.
func SilentFromEnv() bool {
	return os.Getenv("loglevel") == "silent"
}

func (p *parser) run() error {
	for p.pos < len(p.args) {
		tok := p.args[p.pos]
		p.pos++

		switch {
		case tok == "--":
			p.result.Rest = append(p.result.Rest, p.args[p.pos:]...)
			p.pos = len(p.args)
		case strings.HasPrefix(tok, "--"):
			if err := p.long(tok[2:]); err != nil {
				return err
			}
		case len(tok) > 1 && tok[0] == '-':
			for _, c := range tok[1:] {
				if err := p.short(c); err != nil {
					return err
				}
			}
		default:
			p.group.Patterns = append(p.group.Patterns, tok)
		}
	}

	return nil
}

func (p *parser) long(name string) error {
	key, inline, hasInline := strings.Cut(name, "=")

	boolFlags := map[string]func(){
		"continue-on-error": func() { p.result.Policy.ContinueOnError = true },
		"print-label":       func() { p.result.Policy.PrintLabel = true },
		"print-name":        func() { p.result.Policy.PrintName = true },
		"race":              func() { p.result.Policy.Race = true },
		"aggregate-output":  func() { p.result.Policy.AggregateOutput = true },
		"silent":            func() { p.result.Policy.Silent = true },
		"print-summary":     func() { p.result.Summary = true },
		"summary":           func() { p.result.Summary = true },
		"help":              func() { p.result.Help = true },
		"version":           func() { p.result.Version = true },
	}

	if set, ok := boolFlags[key]; ok {
		if hasInline {
			return fmt.Errorf("%w: --%s", ErrInvalidOption, key)
		}

		set()

		return nil
	}

	switch key {
	case "sequential", "serial":
		return p.openGroup(false, "--"+key)
	case "parallel":
		return p.openGroup(true, "--"+key)
	case "max-parallel":
		value, err := p.flagValue("--max-parallel", inline, hasInline)
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: --max-parallel", ErrInvalidOption)
		}

		p.result.Policy.ConcurrencyCap = n
	case "retry":
		value, err := p.flagValue("--retry", inline, hasInline)
		if err != nil {
			return err
		}

		// Explicit --retry 0 is rejected: the zero-retry default is the
		// absence of the flag.
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: --retry", ErrInvalidOption)
		}

		p.result.Policy.RetryLimit = n
	case "npm-path":
		value, err := p.flagValue("--npm-path", inline, hasInline)
		if err != nil {
			return err
		}

		p.result.NpmPath = value
	default:
		return p.assignment(name)
	}

	return nil
}

// flagValue returns the inline =VALUE part when present, else consumes the
// next token.
func (p *parser) flagValue(flag, inline string, hasInline bool) (string, error) {
	if hasInline {
		return inline, nil
	}

	return p.value(flag)
}

// assignment handles --KEY=VALUE run-time config and --PKG:VAR[=VALUE]
// package-scoped overwrites.
func (p *parser) assignment(name string) error {
	key, value, hasValue := strings.Cut(name, "=")
	if key == "" {
		return fmt.Errorf("%w: --%s", ErrInvalidOption, name)
	}

	pkg, variable, scoped := strings.Cut(key, ":")

	if !scoped {
		if !hasValue {
			return fmt.Errorf("%w: --%s", ErrInvalidOption, name)
		}

		p.result.Config[key] = value

		return nil
	}

	if pkg == "" || variable == "" {
		return fmt.Errorf("%w: --%s", ErrInvalidOption, name)
	}

	if !hasValue {
		// --PKG:VAR VALUE form consumes the next token.
		v, err := p.value("--" + name)
		if err != nil {
			return err
		}

		value = v
	}

	if p.result.PackageConfig[pkg] == nil {
		p.result.PackageConfig[pkg] = make(map[string]string)
	}

	p.result.PackageConfig[pkg][variable] = value

	return nil
}

func (p *parser) short(c rune) error {
	switch c {
	case 'c':
		p.result.Policy.ContinueOnError = true
	case 'l':
		p.result.Policy.PrintLabel = true
	case 'n':
		p.result.Policy.PrintName = true
	case 'r':
		p.result.Policy.Race = true
	case 'h':
		p.result.Help = true
	case 'v':
		p.result.Version = true
	case 's':
		return p.openGroup(false, "-s")
	case 'p':
		return p.openGroup(true, "-p")
	default:
		return fmt.Errorf("%w: -%c", ErrInvalidOption, c)
	}

	return nil
}

// value consumes the next token as the flag's value.
func (p *parser) value(flag string) (string, error) {
	if p.pos >= len(p.args) {
		return "", fmt.Errorf("%w: %s", ErrInvalidOption, flag)
	}

	v := p.args[p.pos]
	p.pos++

	return v, nil
}

func (p *parser) openGroup(parallel bool, flag string) error {
	if p.mode != ModeAll {
		return fmt.Errorf("%w: %s", ErrInvalidOption, flag)
	}

	p.closeGroup()
	p.group = GroupSpec{Parallel: parallel}

	return nil
}

func (p *parser) closeGroup() {
	if len(p.group.Patterns) > 0 {
		p.result.Groups = append(p.result.Groups, p.group)
	}
}

func (p *parser) validate() error {
	hasParallel := p.mode == ModeParallel
	for _, g := range p.result.Groups {
		if g.Parallel {
			hasParallel = true
		}
	}

	if !hasParallel {
		switch {
		case p.result.Policy.Race:
			return fmt.Errorf("%w: --race", ErrInvalidOption)
		case p.result.Policy.AggregateOutput:
			return fmt.Errorf("%w: --aggregate-output", ErrInvalidOption)
		case p.result.Policy.ConcurrencyCap > 0:
			return fmt.Errorf("%w: --max-parallel", ErrInvalidOption)
		}
	}

	if len(p.result.Groups) == 0 && !p.result.Version {
		p.result.Help = true
	}

	return nil
}
