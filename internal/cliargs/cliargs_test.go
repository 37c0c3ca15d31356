// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliargs

import (
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultGroupIsSequential(t *testing.T) {
	res, err := Parse(ModeAll, []string{"build", "test"})
	require.NoError(t, err)

	require.Len(t, res.Groups, 1)
	assert.False(t, res.Groups[0].Parallel)
	assert.Equal(t, []string{"build", "test"}, res.Groups[0].Patterns)
}

func TestParseGroupSections(t *testing.T) {
	res, err := Parse(ModeAll, []string{"clean", "-p", "watch:*", "serve", "-s", "deploy"})
	require.NoError(t, err)

	require.Len(t, res.Groups, 3)
	assert.Equal(t, GroupSpec{Parallel: false, Patterns: []string{"clean"}}, res.Groups[0])
	assert.Equal(t, GroupSpec{Parallel: true, Patterns: []string{"watch:*", "serve"}}, res.Groups[1])
	assert.Equal(t, GroupSpec{Parallel: false, Patterns: []string{"deploy"}}, res.Groups[2])
}

func TestParseGroupFlagAliases(t *testing.T) {
	res, err := Parse(ModeAll, []string{"--sequential", "a", "--parallel", "b", "--serial", "c"})
	require.NoError(t, err)

	require.Len(t, res.Groups, 3)
	assert.False(t, res.Groups[0].Parallel)
	assert.True(t, res.Groups[1].Parallel)
	assert.False(t, res.Groups[2].Parallel)
}

func TestParseRunPModeIsParallel(t *testing.T) {
	res, err := Parse(ModeParallel, []string{"a", "b"})
	require.NoError(t, err)

	require.Len(t, res.Groups, 1)
	assert.True(t, res.Groups[0].Parallel)
}

func TestParseGroupFlagsRejectedOutsideModeAll(t *testing.T) {
	_, err := Parse(ModeSequential, []string{"-p", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: -p")

	_, err = Parse(ModeParallel, []string{"--sequential", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: --sequential")
}

func TestParseClusteredShorts(t *testing.T) {
	res, err := Parse(ModeAll, []string{"-cp", "a"})
	require.NoError(t, err)

	assert.True(t, res.Policy.ContinueOnError)
	require.Len(t, res.Groups, 1)
	assert.True(t, res.Groups[0].Parallel)
}

func TestParseBoolFlags(t *testing.T) {
	res, err := Parse(ModeParallel, []string{"-l", "-n", "--race", "--aggregate-output", "--silent", "--print-summary", "a"})
	require.NoError(t, err)

	assert.True(t, res.Policy.PrintLabel)
	assert.True(t, res.Policy.PrintName)
	assert.True(t, res.Policy.Race)
	assert.True(t, res.Policy.AggregateOutput)
	assert.True(t, res.Policy.Silent)
	assert.True(t, res.Summary)
}

func TestParseRetry(t *testing.T) {
	res, err := Parse(ModeSequential, []string{"--retry", "5", "a"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Policy.RetryLimit)

	res, err = Parse(ModeSequential, []string{"--retry=3", "a"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Policy.RetryLimit)
}

func TestParseRetryZeroIsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--retry", "0", "a"},
		{"--retry", "nope", "a"},
		{"--retry"},
	} {
		_, err := Parse(ModeSequential, args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid Option: --retry")
	}
}

func TestParseMaxParallel(t *testing.T) {
	res, err := Parse(ModeParallel, []string{"--max-parallel", "2", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Policy.ConcurrencyCap)

	_, err = Parse(ModeParallel, []string{"--max-parallel", "0", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: --max-parallel")
}

func TestParseParallelOnlyFlagsRejectedWithoutParallelGroup(t *testing.T) {
	_, err := Parse(ModeSequential, []string{"--race", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: --race")

	_, err = Parse(ModeAll, []string{"--aggregate-output", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: --aggregate-output")

	_, err = Parse(ModeAll, []string{"--max-parallel", "2", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: --max-parallel")
}

func TestParseRaceAllowedWithParallelSection(t *testing.T) {
	res, err := Parse(ModeAll, []string{"--race", "-p", "a", "b"})
	require.NoError(t, err)
	assert.True(t, res.Policy.Race)
}

func TestParseNpmPath(t *testing.T) {
	res, err := Parse(ModeSequential, []string{"--npm-path", "/usr/local/bin/pnpm", "a"})
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/pnpm", res.NpmPath)
}

func TestParseRestAfterDoubleDash(t *testing.T) {
	res, err := Parse(ModeSequential, []string{"lint {1}", "--", "--fix", "src"})
	require.NoError(t, err)

	assert.Equal(t, []string{"--fix", "src"}, res.Rest)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, []string{"lint {1}"}, res.Groups[0].Patterns)
}

func TestParseConfigAssignment(t *testing.T) {
	res, err := Parse(ModeSequential, []string{"--port=3000", "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"port": "3000"}, res.Config)
}

func TestParsePackageConfigAssignment(t *testing.T) {
	res, err := Parse(ModeSequential, []string{"--sample:port=3000", "a"})
	require.NoError(t, err)
	assert.Equal(t, "3000", res.PackageConfig["sample"]["port"])

	res, err = Parse(ModeSequential, []string{"--sample:host", "localhost", "a"})
	require.NoError(t, err)
	assert.Equal(t, "localhost", res.PackageConfig["sample"]["host"])
}

func TestParseUnknownLongWithoutValueErrors(t *testing.T) {
	_, err := Parse(ModeSequential, []string{"--bogus", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: --bogus")
}

func TestParseUnknownShortErrors(t *testing.T) {
	_, err := Parse(ModeSequential, []string{"-x", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Option: -x")
}

func TestParseHelpAndVersion(t *testing.T) {
	res, err := Parse(ModeAll, []string{"--help"})
	require.NoError(t, err)
	assert.True(t, res.Help)

	res, err = Parse(ModeAll, []string{"-v"})
	require.NoError(t, err)
	assert.True(t, res.Version)
}

func TestParseNoPatternsImpliesHelp(t *testing.T) {
	res, err := Parse(ModeAll, nil)
	require.NoError(t, err)
	assert.True(t, res.Help)
}

func TestSilentFromEnv(t *testing.T) {
	stub := gostub.New()
	defer stub.Reset()

	stub.SetEnv("loglevel", "silent")
	assert.True(t, SilentFromEnv())

	stub.SetEnv("loglevel", "info")
	assert.False(t, SilentFromEnv())
}
