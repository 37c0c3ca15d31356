// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutePositional(t *testing.T) {
	out, err := Substitute([]string{"lint {1}"}, []string{"src"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lint src"}, out)
}

func TestSubstitutePositionalQuoted(t *testing.T) {
	out, err := Substitute([]string{"lint {1}"}, []string{"a b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lint 'a b'"}, out)
}

func TestSubstituteAllIndividuallyQuoted(t *testing.T) {
	out, err := Substitute([]string{"lint {@}"}, []string{"a", "b c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lint a 'b c'"}, out)
}

func TestSubstituteAllJoined(t *testing.T) {
	out, err := Substitute([]string{"lint {*}"}, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lint 'a b'"}, out)
}

func TestSubstituteMissingIsEmpty(t *testing.T) {
	out, err := Substitute([]string{"lint {2}"}, []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lint "}, out)
}

func TestSubstituteDashDefault(t *testing.T) {
	out, err := Substitute([]string{"lint {1:-src}"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"lint src"}, out)

	out, err = Substitute([]string{"lint {1:-src}"}, []string{"lib"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lint lib"}, out)
}

func TestSubstituteEqualsDefaultRemembered(t *testing.T) {
	out, err := Substitute([]string{"lint {1:=src}", "fix {1}"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"lint src", "fix src"}, out)
}

func TestSubstituteUnknownSyntaxErrors(t *testing.T) {
	for _, pattern := range []string{"lint {x}", "lint {1:?boom}", "lint {-}"} {
		_, err := Substitute([]string{pattern}, nil)
		require.Error(t, err, pattern)
		assert.Contains(t, err.Error(), "Invalid Placeholder")
	}
}

func TestSubstituteNoPlaceholders(t *testing.T) {
	out, err := Substitute([]string{"build", "test"}, []string{"unused"})
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "test"}, out)
}
