// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlString(t *testing.T) {
	assert.Equal(t, "\033[1m", ControlString(Bold))
	assert.Equal(t, "\033[1;31m", ControlString(Bold, FgRed))
}

func TestColorizeDisabled(t *testing.T) {
	orig := Enabled()
	defer SetEnabled(orig)

	SetEnabled(false)
	assert.Equal(t, "hello", Colorize("hello", FgRed))
}

func TestColorizeEnabled(t *testing.T) {
	orig := Enabled()
	defer SetEnabled(orig)

	SetEnabled(true)
	assert.Equal(t, "\033[32mhello\033[0m", Colorize("hello", FgGreen))
}

func TestForLabelStable(t *testing.T) {
	a := ForLabel("watch:js")
	b := ForLabel("watch:js")
	assert.Equal(t, a, b)

	found := false
	for _, c := range labelPalette {
		if c == a {
			found = true
		}
	}

	assert.True(t, found, "label color must come from the palette")
}
