// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest reads the package.json of the current working directory
// and exposes its scripts map in declaration order.
package manifest

import (
	"errors"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

const fileName = "package.json"

var (
	// ErrManifestMissing is returned when no package.json exists in the
	// working directory.
	ErrManifestMissing = errors.New("No package.json found in the current directory")
	// ErrManifestInvalid is returned when package.json is not valid JSON.
	ErrManifestInvalid = errors.New("package.json is not valid JSON")
)

// Package is the consumed subset of a package manifest.
type Package struct {
	// Name is the package name, possibly empty.
	Name string
	// ScriptNames preserves the declaration order of the scripts map.
	ScriptNames []string
	// Scripts maps script names to their shell command lines.
	Scripts map[string]string
}

// Load reads the manifest from dir. The manifest is read once per
// invocation, before scheduling begins.
func Load(fsys afero.Fs, dir string) (*Package, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, fileName))
	if err != nil {
		return nil, ErrManifestMissing
	}

	if !gjson.ValidBytes(data) {
		return nil, ErrManifestInvalid
	}

	root := gjson.ParseBytes(data)

	pkg := &Package{
		Name:    root.Get("name").String(),
		Scripts: make(map[string]string),
	}

	root.Get("scripts").ForEach(func(key, value gjson.Result) bool {
		pkg.ScriptNames = append(pkg.ScriptNames, key.String())
		pkg.Scripts[key.String()] = value.String()

		return true
	})

	return pkg, nil
}

var configVarRe = regexp.MustCompile(`^([^=]+?)_config_([^=]+)=(.*)$`)

// ConfigVariables collects <PKG>_config_<VAR> shaped entries from the given
// environment, grouped by package name. They seed the package-scoped
// overwrite configuration that --PKG:VAR=VALUE options extend.
func ConfigVariables(environ []string) map[string]map[string]string {
	out := make(map[string]map[string]string)

	for _, entry := range environ {
		m := configVarRe.FindStringSubmatch(entry)
		if m == nil {
			continue
		}

		pkg, name, value := m[1], m[2], m[3]

		if out[pkg] == nil {
			out[pkg] = make(map[string]string)
		}

		out[pkg][name] = value
	}

	return out
}
