// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"

	"github.com/gogpu/webfont"
)

// Options control Resolve.
type Options struct {
	// ConfigFile is an explicit configuration file; no search happens
	// when it is set.
	ConfigFile string

	// SearchDir is where the search starts; the working directory when empty.
	SearchDir string

	// Environ are the environment variables to read; nil disables
	// environment overrides.
	Environ []string
}

// Resolve builds the effective configuration: defaults, then the
// configuration file, then the environment, then overrides.
func Resolve(opts Options, overrides webfont.ConfigPatch) (webfont.Config, error) {
	var (
		f   *File
		err error
	)
	if opts.ConfigFile != "" {
		f, err = Load(opts.ConfigFile)
	} else {
		dir := opts.SearchDir
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return webfont.Config{}, err
			}
		}
		f, err = Search(dir)
	}
	if err != nil {
		return webfont.Config{}, err
	}

	var patch webfont.ConfigPatch
	if f != nil {
		patch = f.Patch
	}
	if opts.Environ != nil {
		env, err := FromEnv(opts.Environ)
		if err != nil {
			return webfont.Config{}, err
		}
		patch = patch.Merge(env)
	}
	patch = patch.Merge(overrides)

	cfg := webfont.DefaultConfig().Apply(patch)
	if f != nil {
		cfg.ConfigFile = f.Path
		webfont.Logger().Debug("config: loaded", "path", f.Path)
	}
	return cfg, nil
}
