// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config locates and loads webfont configuration files and
// environment overrides.
//
// A search starts in a directory and walks up to the file system root.
// In each directory the first of these that holds a configuration wins:
//
//	package.json        ("webfont" property)
//	.webfontrc          (YAML or JSON)
//	.webfontrc.json
//	.webfontrc.yaml
//	.webfontrc.yml
//	webfont.config.json
//	webfont.config.yaml
//	webfont.config.yml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/webfont"
)

// Name is the configuration name files are searched for.
const Name = "webfont"

// SearchPlaces are the file names looked for in each directory, in order.
var SearchPlaces = []string{
	"package.json",
	"." + Name + "rc",
	"." + Name + "rc.json",
	"." + Name + "rc.yaml",
	"." + Name + "rc.yml",
	Name + ".config.json",
	Name + ".config.yaml",
	Name + ".config.yml",
}

// ErrConfig is returned (wrapped) when a configuration file cannot be read.
var ErrConfig = errors.New("config: invalid configuration file")

// File is a loaded configuration file.
type File struct {
	Path  string
	Patch webfont.ConfigPatch
}

// Search looks for a configuration file from dir upwards. It returns nil
// and no error when none is found.
func Search(dir string) (*File, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		for _, name := range SearchPlaces {
			path := filepath.Join(dir, name)
			f, err := load(path, true)
			if err != nil {
				return nil, err
			}
			if f != nil {
				return f, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Load reads the configuration file at path. A package.json without a
// "webfont" property yields an empty patch.
func Load(path string) (*File, error) {
	f, err := load(path, false)
	if err != nil {
		return nil, err
	}
	if f == nil {
		abs, _ := filepath.Abs(path)
		return &File{Path: abs}, nil
	}
	return f, nil
}

// load reads path. When searching, a missing file or a package.json
// without a "webfont" property is not an error and yields nil.
func load(path string, searching bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if searching && (errors.Is(err, os.ErrNotExist) || isDir(path)) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if filepath.Base(path) == "package.json" {
		var pkg map[string]yaml.Node
		if err := yaml.Unmarshal(data, &pkg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
		}
		node, ok := pkg[Name]
		if !ok {
			return nil, nil
		}
		var p webfont.ConfigPatch
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
		}
		return &File{Path: abs, Patch: p}, nil
	}

	var p webfont.ConfigPatch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return &File{Path: abs, Patch: p}, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
