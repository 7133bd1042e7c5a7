// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// ComponentsDir loads include targets. Each path is read at most once
// per ComponentsDir.
type ComponentsDir struct {
	root        string
	symlinkOpts SymlinkAllowOpts
	sources     map[string]*CachedSource
}

func NewComponentsDir(root string, symlinkOpts SymlinkAllowOpts) *ComponentsDir {
	// components root itself is always an allowed symlink destination
	symlinkOpts.AllowedDstPaths = append([]string{root}, symlinkOpts.AllowedDstPaths...)

	return &ComponentsDir{
		root:        root,
		symlinkOpts: symlinkOpts,
		sources:     map[string]*CachedSource{},
	}
}

func (d *ComponentsDir) Root() string { return d.root }

// Path joins src onto the components root. Paths leading outside
// of the root are rejected.
func (d *ComponentsDir) Path(src string) (string, error) {
	path := filepath.Join(d.root, filepath.FromSlash(src))

	relPath, err := filepath.Rel(d.root, path)
	if err != nil {
		return "", fmt.Errorf("Resolving component '%s': %s", src, err)
	}
	if escapesDir(relPath) {
		return "", fmt.Errorf("Expected component '%s' to be within components directory '%s'", src, d.root)
	}
	return path, nil
}

// Load returns the resolved path and contents of component src.
func (d *ComponentsDir) Load(src string) (string, []byte, error) {
	path, err := d.Path(src)
	if err != nil {
		return "", nil, err
	}

	source, found := d.sources[path]
	if !found {
		fileInfo, err := os.Lstat(path)
		if err != nil {
			return path, nil, fmt.Errorf("Checking component '%s': %s", path, err)
		}
		if fileInfo.IsDir() {
			return path, nil, fmt.Errorf("Expected component '%s' to be a file, but was a directory", path)
		}

		err = checkSymlink(path, fileInfo, d.symlinkOpts)
		if err != nil {
			return path, nil, fmt.Errorf("Checking component '%s': %s", path, err)
		}

		source = NewCachedSource(NewLocalSource(path, d.root))
		d.sources[path] = source
	}

	data, err := source.Bytes()
	if err != nil {
		return path, nil, fmt.Errorf("Reading component '%s': %s", path, err)
	}
	return path, data, nil
}
