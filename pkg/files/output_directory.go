// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	suspiciousOutputDirectoryPaths = []string{"/", ".", "./", ""}
)

// OutputDirectory receives expanded documents along with files
// that were copied through unchanged.
type OutputDirectory struct {
	path  string
	files []OutputFile
	ui    UI
}

func NewOutputDirectory(path string, files []OutputFile, ui UI) *OutputDirectory {
	return &OutputDirectory{path, files, ui}
}

func (d *OutputDirectory) Files() []OutputFile { return d.files }

// Write replaces directory contents with output files.
func (d *OutputDirectory) Write() error {
	err := d.checkDestinations()
	if err != nil {
		return err
	}

	err = os.RemoveAll(d.path)
	if err != nil {
		return fmt.Errorf("Removing output directory '%s': %s", d.path, err)
	}

	return d.WriteFiles()
}

// WriteFiles writes output files without clearing the directory first.
func (d *OutputDirectory) WriteFiles() error {
	err := os.MkdirAll(d.path, 0700)
	if err != nil {
		return fmt.Errorf("Creating output directory '%s': %s", d.path, err)
	}

	for _, file := range d.files {
		d.ui.Printf("creating: %s\n", file.Path(d.path))
		d.ui.Debugf("(%d bytes)\n", len(file.Bytes()))

		err := file.Create(d.path)
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *OutputDirectory) checkDestinations() error {
	for _, path := range suspiciousOutputDirectoryPaths {
		if d.path == path {
			return fmt.Errorf("Expected output directory path to not be one of '%s'",
				strings.Join(suspiciousOutputDirectoryPaths, "', '"))
		}
	}

	destinations := map[string]struct{}{}

	for _, file := range d.files {
		relPath := filepath.Clean(filepath.FromSlash(file.RelativePath()))
		if filepath.IsAbs(relPath) || escapesDir(relPath) {
			return fmt.Errorf("Expected output file '%s' to be within output directory", file.RelativePath())
		}
		if _, found := destinations[relPath]; found {
			return fmt.Errorf("Multiple files have same output destination paths: %s", file.RelativePath())
		}
		destinations[relPath] = struct{}{}
	}
	return nil
}
