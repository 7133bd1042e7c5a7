// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

type OutputFile struct {
	relativePath string
	data         []byte
}

func NewOutputFile(relativePath string, data []byte) OutputFile {
	return OutputFile{relativePath, data}
}

func (f OutputFile) RelativePath() string { return f.relativePath }
func (f OutputFile) Bytes() []byte        { return f.data }
func (f OutputFile) IsTemplate() bool     { return typeOfPath(f.relativePath) == TypeHTML }

// Path joins the slash separated relative path onto dir.
func (f OutputFile) Path(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(f.relativePath))
}

// Create replaces the file atomically so readers never observe partial output.
func (f OutputFile) Create(dir string) error {
	path := f.Path(dir)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("Creating directory for '%s': %s", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(f.data)); err != nil {
		return fmt.Errorf("Writing file '%s': %s", path, err)
	}
	return nil
}
