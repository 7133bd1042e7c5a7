// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var htmlExts = []string{".html", ".htm"}

type Type int

const (
	TypeUnknown Type = iota
	TypeHTML
)

type File struct {
	src     Source
	relPath string
}

// NewSortedFilesFromPaths expands directories (recursively) and returns
// files in a stable order. "-" reads stdin; http(s) URLs are fetched.
func NewSortedFilesFromPaths(paths []string, opts SymlinkAllowOpts) ([]*File, error) {
	var result []*File

	for _, path := range paths {
		srcs, err := sourcesForPath(path, opts)
		if err != nil {
			return nil, err
		}
		for _, src := range srcs {
			file, err := NewFileFromSource(src)
			if err != nil {
				return nil, err
			}
			result = append(result, file)
		}
	}

	return result, nil
}

func sourcesForPath(path string, opts SymlinkAllowOpts) ([]Source, error) {
	if path == "-" {
		return []Source{NewStdinSource()}, nil
	}
	if isURL(path) {
		return []Source{NewHTTPSource(path)}, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("Checking file '%s': %s", path, err)
	}
	if !info.IsDir() {
		if err := checkSymlink(path, info, opts); err != nil {
			return nil, err
		}
		return []Source{NewLocalSource(path, "")}, nil
	}

	walked, err := walkDir(path, opts)
	if err != nil {
		return nil, fmt.Errorf("Listing files '%s': %s", path, err)
	}

	srcs := make([]Source, 0, len(walked))
	for _, walkedPath := range walked {
		srcs = append(srcs, NewLocalSource(walkedPath, path))
	}
	return srcs, nil
}

// walkDir lists regular files (and allowed symlinks) under dir, sorted.
func walkDir(dir string, opts SymlinkAllowOpts) ([]string, error) {
	var result []string

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := checkSymlink(path, info, opts); err != nil {
			return err
		}
		result = append(result, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result)
	return result, nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: relPath}, nil
}

func MustNewFileFromSource(fileSrc Source) *File {
	file, err := NewFileFromSource(fileSrc)
	if err != nil {
		panic(err)
	}
	return file
}

func (r *File) Description() string    { return r.src.Description() }
func (r *File) RelativePath() string   { return r.relPath }
func (r *File) Bytes() ([]byte, error) { return r.src.Bytes() }

func (r *File) Type() Type { return typeOfPath(r.relPath) }

func (r *File) IsTemplate() bool { return r.Type() == TypeHTML }

func typeOfPath(path string) Type {
	if matchesExt(path, htmlExts) {
		return TypeHTML
	}
	return TypeUnknown
}

func matchesExt(path string, exts []string) bool {
	filename := strings.ToLower(filepath.Base(path))
	for _, ext := range exts {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
