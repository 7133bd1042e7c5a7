// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

type Source interface {
	Description() string
	RelativePath() (string, error)
	Bytes() ([]byte, error)
}

var _ []Source = []Source{BytesSource{}, StdinSource{},
	LocalSource{}, HTTPSource{}, &CachedSource{}}

type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }
func (s BytesSource) Bytes() ([]byte, error)        { return s.data, nil }

const stdinPath = "stdin.html"

// StdinSource holds standard input, which can be consumed only once
// per process.
type StdinSource struct {
	bytes []byte
	err   error
}

var stdinConsumed atomic.Bool

func NewStdinSource() StdinSource {
	if stdinConsumed.Swap(true) {
		return StdinSource{err: fmt.Errorf("Standard input has already been read, has the '-' argument been used more than once?")}
	}
	bs, err := io.ReadAll(os.Stdin)
	return StdinSource{bs, err}
}

func (s StdinSource) Description() string           { return stdinPath }
func (s StdinSource) RelativePath() (string, error) { return stdinPath, nil }
func (s StdinSource) Bytes() ([]byte, error)        { return s.bytes, s.err }

// LocalSource is a file on disk. When it was found by walking dir,
// its relative path is computed against dir; otherwise it is the base name.
type LocalSource struct {
	path string
	dir  string
}

func NewLocalSource(path, dir string) LocalSource { return LocalSource{path, dir} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }

func (s LocalSource) RelativePath() (string, error) {
	if len(s.dir) == 0 {
		return filepath.Base(s.path), nil
	}

	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(absDir, absPath)
	if err != nil || escapesDir(relPath) {
		return "", fmt.Errorf("Expected file '%s' to be within directory '%s'", s.path, s.dir)
	}
	return filepath.ToSlash(relPath), nil
}

func (s LocalSource) Bytes() ([]byte, error) { return os.ReadFile(s.path) }

// HTTPSource fetches a document with GET; non-2xx responses are errors.
type HTTPSource struct {
	url    string
	Client *http.Client
}

func NewHTTPSource(url string) HTTPSource { return HTTPSource{url, &http.Client{}} }

func (s HTTPSource) Description() string {
	return fmt.Sprintf("HTTP URL '%s'", s.url)
}

// RelativePath is the last URL path segment (query excluded),
// or index.html for directory-like URLs.
func (s HTTPSource) RelativePath() (string, error) {
	parsedURL, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("Parsing URL '%s': %s", s.url, err)
	}
	if len(parsedURL.Path) == 0 || strings.HasSuffix(parsedURL.Path, "/") {
		return "index.html", nil
	}
	return path.Base(parsedURL.Path), nil
}

func (s HTTPSource) Bytes() ([]byte, error) {
	resp, err := s.Client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Reading URL '%s': %s", s.url, err)
	}
	return result, nil
}

// CachedSource reads underlying source at most once; the included
// component cache shares one per fragment path.
type CachedSource struct {
	src Source

	once  sync.Once
	bytes []byte
	err   error
}

func NewCachedSource(src Source) *CachedSource { return &CachedSource{src: src} }

func (s *CachedSource) Description() string           { return s.src.Description() }
func (s *CachedSource) RelativePath() (string, error) { return s.src.RelativePath() }

func (s *CachedSource) Bytes() ([]byte, error) {
	s.once.Do(func() { s.bytes, s.err = s.src.Bytes() })
	return s.bytes, s.err
}
