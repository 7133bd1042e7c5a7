// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/htmlinc/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortedFilesFromPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages", "blog"), 0700))

	for _, path := range []string{"pages/index.html", "pages/blog/post.HTM", "pages/style.css"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, path), []byte(path), 0600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.html"), []byte("single"), 0600))

	result, err := files.NewSortedFilesFromPaths([]string{
		filepath.Join(dir, "pages"), filepath.Join(dir, "single.html"),
	}, files.SymlinkAllowOpts{})
	require.NoError(t, err)

	var relPaths []string
	var templates []bool
	for _, file := range result {
		relPaths = append(relPaths, file.RelativePath())
		templates = append(templates, file.IsTemplate())
	}

	assert.Equal(t, []string{"blog/post.HTM", "index.html", "style.css", "single.html"}, relPaths)
	assert.Equal(t, []bool{true, true, false, true}, templates)
	assert.Equal(t, files.TypeUnknown, result[2].Type())

	data, err := result[1].Bytes()
	require.NoError(t, err)
	assert.Equal(t, "pages/index.html", string(data))
}

func TestNewSortedFilesFromPathsErrors(t *testing.T) {
	_, err := files.NewSortedFilesFromPaths([]string{"/non-existent/index.html"}, files.SymlinkAllowOpts{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Checking file '/non-existent/index.html'")

	dir := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "a.html"), []byte("a"), 0600))
	require.NoError(t, os.Symlink(filepath.Join(outside, "a.html"), filepath.Join(dir, "link.html")))

	_, err = files.NewSortedFilesFromPaths([]string{dir}, files.SymlinkAllowOpts{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "to be allowed, but was not")

	result, err := files.NewSortedFilesFromPaths([]string{dir}, files.SymlinkAllowOpts{AllowedDstPaths: []string{outside}})
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestOutputDirectoryWrite(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(outDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "stale.html"), []byte("stale"), 0600))

	outputs := []files.OutputFile{
		files.NewOutputFile("index.html", []byte("<p>index</p>")),
		files.NewOutputFile("blog/post.html", []byte("<p>post</p>")),
	}

	err := files.NewOutputDirectory(outDir, outputs, quietUI{}).Write()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "blog", "post.html"))
	require.NoError(t, err)
	require.Equal(t, "<p>post</p>", string(data))

	_, err = os.Stat(filepath.Join(outDir, "stale.html"))
	require.True(t, os.IsNotExist(err))
}

func TestOutputDirectoryRejectsDuplicatesAndSuspiciousPaths(t *testing.T) {
	outputs := []files.OutputFile{
		files.NewOutputFile("index.html", nil),
		files.NewOutputFile("index.html", nil),
	}
	err := files.NewOutputDirectory(t.TempDir(), outputs, quietUI{}).Write()
	require.EqualError(t, err, "Multiple files have same output destination paths: index.html")

	err = files.NewOutputDirectory(".", nil, quietUI{}).Write()
	require.EqualError(t, err, "Expected output directory path to not be one of '/', '.', './', ''")

	outputs = []files.OutputFile{files.NewOutputFile("../index.html", nil)}
	err = files.NewOutputDirectory(t.TempDir(), outputs, quietUI{}).Write()
	require.EqualError(t, err, "Expected output file '../index.html' to be within output directory")

	outputs = []files.OutputFile{
		files.NewOutputFile("blog/index.html", nil),
		files.NewOutputFile("blog/./index.html", nil),
	}
	err = files.NewOutputDirectory(t.TempDir(), outputs, quietUI{}).Write()
	require.EqualError(t, err, "Multiple files have same output destination paths: blog/./index.html")
}
