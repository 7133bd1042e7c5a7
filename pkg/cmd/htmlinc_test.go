// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/htmlinc/pkg/cmd"
	"carvel.dev/htmlinc/pkg/cmd/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHtmlincCmdStructure(t *testing.T) {
	command := cmd.NewDefaultHtmlincCmd()

	assert.Equal(t, "htmlinc", command.Use)

	var names []string
	for _, sub := range command.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"fmt", "template", "version"}, names)

	for _, flag := range []string{"file", "output", "root", "components-path", "local", "local-json",
		"local-file", "locals-env", "config", "max-include-depth", "single-level-includes", "strict", "debug"} {
		assert.NotNil(t, command.Flags().Lookup(flag), flag)
	}
}

func TestHtmlincCmdRejectsExtraArgs(t *testing.T) {
	command := cmd.NewDefaultHtmlincCmd()
	command.SetArgs([]string{"extra"})
	command.SetOut(io.Discard)
	command.SetErr(io.Discard)

	require.Error(t, command.Execute())
}

func TestFmtNormalizesIncludes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path,
		[]byte(`<main><include src="a.html"><p>x</p><include src="b.html"></include></main>`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`<include src="a.html">`), 0600))

	var stdout bytes.Buffer
	opts := cmd.NewFmtOptions()
	opts.Files = []string{dir}

	require.NoError(t, opts.Run(ui.NewCustomWriterTTY(false, &stdout, io.Discard)))
	assert.Equal(t, `<main><include src="a.html" /><p>x</p><include src="b.html" /></main>`, stdout.String())
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, cmd.NewVersionOptions().Run(ui.NewCustomWriterTTY(false, &stdout, io.Discard)))
	assert.Equal(t, "htmlinc version develop\n", stdout.String())
}
