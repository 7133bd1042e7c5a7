// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/files"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"github.com/spf13/cobra"
)

// FmtOptions rewrites include tags of HTML files into
// self-closing form; everything else is printed as is.
type FmtOptions struct {
	Files []string
	Debug bool
}

func NewFmtOptions() *FmtOptions {
	return &FmtOptions{}
}

func NewFmtCmd(o *FmtOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format include tags of HTML templates",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run(ui.NewTTY(o.Debug)) },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *FmtOptions) Run(ui ui.UI) error {
	t1 := time.Now()
	defer func() { ui.Debugf("total: %s\n", time.Since(t1)) }()

	inputs, err := files.NewSortedFilesFromPaths(o.Files, files.SymlinkAllowOpts{})
	if err != nil {
		return err
	}

	parser := htmlmeta.NewParser(htmlmeta.ParserOpts{NormalizeIncludes: true})

	for _, file := range inputs {
		if !file.IsTemplate() {
			ui.Debugf("skipping %s\n", file.Description())
			continue
		}
		formatted, err := o.format(parser, file)
		if err != nil {
			return err
		}
		ui.Debugf("### %s\n", file.RelativePath())
		ui.Printf("%s", formatted)
	}
	return nil
}

func (o *FmtOptions) format(parser *htmlmeta.Parser, file *files.File) ([]byte, error) {
	data, err := file.Bytes()
	if err != nil {
		return nil, err
	}
	doc, err := parser.ParseBytes(data, file.RelativePath())
	if err != nil {
		return nil, fmt.Errorf("Parsing %s: %s", file.Description(), err)
	}
	return doc.AsBytes(), nil
}
