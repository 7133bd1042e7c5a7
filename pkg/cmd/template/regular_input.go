// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/files"
)

type RegularFilesSourceOpts struct {
	files  []string
	output string
}

func (s *RegularFilesSourceOpts) Set(cmdFlags CmdFlags) {
	cmdFlags.StringSliceVarP(&s.files, "file", "f", nil, "File (ie local path, directory, HTTP URL, -) (can be specified multiple times)")
	cmdFlags.StringVarP(&s.output, "output", "o", "", "Directory for output")
}

type RegularFilesSource struct {
	opts        RegularFilesSourceOpts
	symlinkOpts files.SymlinkAllowOpts
	ui          ui.UI
}

func NewRegularFilesSource(opts RegularFilesSourceOpts, symlinkOpts files.SymlinkAllowOpts, ui ui.UI) *RegularFilesSource {
	return &RegularFilesSource{opts, symlinkOpts, ui}
}

func (s *RegularFilesSource) HasInput() bool { return len(s.opts.files) > 0 }

func (s *RegularFilesSource) Input() (TemplateInput, error) {
	filesToProcess, err := files.NewSortedFilesFromPaths(s.opts.files, s.symlinkOpts)
	if err != nil {
		return TemplateInput{}, err
	}
	return TemplateInput{Files: filesToProcess}, nil
}

func (s *RegularFilesSource) Output(out TemplateOutput) error {
	if out.Err != nil {
		return out.Err
	}

	if len(s.opts.output) > 0 {
		return files.NewOutputDirectory(s.opts.output, out.Files, s.ui).Write()
	}

	var docFile *files.OutputFile
	for i, file := range out.Files {
		if !file.IsTemplate() {
			continue
		}
		if docFile != nil {
			return fmt.Errorf("Expected exactly one HTML document when printing to stdout (use --output for multiple), but found '%s' and '%s'",
				docFile.RelativePath(), file.RelativePath())
		}
		docFile = &out.Files[i]
	}

	if docFile == nil {
		return fmt.Errorf("Expected to find an HTML document to print, but found none")
	}

	s.ui.Debugf("### result\n")
	s.ui.Printf("%s", docFile.Bytes()) // no newline

	return nil
}
