// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"os"
	"time"

	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/files"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/htmltemplate"
	"carvel.dev/htmlinc/pkg/locals"
	"carvel.dev/htmlinc/pkg/orderedmap"
	"carvel.dev/htmlinc/pkg/workspace"
)

// DefaultConfigFile is picked up from the working directory when
// --config is not given.
const DefaultConfigFile = "htmlinc.toml"

type Options struct {
	Debug      bool
	Strict     bool
	ConfigFile string

	RegularFilesSourceOpts RegularFilesSourceOpts
	IncludeFlags           IncludeFlags
	LocalsFlags            LocalsFlags

	configLocals *orderedmap.Map
}

type TemplateInput struct {
	Files []*files.File
}

type TemplateOutput struct {
	Files       []files.OutputFile
	Diagnostics htmltemplate.Diagnostics
	Err         error
}

func NewOptions() *Options {
	return &Options{}
}

// BindFlags registers all flags with given flag set.
func (o *Options) BindFlags(cmdFlags CmdFlags) {
	cmdFlags.BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmdFlags.BoolVar(&o.Strict, "strict", false, "Fail when any directive or include reports a problem")
	cmdFlags.StringVarP(&o.ConfigFile, "config", "c", "", "TOML config file (defaults to "+DefaultConfigFile+" if present)")
	o.RegularFilesSourceOpts.Set(cmdFlags)
	o.IncludeFlags.Set(cmdFlags)
	o.LocalsFlags.Set(cmdFlags)
}

// LoadConfig reads config file (if any) and applies its values to options
// that were not explicitly set via flags.
func (o *Options) LoadConfig(cmdFlags CmdFlags) error {
	path := o.ConfigFile
	if len(path) == 0 {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return nil
		}
		path = DefaultConfigFile
	}

	config, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}

	config.ApplyTo(o, cmdFlags)
	o.configLocals = config.LocalsMap()
	return nil
}

func (o *Options) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	src := NewRegularFilesSource(o.RegularFilesSourceOpts, o.IncludeFlags.SymlinkAllowOpts, ui)

	if !src.HasInput() {
		return fmt.Errorf("Expected at least one file to be specified via --file")
	}

	in, err := src.Input()
	if err != nil {
		return err
	}

	return src.Output(o.RunWithFiles(in, ui))
}

// RunWithFiles expands every HTML file of input against root locals.
// Other files are passed through unchanged.
func (o *Options) RunWithFiles(in TemplateInput, ui ui.UI) TemplateOutput {
	rootVals, err := o.LocalsFlags.Values(o.configLocals)
	if err != nil {
		return TemplateOutput{Err: err}
	}

	rootEnv, err := locals.NewEnv(rootVals)
	if err != nil {
		return TemplateOutput{Err: fmt.Errorf("Building root locals: %s", err)}
	}

	ui.Debugf("components: %s\n", o.IncludeFlags.ComponentsDirPath())

	resolver := workspace.NewResolver(o.IncludeFlags.ComponentsDir(), o.IncludeFlags.ResolverOpts(), ui)
	parser := htmlmeta.NewParser(htmlmeta.ParserOpts{NormalizeIncludes: true})

	var out TemplateOutput

	for _, file := range in.Files {
		data, err := file.Bytes()
		if err != nil {
			return TemplateOutput{Err: fmt.Errorf("Reading %s: %s", file.Description(), err)}
		}

		if !file.IsTemplate() {
			out.Files = append(out.Files, files.NewOutputFile(file.RelativePath(), data))
			continue
		}

		ui.Debugf("expanding %s\n", file.RelativePath())

		doc, err := parser.ParseBytes(data, file.RelativePath())
		if err != nil {
			return TemplateOutput{Err: fmt.Errorf("Parsing %s: %s", file.Description(), err)}
		}

		out.Diagnostics = append(out.Diagnostics, resolver.Resolve(doc, rootEnv)...)
		out.Files = append(out.Files, files.NewOutputFile(file.RelativePath(), doc.AsBytes()))
	}

	if o.Strict && len(out.Diagnostics) > 0 {
		out.Err = fmt.Errorf("Expanding templates:%s", out.Diagnostics.Error())
	}

	return out
}
