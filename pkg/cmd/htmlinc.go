// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/htmlinc/pkg/cmd/template"
	"carvel.dev/htmlinc/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type HtmlincOptions struct{}

func NewDefaultHtmlincOptions() *HtmlincOptions {
	return &HtmlincOptions{}
}

func NewDefaultHtmlincCmd() *cobra.Command {
	return NewHtmlincCmd(NewDefaultHtmlincOptions())
}

func NewHtmlincCmd(o *HtmlincOptions) *cobra.Command {
	cmd := NewTemplateCmd(template.NewOptions())

	cmd.Use = "htmlinc"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "htmlinc expands HTML templates and includes components"
	cmd.Long = `htmlinc expands HTML templates and includes components.

Directives: <if condition>/<else>, <switch expression>/<case n>/<default>,
<each loop="item, index in expr">, {{ name.field }} placeholders and
<include src="component.html" locals='{"json": true}'>.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewTemplateCmd(template.NewOptions())) // for explicitness in scripts
	cmd.AddCommand(NewFmtCmd(NewFmtOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
