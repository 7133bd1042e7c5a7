// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/htmlinc/pkg/cmd/template"
	"github.com/spf13/cobra"
)

// NewTemplateCmd constructs the main htmlinc command. It lives outside of
// "template" package so that "template" package does not carry dependency
// on cobra.
func NewTemplateCmd(o *template.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"t", "tpl"},
		Short:   "Expand directives and includes of HTML documents",
		RunE: func(c *cobra.Command, _ []string) error {
			err := o.LoadConfig(c.Flags())
			if err != nil {
				return err
			}
			return o.Run()
		},
	}
	o.BindFlags(cmd.Flags())
	return cmd
}
