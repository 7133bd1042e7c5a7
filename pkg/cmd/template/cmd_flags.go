// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

// CmdFlags is the subset of *pflag.FlagSet that options register
// themselves with; Changed lets config files fill in unset flags.
type CmdFlags interface {
	BoolVar(p *bool, name string, value bool, usage string)
	IntVar(p *int, name string, value int, usage string)

	StringVar(p *string, name string, value string, usage string)
	StringVarP(p *string, name, shorthand string, value string, usage string)

	StringArrayVar(p *[]string, name string, value []string, usage string)
	StringArrayVarP(p *[]string, name, shorthand string, value []string, usage string)

	StringSliceVar(p *[]string, name string, value []string, usage string)
	StringSliceVarP(p *[]string, name, shorthand string, value []string, usage string)

	Changed(name string) bool
}
