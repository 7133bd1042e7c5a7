// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/eval"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/locals"
)

const (
	TagIf      = "if"
	TagElse    = "else"
	TagSwitch  = "switch"
	TagCase    = "case"
	TagDefault = "default"
	TagEach    = "each"
	TagInclude = "include"
)

// Expander resolves directives of a single fragment. Include elements
// are left for the caller (see workspace.Resolver).
type Expander struct {
	evaluator eval.Evaluator
	ui        ui.UI
}

func NewExpander(ui ui.UI) *Expander {
	return &Expander{evaluator: eval.NewEvaluator(), ui: ui}
}

// Expand rewrites container's children in place. Passes run in a fixed
// order: conditionals, switches, loops, then placeholder interpolation.
func (e *Expander) Expand(container htmlmeta.Container, env *locals.Env) Diagnostics {
	var diags Diagnostics
	e.expand(container, env, &diags)
	return diags
}

func (e *Expander) expand(container htmlmeta.Container, env *locals.Env, diags *Diagnostics) {
	exp := &expansion{
		expander:     e,
		env:          env,
		diags:        diags,
		interpolated: map[htmlmeta.Node]struct{}{},
	}

	container.SetChildren(exp.conditionals(container.GetChildren()))
	container.SetChildren(exp.switches(container.GetChildren()))
	container.SetChildren(exp.loops(container.GetChildren()))

	if !env.IsEmpty() {
		exp.interpolate(container.GetChildren(), false)
	}
}

// expansion holds state of one Expand call over one fragment.
type expansion struct {
	expander *Expander
	env      *locals.Env
	diags    *Diagnostics

	// loop iteration output that was already interpolated with loop bindings
	interpolated map[htmlmeta.Node]struct{}
}

func (e *expansion) report(kind DiagnosticKind, elem *htmlmeta.Element, err error) {
	diag := NewDiagnostic(kind, elem, err)
	*e.diags = append(*e.diags, diag)

	e.expander.ui.Warnf("Warning: %s (%s)\n", diag.Error(), diag.Position.AsCompactString())
}
