// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/files"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/htmltemplate"
	"carvel.dev/htmlinc/pkg/locals"
)

const (
	srcAttr    = "src"
	localsAttr = "locals"

	DefaultMaxDepth = 32
)

type ResolverOpts struct {
	// MaxDepth limits nesting of includes within components
	MaxDepth int
	// SingleLevel leaves includes found inside components unresolved
	SingleLevel bool
}

type Resolver struct {
	components *files.ComponentsDir
	opts       ResolverOpts
	expander   *htmltemplate.Expander
	parser     *htmlmeta.Parser
	ui         ui.UI
}

func NewResolver(components *files.ComponentsDir, opts ResolverOpts, ui ui.UI) *Resolver {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Resolver{
		components: components,
		opts:       opts,
		expander:   htmltemplate.NewExpander(ui),
		parser:     htmlmeta.NewParser(htmlmeta.ParserOpts{NormalizeIncludes: true}),
		ui:         ui,
	}
}

// Resolve expands doc in place. Problems never stop resolution;
// they are returned as diagnostics.
func (r *Resolver) Resolve(doc *htmlmeta.Fragment, env *locals.Env) htmltemplate.Diagnostics {
	var diags htmltemplate.Diagnostics

	diags = append(diags, r.expander.Expand(doc, env)...)
	r.resolveIncludes(doc, nil, &diags)

	return diags
}

// resolveIncludes replaces every include under container. chain holds
// paths of components currently being resolved (outermost first).
func (r *Resolver) resolveIncludes(container htmlmeta.Container, chain []string, diags *htmltemplate.Diagnostics) {
	for _, include := range htmlmeta.FindElements(container.GetChildren(), htmltemplate.TagInclude) {
		nodes, resolved := r.resolveInclude(include, chain, diags)
		if resolved {
			htmlmeta.Replace(container, include, nodes)
		}
	}
}

func (r *Resolver) resolveInclude(include *htmlmeta.Element, chain []string,
	diags *htmltemplate.Diagnostics) ([]htmlmeta.Node, bool) {

	src, found := include.GetAttr(srcAttr)
	if !found {
		r.report(diags, htmltemplate.DirectiveSyntaxError, include, htmltemplate.MissingAttrError(include, srcAttr))
		return nil, false
	}
	if len(strings.TrimSpace(src)) == 0 {
		r.report(diags, htmltemplate.DirectiveSyntaxError, include,
			fmt.Errorf("Expected include to have non-empty '%s' attribute", srcAttr))
		return nil, false
	}

	env := r.includeEnv(include, diags)

	path, err := r.components.Path(src)
	if err != nil {
		r.report(diags, htmltemplate.IncludeLoadError, include, err)
		return nil, false
	}

	for i, chainPath := range chain {
		if chainPath == path {
			cycle := append(append([]string{}, chain[i:]...), path)
			r.report(diags, htmltemplate.IncludeCycleError, include, fmt.Errorf(
				"Expected include chain to not contain cycle: %s", r.describeChain(cycle)))
			return nil, false
		}
	}

	if len(chain) >= r.opts.MaxDepth {
		r.report(diags, htmltemplate.IncludeLoadError, include, fmt.Errorf(
			"Expected include depth to not exceed %d (including '%s')", r.opts.MaxDepth, src))
		return nil, false
	}

	_, data, err := r.components.Load(src)
	if err != nil {
		r.report(diags, htmltemplate.IncludeLoadError, include, fmt.Errorf("Including '%s': %s", src, err))
		return nil, false
	}

	fragment, err := r.parser.ParseBytes(data, r.relativePath(path))
	if err != nil {
		r.report(diags, htmltemplate.IncludeLoadError, include, fmt.Errorf("Including '%s': %s", src, err))
		return nil, false
	}

	r.ui.Debugf("including %s (depth %d)\n", r.relativePath(path), len(chain)+1)

	*diags = append(*diags, r.expander.Expand(fragment, env)...)

	if !r.opts.SingleLevel {
		r.resolveIncludes(fragment, append(chain, path), diags)
	}

	return fragment.Children, true
}

// includeEnv decodes the include's locals. Malformed locals fall back
// to an empty environment.
func (r *Resolver) includeEnv(include *htmlmeta.Element, diags *htmltemplate.Diagnostics) *locals.Env {
	payload, found := include.GetAttr(localsAttr)
	if !found || len(strings.TrimSpace(payload)) == 0 {
		return locals.NewEmptyEnv()
	}

	vals, err := locals.ParseJSON(payload)
	if err != nil {
		r.report(diags, htmltemplate.StructuredDataError, include, err)
		return locals.NewEmptyEnv()
	}

	env, err := locals.NewEnv(vals)
	if err != nil {
		r.report(diags, htmltemplate.StructuredDataError, include, err)
		return locals.NewEmptyEnv()
	}
	return env
}

func (r *Resolver) report(diags *htmltemplate.Diagnostics, kind htmltemplate.DiagnosticKind,
	include *htmlmeta.Element, err error) {

	diag := htmltemplate.NewDiagnostic(kind, include, err)
	*diags = append(*diags, diag)

	r.ui.Warnf("Warning: %s (%s)\n", diag.Error(), diag.Position.AsCompactString())
}

func (r *Resolver) relativePath(path string) string {
	relPath, err := filepath.Rel(r.components.Root(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(relPath)
}

func (r *Resolver) describeChain(paths []string) string {
	var result []string
	for _, path := range paths {
		result = append(result, r.relativePath(path))
	}
	return strings.Join(result, " -> ")
}
