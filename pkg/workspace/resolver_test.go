// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/files"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/htmltemplate"
	"carvel.dev/htmlinc/pkg/locals"
	"carvel.dev/htmlinc/pkg/orderedmap"
	"carvel.dev/htmlinc/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var components = map[string]string{
	"card.html":         `<h1>{{title}}</h1>`,
	"layout.html":       `<div><include src="card.html" locals='{"title":"Nested"}'></div>`,
	"list.html":         `<ul><each loop="item, i in items"><li>{{i}}={{item}}</li></each></ul>`,
	"cycle/a.html":      `A<include src="cycle/b.html">`,
	"cycle/b.html":      `B<include src="cycle/a.html">`,
	"self.html":         `S<include src="./self.html">`,
	"branch/admin.html": `<switch expression="role"><case n="'admin'">all</case><default>some</default></switch>`,
}

func TestResolve(t *testing.T) {
	cases := []struct {
		Desc     string
		Input    string
		Expected string
		Kinds    []htmltemplate.DiagnosticKind
	}{
		{
			Desc:     "include with locals",
			Input:    `<main><include src="card.html" locals='{"title":"Hi"}'></main>`,
			Expected: `<main><h1>Hi</h1></main>`,
		},
		{
			Desc:     "missing component",
			Input:    `<p>before</p><include src="missing.html" /><p>after</p>`,
			Expected: `<p>before</p><include src="missing.html" /><p>after</p>`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.IncludeLoadError},
		},
		{
			Desc:     "malformed locals",
			Input:    `<include src="card.html" locals='{bad'>`,
			Expected: `<h1>{{title}}</h1>`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.StructuredDataError},
		},
		{
			Desc:     "duplicate locals keys",
			Input:    `<include src="card.html" locals='{"title":"a","title":"b"}'>`,
			Expected: `<h1>{{title}}</h1>`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.StructuredDataError},
		},
		{
			Desc:     "nested includes",
			Input:    `<include src="layout.html">`,
			Expected: `<div><h1>Nested</h1></div>`,
		},
		{
			Desc:     "structured locals",
			Input:    `<include src="list.html" locals='{"items":["a","b"]}'>`,
			Expected: `<ul><li>0=a</li><li>1=b</li></ul>`,
		},
		{
			Desc:     "directives within component",
			Input:    `<include src="branch/admin.html" locals='{"role":"admin"}'>|<include src="branch/admin.html" locals='{"role":"guest"}'>`,
			Expected: `all|some`,
		},
		{
			Desc:     "cycle",
			Input:    `<include src="cycle/a.html">`,
			Expected: `AB<include src="cycle/a.html" />`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.IncludeCycleError},
		},
		{
			Desc:     "self include",
			Input:    `<include src="self.html">`,
			Expected: `S<include src="./self.html" />`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.IncludeCycleError},
		},
		{
			Desc:     "include inside loop of top level document",
			Input:    `<each loop="n in range(2)"><include src="card.html" locals='{"title":"x"}'></each>`,
			Expected: `<h1>x</h1><h1>x</h1>`,
		},
		{
			Desc:     "include inside false conditional is never loaded",
			Input:    `<if condition="false"><include src="missing.html"></if>done`,
			Expected: `done`,
		},
		{
			Desc:     "component path outside of components directory",
			Input:    `<include src="../outside.html">`,
			Expected: `<include src="../outside.html" />`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.IncludeLoadError},
		},
		{
			Desc:     "content before include end tag",
			Input:    `<include src="card.html" locals='{"title":"Hi"}'><p>x</p></include>`,
			Expected: `<h1>Hi</h1><p>x</p>`,
		},
		{
			Desc:     "custom element named like include",
			Input:    `<include-card title="x"><p>body</p></include-card><includes></includes>`,
			Expected: `<include-card title="x"><p>body</p></include-card><includes></includes>`,
		},
		{
			Desc:     "include without src",
			Input:    `<include locals='{}'>`,
			Expected: `<include locals='{}' />`,
			Kinds:    []htmltemplate.DiagnosticKind{htmltemplate.DirectiveSyntaxError},
		},
	}

	root := writeComponents(t)

	for _, tc := range cases {
		t.Run(tc.Desc, func(t *testing.T) {
			resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}), workspace.ResolverOpts{}, quietUI())

			doc := mustParse(t, tc.Input)
			diags := resolver.Resolve(doc, locals.NewEmptyEnv())

			assert.Equal(t, tc.Expected, doc.AsString())
			assert.Equal(t, tc.Kinds, kinds(diags), diags.Error())
		})
	}
}

func TestResolveCycleMessage(t *testing.T) {
	root := writeComponents(t)
	resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}), workspace.ResolverOpts{}, quietUI())

	diags := resolver.Resolve(mustParse(t, `<include src="cycle/a.html">`), locals.NewEmptyEnv())
	require.Len(t, diags, 1)
	require.EqualError(t, diags[0].Err, "Expected include chain to not contain cycle: cycle/a.html -> cycle/b.html -> cycle/a.html")
	require.Equal(t, "cycle/b.html:1:2", diags[0].Position.AsCompactString())
}

func TestResolveMissingSrcMessage(t *testing.T) {
	root := writeComponents(t)
	resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}), workspace.ResolverOpts{}, quietUI())

	diags := resolver.Resolve(mustParse(t, `<include scr="card.html"><include src=" ">`), locals.NewEmptyEnv())
	require.Len(t, diags, 2)
	require.EqualError(t, diags[0].Err, "Expected include to have 'src' attribute (hint: found 'scr', is it misspelled?)")
	require.EqualError(t, diags[1].Err, "Expected include to have non-empty 'src' attribute")
}

func TestResolveSingleLevel(t *testing.T) {
	root := writeComponents(t)
	resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}),
		workspace.ResolverOpts{SingleLevel: true}, quietUI())

	doc := mustParse(t, `<include src="layout.html">`)
	diags := resolver.Resolve(doc, locals.NewEmptyEnv())
	require.Empty(t, diags)
	require.Equal(t, `<div><include src="card.html" locals='{"title":"Nested"}' /></div>`, doc.AsString())
}

func TestResolveMaxDepth(t *testing.T) {
	root := writeComponents(t)
	resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}),
		workspace.ResolverOpts{MaxDepth: 1}, quietUI())

	doc := mustParse(t, `<include src="layout.html">`)
	diags := resolver.Resolve(doc, locals.NewEmptyEnv())
	require.Equal(t, []htmltemplate.DiagnosticKind{htmltemplate.IncludeLoadError}, kinds(diags))
	require.EqualError(t, diags[0].Err, "Expected include depth to not exceed 1 (including 'card.html')")
	require.Equal(t, `<div><include src="card.html" locals='{"title":"Nested"}' /></div>`, doc.AsString())
}

func TestResolveUsesRootEnvForDocumentOnly(t *testing.T) {
	root := writeComponents(t)
	resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}), workspace.ResolverOpts{}, quietUI())

	env, err := locals.NewEnv(orderedmap.NewMapWithItems([]orderedmap.MapItem{
		{Key: "title", Value: "root"},
		{Key: "user", Value: "ann"},
	}))
	require.NoError(t, err)

	doc := mustParse(t, `<if condition="user">Hi {{user}}</if><include src="card.html"><title>{{title}}</title>`)
	diags := resolver.Resolve(doc, env)
	require.Empty(t, diags)
	require.Equal(t, `Hi ann<h1>{{title}}</h1><title>root</title>`, doc.AsString())
}

func TestResolveLogsDiagnostics(t *testing.T) {
	root := writeComponents(t)

	var stdout, stderr bytes.Buffer
	tty := ui.NewCustomWriterTTY(true, &stdout, &stderr)

	resolver := workspace.NewResolver(files.NewComponentsDir(root, files.SymlinkAllowOpts{}), workspace.ResolverOpts{}, tty)
	resolver.Resolve(mustParse(t, `<include src="card.html" locals='{"title":"x"}'><include src="missing.html">`), locals.NewEmptyEnv())

	require.Contains(t, stderr.String(), "including card.html (depth 1)\n")
	require.Contains(t, stderr.String(), "Warning: IncludeLoadError: Including 'missing.html': Checking component ")
	require.Empty(t, stdout.String())
}

func writeComponents(t *testing.T) string {
	root := t.TempDir()
	for path, content := range components {
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0700))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0600))
	}
	return root
}

func mustParse(t *testing.T, input string) *htmlmeta.Fragment {
	doc, err := htmlmeta.NewParser(htmlmeta.ParserOpts{NormalizeIncludes: true}).ParseBytes([]byte(input), "index.html")
	require.NoError(t, err)
	return doc
}

func kinds(diags htmltemplate.Diagnostics) []htmltemplate.DiagnosticKind {
	var result []htmltemplate.DiagnosticKind
	for _, diag := range diags {
		result = append(result, diag.Kind)
	}
	return result
}

func quietUI() ui.UI {
	return ui.NewCustomWriterTTY(false, io.Discard, io.Discard)
}
