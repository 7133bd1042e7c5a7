// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta_test

import (
	"testing"

	"carvel.dev/htmlinc/pkg/htmlmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIncludeTags(t *testing.T) {
	cases := map[string]string{
		`<include src="a.html">`:                          `<include src="a.html" />`,
		`<include src="a.html" />`:                        `<include src="a.html" />`,
		`<include src="a.html"/>`:                         `<include src="a.html" />`,
		`<include src="a.html"></include>`:                `<include src="a.html" />`,
		`<include>`:                                       `<include />`,
		`<include/>`:                                      `<include />`,
		`<INCLUDE src="a.html">`:                          `<include src="a.html" />`,
		`<include src="a.html" locals='{"t":"a>b"}'>x`:    `<include src="a.html" locals='{"t":"a>b"}' />x`,
		"<include\n  src=\"a.html\"\n>":                   "<include\n  src=\"a.html\" />",
		`<includes src="a.html">`:                         `<includes src="a.html">`,
		`<include-card title="x"><p>b</p></include-card>`: `<include-card title="x"><p>b</p></include-card>`,
		`<p>a</p><include src="b.html"><p>c</p>`:          `<p>a</p><include src="b.html" /><p>c</p>`,
	}

	for input, expected := range cases {
		assert.Equal(t, expected, htmlmeta.NormalizeIncludeTags(input), input)
	}
}

func TestParserDropsLaterIncludeEndTags(t *testing.T) {
	src := `<include src="card.html"><p>x</p></include><b>y</b></b>`

	normalized, err := htmlmeta.NewParser(htmlmeta.ParserOpts{NormalizeIncludes: true}).ParseBytes([]byte(src), "page.html")
	require.NoError(t, err)
	assert.Equal(t, `<include src="card.html" /><p>x</p><b>y</b></b>`, normalized.AsString())

	// without normalization stray end tags are kept as is
	plain, err := htmlmeta.NewParser(htmlmeta.ParserOpts{}).ParseBytes([]byte(`<p>x</p></include>`), "page.html")
	require.NoError(t, err)
	assert.Equal(t, `<p>x</p></include>`, plain.AsString())
}
