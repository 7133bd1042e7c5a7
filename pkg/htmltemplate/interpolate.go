// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"regexp"
	"strings"

	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/locals"
	"github.com/k14s/starlark-go/starlark"
	"golang.org/x/net/html"
)

var (
	placeholderRegexp = regexp.MustCompile(`\{\{\s*([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)\s*\}\}`)
)

// text inside these elements is not entity decoded by browsers
var rawTextElements = map[string]struct{}{
	"script": {}, "style": {},
}

// interpolate substitutes placeholders in text and attribute values.
// Placeholders that do not resolve are kept verbatim.
func (e *expansion) interpolate(nodes []htmlmeta.Node, inRawText bool) {
	for _, node := range nodes {
		if _, found := e.interpolated[node]; found {
			continue
		}

		switch typedNode := node.(type) {
		case *htmlmeta.Text:
			typedNode.Data = e.substitute(typedNode.Data, !inRawText)

		case *htmlmeta.Element:
			if typedNode.Tag == TagInclude {
				continue
			}
			for i, attr := range typedNode.Attrs {
				// printer escapes attribute values
				typedNode.SetAttrAt(i, e.substitute(attr.Val, false))
			}

			_, rawText := rawTextElements[typedNode.Tag]
			e.interpolate(typedNode.Children, rawText)
		}
	}
}

func (e *expansion) substitute(src string, escape bool) string {
	if !strings.Contains(src, "{{") {
		return src
	}

	return placeholderRegexp.ReplaceAllStringFunc(src, func(placeholder string) string {
		path := placeholderRegexp.FindStringSubmatch(placeholder)[1]

		val, found := lookupPath(e.env, path)
		if !found {
			return placeholder
		}

		text := locals.AsText(val)
		if escape {
			text = html.EscapeString(text)
		}
		return text
	})
}

// lookupPath resolves dotted names such as user.address.city
// through attributes or string keyed mappings.
func lookupPath(env *locals.Env, path string) (starlark.Value, bool) {
	pieces := strings.Split(path, ".")

	val, found := env.Lookup(pieces[0])
	if !found {
		return nil, false
	}

	for _, piece := range pieces[1:] {
		switch typedVal := val.(type) {
		// dicts also have attributes (their methods), so keys go first
		case starlark.Mapping:
			itemVal, found, err := typedVal.Get(starlark.String(piece))
			if err != nil || !found {
				return nil, false
			}
			val = itemVal

		case starlark.HasAttrs:
			attrVal, err := typedVal.Attr(piece)
			if err != nil || attrVal == nil {
				return nil, false
			}
			val = attrVal

		default:
			return nil, false
		}
	}

	return val, true
}
