// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"strings"
)

var operatorAliases = []struct {
	from string
	to   string
}{
	// longer first
	{"===", "=="},
	{"!==", "!="},
	{"==", "=="},
	{"!=", "!="},
	{"&&", " and "},
	{"||", " or "},
	{"!", " not "},
}

// NormalizeOperators rewrites JS-style operators that appear outside of
// string literals into their starlark equivalents.
func NormalizeOperators(expr string) string {
	var result strings.Builder
	var quote byte

	for i := 0; i < len(expr); {
		ch := expr[i]

		if quote != 0 {
			result.WriteByte(ch)
			if ch == '\\' && i+1 < len(expr) {
				result.WriteByte(expr[i+1])
				i += 2
				continue
			}
			if ch == quote {
				quote = 0
			}
			i++
			continue
		}

		if ch == '"' || ch == '\'' {
			quote = ch
			result.WriteByte(ch)
			i++
			continue
		}

		matched := false
		for _, alias := range operatorAliases {
			if strings.HasPrefix(expr[i:], alias.from) {
				result.WriteString(alias.to)
				i += len(alias.from)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(ch)
			i++
		}
	}

	return result.String()
}
