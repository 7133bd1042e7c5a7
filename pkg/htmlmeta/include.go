// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta

import (
	"regexp"
)

const includeTag = "include"

var (
	// attribute values may contain '>' when quoted
	// tag name must end at whitespace, '/' or '>' (<include-card> is a custom element)
	includeTagRegexp = regexp.MustCompile(`(?i)<include((?:\s(?:[^>"']|"[^"]*"|'[^']*')*?)?)\s*/?>(?:</include\s*>)?`)
)

// NormalizeIncludeTags rewrites every include tag into explicitly
// self-closing form so that an unclosed <include ...> never swallows
// following markup as its children. An immediately following </include>
// is dropped here; later ones are dropped by the parser.
func NormalizeIncludeTags(src string) string {
	return includeTagRegexp.ReplaceAllString(src, "<include$1 />")
}
