// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package locals

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"carvel.dev/htmlinc/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

// AsText returns the textual form of a value as it is substituted into
// markup: strings as is, numbers in shortest decimal form, true/false,
// null, and lists or objects as JSON.
func AsText(val starlark.Value) string {
	switch typedVal := val.(type) {
	case nil, starlark.NoneType:
		return "null"
	case starlark.String:
		return string(typedVal)
	case starlark.Bool:
		return strconv.FormatBool(bool(typedVal))
	case starlark.Int:
		return typedVal.String()
	case starlark.Float:
		return strconv.FormatFloat(float64(typedVal), 'f', -1, 64)
	}

	goVal, err := core.NewStarlarkValue(val).AsGoValue()
	if err != nil {
		// functions and other host values have no data form
		return val.String()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err = enc.Encode(goVal)
	if err != nil {
		return val.String()
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
