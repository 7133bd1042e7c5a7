// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package locals_test

import (
	"fmt"
	"testing"

	"carvel.dev/htmlinc/pkg/locals"
	"github.com/google/go-cmp/cmp"
	"github.com/k14s/starlark-go/starlark"
	"github.com/stretchr/testify/require"
)

func TestEnvExtendDoesNotMutateParent(t *testing.T) {
	vals, err := locals.ParseJSON(`{"title": "Hi", "x": 1}`)
	require.NoError(t, err)

	parent, err := locals.NewEnv(vals)
	require.NoError(t, err)

	first := parent.Extend(locals.Binding{Name: "x", Value: starlark.MakeInt(10)}, locals.Binding{Name: "i", Value: starlark.MakeInt(0)})
	second := parent.Extend(locals.Binding{Name: "x", Value: starlark.MakeInt(20)}, locals.Binding{Name: "i", Value: starlark.MakeInt(1)})

	val, found := parent.Lookup("x")
	require.True(t, found)
	require.Equal(t, "1", val.String())

	_, found = parent.Lookup("i")
	require.False(t, found)

	val, _ = first.Lookup("x")
	require.Equal(t, "10", val.String())
	val, _ = second.Lookup("x")
	require.Equal(t, "20", val.String())

	if diff := cmp.Diff([]string{"title", "x", "i"}, first.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 3, first.Len())
	require.Equal(t, 2, parent.Len())

	dict := second.StringDict()
	require.Equal(t, "20", dict["x"].String())
	require.Equal(t, `"Hi"`, dict["title"].String())
}

func TestEnvIsEmpty(t *testing.T) {
	env := locals.NewEmptyEnv()
	require.True(t, env.IsEmpty())
	require.True(t, env.Extend().IsEmpty())
	require.False(t, env.Extend(locals.Binding{Name: "a", Value: starlark.None}).IsEmpty())

	env, err := locals.NewEnv(nil)
	require.NoError(t, err)
	require.True(t, env.IsEmpty())
}

func TestParseJSON(t *testing.T) {
	vals, err := locals.ParseJSON(`{"b": [1, 2.5, "s", true, null], "a": {"z": 1, "y": 2}}`)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, vals.Keys())

	nested, found := vals.Get("a")
	require.True(t, found)
	require.Equal(t, []string{"z", "y"}, nested.(interface{ Keys() []string }).Keys())
}

func TestParseJSONErrors(t *testing.T) {
	cases := []struct {
		payload string
		err     string
	}{
		{`{"title":}`, "Unmarshaling locals: key 'title': invalid character '}' looking for beginning of value"},
		{`{"a": 1, "a": 2}`, "Unmarshaling locals: duplicate key 'a'"},
		{`[1, 2]`, "Expected locals to be an object, but was an array"},
		{`"str"`, "Expected locals to be an object, but was a string"},
		{``, "Unmarshaling locals: unexpected end of input"},
		{`{"a": 1} {"b": 2}`, "Unmarshaling locals: unexpected data after top-level value"},
	}

	for _, tc := range cases {
		t.Run(tc.payload, func(t *testing.T) {
			_, err := locals.ParseJSON(tc.payload)
			require.EqualError(t, err, tc.err)
		})
	}
}

func TestParseJSONValue(t *testing.T) {
	val, err := locals.ParseJSONValue(`[1, {"k": "v"}]`)
	require.NoError(t, err)
	require.Len(t, val, 2)

	val, err = locals.ParseJSONValue(` 42 `)
	require.NoError(t, err)
	require.Equal(t, "42", fmt.Sprintf("%v", val))

	_, err = locals.ParseJSONValue(`1 2`)
	require.EqualError(t, err, "unexpected data after top-level value")
}
