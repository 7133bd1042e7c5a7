// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"github.com/k14s/starlark-go/starlark"
)

// StarlarkStruct exposes an object decoded from locals to expressions.
// Fields are reachable both as attributes (user.name) and by key (user["name"]);
// iteration yields keys in their original order.
type StarlarkStruct struct {
	keys   []string
	fields map[string]starlark.Value
	frozen bool
}

var _ starlark.HasAttrs = (*StarlarkStruct)(nil)
var _ starlark.IterableMapping = (*StarlarkStruct)(nil)
var _ starlark.Sequence = (*StarlarkStruct)(nil)

func NewStarlarkStruct() *StarlarkStruct {
	return &StarlarkStruct{fields: map[string]starlark.Value{}}
}

// SetField keeps the position of an existing key.
func (s *StarlarkStruct) SetField(key string, val starlark.Value) {
	if s.frozen {
		panic(fmt.Sprintf("setting field '%s' of frozen struct", key))
	}
	if _, found := s.fields[key]; !found {
		s.keys = append(s.keys, key)
	}
	s.fields[key] = val
}

func (s *StarlarkStruct) String() string        { return "struct(...)" }
func (s *StarlarkStruct) Type() string          { return "struct" }
func (s *StarlarkStruct) Truth() starlark.Bool  { return len(s.keys) > 0 }
func (s *StarlarkStruct) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: struct") }
func (s *StarlarkStruct) Len() int              { return len(s.keys) }

func (s *StarlarkStruct) Freeze() {
	if s.frozen {
		return
	}
	s.frozen = true
	for _, val := range s.fields {
		val.Freeze()
	}
}

// Attr returns (nil, nil) for missing fields so that starlark reports
// its own "has no .x field" error.
func (s *StarlarkStruct) Attr(name string) (starlark.Value, error) {
	return s.fields[name], nil
}

// AttrNames must not be modified by callers.
func (s *StarlarkStruct) AttrNames() []string { return s.keys }

func (s *StarlarkStruct) Get(key starlark.Value) (starlark.Value, bool, error) {
	name, ok := key.(starlark.String)
	if !ok {
		return nil, false, fmt.Errorf("expected key `%s` to be a string but is a %s", key, key.Type())
	}
	if val, found := s.fields[string(name)]; found {
		return val, true, nil
	}
	return starlark.None, false, nil
}

func (s *StarlarkStruct) Items() []starlark.Tuple {
	items := make([]starlark.Tuple, 0, len(s.keys))
	for _, key := range s.keys {
		items = append(items, starlark.Tuple{starlark.String(key), s.fields[key]})
	}
	return items
}

func (s *StarlarkStruct) Iterate() starlark.Iterator {
	return &structKeyIterator{keys: s.keys}
}

type structKeyIterator struct {
	keys []string
}

func (it *structKeyIterator) Next(p *starlark.Value) bool {
	if len(it.keys) == 0 {
		return false
	}
	*p = starlark.String(it.keys[0])
	it.keys = it.keys[1:]
	return true
}

func (it *structKeyIterator) Done() {}
