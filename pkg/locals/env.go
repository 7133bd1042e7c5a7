// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package locals

import (
	"fmt"

	"carvel.dev/htmlinc/pkg/orderedmap"
	"carvel.dev/htmlinc/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

type Binding struct {
	Name  string
	Value starlark.Value
}

type Env struct {
	parent   *Env
	bindings *orderedmap.Map // [string]starlark.Value
}

func NewEmptyEnv() *Env {
	return &Env{bindings: orderedmap.NewMap()}
}

// NewEnv converts plain Go values (typically decoded JSON or TOML)
// into a root scope.
func NewEnv(vals *orderedmap.Map) (*Env, error) {
	env := NewEmptyEnv()
	if vals == nil {
		return env, nil
	}

	err := vals.IterateErr(func(k string, v interface{}) error {
		starlarkVal, err := core.NewGoValue(v).AsStarlarkValue()
		if err != nil {
			return fmt.Errorf("Converting local '%s': %s", k, err)
		}
		env.bindings.Set(k, starlarkVal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return env, nil
}

// Extend returns a child scope; the receiver is left unchanged.
func (e *Env) Extend(bindings ...Binding) *Env {
	child := &Env{parent: e, bindings: orderedmap.NewMap()}
	for _, b := range bindings {
		b.Value.Freeze()
		child.bindings.Set(b.Name, b.Value)
	}
	return child
}

func (e *Env) Lookup(name string) (starlark.Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if val, found := scope.bindings.Get(name); found {
			return val.(starlark.Value), true
		}
	}
	return nil, false
}

// Names returns visible names, outermost scope first.
func (e *Env) Names() []string {
	var scopes []*Env
	for scope := e; scope != nil; scope = scope.parent {
		scopes = append([]*Env{scope}, scopes...)
	}

	seen := map[string]struct{}{}
	var names []string
	for _, scope := range scopes {
		for _, name := range scope.bindings.Keys() {
			if _, found := seen[name]; !found {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}

func (e *Env) Len() int { return len(e.Names()) }

func (e *Env) IsEmpty() bool {
	for scope := e; scope != nil; scope = scope.parent {
		if scope.bindings.Len() > 0 {
			return false
		}
	}
	return true
}

// StringDict flattens all scopes; inner bindings shadow outer ones.
func (e *Env) StringDict() starlark.StringDict {
	result := starlark.StringDict{}
	for _, name := range e.Names() {
		val, _ := e.Lookup(name)
		result[name] = val
	}
	return result
}
