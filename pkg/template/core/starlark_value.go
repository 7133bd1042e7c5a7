// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"carvel.dev/htmlinc/pkg/orderedmap"
	"github.com/k14s/starlark-go/starlark"
	"github.com/k14s/starlark-go/starlarkstruct"
)

// StarlarkValue converts an expression result back into plain Go data
// (nil, bool, string, int64/uint64, float64, []interface{}, *orderedmap.Map)
// so that it can be rendered as JSON.
type StarlarkValue struct {
	val starlark.Value
}

func NewStarlarkValue(val starlark.Value) StarlarkValue {
	return StarlarkValue{val}
}

func (e StarlarkValue) AsGoValue() (interface{}, error) {
	return asGoValue(e.val)
}

func asGoValue(val starlark.Value) (interface{}, error) {
	switch typedVal := val.(type) {
	case nil, starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(typedVal), nil

	case starlark.String:
		return string(typedVal), nil

	case starlark.Int:
		if i64, ok := typedVal.Int64(); ok {
			return i64, nil
		}
		if u64, ok := typedVal.Uint64(); ok {
			return u64, nil
		}
		return nil, fmt.Errorf("integer %s does not fit into 64 bits", typedVal)

	case starlark.Float:
		return float64(typedVal), nil

	case *StarlarkStruct:
		return attrsAsGoMap(typedVal)

	case *starlarkstruct.Struct:
		return attrsAsGoMap(typedVal)

	case starlark.IterableMapping:
		// dicts: keys become object keys
		result := orderedmap.NewMap()
		for _, item := range typedVal.Items() {
			key, itemVal := item[0], item[1]
			goVal, err := asGoValue(itemVal)
			if err != nil {
				return nil, err
			}
			if strKey, ok := key.(starlark.String); ok {
				result.Set(string(strKey), goVal)
			} else {
				result.Set(key.String(), goVal)
			}
		}
		return result, nil

	case starlark.Iterable:
		// lists, tuples, sets and ranges
		iter := typedVal.Iterate()
		defer iter.Done()

		result := []interface{}{}
		var item starlark.Value
		for iter.Next(&item) {
			goVal, err := asGoValue(item)
			if err != nil {
				return nil, err
			}
			result = append(result, goVal)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unknown type %s for conversion to go value", val.Type())
	}
}

// attrsAsGoMap keeps attribute order as reported by AttrNames.
func attrsAsGoMap(val starlark.HasAttrs) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()
	for _, name := range val.AttrNames() {
		attrVal, err := val.Attr(name)
		if err != nil {
			return nil, err
		}
		goVal, err := asGoValue(attrVal)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': %s", name, err)
		}
		result.Set(name, goVal)
	}
	return result, nil
}
