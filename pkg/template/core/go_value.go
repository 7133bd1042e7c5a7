// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"encoding/json"
	"fmt"
	"math"

	"carvel.dev/htmlinc/pkg/orderedmap"
	"github.com/k14s/starlark-go/starlark"
)

// GoValue converts plain Go data (as produced by JSON/TOML decoding)
// into frozen starlark values.
type GoValue struct {
	val interface{}
}

func NewGoValue(val interface{}) GoValue {
	return GoValue{val}
}

func (e GoValue) AsStarlarkValue() (starlark.Value, error) {
	result, err := e.asStarlarkValue(e.val)
	if err != nil {
		return nil, err
	}
	result.Freeze()
	return result, nil
}

func (e GoValue) asStarlarkValue(val interface{}) (starlark.Value, error) {
	switch typedVal := val.(type) {
	case nil:
		return starlark.None, nil

	case starlark.Value:
		return typedVal, nil

	case bool:
		return starlark.Bool(typedVal), nil

	case string:
		return starlark.String(typedVal), nil

	case int:
		return starlark.MakeInt(typedVal), nil

	case int64:
		return starlark.MakeInt64(typedVal), nil

	case uint64:
		return starlark.MakeUint64(typedVal), nil

	case float64:
		return e.floatAsStarlarkValue(typedVal), nil

	case json.Number:
		if i64, err := typedVal.Int64(); err == nil {
			return starlark.MakeInt64(i64), nil
		}
		f64, err := typedVal.Float64()
		if err != nil {
			return nil, fmt.Errorf("Converting number '%s': %s", typedVal, err)
		}
		return starlark.Float(f64), nil

	case *orderedmap.Map:
		return e.mapAsStarlarkValue(typedVal)

	case map[string]interface{}:
		return e.asStarlarkValue(orderedmap.Conversion{Object: typedVal}.FromUnorderedMaps())

	case []interface{}:
		return e.listAsStarlarkValue(typedVal)

	case []string:
		var items []interface{}
		for _, item := range typedVal {
			items = append(items, item)
		}
		return e.listAsStarlarkValue(items)

	default:
		return nil, fmt.Errorf("unknown type %T for conversion to starlark value", val)
	}
}

// floatAsStarlarkValue keeps whole numbers as ints so that
// TOML/JSON sourced values compare equal to int literals in expressions
func (e GoValue) floatAsStarlarkValue(val float64) starlark.Value {
	if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
		return starlark.MakeInt64(int64(val))
	}
	return starlark.Float(val)
}

func (e GoValue) mapAsStarlarkValue(val *orderedmap.Map) (starlark.Value, error) {
	result := NewStarlarkStruct()
	err := val.IterateErr(func(k string, v interface{}) error {
		convertedVal, err := e.asStarlarkValue(v)
		if err != nil {
			return fmt.Errorf("key '%s': %s", k, err)
		}
		result.SetField(k, convertedVal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e GoValue) listAsStarlarkValue(val []interface{}) (*starlark.List, error) {
	result := []starlark.Value{}
	for i, v := range val {
		convertedVal, err := e.asStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %s", i, err)
		}
		result = append(result, convertedVal)
	}
	return starlark.NewList(result), nil
}
