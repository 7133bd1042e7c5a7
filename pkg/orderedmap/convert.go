// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"fmt"
	"sort"
)

// Conversion turns decoded data (e.g. from TOML) into ordered form.
type Conversion struct {
	Object interface{}
}

// FromUnorderedMaps returns a copy of Object where every native map is
// turned into *Map with keys sorted (native maps carry no order).
// Input is not modified.
func (c Conversion) FromUnorderedMaps() interface{} {
	return fromUnordered(c.Object)
}

func fromUnordered(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case map[string]interface{}:
		return sortedMap(typedVal)

	case map[interface{}]interface{}:
		strMap := make(map[string]interface{}, len(typedVal))
		for k, v := range typedVal {
			strMap[fmt.Sprint(k)] = v
		}
		return sortedMap(strMap)

	case []map[string]interface{}:
		// arrays of tables
		items := make([]interface{}, 0, len(typedVal))
		for _, item := range typedVal {
			items = append(items, sortedMap(item))
		}
		return items

	case []interface{}:
		items := make([]interface{}, 0, len(typedVal))
		for _, item := range typedVal {
			items = append(items, fromUnordered(item))
		}
		return items

	default:
		return val
	}
}

func sortedMap(m map[string]interface{}) *Map {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := NewMap()
	for _, k := range keys {
		result.Set(k, fromUnordered(m[k]))
	}
	return result
}
