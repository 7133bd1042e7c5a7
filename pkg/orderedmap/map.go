// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"bytes"
	"encoding/json"
)

// Map keeps string keys in insertion order.
type Map struct {
	keys   []string
	values map[string]interface{}
}

type MapItem struct {
	Key   string
	Value interface{}
}

func NewMap() *Map {
	return &Map{values: map[string]interface{}{}}
}

func NewMapWithItems(items []MapItem) *Map {
	m := NewMap()
	for _, item := range items {
		m.Set(item.Key, item.Value)
	}
	return m
}

// Set overrides value of an existing key in place (keeping its position)
// or appends a new key.
func (m *Map) Set(key string, value interface{}) {
	if _, found := m.values[key]; !found {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (interface{}, bool) {
	val, found := m.values[key]
	return val, found
}

func (m *Map) Delete(key string) bool {
	if _, found := m.values[key]; !found {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *Map) Iterate(iterFunc func(k string, v interface{})) {
	for _, key := range m.keys {
		iterFunc(key, m.values[key])
	}
}

func (m *Map) IterateErr(iterFunc func(k string, v interface{}) error) error {
	for _, key := range m.keys {
		err := iterFunc(key, m.values[key])
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int { return len(m.keys) }

// DeepCopy copies nested *Map and []interface{} values; other values are shared.
func (m *Map) DeepCopy() *Map {
	result := NewMap()
	m.Iterate(func(k string, v interface{}) {
		result.Set(k, deepCopyValue(v))
	})
	return result
}

func deepCopyValue(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case *Map:
		return typedVal.DeepCopy()
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = deepCopyValue(item)
		}
		return result
	default:
		return val
	}
}

var _ json.Marshaler = &Map{}

// MarshalJSON encodes keys in their insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBs, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valBs, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyBs)
		buf.WriteByte(':')
		buf.Write(valBs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
