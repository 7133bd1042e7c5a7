// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package locals

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"carvel.dev/htmlinc/pkg/orderedmap"
)

// ParseJSON decodes a locals payload. The payload must be a JSON object;
// object key order is kept and duplicate keys are rejected.
func ParseJSON(payload string) (*orderedmap.Map, error) {
	val, err := ParseJSONValue(payload)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling locals: %s", err)
	}

	result, ok := val.(*orderedmap.Map)
	if !ok {
		return nil, fmt.Errorf("Expected locals to be an object, but was %s", jsonTypeName(val))
	}
	return result, nil
}

// ParseJSONValue decodes any single JSON value. Objects are returned
// as *orderedmap.Map and numbers as json.Number.
func ParseJSONValue(payload string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	val, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return val, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input")
		}
		return nil, err
	}

	switch typedTok := tok.(type) {
	case json.Delim:
		switch typedTok {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter '%s'", typedTok)
		}
	default:
		// string, json.Number, bool, nil
		return typedTok, nil
	}
}

func decodeObject(dec *json.Decoder) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key to be a string")
		}
		if _, found := result.Get(key); found {
			return nil, fmt.Errorf("duplicate key '%s'", key)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key '%s': %s", key, err)
		}
		result.Set(key, val)
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeArray(dec *json.Decoder) ([]interface{}, error) {
	result := []interface{}{}

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %s", len(result), err)
		}
		result = append(result, val)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return result, nil
}

func jsonTypeName(val interface{}) string {
	switch val.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case []interface{}:
		return "an array"
	default:
		return fmt.Sprintf("%T", val)
	}
}
