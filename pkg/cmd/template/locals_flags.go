// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"carvel.dev/htmlinc/pkg/locals"
	"carvel.dev/htmlinc/pkg/orderedmap"
)

// LocalsFlags collect root locals from the command line. Keys are dotted
// paths (site.title) addressing nested objects.
type LocalsFlags struct {
	EnvFromStrings []string

	KVsFromStrings []string
	KVsFromJSON    []string
	KVsFromFiles   []string
}

func (s *LocalsFlags) Set(cmdFlags CmdFlags) {
	cmdFlags.StringArrayVar(&s.EnvFromStrings, "locals-env", nil, "Extract locals (as strings) from prefixed env vars (format: PREFIX for PREFIX_site__title=str) (can be specified multiple times)")

	cmdFlags.StringArrayVarP(&s.KVsFromStrings, "local", "v", nil, "Set root local to given value, as string (format: site.title=str) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromJSON, "local-json", nil, "Set root local to given value, parsed as JSON (format: site.pages=[1,2]) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromFiles, "local-file", nil, "Set root local to given file contents, as string (format: site.footer=/file/path) (can be specified multiple times)")
}

type localAssignment struct {
	Key   string
	Value interface{}
}

// Values applies flag provided locals on top of a copy of base (which may be nil).
// Later sources win: env vars, then strings, JSON and file contents.
func (s *LocalsFlags) Values(base *orderedmap.Map) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()
	if base != nil {
		result = base.DeepCopy()
	}

	assignments, err := s.assignments()
	if err != nil {
		return nil, err
	}

	for _, assignment := range assignments {
		err := assignment.applyTo(result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *LocalsFlags) assignments() ([]localAssignment, error) {
	var result []localAssignment

	for _, prefix := range s.EnvFromStrings {
		result = append(result, s.env(prefix)...)
	}

	for _, kv := range s.KVsFromStrings {
		key, val, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("Extracting local from KV: Expected format key=value")
		}
		result = append(result, localAssignment{key, val})
	}

	for _, kv := range s.KVsFromJSON {
		key, rawVal, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("Extracting local from KV: Expected format key=value")
		}
		val, err := locals.ParseJSONValue(rawVal)
		if err != nil {
			return nil, fmt.Errorf("Extracting local from KV: Deserializing value for key '%s': Deserializing JSON value: %s", key, err)
		}
		result = append(result, localAssignment{key, val})
	}

	for _, kv := range s.KVsFromFiles {
		key, path, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("Extracting local from file: Expected format key=/file/path")
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Extracting local from file: Reading file '%s': %s", path, err)
		}
		result = append(result, localAssignment{key, string(contents)})
	}

	return result, nil
}

// env turns PREFIX_site__title=x into site.title=x ('__' stands in for
// '.' since periods may not be liked by shells). Keys are sorted.
func (s *LocalsFlags) env(prefix string) []localAssignment {
	var result []localAssignment

	for _, envVar := range os.Environ() {
		name, val, found := strings.Cut(envVar, "=")
		if !found || !strings.HasPrefix(name, prefix+"_") {
			continue
		}
		key := strings.ReplaceAll(strings.TrimPrefix(name, prefix+"_"), "__", ".")
		result = append(result, localAssignment{key, val})
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

func (a localAssignment) applyTo(result *orderedmap.Map) error {
	keyPieces := strings.Split(a.Key, ".")
	currMap := result

	for _, keyPiece := range keyPieces[:len(keyPieces)-1] {
		subMap, found := currMap.Get(keyPiece)
		if !found {
			newMap := orderedmap.NewMap()
			currMap.Set(keyPiece, newMap)
			currMap = newMap
			continue
		}
		typedSubMap, ok := subMap.(*orderedmap.Map)
		if !ok {
			return fmt.Errorf("Expected key '%s' to not conflict with other locals at piece '%s'", a.Key, keyPiece)
		}
		currMap = typedSubMap
	}

	currMap.Set(keyPieces[len(keyPieces)-1], a.Value)
	return nil
}
