// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"path/filepath"
	"strings"

	"carvel.dev/htmlinc/pkg/orderedmap"
	"carvel.dev/htmlinc/pkg/version"
	"github.com/BurntSushi/toml"
	semver "github.com/hashicorp/go-version"
)

const (
	developVersion  = "develop"
	localsConfigKey = "locals"
)

// Config is the TOML project configuration (typically htmlinc.toml).
// Flags given on the command line take precedence over its values.
type Config struct {
	Root                string                 `toml:"root"`
	ComponentsPath      string                 `toml:"components_path"`
	MaxIncludeDepth     int                    `toml:"max_include_depth"`
	SingleLevelIncludes bool                   `toml:"single_level_includes"`
	Strict              bool                   `toml:"strict"`
	MinVersion          string                 `toml:"min_version"`
	Locals              map[string]interface{} `toml:"locals"`

	md toml.MetaData
}

func NewConfigFromFile(path string) (*Config, error) {
	var config Config

	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("Reading config file '%s': %s", path, err)
	}

	var unknownKeys []string
	for _, key := range md.Undecoded() {
		if len(key) > 0 && key[0] == localsConfigKey {
			continue
		}
		unknownKeys = append(unknownKeys, key.String())
	}
	if len(unknownKeys) > 0 {
		return nil, fmt.Errorf("Reading config file '%s': Unknown keys: %s", path, strings.Join(unknownKeys, ", "))
	}

	if len(config.Root) > 0 && !filepath.IsAbs(config.Root) {
		config.Root = filepath.Join(filepath.Dir(path), config.Root)
	}

	config.md = md

	err = config.CheckMinVersion(version.Version)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// CheckMinVersion makes sure that binary version satisfies min_version.
// Development builds are always allowed.
func (c *Config) CheckMinVersion(binaryVersion string) error {
	if len(c.MinVersion) == 0 || binaryVersion == developVersion {
		return nil
	}

	minVer, err := semver.NewVersion(strings.TrimPrefix(c.MinVersion, "v"))
	if err != nil {
		return fmt.Errorf("Parsing min_version '%s': %s", c.MinVersion, err)
	}

	binaryVer, err := semver.NewVersion(strings.TrimPrefix(binaryVersion, "v"))
	if err != nil {
		return fmt.Errorf("Parsing binary version '%s': %s", binaryVersion, err)
	}

	if binaryVer.LessThan(minVer) {
		return fmt.Errorf("Expected htmlinc version to be >= %s, but was %s", minVer, binaryVer)
	}
	return nil
}

// ApplyTo copies configured values into options unless corresponding
// flags were explicitly set.
func (c *Config) ApplyTo(o *Options, cmdFlags CmdFlags) {
	if len(c.Root) > 0 && !cmdFlags.Changed("root") {
		o.IncludeFlags.Root = c.Root
	}
	if len(c.ComponentsPath) > 0 && !cmdFlags.Changed("components-path") {
		o.IncludeFlags.ComponentsPath = c.ComponentsPath
	}
	if c.isDefined("max_include_depth") && !cmdFlags.Changed("max-include-depth") {
		o.IncludeFlags.MaxDepth = c.MaxIncludeDepth
	}
	if c.isDefined("single_level_includes") && !cmdFlags.Changed("single-level-includes") {
		o.IncludeFlags.SingleLevel = c.SingleLevelIncludes
	}
	if c.isDefined("strict") && !cmdFlags.Changed("strict") {
		o.Strict = c.Strict
	}
}

// LocalsMap returns [locals] table with keys sorted (TOML tables are unordered
// once decoded).
func (c *Config) LocalsMap() *orderedmap.Map {
	if len(c.Locals) == 0 {
		return nil
	}
	return orderedmap.Conversion{Object: c.Locals}.FromUnorderedMaps().(*orderedmap.Map)
}

func (c *Config) isDefined(key string) bool {
	return c.md.IsDefined(key)
}
