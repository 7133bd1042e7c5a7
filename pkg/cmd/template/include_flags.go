// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"path/filepath"

	"carvel.dev/htmlinc/pkg/files"
	"carvel.dev/htmlinc/pkg/workspace"
)

const (
	DefaultRoot           = "."
	DefaultComponentsPath = "/components/"
)

type IncludeFlags struct {
	Root           string
	ComponentsPath string
	MaxDepth       int
	SingleLevel    bool

	SymlinkAllowOpts files.SymlinkAllowOpts
}

func (s *IncludeFlags) Set(cmdFlags CmdFlags) {
	cmdFlags.StringVar(&s.Root, "root", DefaultRoot, "Project root directory")
	cmdFlags.StringVar(&s.ComponentsPath, "components-path", DefaultComponentsPath, "Components directory, relative to project root")
	cmdFlags.IntVar(&s.MaxDepth, "max-include-depth", workspace.DefaultMaxDepth, "Maximum nesting of includes within components")
	cmdFlags.BoolVar(&s.SingleLevel, "single-level-includes", false, "Leave includes found within components unresolved")

	cmdFlags.BoolVar(&s.SymlinkAllowOpts.AllowAll, "dangerous-allow-all-symlink-destinations", false,
		"Symlinks to all destinations are allowed")
	cmdFlags.StringSliceVar(&s.SymlinkAllowOpts.AllowedDstPaths, "allow-symlink-destination", nil,
		"File paths to which symlinks are allowed (can be specified multiple times)")
}

// ComponentsDirPath joins components path onto root (a leading slash
// in components path does not make it absolute).
func (s *IncludeFlags) ComponentsDirPath() string {
	return filepath.Join(s.Root, filepath.FromSlash(s.ComponentsPath))
}

func (s *IncludeFlags) ComponentsDir() *files.ComponentsDir {
	return files.NewComponentsDir(s.ComponentsDirPath(), s.SymlinkAllowOpts)
}

func (s *IncludeFlags) ResolverOpts() workspace.ResolverOpts {
	return workspace.ResolverOpts{MaxDepth: s.MaxDepth, SingleLevel: s.SingleLevel}
}
