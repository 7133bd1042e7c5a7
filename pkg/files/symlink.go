// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SymlinkAllowOpts lists destinations that symlinked inputs and
// components may resolve to.
type SymlinkAllowOpts struct {
	AllowAll        bool
	AllowedDstPaths []string
}

var (
	// resolving pipes such as /dev/fd/3 fails on Linux with this error;
	// such files do not exist on the filesystem
	symlinkPipeErr = regexp.MustCompile(`^lstat /proc/\d+/fd/pipe:\[\d+\]: no such file or directory$`)
)

// checkSymlink lets regular files through and makes sure that
// a symlink resolves within one of allowed destinations.
func checkSymlink(path string, fi os.FileInfo, opts SymlinkAllowOpts) error {
	if fi.Mode()&os.ModeSymlink == 0 || opts.AllowAll {
		return nil
	}

	dstPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		if symlinkPipeErr.MatchString(err.Error()) {
			return nil
		}
		return fmt.Errorf("Resolving symlink '%s': %s", path, err)
	}

	for _, allowedPath := range opts.AllowedDstPaths {
		within, err := isWithinDir(dstPath, resolvedDir(allowedPath))
		if err != nil {
			return err
		}
		if within {
			return nil
		}
	}

	return fmt.Errorf("Expected symlink file '%s' -> '%s' to be allowed, but was not "+
		"(hint: use --allow-symlink-destination)", path, dstPath)
}

// resolvedDir resolves symlinks in dir itself so that it can be compared
// with resolved destinations. Paths that cannot be resolved are kept as is.
func resolvedDir(dir string) string {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return dir
	}
	return resolved
}

// isWithinDir reports whether path is dir or is nested under it.
func isWithinDir(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("Making path '%s' absolute: %s", path, err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("Making path '%s' absolute: %s", dir, err)
	}

	relPath, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return !escapesDir(relPath), nil
}

func escapesDir(relPath string) bool {
	return relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator))
}
