// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

// UI is the subset of cmd/ui.UI used to report written files.
type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
}
