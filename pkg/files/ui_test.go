// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

type quietUI struct{}

func (quietUI) Printf(string, ...interface{}) {}
func (quietUI) Debugf(string, ...interface{}) {}
