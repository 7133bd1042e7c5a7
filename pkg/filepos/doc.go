// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name (usually a
fragment file) plus line and column within that source.

Every node parsed by htmlmeta carries a Position so that diagnostics can point
at the directive that could not be expanded. Nodes that did not come from a
source (e.g. produced in memory) carry the zero-value Position (see
NewUnknownPosition()).
*/
package filepos
