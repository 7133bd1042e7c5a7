// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and loading data from various
file or file-like Source's and for writing output to filesystem files and
directories.

HTML files (TypeHTML) are expanded; any other file found while walking an
input directory is carried over to the output unchanged.

ComponentsDir loads include targets relative to a components root and keeps
them from resolving outside of it.
*/
package files
