// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package workspace resolves include directives of a document against a
components directory.

A document is first expanded with the root locals, then each remaining
include element is replaced with the expansion of the component it names.
Components may include further components; a component that (directly or
indirectly) includes itself is reported and left unexpanded.
*/
package workspace
