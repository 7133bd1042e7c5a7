// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package locals provides the binding environment that directives and
placeholders are evaluated against.

An Env is immutable: Extend returns a child scope and never changes the
parent, which keeps sibling iterations of an each directive isolated from
each other. Values are held as frozen starlark values so that expressions
cannot mutate them.
*/
package locals
