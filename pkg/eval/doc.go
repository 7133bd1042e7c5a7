// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package eval evaluates directive expressions (if conditions, switch and case
values, each sequences) against a locals.Env.

An expression is a single Starlark expression. Starlark gives a sandboxed
grammar: literals, arithmetic, comparisons, boolean operators, member and
index access and calls of the universe builtins, without statements or any
access to the host. For convenience true, false and null are predeclared and
the JS-style operators ===, !==, &&, || and ! are accepted as aliases.
*/
package eval
