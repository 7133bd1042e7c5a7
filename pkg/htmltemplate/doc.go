// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package htmltemplate expands directive elements (if/else, switch/case/default,
each) and {{ placeholders }} found in an htmlmeta tree.

Expansion mutates the given tree in place and never fails as a whole: a
directive that cannot be resolved is left as is or removed, and the problem
is recorded as a Diagnostic.

Include elements are left to the workspace resolver and are never
interpolated: their locals attribute is taken verbatim, so placeholders in it
do not see loop variables. A component inside an each body therefore receives
the same locals on every iteration.
*/
package htmltemplate
