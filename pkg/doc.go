// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of htmlinc.

This codebase is organized into well-defined layers. Packages depend on each
other only to the degree required.

In the inventory, below, individual packages are named alongside their coupling
with the other packages in the codebase.

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

htmlinc is built as a command-line tool:

	./cmd/htmlinc

# Commands

"template" expands a set of HTML documents (it is also the root command);
"fmt" normalizes include tags; "version" prints the binary version.

	(1) => pkg/cmd => (5)
	(1) => pkg/cmd/template => (8)

# The Workspace

Each top-level document is expanded with the root locals, then every include
is replaced by its component, itself expanded with the include's own locals.
Components are loaded from a components directory.

	(1) => pkg/workspace => (5)
	(3) => pkg/files => (0)

# Templating

Directives (if/else, switch/case/default, each) and {{ }} placeholders are
expanded in place over a document tree. Expressions are Starlark expressions
evaluated against an immutable, scoped set of bindings.

	(2) => pkg/htmltemplate => (6)
	(1) => pkg/eval => (1)
	(4) => pkg/locals => (2)
	(1) => pkg/template/core => (1)

# HTML Structures

Markup is tokenized (golang.org/x/net/html) into a tree of htmlmeta.Node
that keeps original bytes so that untouched markup is printed back verbatim.

	(4) => pkg/htmlmeta => (1)
	(2) => pkg/filepos => (0)

# Utilities

	(4) => pkg/cmd/ui => (0)
	(3) => pkg/orderedmap => (0)
	(2) => pkg/version => (0)
	(1) => pkg/spell => (0)

# Dependencies

Each package's dependencies on other packages within this module are as follows
(if a package is not listed, it has no dependencies on other packages within
this module):

	pkg/cmd:
	- pkg/cmd/template
	- pkg/cmd/ui
	- pkg/files
	- pkg/htmlmeta
	- pkg/version
	pkg/cmd/template:
	- pkg/workspace
	- pkg/htmltemplate
	- pkg/htmlmeta
	- pkg/locals
	- pkg/files
	- pkg/cmd/ui
	- pkg/orderedmap
	- pkg/version
	pkg/workspace:
	- pkg/htmltemplate
	- pkg/htmlmeta
	- pkg/locals
	- pkg/files
	- pkg/cmd/ui
	pkg/htmltemplate:
	- pkg/eval
	- pkg/htmlmeta
	- pkg/locals
	- pkg/filepos
	- pkg/cmd/ui
	- pkg/spell
	pkg/eval:
	- pkg/locals
	pkg/locals:
	- pkg/template/core
	- pkg/orderedmap
	pkg/template/core:
	- pkg/orderedmap
	pkg/htmlmeta:
	- pkg/filepos
*/
package pkg
