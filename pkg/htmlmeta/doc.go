// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package htmlmeta is an in-memory representation of HTML-like markup that can
be rewritten in place and printed back.

Markup is split into tokens by golang.org/x/net/html's Tokenizer, but no
HTML5 tree construction rules are applied: fragments are not wrapped into
html/head/body, unknown tags (such as template directives) nest like any
other element and the original bytes of every untouched node are kept, so a
document that is not modified prints back exactly as it was read.

A Fragment holds the top level nodes. A Node is one of:

  - Element: a tag with ordered attributes and ordered children
  - Text: character data, kept as raw markup (entities are not decoded)
  - Raw: comments, doctypes and end tags that close nothing; printed verbatim
*/
package htmlmeta
