// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template implements the "template" command: expanding directives and
includes of HTML documents.

Front-and-center is template.Options. This is both the host of settings
parsed from the command-line (and an optional TOML config file) through Cobra
AND the top-level logic that implements the command.
*/
package template
