// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"io"
	"os"
)

// TTY prints command output to out; warnings and (when enabled)
// debug output go to errOut.
type TTY struct {
	debug  bool
	out    io.Writer
	errOut io.Writer
}

var _ UI = TTY{}

func NewTTY(debug bool) TTY {
	return NewCustomWriterTTY(debug, nil, nil)
}

// NewCustomWriterTTY is used by tests to capture output; nil writers
// default to os.Stdout and os.Stderr.
func NewCustomWriterTTY(debug bool, out, errOut io.Writer) TTY {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return TTY{debug: debug, out: out, errOut: errOut}
}

func (t TTY) Printf(str string, args ...interface{}) { fmt.Fprintf(t.out, str, args...) }
func (t TTY) Warnf(str string, args ...interface{})  { fmt.Fprintf(t.errOut, str, args...) }
func (t TTY) Debugf(str string, args ...interface{}) { fmt.Fprintf(t.DebugWriter(), str, args...) }

// DebugWriter discards everything unless debugging is enabled.
func (t TTY) DebugWriter() io.Writer {
	if !t.debug {
		return io.Discard
	}
	return t.errOut
}
