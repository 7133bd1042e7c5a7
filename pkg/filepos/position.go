// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"strconv"
)

// Position locates a node within a named source. Line and column are
// 1 based; zero means not tracked.
type Position struct {
	file string
	line int
	col  int
}

func NewPosition(line int) *Position {
	return NewPositionAt(line, 0, "")
}

func NewPositionInFile(line int, file string) *Position {
	return NewPositionAt(line, 0, file)
}

func NewPositionAt(line, col int, file string) *Position {
	if line <= 0 {
		panic("Lines are 1 based")
	}
	if col < 0 {
		col = 0
	}
	return &Position{file: file, line: line, col: col}
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position { return &Position{} }

func NewUnknownPositionInFile(file string) *Position { return &Position{file: file} }

func (p *Position) SetFile(file string) { p.file = file }

func (p *Position) IsKnown() bool { return p != nil && p.line > 0 }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.line
}

func (p *Position) ColNum() int {
	if !p.IsKnown() {
		return 0
	}
	return p.col
}

func (p *Position) GetFile() string {
	if p == nil {
		return ""
	}
	return p.file
}

func (p *Position) AsString() string { return "line " + p.AsCompactString() }

// AsCompactString formats as file:line:col, leaving out unknown parts
// (unknown line renders as '?').
func (p *Position) AsCompactString() string {
	var out []byte
	if file := p.GetFile(); file != "" {
		out = append(out, file...)
		out = append(out, ':')
	}
	if !p.IsKnown() {
		return string(append(out, '?'))
	}
	out = strconv.AppendInt(out, int64(p.line), 10)
	if p.col > 0 {
		out = append(out, ':')
		out = strconv.AppendInt(out, int64(p.col), 10)
	}
	return string(out)
}

func (p *Position) DeepCopy() *Position {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
