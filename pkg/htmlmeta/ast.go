// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta

import (
	"strings"

	"carvel.dev/htmlinc/pkg/filepos"
)

type Node interface {
	GetPosition() *filepos.Position
	SetPosition(*filepos.Position)

	DeepCopyAsNode() Node

	sealed() // limit the concrete types of Node to Element, Text and Raw
}

// Container is implemented by nodes that hold children.
type Container interface {
	GetChildren() []Node
	SetChildren([]Node)
}

var _ = []Node{&Element{}, &Text{}, &Raw{}}
var _ = []Container{&Fragment{}, &Element{}}

type Fragment struct {
	Name     string
	Children []Node
}

type Attr struct {
	Key string
	Val string
}

type Element struct {
	Tag         string
	Attrs       []Attr
	Children    []Node
	SelfClosing bool
	Position    *filepos.Position

	startRaw string // original start tag; cleared once attributes change
	endRaw   string // original end tag; empty if element was not explicitly closed
}

type Text struct {
	Data     string // raw markup
	Position *filepos.Position
}

type RawKind int

const (
	RawComment RawKind = iota
	RawDoctype
	RawStrayEndTag
)

type Raw struct {
	Kind     RawKind
	Data     string
	Position *filepos.Position
}

func (*Element) sealed() {}
func (*Text) sealed()    {}
func (*Raw) sealed()     {}

func (e *Element) GetPosition() *filepos.Position { return e.Position }
func (t *Text) GetPosition() *filepos.Position    { return t.Position }
func (r *Raw) GetPosition() *filepos.Position     { return r.Position }

func (e *Element) SetPosition(pos *filepos.Position) { e.Position = pos }
func (t *Text) SetPosition(pos *filepos.Position)    { t.Position = pos }
func (r *Raw) SetPosition(pos *filepos.Position)     { r.Position = pos }

func (f *Fragment) GetChildren() []Node        { return f.Children }
func (f *Fragment) SetChildren(children []Node) { f.Children = children }
func (e *Element) GetChildren() []Node         { return e.Children }
func (e *Element) SetChildren(children []Node)  { e.Children = children }

func (e *Element) GetAttr(key string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func (e *Element) HasAttr(key string) bool {
	_, found := e.GetAttr(key)
	return found
}

// SetAttr updates the first attribute with the given key (or appends one).
// Element is re-serialized on print only if the value actually changed.
func (e *Element) SetAttr(key, val string) {
	for i, attr := range e.Attrs {
		if attr.Key == key {
			if attr.Val != val {
				e.Attrs[i].Val = val
				e.startRaw = ""
			}
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
	e.startRaw = ""
}

// SetAttrAt updates the value of the idx-th attribute, so that
// duplicate keys keep their own values.
func (e *Element) SetAttrAt(idx int, val string) {
	if e.Attrs[idx].Val != val {
		e.Attrs[idx].Val = val
		e.startRaw = ""
	}
}

func (e *Element) IsModified() bool { return len(e.startRaw) == 0 }

// StartTag returns the start tag as it will be printed.
func (e *Element) StartTag() string {
	if len(e.startRaw) > 0 {
		return e.startRaw
	}

	var result strings.Builder
	result.WriteString("<")
	result.WriteString(e.Tag)
	for _, attr := range e.Attrs {
		result.WriteString(" ")
		result.WriteString(attr.Key)
		result.WriteString(`="`)
		result.WriteString(attrEscaper.Replace(attr.Val))
		result.WriteString(`"`)
	}
	if e.SelfClosing {
		result.WriteString(" />")
	} else {
		result.WriteString(">")
	}
	return result.String()
}

func (t *Text) IsWhitespace() bool {
	return len(strings.TrimSpace(t.Data)) == 0
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;")
