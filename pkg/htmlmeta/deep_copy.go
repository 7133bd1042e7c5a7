// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta

func (e *Element) DeepCopyAsNode() Node { return e.DeepCopy() }
func (t *Text) DeepCopyAsNode() Node    { return t.DeepCopy() }
func (r *Raw) DeepCopyAsNode() Node     { return r.DeepCopy() }

func (f *Fragment) DeepCopy() *Fragment {
	return &Fragment{Name: f.Name, Children: DeepCopyNodes(f.Children)}
}

func (e *Element) DeepCopy() *Element {
	return &Element{
		Tag:         e.Tag,
		Attrs:       append([]Attr(nil), e.Attrs...),
		Children:    DeepCopyNodes(e.Children),
		SelfClosing: e.SelfClosing,
		Position:    e.Position.DeepCopy(),
		startRaw:    e.startRaw,
		endRaw:      e.endRaw,
	}
}

func (t *Text) DeepCopy() *Text {
	return &Text{Data: t.Data, Position: t.Position.DeepCopy()}
}

func (r *Raw) DeepCopy() *Raw {
	return &Raw{Kind: r.Kind, Data: r.Data, Position: r.Position.DeepCopy()}
}

func DeepCopyNodes(nodes []Node) []Node {
	var result []Node
	for _, node := range nodes {
		result = append(result, node.DeepCopyAsNode())
	}
	return result
}
