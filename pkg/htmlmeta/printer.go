// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta

import (
	"bytes"
	"fmt"
	"io"
)

type Printer struct {
	writer io.Writer
}

func NewPrinter(writer io.Writer) Printer {
	return Printer{writer}
}

func (p Printer) Print(nodes []Node) error {
	for _, node := range nodes {
		err := p.print(node)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p Printer) print(node Node) error {
	switch typedNode := node.(type) {
	case *Element:
		_, err := io.WriteString(p.writer, typedNode.StartTag())
		if err != nil {
			return err
		}
		err = p.Print(typedNode.Children)
		if err != nil {
			return err
		}
		_, err = io.WriteString(p.writer, typedNode.endRaw)
		return err

	case *Text:
		_, err := io.WriteString(p.writer, typedNode.Data)
		return err

	case *Raw:
		_, err := io.WriteString(p.writer, typedNode.Data)
		return err

	default:
		panic(fmt.Sprintf("unknown node type %T", node))
	}
}

func (f *Fragment) AsBytes() []byte {
	var buf bytes.Buffer
	// writes into bytes.Buffer do not fail
	_ = NewPrinter(&buf).Print(f.Children)
	return buf.Bytes()
}

func (f *Fragment) AsString() string { return string(f.AsBytes()) }
