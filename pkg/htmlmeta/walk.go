// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmlmeta

// Visitor performs an operation on the given Node while traversing the tree.
type Visitor interface {
	Visit(Node) error
}

type VisitorFunc func(Node) error

func (f VisitorFunc) Visit(node Node) error { return f(node) }

// Walk traverses nodes recursively, depth-first in document order, invoking `v` on each node.
// if `v` returns non-nil error, the traversal is aborted.
func Walk(nodes []Node, v Visitor) error {
	for _, node := range nodes {
		err := v.Visit(node)
		if err != nil {
			return err
		}
		if elem, ok := node.(*Element); ok {
			err = Walk(elem.Children, v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// FindElements returns all elements with the given tag in document order.
func FindElements(nodes []Node, tag string) []*Element {
	var result []*Element
	_ = Walk(nodes, VisitorFunc(func(node Node) error {
		if elem, ok := node.(*Element); ok && elem.Tag == tag {
			result = append(result, elem)
		}
		return nil
	}))
	return result
}

// Replace swaps target (found by identity anywhere under container)
// with the given nodes. Returns false if target was not found.
func Replace(container Container, target Node, replacement []Node) bool {
	children := container.GetChildren()
	for i, child := range children {
		if child == target {
			container.SetChildren(SpliceNodes(children, i, replacement))
			return true
		}
		if elem, ok := child.(*Element); ok {
			if Replace(elem, target, replacement) {
				return true
			}
		}
	}
	return false
}

// SpliceNodes returns a new slice where nodes[idx] is replaced by replacement.
func SpliceNodes(nodes []Node, idx int, replacement []Node) []Node {
	result := make([]Node, 0, len(nodes)-1+len(replacement))
	result = append(result, nodes[:idx]...)
	result = append(result, replacement...)
	result = append(result, nodes[idx+1:]...)
	return result
}
