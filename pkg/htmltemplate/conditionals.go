// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"fmt"

	"carvel.dev/htmlinc/pkg/htmlmeta"
)

const conditionAttr = "condition"

// conditionals replaces each if (and its paired else) with the children
// of the kept branch. Kept children are processed as well, so nested
// conditionals resolve in document order.
func (e *expansion) conditionals(nodes []htmlmeta.Node) []htmlmeta.Node {
	var result []htmlmeta.Node

	for i := 0; i < len(nodes); i++ {
		elem, ok := nodes[i].(*htmlmeta.Element)
		if !ok {
			result = append(result, nodes[i])
			continue
		}

		switch elem.Tag {
		case TagIf:
			// evaluated once and reused for the paired else
			kept := e.condition(elem)
			if kept {
				result = append(result, e.conditionals(elem.Children)...)
			}

			elseIdx := pairedElseIdx(nodes, i)
			if elseIdx >= 0 {
				if !kept {
					elseElem := nodes[elseIdx].(*htmlmeta.Element)
					result = append(result, e.conditionals(elseElem.Children)...)
				}
				i = elseIdx
			}

		case TagElse:
			e.report(DirectiveSyntaxError, elem, fmt.Errorf("Expected else to immediately follow an if"))

		case TagEach, TagInclude:
			result = append(result, elem)

		default:
			elem.Children = e.conditionals(elem.Children)
			result = append(result, elem)
		}
	}

	return result
}

func (e *expansion) condition(elem *htmlmeta.Element) bool {
	expr, found := elem.GetAttr(conditionAttr)
	if !found {
		e.report(DirectiveSyntaxError, elem, MissingAttrError(elem, conditionAttr))
		return false
	}

	result, err := e.expander.evaluator.EvaluateCondition(expr, e.env)
	if err != nil {
		e.report(ExpressionError, elem, err)
		return false
	}
	return result
}

// pairedElseIdx returns index of the else element that follows the if at
// ifIdx, skipping whitespace-only text. Returns -1 if there is none.
func pairedElseIdx(nodes []htmlmeta.Node, ifIdx int) int {
	for i := ifIdx + 1; i < len(nodes); i++ {
		switch typedNode := nodes[i].(type) {
		case *htmlmeta.Text:
			if typedNode.IsWhitespace() {
				continue
			}
			return -1
		case *htmlmeta.Element:
			if typedNode.Tag == TagElse {
				return i
			}
			return -1
		default:
			return -1
		}
	}
	return -1
}
