// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"fmt"

	"carvel.dev/htmlinc/pkg/eval"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"github.com/k14s/starlark-go/starlark"
)

const (
	expressionAttr = "expression"
	caseValueAttr  = "n"
)

// switches replaces each switch with the children of its selected branch.
func (e *expansion) switches(nodes []htmlmeta.Node) []htmlmeta.Node {
	var result []htmlmeta.Node

	for _, node := range nodes {
		elem, ok := node.(*htmlmeta.Element)
		if !ok {
			result = append(result, node)
			continue
		}

		switch elem.Tag {
		case TagSwitch:
			result = append(result, e.switches(e.selectBranch(elem))...)

		case TagCase, TagDefault:
			e.report(DirectiveSyntaxError, elem, fmt.Errorf("Expected %s to be a child of switch", elem.Tag))

		case TagEach, TagInclude:
			result = append(result, elem)

		default:
			elem.Children = e.switches(elem.Children)
			result = append(result, elem)
		}
	}

	return result
}

// selectBranch returns children of the first matching case, or of a
// default reached before any match. Everything else in the switch is dropped.
func (e *expansion) selectBranch(switchElem *htmlmeta.Element) []htmlmeta.Node {
	var switchVal starlark.Value

	expr, found := switchElem.GetAttr(expressionAttr)
	if found {
		val, err := e.expander.evaluator.Evaluate(expr, e.env)
		if err != nil {
			e.report(ExpressionError, switchElem, err)
		} else {
			switchVal = val
		}
	} else {
		e.report(DirectiveSyntaxError, switchElem, MissingAttrError(switchElem, expressionAttr))
	}

	for _, child := range switchElem.Children {
		branch, ok := child.(*htmlmeta.Element)
		if !ok {
			continue
		}

		switch branch.Tag {
		case TagCase:
			// cases cannot match a switch value that failed to evaluate
			if switchVal != nil && e.caseMatches(branch, switchVal) {
				return branch.Children
			}
		case TagDefault:
			return branch.Children
		}
	}

	return nil
}

func (e *expansion) caseMatches(caseElem *htmlmeta.Element, switchVal starlark.Value) bool {
	expr, found := caseElem.GetAttr(caseValueAttr)
	if !found {
		e.report(DirectiveSyntaxError, caseElem, MissingAttrError(caseElem, caseValueAttr))
		return false
	}

	caseVal, err := e.expander.evaluator.Evaluate(expr, e.env)
	if err != nil {
		e.report(ExpressionError, caseElem, err)
		return false
	}

	matched, err := eval.Equal(caseVal, switchVal)
	if err != nil {
		e.report(ExpressionError, caseElem, fmt.Errorf("Comparing case value to switch value: %s", err))
		return false
	}
	return matched
}
