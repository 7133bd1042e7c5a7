// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"fmt"
	"regexp"

	"carvel.dev/htmlinc/pkg/eval"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/locals"
	"github.com/k14s/starlark-go/starlark"
)

const loopAttr = "loop"

var (
	// ITEM, INDEX in EXPR or ITEM in EXPR
	loopRegexp = regexp.MustCompile(`(?s)^\s*([A-Za-z_]\w*)\s*(?:,\s*([A-Za-z_]\w*)\s*)?\s+in\s+(.+?)\s*$`)
)

type LoopDecl struct {
	ItemName  string
	IndexName string // optional
	Expr      string
}

func ParseLoop(loop string) (LoopDecl, error) {
	match := loopRegexp.FindStringSubmatch(loop)
	if match == nil {
		return LoopDecl{}, fmt.Errorf("Expected loop '%s' to be in format 'ITEM, INDEX in EXPR'", loop)
	}
	if match[1] == match[2] {
		return LoopDecl{}, fmt.Errorf("Expected loop '%s' to use different item and index names", loop)
	}
	return LoopDecl{ItemName: match[1], IndexName: match[2], Expr: match[3]}, nil
}

// loops replaces each loop with concatenated expansions of its body.
func (e *expansion) loops(nodes []htmlmeta.Node) []htmlmeta.Node {
	var result []htmlmeta.Node

	for _, node := range nodes {
		elem, ok := node.(*htmlmeta.Element)
		if !ok {
			result = append(result, node)
			continue
		}

		switch elem.Tag {
		case TagEach:
			result = append(result, e.expandLoop(elem)...)

		case TagInclude:
			result = append(result, elem)

		default:
			elem.Children = e.loops(elem.Children)
			result = append(result, elem)
		}
	}

	return result
}

func (e *expansion) expandLoop(elem *htmlmeta.Element) []htmlmeta.Node {
	loop, found := elem.GetAttr(loopAttr)
	if !found {
		e.report(DirectiveSyntaxError, elem, MissingAttrError(elem, loopAttr))
		return []htmlmeta.Node{elem}
	}

	decl, err := ParseLoop(loop)
	if err != nil {
		e.report(DirectiveSyntaxError, elem, err)
		return []htmlmeta.Node{elem}
	}

	seq, err := e.expander.evaluator.Evaluate(decl.Expr, e.env)
	if err != nil {
		e.report(ExpressionError, elem, err)
		return nil
	}
	if !eval.Truth(seq) {
		return nil
	}

	iterable, ok := seq.(starlark.Iterable)
	if !ok {
		e.report(ExpressionError, elem, fmt.Errorf(
			"Expected loop expression '%s' to be a sequence, but was %s", decl.Expr, seq.Type()))
		return nil
	}

	iter := iterable.Iterate()
	defer iter.Done()

	var result []htmlmeta.Node
	var item starlark.Value

	for idx := 0; iter.Next(&item); idx++ {
		bindings := []locals.Binding{{Name: decl.ItemName, Value: item}}
		if len(decl.IndexName) > 0 {
			bindings = append(bindings, locals.Binding{Name: decl.IndexName, Value: starlark.MakeInt(idx)})
		}

		// each iteration owns a fresh copy of the body
		body := &htmlmeta.Fragment{
			Name:     elem.GetPosition().GetFile(),
			Children: htmlmeta.DeepCopyNodes(elem.Children),
		}

		e.expander.expand(body, e.env.Extend(bindings...), e.diags)

		for _, bodyNode := range body.Children {
			e.interpolated[bodyNode] = struct{}{}
		}
		result = append(result, body.Children...)
	}

	return result
}
