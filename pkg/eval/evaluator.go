// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"errors"
	"fmt"
	"strings"

	"carvel.dev/htmlinc/pkg/locals"
	"github.com/k14s/starlark-go/resolve"
	"github.com/k14s/starlark-go/starlark"
	"github.com/k14s/starlark-go/syntax"
)

func init() {
	// package globals; starlark-go only exposes dialect options this way.
	// lambda, set and bitwise stay disabled.
	resolve.AllowFloat = true
}

const (
	exprFileName = "expr"

	// MaxRangeLen caps range() so that expressions finish in time
	// proportional to the document and its locals.
	MaxRangeLen = 10000
	// MaxComprehensionLoops caps nested 'for' clauses per expression.
	MaxComprehensionLoops = 2
)

var predeclared = starlark.StringDict{
	"true":  starlark.True,
	"false": starlark.False,
	"null":  starlark.None,
	"range": starlark.NewBuiltin("range", boundedRange),
}

// Error is returned for any expression that fails to parse, resolve or run.
type Error struct {
	Expr  string
	Cause error
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("Evaluating expression '%s': %s", e.Expr, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

type Evaluator struct{}

func NewEvaluator() Evaluator { return Evaluator{} }

// Evaluate returns the value of expr with every binding of env available
// as a free identifier. Failures are always reported as *Error.
func (Evaluator) Evaluate(expr string, env *locals.Env) (result starlark.Value, resultErr error) {
	// Catch any panics to give a better contextual information
	defer func() {
		if err := recover(); err != nil {
			result = nil
			if typedErr, ok := err.(error); ok {
				resultErr = &Error{Expr: expr, Cause: typedErr}
			} else {
				resultErr = &Error{Expr: expr, Cause: fmt.Errorf("(p) %s", err)}
			}
		}
	}()

	src := strings.TrimSpace(NormalizeOperators(expr))
	if len(src) == 0 {
		return nil, &Error{Expr: expr, Cause: fmt.Errorf("expected non-empty expression")}
	}

	// parens let attribute values span lines regardless of indentation
	parsedExpr, err := syntax.ParseExpr(exprFileName, "("+src+"\n)", 0)
	if err != nil {
		return nil, &Error{Expr: expr, Cause: withoutPosition(err)}
	}

	err = checkExprBounds(parsedExpr)
	if err != nil {
		return nil, &Error{Expr: expr, Cause: err}
	}

	thread := &starlark.Thread{Name: "htmlinc-eval"}

	val, err := starlark.EvalExpr(thread, parsedExpr, envDict(env))
	if err != nil {
		return nil, &Error{Expr: expr, Cause: withoutPosition(err)}
	}

	return val, nil
}

// EvaluateCondition evaluates expr and reports its truthiness.
func (e Evaluator) EvaluateCondition(expr string, env *locals.Env) (bool, error) {
	val, err := e.Evaluate(expr, env)
	if err != nil {
		return false, err
	}
	return Truth(val), nil
}

func Truth(val starlark.Value) bool {
	if val == nil {
		return false
	}
	return bool(val.Truth())
}

// Equal uses starlark typed equality (e.g. 1 == "1" is false).
func Equal(x, y starlark.Value) (bool, error) {
	if x == nil || y == nil {
		return x == nil && y == nil, nil
	}
	return starlark.Equal(x, y)
}

func boundedRange(thread *starlark.Thread, _ *starlark.Builtin,
	args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {

	val, err := starlark.Call(thread, starlark.Universe["range"], args, kwargs)
	if err != nil {
		return nil, err
	}
	if seq, ok := val.(starlark.Sequence); ok && seq.Len() > MaxRangeLen {
		return nil, fmt.Errorf("range of %d elements exceeds limit of %d", seq.Len(), MaxRangeLen)
	}
	return val, nil
}

func checkExprBounds(expr syntax.Expr) error {
	var loops int
	var hasLambda bool

	syntax.Walk(expr, func(node syntax.Node) bool {
		switch typedNode := node.(type) {
		case *syntax.LambdaExpr:
			hasLambda = true
		case *syntax.Comprehension:
			for _, clause := range typedNode.Clauses {
				if _, isFor := clause.(*syntax.ForClause); isFor {
					loops++
				}
			}
		}
		return true
	})

	if hasLambda {
		return fmt.Errorf("lambda expressions are not supported")
	}
	if loops > MaxComprehensionLoops {
		return fmt.Errorf("expected at most %d comprehension 'for' clauses, but found %d", MaxComprehensionLoops, loops)
	}
	return nil
}

func envDict(env *locals.Env) starlark.StringDict {
	result := starlark.StringDict{}
	for k, v := range predeclared {
		result[k] = v
	}
	if env != nil {
		for k, v := range env.StringDict() {
			result[k] = v
		}
	}
	return result
}

// withoutPosition drops starlark positions; they point into the
// wrapped expression rather than into the document.
func withoutPosition(err error) error {
	switch typedErr := err.(type) {
	case syntax.Error:
		return errors.New(typedErr.Msg)

	case resolve.ErrorList:
		var msgs []string
		for _, resolveErr := range typedErr {
			msgs = append(msgs, resolveErr.Msg)
		}
		return errors.New(strings.Join(msgs, ", "))

	case *starlark.EvalError:
		return errors.New(typedErr.Msg)

	default:
		return err
	}
}
