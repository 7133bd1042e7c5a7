// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"fmt"
	"strings"

	"carvel.dev/htmlinc/pkg/filepos"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/spell"
)

type DiagnosticKind string

const (
	ExpressionError      DiagnosticKind = "ExpressionError"
	StructuredDataError  DiagnosticKind = "StructuredDataError"
	IncludeLoadError     DiagnosticKind = "IncludeLoadError"
	DirectiveSyntaxError DiagnosticKind = "DirectiveSyntaxError"
	IncludeCycleError    DiagnosticKind = "IncludeCycleError"
)

const maxDirectiveLen = 80

// Diagnostic describes a directive that could not be fully resolved.
type Diagnostic struct {
	Kind      DiagnosticKind
	Position  *filepos.Position
	Directive string // start tag of the offending element
	Err       error
}

var _ error = Diagnostic{}

func NewDiagnostic(kind DiagnosticKind, elem *htmlmeta.Element, err error) Diagnostic {
	diag := Diagnostic{Kind: kind, Err: err}
	if elem != nil {
		diag.Position = elem.GetPosition()
		diag.Directive = elem.StartTag()
	}
	return diag
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Diagnostics are collected in document order.
type Diagnostics []Diagnostic

var _ error = Diagnostics{}

func (ds Diagnostics) Error() string {
	result := []string{""}

	for _, diag := range ds {
		result = append(result, "- "+diag.Error())

		if len(diag.Directive) > 0 {
			directive := strings.Join(strings.Fields(diag.Directive), " ")
			if len(directive) > maxDirectiveLen {
				directive = directive[:maxDirectiveLen] + "..."
			}
			result = append(result, fmt.Sprintf("    %s | %s", diag.Position.AsCompactString(), directive))
		}
	}

	return strings.Join(result, "\n")
}

func (ds Diagnostics) OfKind(kind DiagnosticKind) Diagnostics {
	var result Diagnostics
	for _, diag := range ds {
		if diag.Kind == kind {
			result = append(result, diag)
		}
	}
	return result
}

// AsErr returns nil when there is nothing to report.
func (ds Diagnostics) AsErr() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// MissingAttrError describes a directive lacking a required attribute,
// pointing out an attribute that looks like its misspelling.
func MissingAttrError(elem *htmlmeta.Element, attr string) error {
	for _, elemAttr := range elem.Attrs {
		if spell.Nearest(elemAttr.Key, []string{attr}) == attr {
			return fmt.Errorf("Expected %s to have '%s' attribute (hint: found '%s', is it misspelled?)",
				elem.Tag, attr, elemAttr.Key)
		}
	}
	return fmt.Errorf("Expected %s to have '%s' attribute", elem.Tag, attr)
}
