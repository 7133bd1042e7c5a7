// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/htmlinc/pkg/cmd/ui"
	"carvel.dev/htmlinc/pkg/htmlmeta"
	"carvel.dev/htmlinc/pkg/htmltemplate"
	"carvel.dev/htmlinc/pkg/locals"
	"github.com/k14s/difflib"
)

var (
	selectedFileTestPath = kvArg("TestHTMLTemplate.filetest")
	showErrs             = kvArg("TestHTMLTemplate.errs")
)

func TestHTMLTemplate(t *testing.T) {
	files, err := os.ReadDir("filetests")
	if err != nil {
		t.Fatal(err)
	}

	if len(selectedFileTestPath) > 0 {
		fmt.Printf("only running %s test(s)\n", selectedFileTestPath)
	}

	var errs []error

	for _, file := range files {
		filePath := filepath.Join("filetests", file.Name())

		if len(selectedFileTestPath) > 0 && !strings.HasPrefix(file.Name(), selectedFileTestPath) {
			continue
		}

		testDesc := fmt.Sprintf("checking %s ...\n", file.Name())
		fmt.Printf("%s", testDesc)

		contents, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatal(err)
		}

		const (
			testSep    = "\n+++\n"
			diagSep    = "\nDIAG:\n"
			localsLine = "locals: "
		)

		pieces := strings.SplitN(string(contents), testSep, 2)
		if len(pieces) != 2 {
			t.Fatalf("expected file %s to include +++ separator", filePath)
		}

		input, localsPayload := pieces[0], "{}"
		if strings.HasPrefix(input, localsLine) {
			lines := strings.SplitN(input, "\n", 2)
			localsPayload = strings.TrimPrefix(lines[0], localsLine)
			input = lines[1]
		}

		expectedOut := pieces[1]
		var expectedKinds []string

		if expectedPieces := strings.SplitN(expectedOut, diagSep, 2); len(expectedPieces) == 2 {
			expectedOut = expectedPieces[0]
			expectedKinds = strings.Fields(expectedPieces[1])
		} else {
			expectedOut = strings.TrimSuffix(expectedOut, "\n")
		}

		resultStr, diags, err := expandTemplate(input, localsPayload)
		if err == nil {
			err = expectEquals(resultStr, expectedOut)
		}
		if err == nil {
			err = expectKinds(diags, expectedKinds)
		}

		if err != nil {
			fmt.Printf("   FAIL\n")
			if showErrs == "t" {
				sep := strings.Repeat(".", 80)
				fmt.Printf("%s\n%s%s\n", sep, err, sep)
			}
			errs = append(errs, fmt.Errorf("%s: %s", testDesc, err))
		} else {
			fmt.Printf("   .\n")
		}
	}

	for _, err := range errs {
		t.Errorf("%s", err.Error())
	}

	if len(selectedFileTestPath) > 0 {
		t.Errorf("skipped tests")
	}
}

func expandTemplate(input, localsPayload string) (string, htmltemplate.Diagnostics, error) {
	vals, err := locals.ParseJSON(localsPayload)
	if err != nil {
		return "", nil, fmt.Errorf("locals parse error: %s", err)
	}

	env, err := locals.NewEnv(vals)
	if err != nil {
		return "", nil, fmt.Errorf("locals conversion error: %s", err)
	}

	fragment, err := htmlmeta.NewParser(htmlmeta.ParserOpts{NormalizeIncludes: true}).ParseBytes([]byte(input), "tpl.html")
	if err != nil {
		return "", nil, fmt.Errorf("template parse error: %s", err)
	}

	diags := htmltemplate.NewExpander(quietUI()).Expand(fragment, env)

	return fragment.AsString(), diags, nil
}

func expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(expectedStr, "\n"), strings.Split(resultStr, "\n"))
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n###expected %d chars:\n>>>%s<<<\n### diff:\n%s",
			len(resultStr), resultStr, len(expectedStr), expectedStr, diff)
	}
	return nil
}

func expectKinds(diags htmltemplate.Diagnostics, expectedKinds []string) error {
	var kinds []string
	for _, diag := range diags {
		kinds = append(kinds, string(diag.Kind))
	}
	if strings.Join(kinds, ",") != strings.Join(expectedKinds, ",") {
		return fmt.Errorf("expected diagnostics %v, but was %v:%s", expectedKinds, kinds, diags.Error())
	}
	return nil
}

func quietUI() ui.UI {
	return ui.NewCustomWriterTTY(false, io.Discard, io.Discard)
}

func kvArg(name string) string {
	name += "="
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, name) {
			return strings.TrimPrefix(arg, name)
		}
	}
	return ""
}
