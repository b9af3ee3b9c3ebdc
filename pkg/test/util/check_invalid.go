// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-newton/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the Newton test files are found.
const TestDir = "../../testdata"

// ErrorCompiler compiles a source file and produces zero or more errors.
type ErrorCompiler func(*source.File) []source.SyntaxError

// CheckInvalid checks that a given source file fails to compile, producing
// exactly the errors listed in its "#error" attributes.
func CheckInvalid(t *testing.T, test string, compiler ErrorCompiler) {
	var filename = fmt.Sprintf("%s/%s.nt", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	// Compile source file to produce errors
	actual := compiler(srcfile)
	// Extract expected errors for comparison
	expected, errs := ExtractAttributes(srcfile, extractSyntaxError)
	//
	if len(errs) > 0 {
		// Report any errors encountered parsing the attributes themselves.
		t.Fatal(errors.Join(errs...))
	} else if len(expected) == 0 {
		t.Fatalf("%s has no expected errors", filename)
	}
	// Check program did not compile!
	checkExpectedErrors(t, srcfile, actual, expected)
}

func checkExpectedErrors(t *testing.T, srcfile *source.File, actual, expected []source.SyntaxError) {
	var (
		failed  = false
		builder strings.Builder
	)
	//
	if len(actual) == 0 {
		t.Fatalf("%s should not have compiled", srcfile.Filename())
	}
	//
	fmt.Fprintf(&builder, "Error %s\n", srcfile.Filename())
	// Pad out with what received
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) {
			if expected[i].Message() == actual[i].Message() && expected[i].Span() == actual[i].Span() {
				continue
			}
		}
		// Indicate error arose
		failed = true
		//
		if i < len(actual) {
			fmt.Fprintf(&builder, " unexpected error %s\n", errorToString(actual[i]))
		}
		//
		if i < len(expected) {
			fmt.Fprintf(&builder, "   expected error %s\n", errorToString(expected[i]))
		}
	}
	//
	if failed {
		t.Fatal(builder.String())
	}
}

func readSourceFile(t *testing.T, filename string) *source.File {
	srcfile, err := source.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return srcfile
}

// Convert a span into a useful human readable string.
func errorToString(err source.SyntaxError) string {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	//
	return fmt.Sprintf("%s:%d:%d-%d %s", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
}
