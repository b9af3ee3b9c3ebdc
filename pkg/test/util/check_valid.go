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
	"strconv"
	"strings"
	"testing"

	"github.com/consensys/go-newton/pkg/newton"
	"github.com/consensys/go-newton/pkg/util/source"
)

// Check is a single invocation of an invariant, described by an attribute of
// the form "#check:Motion:distance=100,time=5:fail".  The parameter tuple is
// numbered in the order given, and a subindex is written "position@1=2".
type Check struct {
	Line       int
	Invariant  string
	Parameters []newton.Parameter
	// Satisfied is the expected verdict.
	Satisfied bool
}

// CheckValid checks that a given source file compiles, and that each of its
// "#check" attributes yields the expected verdict.
func CheckValid(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/%s.nt", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	//
	session, err := newton.InitFromSource(srcfile)
	if err != nil {
		t.Fatal(err)
	}
	//
	checks, errs := ExtractAttributes(srcfile, extractCheck)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	}
	//
	for _, check := range checks {
		inv, err := session.InvariantByParameters(check.Parameters)
		//
		if err != nil {
			t.Errorf("%s:%d %s", filename, check.Line, err)
			continue
		} else if inv.Name != check.Invariant {
			t.Errorf("%s:%d matched %s, expected %s", filename, check.Line, inv.Name, check.Invariant)
			continue
		}
		//
		report, err := session.CheckConstraints(check.Parameters)
		//
		if err != nil {
			t.Errorf("%s:%d %s", filename, check.Line, err)
		} else if report.Satisfied() != check.Satisfied {
			t.Errorf("%s:%d expected satisfied=%t (%v)", filename, check.Line, check.Satisfied, report.Err())
		}
	}
}

// Extract a check from a given line in the source file.
func extractCheck(lineno int, lines []source.Line, _ *source.File) (bool, Check, error) {
	var contents = lines[lineno].String()
	//
	if !strings.HasPrefix(contents, "#check:") {
		return false, Check{}, nil
	}
	//
	splits := strings.Split(contents, ":")
	if len(splits) != 4 {
		return true, Check{}, fmt.Errorf("malformed check \"%s\", should be e.g. \"#check:I:x=1,y=2:pass\"", contents)
	}
	//
	check := Check{Line: lineno + 1, Invariant: splits[1]}
	//
	switch splits[3] {
	case "pass":
		check.Satisfied = true
	case "fail":
		check.Satisfied = false
	default:
		return true, Check{}, fmt.Errorf("invalid verdict \"%s\" (should be pass or fail)", splits[3])
	}
	//
	for i, binding := range strings.Split(splits[2], ",") {
		param, err := parseParameter(i, binding)
		if err != nil {
			return true, Check{}, err
		}
		//
		check.Parameters = append(check.Parameters, param)
	}
	//
	return true, check, nil
}

// Parse a parameter binding such as "position@1=2.5".
func parseParameter(number int, text string) (newton.Parameter, error) {
	var (
		param    = newton.Parameter{Number: number}
		lhs, rhs string
		found    bool
		err      error
	)
	//
	if lhs, rhs, found = strings.Cut(text, "="); !found {
		return param, fmt.Errorf("invalid binding \"%s\" (should be name=value)", text)
	} else if param.Value, err = strconv.ParseFloat(rhs, 64); err != nil {
		return param, fmt.Errorf("invalid binding \"%s\" (%s)", text, err.Error())
	}
	//
	param.Name = lhs
	//
	if name, sub, found := strings.Cut(lhs, "@"); found {
		subindex, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return param, fmt.Errorf("invalid subindex \"%s\" (%s)", text, err.Error())
		}
		//
		param.Name, param.Subindex = name, uint(subindex)
	}
	//
	return param, nil
}
