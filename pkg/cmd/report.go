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
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/consensys/go-newton/pkg/newton/check"
	"github.com/consensys/go-newton/pkg/util/termio"
)

// jsonReport is the machine-readable rendering of a report.
type jsonReport struct {
	Invariant   string           `json:"invariant"`
	Satisfied   bool             `json:"satisfied"`
	Constraints []jsonConstraint `json:"constraints"`
}

type jsonConstraint struct {
	Index              int    `json:"index"`
	Constraint         string `json:"constraint"`
	SatisfiesValue     bool   `json:"satisfiesValue"`
	SatisfiesDimension bool   `json:"satisfiesDimension"`
	ValueMessage       string `json:"valueMessage,omitempty"`
	DimensionMessage   string `json:"dimensionMessage,omitempty"`
}

// Write a report as JSON.
func writeJsonReport(w io.Writer, report *check.Report) error {
	view := jsonReport{report.Invariant, report.Satisfied(), make([]jsonConstraint, len(report.Constraints))}
	//
	for i, c := range report.Constraints {
		view.Constraints[i] = jsonConstraint{c.Index, c.Constraint.String(), c.SatisfiesValue,
			c.SatisfiesDimension, c.ValueMessage, c.DimensionMessage}
	}
	//
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	//
	return encoder.Encode(view)
}

// Print a report as a table, with one row per constraint.
func printReport(w io.Writer, report *check.Report, colour bool) {
	var (
		highlighter = termio.NewHighlighter(colour)
		table       = termio.NewTablePrinter(5)
		pass        = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
		fail        = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	)
	//
	table.AnsiEscapes(colour)
	table.AddRow("#", "constraint", "value", "dimension", "")
	//
	for _, c := range report.Constraints {
		row := table.AddRow(fmt.Sprintf("%d", c.Index), c.Constraint.String(), verdict(c.SatisfiesValue),
			verdict(c.SatisfiesDimension), message(c))
		//
		for col, ok := range []bool{c.SatisfiesValue, c.SatisfiesDimension} {
			if ok {
				table.SetEscape(uint(col+2), row, pass)
			} else {
				table.SetEscape(uint(col+2), row, fail)
			}
		}
	}
	//
	fmt.Fprintln(w, report.Invariant)
	table.Print(w)
	//
	if report.Satisfied() {
		fmt.Fprintln(w, highlighter.Pass("all constraints satisfied"))
	} else {
		fmt.Fprintln(w, highlighter.Fail("constraints violated"))
	}
}

func verdict(ok bool) string {
	if ok {
		return "pass"
	}
	//
	return "fail"
}

// Combine the messages of any failed verdicts.
func message(c check.ConstraintReport) string {
	switch {
	case !c.SatisfiesDimension && !c.SatisfiesValue:
		return c.DimensionMessage + "; " + c.ValueMessage
	case !c.SatisfiesDimension:
		return c.DimensionMessage
	case !c.SatisfiesValue:
		return c.ValueMessage
	}
	//
	return ""
}
