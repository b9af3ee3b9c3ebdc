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
package check

import (
	"fmt"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"go.uber.org/multierr"
)

// ConstraintReport is the verdict for one constraint of an invariant.  The
// value and dimension verdicts are independent: a constraint can be
// dimensionally sound yet fail on the values supplied.
type ConstraintReport struct {
	// Index of the constraint within its invariant.
	Index      int
	Constraint *ast.Constraint
	// SatisfiesValue holds if the comparison held for the values supplied.
	SatisfiesValue bool
	// SatisfiesDimension holds if both sides have equivalent dimensions.
	SatisfiesDimension bool
	// ValueMessage explains a failed value verdict.
	ValueMessage string
	// DimensionMessage explains a failed dimension verdict.
	DimensionMessage string
}

// Satisfied holds when both verdicts hold.
func (p *ConstraintReport) Satisfied() bool {
	return p.SatisfiesValue && p.SatisfiesDimension
}

// Report holds one ConstraintReport per constraint of the matched invariant,
// in declaration order.
type Report struct {
	Invariant   string
	Constraints []ConstraintReport
}

// Satisfied holds when every constraint is satisfied.
func (p *Report) Satisfied() bool {
	for i := range p.Constraints {
		if !p.Constraints[i].Satisfied() {
			return false
		}
	}
	//
	return true
}

// Err combines every failed verdict into a single error, or returns nil if
// all constraints are satisfied.
func (p *Report) Err() error {
	var err error
	//
	for i := range p.Constraints {
		c := &p.Constraints[i]
		//
		if !c.SatisfiesDimension {
			err = multierr.Append(err, &ConstraintError{p.Invariant, c.Index, c.DimensionMessage})
		}
		//
		if !c.SatisfiesValue {
			err = multierr.Append(err, &ConstraintError{p.Invariant, c.Index, c.ValueMessage})
		}
	}
	//
	return err
}

// ConstraintError describes a single failed verdict.
type ConstraintError struct {
	Invariant string
	Index     int
	Message   string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: constraint %d: %s", e.Invariant, e.Index, e.Message)
}
