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
	"errors"
	"fmt"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/dimension"
	"github.com/consensys/go-newton/pkg/newton/eval"
	"github.com/consensys/go-newton/pkg/newton/invariant"
	"github.com/consensys/go-newton/pkg/newton/physics"
	log "github.com/sirupsen/logrus"
)

// Binding supplies a concrete value for one parameter of an invariant call.
// Bindings are matched to parameters by position and subindex.  A binding
// carries no type, since a bound parameter always takes the type declared for
// it by the invariant.
type Binding struct {
	Number   int
	Subindex uint
	Value    float64
}

// MissingParameterError is returned when no binding matches a parameter of
// the invariant being checked.
type MissingParameterError struct {
	Invariant string
	Parameter string
	Number    int
	Subindex  uint
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("no value supplied for parameter %s (position %d, subindex %d) of %s",
		e.Parameter, e.Number, e.Subindex, e.Invariant)
}

// CheckConstraints evaluates every constraint of an invariant against the
// given bindings, producing one report entry per constraint.  Constraints are
// evaluated independently, so a failing constraint never hides the verdict of
// a later one.  Identifiers which are not parameters are resolved through the
// globals environment (e.g. constants).
func CheckConstraints(reg *dimension.Registry, inv *invariant.Invariant, bindings []Binding,
	globals eval.Environment) (*Report, error) {
	env, err := bind(inv, bindings, globals)
	if err != nil {
		return nil, err
	}
	//
	var (
		evaluator = eval.NewEvaluator(reg, env)
		report    = &Report{inv.Name, make([]ConstraintReport, len(inv.Constraints))}
	)
	//
	for i, c := range inv.Constraints {
		report.Constraints[i] = checkConstraint(evaluator, i, c)
		//
		log.Debugf("%s: constraint %d (%s): value %t, dimension %t", inv.Name, i, c,
			report.Constraints[i].SatisfiesValue, report.Constraints[i].SatisfiesDimension)
	}
	//
	return report, nil
}

func checkConstraint(evaluator *eval.Evaluator, index int, c *ast.Constraint) ConstraintReport {
	report := ConstraintReport{Index: index, Constraint: c, SatisfiesValue: true, SatisfiesDimension: true}
	//
	lhs, err := evaluator.Evaluate(c.Left)
	if err == nil {
		var rhs eval.Quantity
		//
		if rhs, err = evaluator.Evaluate(c.Right); err == nil {
			compareValues(&report, c.Op, lhs, rhs)
			compareDimensions(&report, c.Op, lhs, rhs)
			//
			return report
		}
	}
	// Evaluation failed.  A dimensional failure leaves the value unknown, whilst
	// a value failure leaves the dimensions as established at declaration.
	var evalErr *eval.Error
	//
	if errors.As(err, &evalErr) && evalErr.Kind.IsDimensional() {
		report.SatisfiesDimension = false
		report.DimensionMessage = err.Error()
		report.ValueMessage = "value not evaluated"
	} else {
		report.ValueMessage = err.Error()
	}
	//
	report.SatisfiesValue = false
	//
	return report
}

// Compare the values of both sides.  Proportionality is recognised but not
// checked, and is therefore always satisfied.
func compareValues(report *ConstraintReport, op ast.CmpOp, lhs eval.Quantity, rhs eval.Quantity) {
	var holds bool
	//
	if op == ast.PROPORTIONAL {
		return
	} else if !lhs.Known || !rhs.Known {
		report.SatisfiesValue = false
		report.ValueMessage = "value cannot be determined"
		//
		return
	}
	//
	switch op {
	case ast.LT:
		holds = lhs.Value < rhs.Value
	case ast.LTEQ:
		holds = lhs.Value <= rhs.Value
	case ast.GT:
		holds = lhs.Value > rhs.Value
	case ast.GTEQ:
		holds = lhs.Value >= rhs.Value
	case ast.EQ:
		holds = lhs.Value == rhs.Value
	default:
		panic("unreachable")
	}
	//
	if !holds {
		report.SatisfiesValue = false
		report.ValueMessage = fmt.Sprintf("%f should be %s %f", lhs.Value, op, rhs.Value)
	}
}

// Compare the dimensions of both sides.  This repeats the check made when the
// invariant was declared, so a failure here means the declaration itself was
// inconsistent.
func compareDimensions(report *ConstraintReport, op ast.CmpOp, lhs eval.Quantity, rhs eval.Quantity) {
	if op != ast.PROPORTIONAL && !physics.Equivalent(lhs.Physics, rhs.Physics) {
		report.SatisfiesDimension = false
		report.DimensionMessage = fmt.Sprintf("dimensions do not match (%s vs %s)",
			lhs.Physics.Units(), rhs.Physics.Units())
	}
}

// environment binding parameter names to the values supplied by the caller.
type environment struct {
	params  map[string]eval.Quantity
	globals eval.Environment
}

func (p *environment) Resolve(id *ast.Identifier) (eval.Quantity, bool) {
	if q, ok := p.params[id.Name]; ok && !id.HasSubindex {
		return q, true
	} else if p.globals != nil {
		return p.globals.Resolve(id)
	}
	//
	return eval.Quantity{}, false
}

// Match each parameter of the invariant with the binding at the same position
// whose subindex matches that of the parameter's type.
func bind(inv *invariant.Invariant, bindings []Binding, globals eval.Environment) (*environment, error) {
	env := &environment{make(map[string]eval.Quantity), globals}
	//
	for _, param := range inv.Parameters {
		binding := findBinding(bindings, param.Number, param.Type.Subindex)
		//
		if binding == nil {
			return nil, &MissingParameterError{inv.Name, param.Name, param.Number, param.Type.Subindex}
		}
		//
		env.params[param.Name] = eval.Quantity{Value: binding.Value, Known: true, Physics: param.Type}
	}
	//
	return env, nil
}

func findBinding(bindings []Binding, number int, subindex uint) *Binding {
	for i := range bindings {
		if bindings[i].Number == number && bindings[i].Subindex == subindex {
			return &bindings[i]
		}
	}
	//
	return nil
}
