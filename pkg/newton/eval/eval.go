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
package eval

import (
	"math"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/dimension"
	"github.com/consensys/go-newton/pkg/newton/physics"
)

// Quantity is the pair of attributes computed for every node of a quantity
// expression: its numeric value and its dimensional type.  A value is Known
// for numbers, constants and bound parameters.  Signals referenced outside of
// a binding have no known value and behave as units, i.e. as the identity of
// multiplication and division.
type Quantity struct {
	Value   float64
	Known   bool
	Physics *physics.Physics
}

// Environment resolves the identifiers occurring in an expression.
type Environment interface {
	Resolve(id *ast.Identifier) (Quantity, bool)
}

// Evaluator computes the value and type of quantity expressions bottom-up.
// Every node is resolved, then its children are combined according to the
// operator rules, and finally the result is propagated to the parent.  The
// types handed out by the environment are never mutated; each node works on a
// private copy.
type Evaluator struct {
	registry *dimension.Registry
	env      Environment
}

// NewEvaluator constructs an evaluator for a given environment.
func NewEvaluator(registry *dimension.Registry, env Environment) *Evaluator {
	return &Evaluator{registry, env}
}

// Evaluate an expression of the form `term {(+|-) term}`.  Operands of a sum
// must be dimensionally equivalent.
func (e *Evaluator) Evaluate(expr *ast.Expr) (Quantity, error) {
	if expr == nil || len(expr.Terms) == 0 || len(expr.Ops) != len(expr.Terms)-1 {
		panic("malformed expression")
	}
	//
	acc, err := e.evalTerm(expr.Terms[0])
	if err != nil {
		return Quantity{}, err
	}
	//
	for i, term := range expr.Terms[1:] {
		op := expr.Ops[i]
		//
		rhs, err := e.evalTerm(term)
		if err != nil {
			return Quantity{}, err
		} else if !physics.Equivalent(acc.Physics, rhs.Physics) {
			return Quantity{}, newError(DIMENSION_MISMATCH, op, acc.Physics, rhs.Physics, term)
		}
		//
		switch op {
		case ast.ADD:
			acc.Value += rhs.Value
		case ast.SUB:
			acc.Value -= rhs.Value
		default:
			panic("unreachable")
		}
		//
		acc.Known = acc.Known && rhs.Known
		acc.Physics.Vector = acc.Physics.Vector || rhs.Physics.Vector
		//
		if !acc.Known {
			acc.Value = 0
		}
	}
	//
	return acc, nil
}

// Evaluate a term of the form `[-] factor {(*|/) factor}`.  At most one factor
// of a term may be a vector.  A factor whose value is zero or unknown acts as
// the identity for multiplication and division, unless every factor of the
// term is zero or unknown in which case the value of the term is zero.
func (e *Evaluator) evalTerm(term *ast.Term) (Quantity, error) {
	if len(term.Factors) == 0 || len(term.Ops) != len(term.Factors)-1 {
		panic("malformed term")
	}
	//
	acc, err := e.evalFactor(term.Factors[0])
	if err != nil {
		return Quantity{}, err
	}
	//
	var (
		vectors = 0
		zero    = isZero(acc)
	)
	//
	if acc.Physics.Vector {
		vectors++
	}
	//
	for i, factor := range term.Factors[1:] {
		op := term.Ops[i]
		//
		rhs, err := e.evalFactor(factor)
		if err != nil {
			return Quantity{}, err
		} else if rhs.Physics.Vector {
			vectors++
		}
		//
		if vectors > 1 {
			return Quantity{}, newError(ILLEGAL_VECTOR_COMBINATION, op, acc.Physics, rhs.Physics, factor)
		}
		//
		switch op {
		case ast.MUL:
			physics.AddExponents(acc.Physics, rhs.Physics)
			acc.Value = unit(acc) * unit(rhs)
		case ast.DIV:
			physics.SubtractExponents(acc.Physics, rhs.Physics)
			acc.Value = unit(acc) / unit(rhs)
		default:
			panic("unreachable")
		}
		//
		zero = zero && isZero(rhs)
		acc.Known = acc.Known || rhs.Known
		acc.Physics.Vector = vectors == 1
		//
		if zero || !acc.Known {
			acc.Value = 0
		}
	}
	//
	if term.Negated {
		acc.Value = -acc.Value
	}
	//
	return acc, nil
}

// Evaluate a factor of the form `atom [** exponent]`.
func (e *Evaluator) evalFactor(factor *ast.Factor) (Quantity, error) {
	base, err := e.evalAtom(factor.Atom)
	//
	if err != nil || factor.Exponent == nil {
		return base, err
	}
	//
	exponent, err := EvaluateNumeric(factor.Exponent)
	if err != nil {
		return Quantity{}, err
	} else if base.Known && base.Value == 0 && exponent == 0 {
		return Quantity{}, newError(INDETERMINATE_POWER, ast.POW, base.Physics, nil, factor)
	} else if base.Physics.Vector && math.Abs(exponent) != 1 && exponent != 0 {
		// raising a vector to a power multiplies it with itself
		return Quantity{}, newError(ILLEGAL_VECTOR_COMBINATION, ast.POW, base.Physics, base.Physics, factor)
	}
	//
	if !physics.IsDimensionless(base.Physics) {
		if exponent != math.Trunc(exponent) {
			err := newError(NON_INTEGER_EXPONENT, ast.POW, base.Physics, nil, factor)
			err.Exponent = exponent
			//
			return Quantity{}, err
		} else if exponent < math.MinInt32 || exponent > math.MaxInt32 {
			err := newError(EXPONENT_OUT_OF_RANGE, ast.POW, base.Physics, nil, factor)
			err.Exponent = exponent
			//
			return Quantity{}, err
		}
		//
		physics.MultiplyExponents(base.Physics, int(exponent))
	}
	//
	if exponent == 0 {
		base.Physics.Vector = false
	}
	//
	if base.Known {
		base.Value = math.Pow(base.Value, exponent)
	}
	//
	return base, nil
}

func (e *Evaluator) evalAtom(atom ast.Atom) (Quantity, error) {
	switch atom := atom.(type) {
	case *ast.Identifier:
		q, ok := e.env.Resolve(atom)
		//
		if !ok {
			return Quantity{}, newError(UNDECLARED_IDENTIFIER, ast.ADD, nil, nil, atom)
		} else if q.Physics == nil {
			q.Physics = physics.New(e.registry)
		} else {
			q.Physics = q.Physics.Intermediate()
		}
		//
		return q, nil
	case *ast.Number:
		return Quantity{atom.Value, true, physics.New(e.registry)}, nil
	case *ast.Paren:
		return e.Evaluate(atom.Expr)
	}
	//
	panic("unreachable")
}

// EvaluateNumeric evaluates an exponent expression, which never involves
// physical quantities.
func EvaluateNumeric(expr ast.NumericExpr) (float64, error) {
	switch expr := expr.(type) {
	case *ast.Number:
		return expr.Value, nil
	case *ast.NumericNegation:
		v, err := EvaluateNumeric(expr.Arg)
		return -v, err
	case *ast.NumericBinary:
		lhs, err1 := EvaluateNumeric(expr.Left)
		if err1 != nil {
			return 0, err1
		}
		//
		rhs, err2 := EvaluateNumeric(expr.Right)
		if err2 != nil {
			return 0, err2
		}
		//
		switch expr.Op {
		case ast.ADD:
			return lhs + rhs, nil
		case ast.SUB:
			return lhs - rhs, nil
		case ast.MUL:
			return lhs * rhs, nil
		case ast.DIV:
			if rhs == 0 {
				return 0, newError(DIVISION_BY_ZERO, ast.DIV, nil, nil, expr)
			}
			//
			return lhs / rhs, nil
		}
	}
	//
	panic("unreachable")
}

// unit returns the value of a quantity, or the identity when that value is
// unknown or zero.
func unit(q Quantity) float64 {
	if !q.Known || q.Value == 0 {
		return 1
	}
	//
	return q.Value
}

// isZero holds when a quantity contributes no value to a product.
func isZero(q Quantity) bool {
	return !q.Known || q.Value == 0
}
