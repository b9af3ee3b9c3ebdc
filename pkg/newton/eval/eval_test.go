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
	"errors"
	"math"
	"testing"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/dimension"
	"github.com/consensys/go-newton/pkg/newton/physics"
	"github.com/consensys/go-newton/pkg/newton/prime"
	"github.com/consensys/go-newton/pkg/util/assert"
)

func Test_Eval_Quotient(t *testing.T) {
	ev, _ := newFixture()
	// distance / time
	q := evalOk(t, ev, expr(term(id("distance"), ast.DIV, id("time"))))
	//
	assert.Equal(t, []int{1, -1}, q.Physics.Exponents())
	assert.False(t, q.Known)
	assert.Equal(t, "m s^-1", q.Physics.Units())
}

func Test_Eval_Mismatch(t *testing.T) {
	ev, _ := newFixture()
	// distance + time
	err := evalErr(t, ev, expr(term(id("distance")), ast.ADD, term(id("time"))))
	//
	assert.Equal(t, DIMENSION_MISMATCH, err.Kind)
	assert.Equal(t, ast.ADD, err.Operator)
	assert.Equal(t, "dimension mismatch (m + s)", err.Error())
}

func Test_Eval_SumOfEquivalents(t *testing.T) {
	ev, _ := newFixture()
	// d - 2 * d
	q := evalOk(t, ev, expr(term(id("d")), ast.SUB, term(num(2), ast.MUL, id("d"))))
	//
	assert.True(t, q.Known)
	assert.Approx(t, -100, q.Value)
	assert.Equal(t, []int{1, 0}, q.Physics.Exponents())
}

func Test_Eval_DimensionlessSum(t *testing.T) {
	ev, _ := newFixture()
	// 1 + distance / distance
	q := evalOk(t, ev, expr(term(num(1)), ast.ADD, term(id("distance"), ast.DIV, id("distance"))))
	//
	assert.True(t, physics.IsDimensionless(q.Physics))
	assert.False(t, q.Known)
}

func Test_Eval_VectorTimesVector(t *testing.T) {
	ev, _ := newFixture()
	// position * position
	err := evalErr(t, ev, expr(term(id("position"), ast.MUL, id("position"))))
	//
	assert.Equal(t, ILLEGAL_VECTOR_COMBINATION, err.Kind)
	// vector * scalar * scalar / vector
	err = evalErr(t, ev, expr(term(id("position"), ast.MUL, num(2), ast.MUL, id("time"), ast.DIV, id("position"))))
	assert.Equal(t, ILLEGAL_VECTOR_COMBINATION, err.Kind)
}

func Test_Eval_VectorTimesScalar(t *testing.T) {
	ev, _ := newFixture()
	// position / time
	q := evalOk(t, ev, expr(term(id("position"), ast.DIV, id("time"))))
	//
	assert.True(t, q.Physics.Vector)
	assert.Equal(t, []int{1, -1}, q.Physics.Exponents())
	// 3 * position
	q = evalOk(t, ev, expr(term(num(3), ast.MUL, id("position"))))
	assert.True(t, q.Physics.Vector)
}

func Test_Eval_VectorPower(t *testing.T) {
	ev, _ := newFixture()
	// position ** 2
	err := evalErr(t, ev, expr(term(pow(id("position"), num(2)))))
	assert.Equal(t, ILLEGAL_VECTOR_COMBINATION, err.Kind)
	// position ** 0
	q := evalOk(t, ev, expr(term(pow(id("position"), num(0)))))
	assert.False(t, q.Physics.Vector)
	assert.True(t, physics.IsDimensionless(q.Physics))
}

func Test_Eval_ZeroToZero(t *testing.T) {
	ev, _ := newFixture()
	// 0 ** 0
	err := evalErr(t, ev, expr(term(pow(num(0), num(0)))))
	//
	assert.Equal(t, INDETERMINATE_POWER, err.Kind)
	// 0 ** 1 is fine
	q := evalOk(t, ev, expr(term(pow(num(0), num(1)))))
	assert.Approx(t, 0, q.Value)
}

func Test_Eval_NonIntegerExponent(t *testing.T) {
	ev, _ := newFixture()
	// distance ** 0.5
	err := evalErr(t, ev, expr(term(pow(id("distance"), num(0.5)))))
	//
	assert.Equal(t, NON_INTEGER_EXPONENT, err.Kind)
	assert.Approx(t, 0.5, err.Exponent)
	// 2 ** 0.5 is fine
	q := evalOk(t, ev, expr(term(pow(num(2), num(0.5)))))
	assert.Approx(t, math.Sqrt2, q.Value)
}

func Test_Eval_Acceleration(t *testing.T) {
	ev, _ := newFixture()
	// 9.81 * distance / time ** 2
	q := evalOk(t, ev, expr(term(num(9.81), ast.MUL, id("distance"), ast.DIV, pow(id("time"), num(2)))))
	//
	assert.True(t, q.Known)
	assert.Approx(t, 9.81, q.Value)
	assert.Equal(t, []int{1, -2}, q.Physics.Exponents())
	// time ** -(1 + 1)
	exponent := &ast.NumericNegation{Arg: &ast.NumericBinary{Op: ast.ADD, Left: num(1), Right: num(1)}}
	q = evalOk(t, ev, expr(term(pow(id("time"), exponent))))
	assert.Equal(t, []int{0, -2}, q.Physics.Exponents())
}

func Test_Eval_KnownValues(t *testing.T) {
	ev, _ := newFixture()
	// -(d / t)
	e := expr(term(id("d"), ast.DIV, id("t")))
	e.Terms[0].Negated = true
	q := evalOk(t, ev, e)
	//
	assert.True(t, q.Known)
	assert.Approx(t, -20, q.Value)
	assert.Equal(t, []int{1, -1}, q.Physics.Exponents())
	// (d + d) / t
	q = evalOk(t, ev, expr(term(&ast.Paren{Expr: expr(term(id("d")), ast.ADD, term(id("d")))}, ast.DIV, id("t"))))
	assert.Approx(t, 40, q.Value)
}

func Test_Eval_ZeroFactor(t *testing.T) {
	ev, _ := newFixture()
	// d / 0 treats the zero as the identity
	q := evalOk(t, ev, expr(term(id("d"), ast.DIV, num(0))))
	assert.True(t, q.Known)
	assert.Approx(t, 100, q.Value)
	// 0 * 2
	q = evalOk(t, ev, expr(term(num(0), ast.MUL, num(2))))
	assert.Approx(t, 2, q.Value)
	// 0 * distance / 0 stays zero since no factor has a value
	q = evalOk(t, ev, expr(term(num(0), ast.MUL, id("distance"), ast.DIV, num(0))))
	assert.True(t, q.Known)
	assert.Approx(t, 0, q.Value)
	assert.Equal(t, []int{1, 0}, q.Physics.Exponents())
	// a lone zero is still zero
	q = evalOk(t, ev, expr(term(num(0))))
	assert.Approx(t, 0, q.Value)
}

func Test_Eval_DivisionByZero(t *testing.T) {
	ev, _ := newFixture()
	// distance ** (1 / 0)
	exponent := &ast.NumericBinary{Op: ast.DIV, Left: num(1), Right: num(0)}
	err := evalErr(t, ev, expr(term(pow(id("distance"), exponent))))
	assert.Equal(t, DIVISION_BY_ZERO, err.Kind)
}

func Test_Eval_ExponentOutOfRange(t *testing.T) {
	ev, _ := newFixture()
	// distance ** 1e300
	err := evalErr(t, ev, expr(term(pow(id("distance"), num(1e300)))))
	assert.Equal(t, EXPONENT_OUT_OF_RANGE, err.Kind)
	assert.True(t, err.Kind.IsDimensional())
	assert.Equal(t, "exponent 1e+300 out of range for dimensioned base (m)", err.Error())
	// distance ** -(2 ** 40)
	err = evalErr(t, ev, expr(term(pow(id("distance"), num(-(1 << 40))))))
	assert.Equal(t, EXPONENT_OUT_OF_RANGE, err.Kind)
	// 2 ** 1e300 is dimensionless, so only its value overflows
	q := evalOk(t, ev, expr(term(pow(num(2), num(1e300)))))
	assert.True(t, math.IsInf(q.Value, 1))
}

func Test_Eval_Undeclared(t *testing.T) {
	ev, _ := newFixture()
	err := evalErr(t, ev, expr(term(id("mass"))))
	//
	assert.Equal(t, UNDECLARED_IDENTIFIER, err.Kind)
	assert.Equal(t, "undeclared identifier \"mass\"", err.Error())
}

func Test_Eval_NoAliasing(t *testing.T) {
	ev, env := newFixture()
	// distance * distance * distance
	_ = evalOk(t, ev, expr(term(id("distance"), ast.MUL, id("distance"), ast.MUL, id("distance"))))
	// environment types are untouched
	assert.Equal(t, []int{1, 0}, env["distance"].Physics.Exponents())
	assert.Equal(t, "distance", env["distance"].Physics.Name)
}

// ==================================================================
// Framework
// ==================================================================

type testEnv map[string]Quantity

func (p testEnv) Resolve(id *ast.Identifier) (Quantity, bool) {
	q, ok := p[id.Name]
	return q, ok
}

// Construct an evaluator over distance (m) and time (s), with a vector
// position and two bound parameters d = 100 m and t = 5 s.
func newFixture() (*Evaluator, testEnv) {
	var (
		reg         = dimension.NewRegistry(prime.NewPool())
		distance, _ = reg.Register("distance", "m")
		time, _     = reg.Register("time", "s")
		env         = make(testEnv)
	)
	//
	signal := func(name string, dim *dimension.Dimension, vector bool) *physics.Physics {
		p := physics.New(reg)
		p.Name = name
		p.Vector = vector
		p.IncrementExponent(dim)
		//
		return p
	}
	//
	env["distance"] = Quantity{0, false, signal("distance", distance, false)}
	env["time"] = Quantity{0, false, signal("time", time, false)}
	env["position"] = Quantity{0, false, signal("position", distance, true)}
	env["d"] = Quantity{100, true, signal("distance", distance, false)}
	env["t"] = Quantity{5, true, signal("time", time, false)}
	//
	return NewEvaluator(reg, env), env
}

func evalOk(t *testing.T, ev *Evaluator, e *ast.Expr) Quantity {
	q, err := ev.Evaluate(e)
	if err != nil {
		t.Fatalf("unexpected error evaluating %s: %s", e, err)
	}
	//
	return q
}

func evalErr(t *testing.T, ev *Evaluator, e *ast.Expr) *Error {
	var target *Error
	//
	if _, err := ev.Evaluate(e); err == nil {
		t.Fatalf("expected error evaluating %s", e)
	} else if !errors.As(err, &target) {
		t.Fatalf("unexpected error type %T", err)
	}
	//
	return target
}

func id(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func num(v float64) *ast.Number {
	return &ast.Number{Value: v}
}

func pow(atom ast.Atom, exponent ast.NumericExpr) *ast.Factor {
	return &ast.Factor{Atom: atom, Exponent: exponent}
}

// Build an expression from alternating terms and operators.
func expr(items ...any) *ast.Expr {
	e := &ast.Expr{}
	//
	for _, item := range items {
		switch item := item.(type) {
		case *ast.Term:
			e.Terms = append(e.Terms, item)
		case ast.BinOp:
			e.Ops = append(e.Ops, item)
		}
	}
	//
	return e
}

// Build a term from alternating factors (or atoms) and operators.
func term(items ...any) *ast.Term {
	t := &ast.Term{}
	//
	for _, item := range items {
		switch item := item.(type) {
		case *ast.Factor:
			t.Factors = append(t.Factors, item)
		case ast.Atom:
			t.Factors = append(t.Factors, &ast.Factor{Atom: item})
		case ast.BinOp:
			t.Ops = append(t.Ops, item)
		}
	}
	//
	return t
}
