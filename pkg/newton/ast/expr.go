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
package ast

import (
	"fmt"
	"strings"
)

// BinOp identifies an arithmetic operator.
type BinOp uint8

const (
	// ADD is "+"
	ADD BinOp = iota
	// SUB is "-"
	SUB
	// MUL is "*"
	MUL
	// DIV is "/"
	DIV
	// POW is "**"
	POW
)

func (op BinOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case POW:
		return "**"
	}
	//
	panic("unreachable")
}

// CmpOp identifies a comparison operator used in constraints.
type CmpOp uint8

const (
	// LT is "<"
	LT CmpOp = iota
	// LTEQ is "<="
	LTEQ
	// GT is ">"
	GT
	// GTEQ is ">="
	GTEQ
	// EQ is "=="
	EQ
	// PROPORTIONAL is "~"
	PROPORTIONAL
)

func (op CmpOp) String() string {
	switch op {
	case LT:
		return "<"
	case LTEQ:
		return "<="
	case GT:
		return ">"
	case GTEQ:
		return ">="
	case EQ:
		return "=="
	case PROPORTIONAL:
		return "~"
	}
	//
	panic("unreachable")
}

// Expr is a sum of terms, e.g. `a * b - c`.  There is exactly one operator
// (ADD or SUB) between each pair of consecutive terms.
type Expr struct {
	Terms []*Term
	Ops   []BinOp
}

// Term is a product of factors with an optional leading unary minus.  There is
// exactly one operator (MUL or DIV) between each pair of consecutive factors.
type Term struct {
	Negated bool
	Factors []*Factor
	Ops     []BinOp
}

// Factor is an atom optionally raised to a numeric exponent.
type Factor struct {
	Atom     Atom
	Exponent NumericExpr
}

// Atom is one of *Identifier, *Number or *Paren.
type Atom interface {
	fmt.Stringer
	isAtom()
}

// Identifier refers to a signal, constant, unit alias or invariant parameter.
// A subindex (written `name @ 2`) selects one variant of a signal family.
type Identifier struct {
	Name        string
	Subindex    uint
	HasSubindex bool
}

func (*Identifier) isAtom() {}

func (p *Identifier) String() string {
	if p.HasSubindex {
		return fmt.Sprintf("%s@%d", p.Name, p.Subindex)
	}
	//
	return p.Name
}

// Number is a numeric literal.  Numbers are dimensionless.
type Number struct {
	Value float64
}

func (*Number) isAtom()    {}
func (*Number) isNumeric() {}

func (p *Number) String() string {
	return fmt.Sprintf("%g", p.Value)
}

// Paren is a parenthesised quantity expression.
type Paren struct {
	Expr *Expr
}

func (*Paren) isAtom() {}

func (p *Paren) String() string {
	return fmt.Sprintf("(%s)", p.Expr)
}

// NumericExpr is an exponent expression.  Exponents are never dimensioned, so
// they can refer only to numbers.  This is one of *Number, *NumericNegation or
// *NumericBinary.
type NumericExpr interface {
	fmt.Stringer
	isNumeric()
}

// NumericNegation negates a numeric expression.
type NumericNegation struct {
	Arg NumericExpr
}

func (*NumericNegation) isNumeric() {}

func (p *NumericNegation) String() string {
	return fmt.Sprintf("-%s", p.Arg)
}

// NumericBinary combines two numeric expressions with ADD, SUB, MUL or DIV.
type NumericBinary struct {
	Op    BinOp
	Left  NumericExpr
	Right NumericExpr
}

func (*NumericBinary) isNumeric() {}

func (p *NumericBinary) String() string {
	return fmt.Sprintf("(%s %s %s)", p.Left, p.Op, p.Right)
}

func (p *Expr) String() string {
	var builder strings.Builder
	//
	for i, t := range p.Terms {
		if i > 0 {
			builder.WriteString(fmt.Sprintf(" %s ", p.Ops[i-1]))
		}
		//
		builder.WriteString(t.String())
	}
	//
	return builder.String()
}

func (p *Term) String() string {
	var builder strings.Builder
	//
	if p.Negated {
		builder.WriteString("-")
	}
	//
	for i, f := range p.Factors {
		if i > 0 {
			builder.WriteString(fmt.Sprintf(" %s ", p.Ops[i-1]))
		}
		//
		builder.WriteString(f.String())
	}
	//
	return builder.String()
}

func (p *Factor) String() string {
	if p.Exponent != nil {
		return fmt.Sprintf("%s ** %s", p.Atom, p.Exponent)
	}
	//
	return p.Atom.String()
}

func (p *Constraint) String() string {
	return fmt.Sprintf("%s %s %s", p.Left, p.Op, p.Right)
}
