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
	"fmt"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/physics"
)

// Kind classifies a checked evaluation error.
type Kind uint8

const (
	// DIMENSION_MISMATCH arises when adding or subtracting quantities whose
	// dimensions are not equivalent.
	DIMENSION_MISMATCH Kind = iota
	// ILLEGAL_VECTOR_COMBINATION arises when two vectors meet in one term.
	ILLEGAL_VECTOR_COMBINATION
	// NON_INTEGER_EXPONENT arises when a dimensioned base is raised to a
	// fractional power.
	NON_INTEGER_EXPONENT
	// EXPONENT_OUT_OF_RANGE arises when a dimensioned base is raised to an
	// integral power too large to be represented as a dimension exponent.
	EXPONENT_OUT_OF_RANGE
	// INDETERMINATE_POWER arises for 0 ** 0.
	INDETERMINATE_POWER
	// DIVISION_BY_ZERO arises when an exponent expression divides by zero.
	DIVISION_BY_ZERO
	// UNDECLARED_IDENTIFIER arises for names which resolve to nothing.
	UNDECLARED_IDENTIFIER
)

// IsDimensional holds for errors concerning dimensions rather than values.
func (k Kind) IsDimensional() bool {
	return k == DIMENSION_MISMATCH || k == ILLEGAL_VECTOR_COMBINATION || k == NON_INTEGER_EXPONENT ||
		k == EXPONENT_OUT_OF_RANGE
}

func (k Kind) String() string {
	switch k {
	case DIMENSION_MISMATCH:
		return "dimension mismatch"
	case ILLEGAL_VECTOR_COMBINATION:
		return "illegal vector combination"
	case NON_INTEGER_EXPONENT:
		return "non-integer exponent"
	case EXPONENT_OUT_OF_RANGE:
		return "exponent out of range"
	case INDETERMINATE_POWER:
		return "indeterminate power"
	case DIVISION_BY_ZERO:
		return "division by zero"
	case UNDECLARED_IDENTIFIER:
		return "undeclared identifier"
	}
	//
	panic("unreachable")
}

// Error is a checked error arising from evaluating a quantity expression.
// Left and Right are the operand types (either may be nil), and Node is the
// syntax tree node on which the error should be reported.
type Error struct {
	Kind     Kind
	Operator ast.BinOp
	Left     *physics.Physics
	Right    *physics.Physics
	// Exponent value, for NON_INTEGER_EXPONENT.
	Exponent float64
	Node     any
}

func (e *Error) Error() string {
	switch e.Kind {
	case DIMENSION_MISMATCH:
		return fmt.Sprintf("dimension mismatch (%s %s %s)", e.Left.Units(), e.Operator, e.Right.Units())
	case ILLEGAL_VECTOR_COMBINATION:
		return fmt.Sprintf("illegal vector combination (vector %s vector)", e.Operator)
	case NON_INTEGER_EXPONENT:
		return fmt.Sprintf("non-integer exponent %g for dimensioned base (%s)", e.Exponent, e.Left.Units())
	case EXPONENT_OUT_OF_RANGE:
		return fmt.Sprintf("exponent %g out of range for dimensioned base (%s)", e.Exponent, e.Left.Units())
	case INDETERMINATE_POWER:
		return "indeterminate power (0 ** 0)"
	case DIVISION_BY_ZERO:
		return "division by zero"
	case UNDECLARED_IDENTIFIER:
		return fmt.Sprintf("undeclared identifier \"%s\"", e.Node)
	}
	//
	panic("unreachable")
}

func newError(kind Kind, op ast.BinOp, lhs *physics.Physics, rhs *physics.Physics, node any) *Error {
	return &Error{kind, op, lhs, rhs, 0, node}
}
