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

// Program is a parsed Newton description: an ordered list of declarations.
type Program struct {
	Declarations []Declaration
}

// Declaration is one of *Signal, *Constant or *Invariant.
type Declaration interface {
	// DeclaredName returns the name introduced by this declaration.
	DeclaredName() string
}

// DerivationKind distinguishes the three forms of signal derivation.
type DerivationKind uint8

const (
	// BASE signals (derivation = none) introduce a new base dimension.
	BASE DerivationKind = iota
	// DIMENSIONLESS signals (derivation = dimensionless) have no dimension.
	DIMENSIONLESS
	// DERIVED signals are defined by a quantity expression.
	DERIVED
)

// Signal declares a physical quantity type, such as distance or speed.
type Signal struct {
	Name string
	// Vector is set for "vector signal" declarations.
	Vector bool
	// Alias is the unit name given by `name = "meter" English;`.
	Alias string
	// Language of the alias (e.g. English).
	Language string
	// Symbol is the unit abbreviation given by `symbol = m;`.
	Symbol string
	// Kind of derivation.
	Kind DerivationKind
	// Derivation holds the defining expression of DERIVED signals.
	Derivation *Expr
	// Family is non-nil for subindexed signals, e.g. `signal(i : 0 to 2)`.
	Family *Family
}

// DeclaredName implementation for Declaration interface.
func (s *Signal) DeclaredName() string {
	return s.Name
}

// Family is the subindex range of a signal family.  Both bounds are inclusive.
type Family struct {
	Variable string
	Start    uint
	End      uint
}

// Size returns the number of variants in this family.
func (f *Family) Size() uint {
	return f.End - f.Start + 1
}

// Constant declares a named quantity with a known value, such as
// `g : constant = 9.81 * m / s ** 2;`.
type Constant struct {
	Name string
	Expr *Expr
}

// DeclaredName implementation for Declaration interface.
func (c *Constant) DeclaredName() string {
	return c.Name
}

// Invariant declares a named group of constraints over typed parameters.
type Invariant struct {
	Name        string
	Parameters  []*Parameter
	Constraints []*Constraint
}

// DeclaredName implementation for Declaration interface.
func (i *Invariant) DeclaredName() string {
	return i.Name
}

// Parameter of an invariant, such as `x : position @ 1`.
type Parameter struct {
	Name string
	// Type names the signal giving this parameter's physics.
	Type string
	// Subindex selects a variant of a signal family.
	Subindex uint
}

// Constraint compares two quantity expressions.
type Constraint struct {
	Left  *Expr
	Op    CmpOp
	Right *Expr
}
