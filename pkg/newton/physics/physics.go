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
package physics

import (
	"fmt"
	"strings"

	"github.com/consensys/go-newton/pkg/newton/dimension"
)

// Physics is the type of a physical quantity.  It pairs an exponent vector,
// holding exactly one entry per registered dimension in registry order, with
// the metadata of the signal, constant or intermediate result it describes.
// Every holder owns its own copy: a Physics must be cloned before it is
// mutated by expression evaluation.
type Physics struct {
	// Name of the declaration this describes (empty for intermediates).
	Name string
	// Vector signals model quantities with several components.
	Vector bool
	// Constant is set for named constants, in which case Value is meaningful.
	Constant bool
	// Value holds the numeric value of a constant.
	Value float64
	// Id is the quantity identifier used when fingerprinting invariants.  This
	// is zero for constants and intermediates.
	Id uint64
	// Subindex of this variant within a signal family (0 otherwise).
	Subindex uint
	// Alias is the user-facing unit name (e.g. "meter").
	Alias string
	// AliasAbbreviation is the user-facing unit symbol (e.g. "m").
	AliasAbbreviation string
	//
	dimensions []*dimension.Dimension
	exponents  []int
}

// New constructs a dimensionless Physics with one zero exponent for every
// registered dimension.  Constructing the first vector freezes the registry.
func New(reg *dimension.Registry) *Physics {
	reg.Freeze()
	//
	return &Physics{
		dimensions: reg.Dimensions(),
		exponents:  make([]int, reg.Len()),
	}
}

// Clone returns a deep copy of this Physics.
func (p *Physics) Clone() *Physics {
	clone := *p
	clone.exponents = append([]int(nil), p.exponents...)
	//
	return &clone
}

// Intermediate returns a private copy of this vector for use as an
// intermediate result.  Only the exponents and the vector flag are retained.
func (p *Physics) Intermediate() *Physics {
	return &Physics{
		Vector:     p.Vector,
		dimensions: p.dimensions,
		exponents:  append([]int(nil), p.exponents...),
	}
}

// Len returns the length of the exponent vector.
func (p *Physics) Len() int {
	return len(p.exponents)
}

// Exponent returns the exponent of a given dimension within this vector.
func (p *Physics) Exponent(dim *dimension.Dimension) int {
	return p.exponents[p.indexOf(dim)]
}

// Exponents returns a copy of the exponent vector.
func (p *Physics) Exponents() []int {
	return append([]int(nil), p.exponents...)
}

// IncrementExponent adds one to the exponent of a given dimension.  The
// dimension must be part of the vector.
func (p *Physics) IncrementExponent(dim *dimension.Dimension) {
	p.exponents[p.indexOf(dim)]++
}

// AddExponents adds the exponents of src pairwise onto dst, as happens when
// two quantities are multiplied.
func AddExponents(dst *Physics, src *Physics) {
	checkCompatible(dst, src)
	//
	for i, e := range src.exponents {
		dst.exponents[i] += e
	}
}

// SubtractExponents subtracts the exponents of src pairwise from dst, as
// happens when one quantity is divided by another.
func SubtractExponents(dst *Physics, src *Physics) {
	checkCompatible(dst, src)
	//
	for i, e := range src.exponents {
		dst.exponents[i] -= e
	}
}

// MultiplyExponents scales every exponent of dst, as happens when a quantity
// is raised to an integer power.
func MultiplyExponents(dst *Physics, scalar int) {
	if dst == nil {
		panic("nil exponent vector")
	}
	//
	for i := range dst.exponents {
		dst.exponents[i] *= scalar
	}
}

// IsDimensionless holds if every exponent is zero.  By convention nil denotes
// a plain number, and is therefore dimensionless.
func IsDimensionless(p *Physics) bool {
	if p == nil {
		return true
	}
	//
	for _, e := range p.exponents {
		if e != 0 {
			return false
		}
	}
	//
	return true
}

// Equivalent holds if two vectors have the same length and pairwise equal
// exponents.  A nil argument is only equivalent to a dimensionless one.
func Equivalent(a *Physics, b *Physics) bool {
	if a == nil || b == nil {
		return IsDimensionless(a) && IsDimensionless(b)
	} else if len(a.exponents) != len(b.exponents) {
		return false
	}
	//
	for i := range a.exponents {
		if a.exponents[i] != b.exponents[i] {
			return false
		}
	}
	//
	return true
}

// Units renders the exponent vector in unit notation, such as "m s^-2".
func (p *Physics) Units() string {
	if IsDimensionless(p) {
		return "dimensionless"
	}
	//
	var parts []string
	//
	for i, e := range p.exponents {
		switch {
		case e == 0:
			continue
		case e == 1:
			parts = append(parts, p.dimensions[i].Symbol())
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", p.dimensions[i].Symbol(), e))
		}
	}
	//
	return strings.Join(parts, " ")
}

func (p *Physics) String() string {
	var builder strings.Builder
	//
	if p.Name != "" {
		builder.WriteString(p.Name)
		builder.WriteString(" ")
	}
	//
	if p.Vector {
		builder.WriteString("vector ")
	}
	//
	builder.WriteString("[")
	builder.WriteString(p.Units())
	builder.WriteString("]")
	//
	return builder.String()
}

func (p *Physics) indexOf(dim *dimension.Dimension) int {
	if dim.Index < len(p.dimensions) && p.dimensions[dim.Index] == dim {
		return dim.Index
	}
	//
	panic(fmt.Sprintf("dimension %s not present in exponent vector", dim.Name))
}

func checkCompatible(dst *Physics, src *Physics) {
	if dst == nil || src == nil {
		panic("nil exponent vector")
	} else if len(dst.exponents) != len(src.exponents) {
		panic(fmt.Sprintf("exponent vectors differ in length (%d vs %d)", len(dst.exponents), len(src.exponents)))
	}
	//
	for i := range dst.dimensions {
		if dst.dimensions[i] != src.dimensions[i] {
			panic("exponent vectors differ in dimension order")
		}
	}
}
