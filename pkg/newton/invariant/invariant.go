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
package invariant

import (
	"fmt"
	"strings"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/physics"
	log "github.com/sirupsen/logrus"
)

// Parameter of an invariant, bound to a physical-quantity type.  Number is the
// zero-based position of this parameter within the invariant's signature.
type Parameter struct {
	Name   string
	Number int
	Type   *physics.Physics
}

// Invariant is a named group of constraints over typed parameters.
type Invariant struct {
	Name        string
	Parameters  []*Parameter
	Constraints []*ast.Constraint
	// Id is the fingerprint of the parameter types, assigned on registration.
	Id Fingerprint
}

// Signature computes the fingerprint of this invariant's parameter types.
func (p *Invariant) Signature() Fingerprint {
	fp := NewFingerprint()
	//
	for _, param := range p.Parameters {
		if param.Type.Id == 0 {
			panic(fmt.Sprintf("parameter %s of %s has no quantity identifier", param.Name, p.Name))
		}
		//
		fp = fp.Mul(param.Type.Id)
	}
	//
	return fp
}

func (p *Invariant) String() string {
	var params = make([]string, len(p.Parameters))
	//
	for i, param := range p.Parameters {
		params[i] = fmt.Sprintf("%s : %s", param.Name, param.Type.Name)
		//
		if param.Type.Subindex != 0 {
			params[i] = fmt.Sprintf("%s @ %d", params[i], param.Type.Subindex)
		}
	}
	//
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(params, ", "))
}

// DuplicateError is returned when registering an invariant whose parameter
// types are indistinguishable from those of an existing invariant.
type DuplicateError struct {
	Invariant *Invariant
	Existing  *Invariant
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("invariant %s has the same parameter signature as %s", e.Invariant.Name, e.Existing.Name)
}

// Registry holds the invariants declared within a session, indexed by their
// fingerprint.
type Registry struct {
	invariants []*Invariant
	index      map[Fingerprint]*Invariant
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{nil, make(map[Fingerprint]*Invariant)}
}

// Register computes the fingerprint of an invariant and adds it to the
// registry.  This fails if another invariant has the same fingerprint.
func (r *Registry) Register(inv *Invariant) error {
	inv.Id = inv.Signature()
	//
	if existing, ok := r.index[inv.Id]; ok {
		return &DuplicateError{inv, existing}
	}
	//
	r.invariants = append(r.invariants, inv)
	r.index[inv.Id] = inv
	//
	log.Debugf("registered invariant %s with fingerprint %s", inv.Name, inv.Id.String())
	//
	return nil
}

// Find the invariant with a given fingerprint.
func (r *Registry) Find(fp Fingerprint) (*Invariant, bool) {
	inv, ok := r.index[fp]
	return inv, ok
}

// FindForParameters finds the invariant whose parameter types form the same
// multiset as those given.  Parameter order is irrelevant.
func (r *Registry) FindForParameters(types []*physics.Physics) (*Invariant, bool) {
	fp := NewFingerprint()
	//
	for _, t := range types {
		fp = fp.Mul(t.Id)
	}
	//
	return r.Find(fp)
}

// Lookup finds an invariant by name.
func (r *Registry) Lookup(name string) (*Invariant, bool) {
	for _, inv := range r.invariants {
		if inv.Name == name {
			return inv, true
		}
	}
	//
	return nil, false
}

// All returns the registered invariants in declaration order.
func (r *Registry) All() []*Invariant {
	return r.invariants
}
