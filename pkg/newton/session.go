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
package newton

import (
	"errors"
	"fmt"

	"github.com/consensys/go-newton/pkg/newton/check"
	"github.com/consensys/go-newton/pkg/newton/compiler"
	"github.com/consensys/go-newton/pkg/newton/invariant"
	"github.com/consensys/go-newton/pkg/newton/physics"
	"github.com/consensys/go-newton/pkg/util/source"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrNoMatchingInvariant is returned when no invariant has parameter types
// matching those supplied by the caller.
var ErrNoMatchingInvariant = errors.New("no invariant matches the given parameters")

// Parameter is one element of the parameter tuple supplied by a host program.
// Name identifies the signal giving the parameter's type, and Number its
// position within the tuple.
type Parameter struct {
	Number   int
	Name     string
	Subindex uint
	Value    float64
}

// UnknownSignalError is returned when a parameter names no declared signal.
type UnknownSignalError struct {
	Name     string
	Subindex uint
}

func (e *UnknownSignalError) Error() string {
	if e.Subindex != 0 {
		return fmt.Sprintf("unknown signal %s@%d", e.Name, e.Subindex)
	}
	//
	return fmt.Sprintf("unknown signal %s", e.Name)
}

// CompileError is returned when a Newton description fails to compile.
type CompileError struct {
	Errors []source.SyntaxError
}

func (e *CompileError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	//
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

// Session holds everything declared by one Newton description: dimensions,
// physics and invariants.  Sessions share no state, so any number may be used
// side by side.
type Session struct {
	id     string
	model  *compiler.Model
	logger *log.Entry
}

// Init reads, parses and checks a Newton description from disk.
func Init(filename string) (*Session, error) {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return InitFromSource(srcfile)
}

// InitFromSource parses and checks a Newton description held in memory.
func InitFromSource(srcfile *source.File) (*Session, error) {
	var (
		id     = uuid.NewString()
		logger = log.WithField("session", id)
	)
	//
	logger.Debugf("compiling %s", srcfile.Filename())
	//
	model, errs := compiler.Compile(srcfile)
	if len(errs) > 0 {
		return nil, &CompileError{errs}
	}
	//
	return &Session{id, model, logger}, nil
}

// Id returns the unique identifier of this session.
func (s *Session) Id() string {
	return s.id
}

// Model returns the compiled description underlying this session.
func (s *Session) Model() *compiler.Model {
	return s.model
}

// PhysicsByName returns a copy of the physics of the named signal or constant.
// For a signal family, this is its first variant.
func (s *Session) PhysicsByName(name string) (*physics.Physics, bool) {
	q, ok := s.model.Lookup(name, 0)
	//
	if !ok {
		for _, p := range s.model.Signals {
			if p.Name == name {
				return p.Clone(), true
			}
		}
		//
		return nil, false
	}
	//
	return q.Clone(), true
}

// PhysicsByNameAndSubindex returns a copy of the physics of a given variant of
// a signal family.
func (s *Session) PhysicsByNameAndSubindex(name string, subindex uint) (*physics.Physics, bool) {
	if p, ok := s.model.Lookup(name, subindex); ok {
		return p.Clone(), true
	}
	//
	return nil, false
}

// Invariants returns every invariant declared in this session, in order.
func (s *Session) Invariants() []*invariant.Invariant {
	return s.model.Invariants.All()
}

// InvariantByParameters finds the invariant whose parameter types are exactly
// (as a multiset) the types of the given parameters.  Since matching is by
// fingerprint, the order of parameters is irrelevant.
func (s *Session) InvariantByParameters(params []Parameter) (*invariant.Invariant, error) {
	types, err := s.resolve(params)
	if err != nil {
		return nil, err
	}
	//
	if inv, ok := s.model.Invariants.FindForParameters(types); ok {
		return inv, nil
	}
	//
	return nil, ErrNoMatchingInvariant
}

// CheckConstraints finds the invariant matching the given parameters, and then
// evaluates each of its constraints against their values.
func (s *Session) CheckConstraints(params []Parameter) (*check.Report, error) {
	types, err := s.resolve(params)
	if err != nil {
		return nil, err
	}
	//
	inv, ok := s.model.Invariants.FindForParameters(types)
	if !ok {
		return nil, ErrNoMatchingInvariant
	}
	//
	s.logger.Debugf("checking %s", inv)
	//
	bindings := make([]check.Binding, len(params))
	//
	for i, param := range params {
		bindings[i] = check.Binding{Number: param.Number, Subindex: param.Subindex, Value: param.Value}
	}
	//
	report, err := check.CheckConstraints(s.model.Dimensions, inv, bindings, s.model)
	if err != nil {
		return nil, err
	}
	//
	s.logger.Debugf("%s satisfied: %t", inv.Name, report.Satisfied())
	//
	return report, nil
}

// Determine the type of each parameter.
func (s *Session) resolve(params []Parameter) ([]*physics.Physics, error) {
	types := make([]*physics.Physics, len(params))
	//
	for i, param := range params {
		p, ok := s.model.LookupSignal(param.Name, param.Subindex)
		if !ok {
			return nil, &UnknownSignalError{param.Name, param.Subindex}
		}
		//
		types[i] = p
	}
	//
	return types, nil
}
