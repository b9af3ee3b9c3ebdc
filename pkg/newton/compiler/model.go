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
package compiler

import (
	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/dimension"
	"github.com/consensys/go-newton/pkg/newton/eval"
	"github.com/consensys/go-newton/pkg/newton/invariant"
	"github.com/consensys/go-newton/pkg/newton/physics"
	"github.com/consensys/go-newton/pkg/newton/prime"
	"github.com/consensys/go-newton/pkg/util/source"
)

// Model is the result of compiling a Newton description.  It holds the
// registries populated by the declarations, along with the program and its
// source map so that later errors can still be reported against the text.
type Model struct {
	Program    *ast.Program
	SourceMap  *source.Map[any]
	Pool       *prime.Pool
	Dimensions *dimension.Registry
	// Signals in declaration order, with the variants of a family adjacent.
	Signals []*physics.Physics
	// Constants in declaration order.
	Constants  []*physics.Physics
	Invariants *invariant.Registry
	// Index of declared names to their physics.
	names map[string][]*physics.Physics
	// Names of signal families.
	families map[string]bool
}

func newModel(program *ast.Program, srcmap *source.Map[any]) *Model {
	pool := prime.NewPool()
	//
	return &Model{
		Program:    program,
		SourceMap:  srcmap,
		Pool:       pool,
		Dimensions: dimension.NewRegistry(pool),
		Invariants: invariant.NewRegistry(),
		names:      make(map[string][]*physics.Physics),
		families:   make(map[string]bool),
	}
}

// Lookup finds the signal or constant with the given name and subindex.
func (m *Model) Lookup(name string, subindex uint) (*physics.Physics, bool) {
	for _, p := range m.names[name] {
		if p.Subindex == subindex {
			return p, true
		}
	}
	//
	return nil, false
}

// LookupSignal finds a signal (i.e. not a constant) with the given name and
// subindex.
func (m *Model) LookupSignal(name string, subindex uint) (*physics.Physics, bool) {
	if p, ok := m.Lookup(name, subindex); ok && !p.Constant {
		return p, true
	}
	//
	return nil, false
}

// Family checks whether a name was declared as a family of signals.
func (m *Model) Family(name string) bool {
	return m.families[name]
}

// Declared checks whether a name has been declared already.
func (m *Model) Declared(name string) bool {
	_, ok := m.names[name]
	return ok
}

// Resolve an identifier occurring in an expression.  Signal and constant names
// are tried first, followed by unit names and then unit symbols.  A name
// without subindex denotes the first variant of a family.  Signals resolve
// with no known value, whilst constants resolve to their value.
func (m *Model) Resolve(id *ast.Identifier) (eval.Quantity, bool) {
	var (
		p  *physics.Physics
		ok bool
	)
	//
	if id.HasSubindex {
		p, ok = m.Lookup(id.Name, id.Subindex)
	} else if variants := m.names[id.Name]; len(variants) > 0 {
		p, ok = variants[0], true
	} else if p, ok = m.findAlias(id.Name); !ok {
		p, ok = m.findAbbreviation(id.Name)
	}
	//
	if !ok {
		return eval.Quantity{}, false
	}
	//
	return eval.Quantity{Value: p.Value, Known: p.Constant, Physics: p}, true
}

func (m *Model) findAlias(alias string) (*physics.Physics, bool) {
	for _, p := range m.Signals {
		if p.Alias != "" && p.Alias == alias {
			return p, true
		}
	}
	//
	return nil, false
}

func (m *Model) findAbbreviation(symbol string) (*physics.Physics, bool) {
	for _, p := range m.Signals {
		if p.AliasAbbreviation != "" && p.AliasAbbreviation == symbol {
			return p, true
		}
	}
	//
	return nil, false
}

// declare records a new signal or constant, which must have a fresh name
// (though family variants share one).
func (m *Model) declare(p *physics.Physics) {
	if p.Constant {
		m.Constants = append(m.Constants, p)
	} else {
		m.Signals = append(m.Signals, p)
	}
	//
	m.names[p.Name] = append(m.names[p.Name], p)
}
