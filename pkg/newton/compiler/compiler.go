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
	"errors"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/newton/eval"
	"github.com/consensys/go-newton/pkg/newton/invariant"
	"github.com/consensys/go-newton/pkg/newton/parser"
	"github.com/consensys/go-newton/pkg/newton/physics"
	"github.com/consensys/go-newton/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Compile takes a given source file, parses it and checks every declaration.
// The first pass registers the dimension introduced by every base signal, such
// that the dimension registry is complete before any physics is constructed.
// The second pass walks declarations in order, assigning quantity ids and
// checking every expression.  Checked errors are reported against the text
// responsible, and compilation continues with the next declaration.
func Compile(srcfile *source.File) (*Model, []source.SyntaxError) {
	program, srcmap, errs := parser.Parse(srcfile)
	// Syntax check
	if len(errs) != 0 {
		return nil, errs
	}
	//
	model := newModel(program, srcmap)
	// Pass 1
	if errs = registerDimensions(model); len(errs) != 0 {
		return nil, errs
	}
	// Pass 2
	for _, decl := range program.Declarations {
		switch decl := decl.(type) {
		case *ast.Signal:
			errs = append(errs, checkSignal(model, decl)...)
		case *ast.Constant:
			errs = append(errs, checkConstant(model, decl)...)
		case *ast.Invariant:
			errs = append(errs, checkInvariant(model, decl)...)
		default:
			panic("unreachable")
		}
	}
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	log.Debugf("compiled %s: %d dimensions, %d signals, %d constants, %d invariants", srcfile.Filename(),
		model.Dimensions.Len(), len(model.Signals), len(model.Constants), len(model.Invariants.All()))
	//
	return model, nil
}

// Register one dimension for every base signal.  The variants of a family all
// share the same dimension.
func registerDimensions(model *Model) []source.SyntaxError {
	var errs []source.SyntaxError
	//
	for _, decl := range model.Program.Declarations {
		if signal, ok := decl.(*ast.Signal); ok && signal.Kind == ast.BASE {
			if _, err := model.Dimensions.Register(signal.Name, signal.Symbol); err != nil {
				errs = append(errs, *model.SourceMap.SyntaxError(signal, err.Error()))
			}
		}
	}
	//
	return errs
}

func checkSignal(model *Model, decl *ast.Signal) []source.SyntaxError {
	var (
		template *physics.Physics
		start    uint
		end      uint
	)
	//
	if model.Declared(decl.Name) {
		return model.SourceMap.SyntaxErrors(decl, "redeclared identifier")
	}
	// Determine dimensions
	switch decl.Kind {
	case ast.BASE:
		dim, ok := model.Dimensions.Lookup(decl.Name)
		if !ok {
			panic("unreachable")
		}
		//
		template = physics.New(model.Dimensions)
		template.IncrementExponent(dim)
	case ast.DIMENSIONLESS:
		template = physics.New(model.Dimensions)
	case ast.DERIVED:
		evaluator := eval.NewEvaluator(model.Dimensions, model)
		//
		q, err := evaluator.Evaluate(decl.Derivation)
		if err != nil {
			return evalErrors(model, decl, err)
		}
		//
		template = q.Physics
		template.Value = 0
	}
	//
	template.Name = decl.Name
	template.Vector = decl.Vector
	template.Alias = decl.Alias
	template.AliasAbbreviation = decl.Symbol
	//
	if decl.Family != nil {
		start, end = decl.Family.Start, decl.Family.End
		model.families[decl.Name] = true
	}
	// Allocate one physics for each variant
	for subindex := start; subindex <= end; subindex++ {
		p := template.Clone()
		p.Subindex = subindex
		//
		id, err := model.Pool.Next()
		if err != nil {
			return model.SourceMap.SyntaxErrors(decl, err.Error())
		}
		//
		p.Id = id
		model.declare(p)
		//
		log.Debugf("signal %s@%d: id %d [%s]", p.Name, subindex, p.Id, p.Units())
	}
	//
	return nil
}

func checkConstant(model *Model, decl *ast.Constant) []source.SyntaxError {
	if model.Declared(decl.Name) {
		return model.SourceMap.SyntaxErrors(decl, "redeclared identifier")
	}
	//
	evaluator := eval.NewEvaluator(model.Dimensions, model)
	//
	q, err := evaluator.Evaluate(decl.Expr)
	if err != nil {
		return evalErrors(model, decl, err)
	}
	//
	p := q.Physics
	p.Name = decl.Name
	p.Constant = true
	p.Value = q.Value
	// Constants over signals alone act as units
	if !q.Known {
		p.Value = 1
	}
	//
	model.declare(p)
	//
	log.Debugf("constant %s = %g [%s]", p.Name, p.Value, p.Units())
	//
	return nil
}

func checkInvariant(model *Model, decl *ast.Invariant) []source.SyntaxError {
	var (
		inv  = &invariant.Invariant{Name: decl.Name, Constraints: decl.Constraints}
		env  = &environment{make(map[string]*physics.Physics), model}
		errs []source.SyntaxError
	)
	// Resolve parameter types
	for i, param := range decl.Parameters {
		if _, ok := env.params[param.Name]; ok {
			errs = append(errs, *model.SourceMap.SyntaxError(param, "duplicate parameter"))
			continue
		} else if !model.Declared(param.Type) {
			errs = append(errs, *model.SourceMap.SyntaxError(param, "unknown signal "+param.Type))
			continue
		}
		//
		p, ok := model.LookupSignal(param.Type, param.Subindex)
		if !ok {
			errs = append(errs, *model.SourceMap.SyntaxError(param, "invalid parameter type"))
			continue
		}
		//
		env.params[param.Name] = p
		inv.Parameters = append(inv.Parameters, &invariant.Parameter{Name: param.Name, Number: i, Type: p.Clone()})
	}
	//
	if len(errs) > 0 {
		return errs
	}
	// Type check constraints
	evaluator := eval.NewEvaluator(model.Dimensions, env)
	//
	for _, c := range decl.Constraints {
		errs = append(errs, checkConstraint(model, evaluator, c)...)
	}
	//
	if len(errs) > 0 {
		return errs
	}
	// Register
	if err := model.Invariants.Register(inv); err != nil {
		return model.SourceMap.SyntaxErrors(decl, err.Error())
	}
	//
	return nil
}

// Check both sides of a constraint evaluate, and that they are dimensionally
// equivalent (unless the constraint is a proportionality).
func checkConstraint(model *Model, evaluator *eval.Evaluator, c *ast.Constraint) []source.SyntaxError {
	lhs, err := evaluator.Evaluate(c.Left)
	if err != nil {
		return evalErrors(model, c, err)
	}
	//
	rhs, err := evaluator.Evaluate(c.Right)
	if err != nil {
		return evalErrors(model, c, err)
	}
	//
	if c.Op != ast.PROPORTIONAL && !physics.Equivalent(lhs.Physics, rhs.Physics) {
		msg := "dimensions do not match (" + lhs.Physics.Units() + " vs " + rhs.Physics.Units() + ")"
		return model.SourceMap.SyntaxErrors(c, msg)
	}
	//
	return nil
}

// Report an evaluation error at the node responsible for it, or otherwise at
// the enclosing node.
func evalErrors(model *Model, enclosing any, err error) []source.SyntaxError {
	var evalErr *eval.Error
	//
	if errors.As(err, &evalErr) && evalErr.Node != nil && model.SourceMap.Has(evalErr.Node) {
		return model.SourceMap.SyntaxErrors(evalErr.Node, evalErr.Error())
	}
	//
	return model.SourceMap.SyntaxErrors(enclosing, err.Error())
}

// environment resolves invariant parameters to their declared types, whose
// values are unknown until the invariant is checked.
type environment struct {
	params map[string]*physics.Physics
	model  *Model
}

func (p *environment) Resolve(id *ast.Identifier) (eval.Quantity, bool) {
	if t, ok := p.params[id.Name]; ok && !id.HasSubindex {
		return eval.Quantity{Physics: t}, true
	}
	//
	return p.model.Resolve(id)
}
