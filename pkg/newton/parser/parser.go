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
package parser

import (
	"math"
	"slices"
	"strconv"

	"github.com/consensys/go-newton/pkg/newton/ast"
	"github.com/consensys/go-newton/pkg/util/source"
	"github.com/consensys/go-newton/pkg/util/source/lex"
)

// Parse a given Newton description into a program, along with a source map
// relating each node of the program back to the text it came from.
func Parse(srcfile *source.File) (*ast.Program, *source.Map[any], []source.SyntaxError) {
	parser := NewParser(srcfile)
	program, errs := parser.Parse()
	//
	return program, parser.srcmap, errs
}

// Parser is a recursive-descent parser for Newton descriptions.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Source mapping
	srcmap *source.Map[any]
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	srcmap := source.NewSourceMap[any](srcfile)
	//
	return &Parser{srcfile, nil, srcmap, 0}
}

// Parse the given source file into a sequence of zero or more declarations
// and/or some number of syntax errors.
func (p *Parser) Parse() (*ast.Program, []source.SyntaxError) {
	var (
		program     ast.Program
		errors      []source.SyntaxError
		declaration ast.Declaration
	)
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.srcfile); len(errors) > 0 {
		return nil, errors
	}
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		if declaration, errors = p.parseDeclaration(); len(errors) > 0 {
			return nil, errors
		}
		//
		program.Declarations = append(program.Declarations, declaration)
	}
	//
	return &program, nil
}

// Parse a declaration of the form `name : <kind> ...`.
func (p *Parser) parseDeclaration() (ast.Declaration, []source.SyntaxError) {
	var (
		nameToken lex.Token
		errs      []source.SyntaxError
		decl      ast.Declaration
	)
	//
	if nameToken, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(COLON); len(errs) > 0 {
		return nil, errs
	}
	//
	name := p.string(nameToken)
	lookahead := p.lookahead()
	// Determine type of declaration
	switch lookahead.Kind {
	case KEYWORD_SIGNAL, KEYWORD_VECTOR:
		decl, errs = p.parseSignal(name)
	case KEYWORD_CONSTANT:
		decl, errs = p.parseConstant(name)
	case KEYWORD_INVARIANT:
		decl, errs = p.parseInvariant(name)
	default:
		return nil, p.syntaxErrors(lookahead, "unknown declaration")
	}
	//
	if len(errs) == 0 {
		p.srcmap.Put(decl, nameToken.Span)
	}
	//
	return decl, errs
}

// Parse the remainder of a signal declaration, such as:
//
//	vector signal(i : 0 to 2) = { derivation = distance; }
func (p *Parser) parseSignal(name string) (*ast.Signal, []source.SyntaxError) {
	var (
		signal = &ast.Signal{Name: name}
		seen   = make(map[uint]bool)
		errs   []source.SyntaxError
	)
	//
	signal.Vector = p.match(KEYWORD_VECTOR)
	//
	if _, errs = p.expect(KEYWORD_SIGNAL); len(errs) > 0 {
		return nil, errs
	} else if p.follows(LBRACE) {
		if signal.Family, errs = p.parseFamily(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	// Parse properties
	for !p.follows(RCURLY) {
		lookahead := p.lookahead()
		//
		if seen[lookahead.Kind] {
			return nil, p.syntaxErrors(lookahead, "duplicate property")
		}
		//
		seen[lookahead.Kind] = true
		//
		switch lookahead.Kind {
		case KEYWORD_NAME:
			errs = p.parseUnitName(signal)
		case KEYWORD_SYMBOL:
			errs = p.parseUnitSymbol(signal)
		case KEYWORD_DERIVATION:
			errs = p.parseDerivation(signal)
		default:
			errs = p.syntaxErrors(lookahead, "unknown property")
		}
		//
		if len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if !seen[KEYWORD_DERIVATION] {
		return nil, p.syntaxErrors(p.lookahead(), "missing derivation")
	}
	// Consume closing brace and optional semicolon
	p.match(RCURLY)
	p.match(SEMICOLON)
	//
	return signal, nil
}

// Parse a subindex range such as `(i : 0 to 2)`.
func (p *Parser) parseFamily() (*ast.Family, []source.SyntaxError) {
	var (
		start    = p.index
		variable lex.Token
		first    lex.Token
		last     lex.Token
		errs     []source.SyntaxError
	)
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	} else if variable, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(COLON); len(errs) > 0 {
		return nil, errs
	} else if first, errs = p.expect(NUMBER); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(KEYWORD_TO); len(errs) > 0 {
		return nil, errs
	} else if last, errs = p.expect(NUMBER); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	from, errs1 := p.uintOf(first)
	to, errs2 := p.uintOf(last)
	//
	if len(errs1) > 0 {
		return nil, errs1
	} else if len(errs2) > 0 {
		return nil, errs2
	} else if to < from {
		return nil, []source.SyntaxError{*p.srcfile.SyntaxError(p.spanOf(start, p.index-1), "empty subindex range")}
	}
	//
	return &ast.Family{Variable: p.string(variable), Start: from, End: to}, nil
}

// Parse `name = "meter" English;`
func (p *Parser) parseUnitName(signal *ast.Signal) []source.SyntaxError {
	var (
		alias    lex.Token
		language lex.Token
		errs     []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_NAME); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return errs
	} else if alias, errs = p.expect(STRING); len(errs) > 0 {
		return errs
	} else if language, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return errs
	}
	//
	text := p.string(alias)
	signal.Alias = text[1 : len(text)-1]
	signal.Language = p.string(language)
	//
	return nil
}

// Parse `symbol = m;`
func (p *Parser) parseUnitSymbol(signal *ast.Signal) []source.SyntaxError {
	var (
		symbol lex.Token
		errs   []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_SYMBOL); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return errs
	} else if symbol, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return errs
	}
	//
	signal.Symbol = p.string(symbol)
	//
	return nil
}

// Parse `derivation = none | dimensionless | expr;`
func (p *Parser) parseDerivation(signal *ast.Signal) []source.SyntaxError {
	var errs []source.SyntaxError
	//
	if _, errs = p.expect(KEYWORD_DERIVATION); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return errs
	}
	//
	switch {
	case p.match(KEYWORD_NONE):
		signal.Kind = ast.BASE
	case p.match(KEYWORD_DIMENSIONLESS):
		signal.Kind = ast.DIMENSIONLESS
	default:
		signal.Kind = ast.DERIVED
		//
		if signal.Derivation, errs = p.parseExpr(); len(errs) > 0 {
			return errs
		}
	}
	//
	_, errs = p.expect(SEMICOLON)
	//
	return errs
}

// Parse the remainder of `g : constant = 9.81 * m / s ** 2;`
func (p *Parser) parseConstant(name string) (*ast.Constant, []source.SyntaxError) {
	var (
		expr *ast.Expr
		errs []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_CONSTANT); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	} else if expr, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Constant{Name: name, Expr: expr}, nil
}

// Parse the remainder of an invariant declaration, such as:
//
//	invariant(d : distance, t : time) = { d / t < speed_limit }
func (p *Parser) parseInvariant(name string) (*ast.Invariant, []source.SyntaxError) {
	var (
		inv        = &ast.Invariant{Name: name}
		param      *ast.Parameter
		constraint *ast.Constraint
		errs       []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_INVARIANT); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	// Parse parameters
	for len(inv.Parameters) == 0 || p.match(COMMA) {
		if param, errs = p.parseParameter(); len(errs) > 0 {
			return nil, errs
		}
		//
		inv.Parameters = append(inv.Parameters, param)
	}
	//
	if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	// Parse constraints
	for !p.follows(RCURLY) {
		if len(inv.Constraints) > 0 {
			if _, errs = p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		if constraint, errs = p.parseConstraint(); len(errs) > 0 {
			return nil, errs
		}
		//
		inv.Constraints = append(inv.Constraints, constraint)
	}
	// Consume closing brace and optional semicolon
	p.match(RCURLY)
	p.match(SEMICOLON)
	//
	return inv, nil
}

// Parse a parameter such as `x : position @ 1`.
func (p *Parser) parseParameter() (*ast.Parameter, []source.SyntaxError) {
	var (
		start    = p.index
		name     lex.Token
		typename lex.Token
		subindex uint
		errs     []source.SyntaxError
	)
	//
	if name, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(COLON); len(errs) > 0 {
		return nil, errs
	} else if typename, errs = p.expect(IDENTIFIER); len(errs) > 0 {
		return nil, errs
	} else if p.match(AT) {
		if subindex, errs = p.parseSubindex(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	param := &ast.Parameter{Name: p.string(name), Type: p.string(typename), Subindex: subindex}
	p.srcmap.Put(param, p.spanOf(start, p.index-1))
	//
	return param, nil
}

func (p *Parser) parseConstraint() (*ast.Constraint, []source.SyntaxError) {
	var (
		start = p.index
		lhs   *ast.Expr
		rhs   *ast.Expr
		op    ast.CmpOp
		errs  []source.SyntaxError
	)
	//
	if lhs, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	} else if op, errs = p.parseComparator(); len(errs) > 0 {
		return nil, errs
	} else if rhs, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	}
	//
	constraint := &ast.Constraint{Left: lhs, Op: op, Right: rhs}
	p.srcmap.Put(constraint, p.spanOf(start, p.index-1))
	//
	return constraint, nil
}

// Parse `term {(+|-) term}`
func (p *Parser) parseExpr() (*ast.Expr, []source.SyntaxError) {
	var (
		start = p.index
		expr  = &ast.Expr{}
	)
	//
	for {
		term, errs := p.parseTerm()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		expr.Terms = append(expr.Terms, term)
		//
		if p.match(ADD) {
			expr.Ops = append(expr.Ops, ast.ADD)
		} else if p.match(SUB) {
			expr.Ops = append(expr.Ops, ast.SUB)
		} else {
			break
		}
	}
	//
	p.srcmap.Put(expr, p.spanOf(start, p.index-1))
	//
	return expr, nil
}

// Parse `[-] factor {(*|/) factor}`
func (p *Parser) parseTerm() (*ast.Term, []source.SyntaxError) {
	var (
		start = p.index
		term  = &ast.Term{}
	)
	//
	term.Negated = p.match(SUB)
	//
	for {
		factor, errs := p.parseFactor()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		term.Factors = append(term.Factors, factor)
		//
		if p.match(MUL) {
			term.Ops = append(term.Ops, ast.MUL)
		} else if p.match(DIV) {
			term.Ops = append(term.Ops, ast.DIV)
		} else {
			break
		}
	}
	//
	p.srcmap.Put(term, p.spanOf(start, p.index-1))
	//
	return term, nil
}

// Parse `atom [** exponent]`
func (p *Parser) parseFactor() (*ast.Factor, []source.SyntaxError) {
	var (
		start  = p.index
		factor = &ast.Factor{}
		errs   []source.SyntaxError
	)
	//
	if factor.Atom, errs = p.parseAtom(); len(errs) > 0 {
		return nil, errs
	} else if p.match(POW) {
		if factor.Exponent, errs = p.parseExponent(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	p.srcmap.Put(factor, p.spanOf(start, p.index-1))
	//
	return factor, nil
}

func (p *Parser) parseAtom() (ast.Atom, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		atom      ast.Atom
		errs      []source.SyntaxError
	)
	//
	switch lookahead.Kind {
	case IDENTIFIER:
		p.index++
		id := &ast.Identifier{Name: p.string(lookahead)}
		//
		if p.match(AT) {
			if id.Subindex, errs = p.parseSubindex(); len(errs) > 0 {
				return nil, errs
			}
			//
			id.HasSubindex = true
		}
		//
		atom = id
	case NUMBER:
		if atom, errs = p.parseNumber(); len(errs) > 0 {
			return nil, errs
		}
		// already mapped
		return atom, nil
	case LBRACE:
		var expr *ast.Expr
		//
		p.index++
		//
		if expr, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		atom = &ast.Paren{Expr: expr}
	default:
		return nil, p.syntaxErrors(lookahead, "expected quantity")
	}
	//
	p.srcmap.Put(atom, p.spanOf(start, p.index-1))
	//
	return atom, nil
}

// Parse an exponent.  This is either a number with an optional sign, or a
// parenthesised numeric expression.
func (p *Parser) parseExponent() (ast.NumericExpr, []source.SyntaxError) {
	var (
		start = p.index
		arg   ast.NumericExpr
		errs  []source.SyntaxError
	)
	//
	switch {
	case p.match(SUB):
		if arg, errs = p.parseNumber(); len(errs) > 0 {
			return nil, errs
		}
		//
		negation := &ast.NumericNegation{Arg: arg}
		p.srcmap.Put(negation, p.spanOf(start, p.index-1))
		//
		return negation, nil
	case p.match(ADD):
		return p.parseNumber()
	case p.match(LBRACE):
		if arg, errs = p.parseNumericExpr(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		return arg, nil
	case p.follows(NUMBER):
		return p.parseNumber()
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), "exponent must be numeric")
}

// Parse `numterm {(+|-) numterm}`
func (p *Parser) parseNumericExpr() (ast.NumericExpr, []source.SyntaxError) {
	return p.parseNumericBinary(p.parseNumericTerm, ADD, SUB)
}

// Parse `numunary {(*|/) numunary}`
func (p *Parser) parseNumericTerm() (ast.NumericExpr, []source.SyntaxError) {
	return p.parseNumericBinary(p.parseNumericUnary, MUL, DIV)
}

// Parse a left-associative chain of numeric operands.
func (p *Parser) parseNumericBinary(operand func() (ast.NumericExpr, []source.SyntaxError),
	operators ...uint) (ast.NumericExpr, []source.SyntaxError) {
	start := p.index
	//
	lhs, errs := operand()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	for p.follows(operators...) {
		op := binop(p.lookahead().Kind)
		p.index++
		//
		rhs, errs := operand()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		lhs = &ast.NumericBinary{Op: op, Left: lhs, Right: rhs}
		p.srcmap.Put(lhs, p.spanOf(start, p.index-1))
	}
	//
	return lhs, nil
}

// Parse `- numunary | NUMBER | ( numexpr )`
func (p *Parser) parseNumericUnary() (ast.NumericExpr, []source.SyntaxError) {
	start := p.index
	//
	switch {
	case p.match(SUB):
		arg, errs := p.parseNumericUnary()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		negation := &ast.NumericNegation{Arg: arg}
		p.srcmap.Put(negation, p.spanOf(start, p.index-1))
		//
		return negation, nil
	case p.match(LBRACE):
		arg, errs := p.parseNumericExpr()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		return arg, nil
	case p.follows(NUMBER):
		return p.parseNumber()
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), "exponent must be numeric")
}

func (p *Parser) parseNumber() (*ast.Number, []source.SyntaxError) {
	token, errs := p.expect(NUMBER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	value, err := strconv.ParseFloat(p.string(token), 64)
	if err != nil || math.IsInf(value, 0) {
		return nil, p.syntaxErrors(token, "malformed numeric literal")
	}
	//
	number := &ast.Number{Value: value}
	p.srcmap.Put(number, token.Span)
	//
	return number, nil
}

// Parse the subindex following an "@".
func (p *Parser) parseSubindex() (uint, []source.SyntaxError) {
	token, errs := p.expect(NUMBER)
	if len(errs) > 0 {
		return 0, errs
	}
	//
	return p.uintOf(token)
}

func (p *Parser) parseComparator() (ast.CmpOp, []source.SyntaxError) {
	var (
		lookahead = p.lookahead()
		op        ast.CmpOp
	)
	// Parse operation
	switch lookahead.Kind {
	case EQUALS_EQUALS:
		op = ast.EQ
	case LESS_THAN:
		op = ast.LT
	case LESS_THAN_EQUALS:
		op = ast.LTEQ
	case GREATER_THAN:
		op = ast.GT
	case GREATER_THAN_EQUALS:
		op = ast.GTEQ
	case TILDE:
		op = ast.PROPORTIONAL
	default:
		return math.MaxUint8, p.syntaxErrors(lookahead, "unknown comparator")
	}
	//
	p.match(lookahead.Kind)
	//
	return op, nil
}

func binop(kind uint) ast.BinOp {
	switch kind {
	case ADD:
		return ast.ADD
	case SUB:
		return ast.SUB
	case MUL:
		return ast.MUL
	case DIV:
		return ast.DIV
	}
	//
	panic("unreachable")
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Get the unsigned integer represented by the given token.
func (p *Parser) uintOf(token lex.Token) (uint, []source.SyntaxError) {
	value, err := strconv.ParseUint(p.string(token), 10, 32)
	if err != nil {
		return 0, p.syntaxErrors(token, "expected unsigned integer")
	}
	//
	return uint(value), nil
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
