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
	"github.com/consensys/go-newton/pkg/util/source"
	"github.com/consensys/go-newton/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "# ... \n"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LCURLY signals "{"
const LCURLY uint = 5

// RCURLY signals "}"
const RCURLY uint = 6

// COMMA signals ","
const COMMA uint = 7

// COLON signals ":"
const COLON uint = 8

// SEMICOLON signals ";"
const SEMICOLON uint = 9

// AT signals "@"
const AT uint = 10

// NUMBER signals an integer or real number
const NUMBER uint = 11

// STRING signals a quoted string
const STRING uint = 12

// IDENTIFIER signals a signal, constant, parameter or unit name
const IDENTIFIER uint = 20

// KEYWORD_SIGNAL signals a signal declaration
const KEYWORD_SIGNAL uint = 21

// KEYWORD_VECTOR signals a vector signal
const KEYWORD_VECTOR uint = 22

// KEYWORD_CONSTANT signals a constant declaration
const KEYWORD_CONSTANT uint = 23

// KEYWORD_INVARIANT signals an invariant declaration
const KEYWORD_INVARIANT uint = 24

// KEYWORD_NAME signals the unit name property of a signal
const KEYWORD_NAME uint = 25

// KEYWORD_SYMBOL signals the unit symbol property of a signal
const KEYWORD_SYMBOL uint = 26

// KEYWORD_DERIVATION signals the derivation property of a signal
const KEYWORD_DERIVATION uint = 27

// KEYWORD_NONE signals a base signal derivation
const KEYWORD_NONE uint = 28

// KEYWORD_DIMENSIONLESS signals a dimensionless derivation
const KEYWORD_DIMENSIONLESS uint = 29

// KEYWORD_TO signals the upper bound of a subindex range
const KEYWORD_TO uint = 30

// EQUALS signals "="
const EQUALS uint = 40

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 41

// LESS_THAN signals "<"
const LESS_THAN uint = 42

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 43

// GREATER_THAN signals ">"
const GREATER_THAN uint = 44

// GREATER_THAN_EQUALS signals ">="
const GREATER_THAN_EQUALS uint = 45

// TILDE signals "~" (proportional to)
const TILDE uint = 46

// ADD signals "+"
const ADD uint = 47

// SUB signals "-"
const SUB uint = 48

// MUL signals "*"
const MUL uint = 49

// DIV signals "/"
const DIV uint = 50

// POW signals "**"
const POW uint = 51

// Keywords are lexed as identifiers and then reclassified, so that names such
// as "signals" or "tomato" are not split at a keyword prefix.
var keywords = map[string]uint{
	"signal":        KEYWORD_SIGNAL,
	"vector":        KEYWORD_VECTOR,
	"constant":      KEYWORD_CONSTANT,
	"invariant":     KEYWORD_INVARIANT,
	"name":          KEYWORD_NAME,
	"symbol":        KEYWORD_SYMBOL,
	"derivation":    KEYWORD_DERIVATION,
	"none":          KEYWORD_NONE,
	"dimensionless": KEYWORD_DIMENSIONLESS,
	"to":            KEYWORD_TO,
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

// Rule for describing numbers, such as 12, 9.81 or 6.674e-11.
var (
	digits   = lex.Many(lex.Within('0', '9'))
	fraction = lex.Sequence(lex.Unit('.'), digits)
	exponent = lex.Sequence(
		lex.Or(lex.Unit('e'), lex.Unit('E')),
		lex.Or(lex.Sequence(lex.Or(lex.Unit('+'), lex.Unit('-')), digits), digits),
	)
	number = lex.Then(digits, fraction, exponent)
)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.SequenceNullableLast(identifierStart, identifierRest)

// Rule for describing strings in quotes
var strung lex.Scanner[rune] = lex.Sequence(lex.Unit('"'), lex.Many(lex.Not('"')), lex.Unit('"'))

// Comments start with '#' and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.And(lex.Unit('#'), lex.Until('\n'))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('@'), AT),
	lex.Rule(lex.Unit('=', '='), EQUALS_EQUALS),
	lex.Rule(lex.Unit('<', '='), LESS_THAN_EQUALS),
	lex.Rule(lex.Unit('>', '='), GREATER_THAN_EQUALS),
	lex.Rule(lex.Unit('*', '*'), POW),
	lex.Rule(lex.Unit('<'), LESS_THAN),
	lex.Rule(lex.Unit('>'), GREATER_THAN),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('~'), TILDE),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(strung, STRING),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are discarded.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
		// Tokens retained for parsing
		retained = make([]lex.Token, 0, len(tokens))
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	//
	for _, token := range tokens {
		switch token.Kind {
		case WHITESPACE, COMMENT:
			continue
		case IDENTIFIER:
			if kind, ok := keywords[srcfile.Text(token.Span)]; ok {
				token.Kind = kind
			}
		}
		//
		retained = append(retained, token)
	}
	//
	return retained, nil
}
