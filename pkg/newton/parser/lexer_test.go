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
	"testing"

	"github.com/consensys/go-newton/pkg/util/assert"
	"github.com/consensys/go-newton/pkg/util/source"
)

func Test_Lex_Keywords(t *testing.T) {
	checkLex(t, "speed : vector signal", IDENTIFIER, COLON, KEYWORD_VECTOR, KEYWORD_SIGNAL, END_OF)
	checkLex(t, "signals vectors", IDENTIFIER, IDENTIFIER, END_OF)
	checkLex(t, "derivation = none;", KEYWORD_DERIVATION, EQUALS, KEYWORD_NONE, SEMICOLON, END_OF)
}

func Test_Lex_Operators(t *testing.T) {
	checkLex(t, "a**2*b", IDENTIFIER, POW, NUMBER, MUL, IDENTIFIER, END_OF)
	checkLex(t, "< <= > >= == = ~", LESS_THAN, LESS_THAN_EQUALS, GREATER_THAN, GREATER_THAN_EQUALS,
		EQUALS_EQUALS, EQUALS, TILDE, END_OF)
	checkLex(t, "(x@1)/-y", LBRACE, IDENTIFIER, AT, NUMBER, RBRACE, DIV, SUB, IDENTIFIER, END_OF)
}

func Test_Lex_Numbers(t *testing.T) {
	checkLexText(t, "1 2.5 6.02e23 1e-3", "1", "2.5", "6.02e23", "1e-3")
	checkLexText(t, "9.81*x", "9.81", "*", "x")
	checkLexText(t, "x**1e300", "x", "**", "1e300")
}

func Test_Lex_Identifiers(t *testing.T) {
	checkLexText(t, "x y_1 _z T", "x", "y_1", "_z", "T")
	checkLexText(t, "x", "x")
}

func Test_Lex_Strings(t *testing.T) {
	checkLexText(t, `name = "meter" English;`, "name", "=", `"meter"`, "English", ";")
}

func Test_Lex_Comments(t *testing.T) {
	checkLex(t, "# a comment\nx # trailing", IDENTIFIER, END_OF)
	checkLex(t, "#", END_OF)
}

func Test_Lex_Invalid(t *testing.T) {
	srcfile := source.NewSourceFile("test.nt", []byte("x : $ signal"))
	//
	_, errs := Lex(srcfile)
	//
	assert.Equal(t, 1, len(errs))
	//
	span := errs[0].Span()
	assert.Equal(t, "unknown text encountered", errs[0].Message())
	assert.Equal(t, 4, span.Start())
}

func Test_Lex_UnterminatedString(t *testing.T) {
	srcfile := source.NewSourceFile("test.nt", []byte(`name = "meter`))
	//
	_, errs := Lex(srcfile)
	//
	assert.Equal(t, 1, len(errs))
}

func checkLex(t *testing.T, input string, kinds ...uint) {
	srcfile := source.NewSourceFile("test.nt", []byte(input))
	//
	tokens, errs := Lex(srcfile)
	//
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, len(kinds), len(tokens), "input %q", input)
	//
	for i, kind := range kinds {
		assert.Equal(t, kind, tokens[i].Kind, "token %d of %q", i, input)
	}
}

func checkLexText(t *testing.T, input string, texts ...string) {
	srcfile := source.NewSourceFile("test.nt", []byte(input))
	//
	tokens, errs := Lex(srcfile)
	//
	assert.Equal(t, 0, len(errs))
	// final token is END_OF
	assert.Equal(t, len(texts)+1, len(tokens))
	//
	for i, text := range texts {
		assert.Equal(t, text, srcfile.Text(tokens[i].Span))
	}
}
