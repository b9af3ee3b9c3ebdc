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
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-newton/pkg/newton"
	"github.com/consensys/go-newton/pkg/newton/binding"
	"github.com/consensys/go-newton/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// InitSession reads and compiles a given Newton description.  Any syntax
// errors are reported and the process exits.
func InitSession(filename string) *newton.Session {
	log.Debug(fmt.Sprintf("reading source file %s", filename))
	//
	srcfile, err := source.ReadFile(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	session, err := newton.InitFromSource(srcfile)
	//
	var compileErr *newton.CompileError
	//
	if errors.As(err, &compileErr) {
		// Report errors
		for _, err := range compileErr.Errors {
			printSyntaxError(os.Stdout, &err)
		}
		// Fail
		os.Exit(4)
	} else if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return session
}

// ReadBindingsFile reads and validates a given bindings file.
func ReadBindingsFile(filename string) *binding.File {
	file, err := binding.Load(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return file
}

// Determine whether escapes should be written to standard output.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(w io.Writer, err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Fprintf(w, "%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Fprintln(w)
	// Print line
	fmt.Fprintln(w, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(w, strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Fprintln(w, strings.Repeat("^", length))
}
