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
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-newton/pkg/newton/compiler"
	"github.com/consensys/go-newton/pkg/newton/physics"
	"github.com/consensys/go-newton/pkg/util/termio"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] source_file",
	Short: "Summarise the quantities declared in a source file.",
	Long: `Summarise the dimensions, signals, constants and invariants declared
	in a source file, along with the primes and identifiers assigned to them.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		session := InitSession(args[0])
		//
		printModel(os.Stdout, session.Model(), isTerminal())
	},
}

// Print each section of a compiled model as a table.
func printModel(w io.Writer, model *compiler.Model, colour bool) {
	var (
		highlighter = termio.NewHighlighter(colour)
		dimensions  = termio.NewTablePrinter(3)
		signals     = termio.NewTablePrinter(3)
		constants   = termio.NewTablePrinter(3)
		invariants  = termio.NewTablePrinter(2)
	)
	//
	for _, d := range model.Dimensions.Dimensions() {
		dimensions.AddRow(d.Name, d.Symbol(), fmt.Sprintf("%d", d.Prime))
	}
	//
	for _, p := range model.Signals {
		name := p.Name
		if model.Family(p.Name) {
			name = fmt.Sprintf("%s@%d", p.Name, p.Subindex)
		}
		//
		signals.AddRow(name, fmt.Sprintf("%d", p.Id), describe(p))
	}
	//
	for _, p := range model.Constants {
		constants.AddRow(p.Name, fmt.Sprintf("%g", p.Value), describe(p))
	}
	//
	for _, inv := range model.Invariants.All() {
		invariants.AddRow(inv.String(), inv.Id.String())
	}
	//
	sections := []struct {
		title string
		table *termio.TablePrinter
	}{
		{"dimensions", dimensions},
		{"signals", signals},
		{"constants", constants},
		{"invariants", invariants},
	}
	//
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		//
		fmt.Fprintln(w, highlighter.Note(fmt.Sprintf("%s (%d)", section.title, section.table.Height())))
		section.table.Print(w)
	}
}

func describe(p *physics.Physics) string {
	if p.Vector {
		return fmt.Sprintf("vector [%s]", p.Units())
	}
	//
	return fmt.Sprintf("[%s]", p.Units())
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
}
