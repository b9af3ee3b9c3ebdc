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
package termio

import (
	"fmt"
	"io"
	"strings"
)

// TablePrinter is useful for printing tables to the terminal.  Rows may be
// added incrementally, and columns are padded to the widest cell.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]*AnsiEscape
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{make([]uint, width), nil, nil, true}
}

// AddRow appends a row to this table, returning its index.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(len(val)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]*AnsiEscape, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape set the colour to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = &escape
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful in environments that don't support
// escapes as, otherwise, you get a lot of visible excape characters being
// printed.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// Print the table to a given writer.
func (p *TablePrinter) Print(w io.Writer) {
	highlighter := NewHighlighter(p.enableEscapes)
	//
	for i, row := range p.rows {
		var line strings.Builder
		//
		for j, col := range row {
			padded := fmt.Sprintf("%-*s", p.widths[j], col)
			//
			if j == len(row)-1 {
				padded = col
			}
			//
			if escape := p.escapes[i][j]; escape != nil {
				padded = highlighter.Wrap(*escape, padded)
			}
			//
			if j > 0 {
				line.WriteString("  ")
			}
			//
			line.WriteString(padded)
		}
		//
		fmt.Fprintln(w, line.String())
	}
}
