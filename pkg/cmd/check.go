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
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] source_file bindings_file",
	Short: "Check parameter values against the matching invariant.",
	Long: `Check parameter values against the constraints of an invariant.
	The invariant is selected by the types of the parameters given in the
	bindings file, which is a YAML document.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		session := InitSession(args[0])
		bindings := ReadBindingsFile(args[1])
		//
		report, err := bindings.Check(session)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if GetFlag(cmd, "json") {
			if err := writeJsonReport(os.Stdout, report); err != nil {
				fmt.Println(err)
				os.Exit(3)
			}
		} else {
			printReport(os.Stdout, report, isTerminal())
		}
		//
		if !report.Satisfied() {
			os.Exit(1)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "report as JSON")
}
