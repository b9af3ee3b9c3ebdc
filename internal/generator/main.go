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
package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

// primes are generated up to (but excluding) this bound.
const bound = 1000

// number of primes emitted on each line of the generated table.
const rowWidth = 10

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-newton")
	cfg := newTableConfig(bound)
	//
	assertNoError(bgen.Generate(cfg, "prime", "templates",
		bavard.Entry{
			File:      "../../pkg/newton/prime/table.go",
			Templates: []string{"table.go.tmpl"},
		},
	), "for prime table")
	// run gofmt on the generated package
	runCmd("gofmt", "-w", "../../pkg/newton/prime")
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

type tableConfig struct {
	Bound uint64
	Count int
	Rows  [][]uint64
}

func newTableConfig(bound uint64) *tableConfig {
	var (
		primes = sieve(bound)
		rows   [][]uint64
	)
	//
	for i := 0; i < len(primes); i += rowWidth {
		rows = append(rows, primes[i:min(i+rowWidth, len(primes))])
	}
	//
	return &tableConfig{bound, len(primes), rows}
}

// sieve of Eratosthenes returning all primes below n in ascending order.
func sieve(n uint64) []uint64 {
	var (
		composite = make([]bool, n)
		primes    []uint64
	)
	//
	for i := uint64(2); i < n; i++ {
		if composite[i] {
			continue
		}
		//
		primes = append(primes, i)
		//
		for j := i * i; j < n; j += i {
			composite[j] = true
		}
	}
	//
	return primes
}

func assertNoError(err error, contextAndArgs ...any) {
	if err != nil {
		msg := err.Error()

		if len(contextAndArgs) > 0 {
			allArgs := append(slices.Clone(contextAndArgs[1:]), err)
			msg = fmt.Sprintf(contextAndArgs[0].(string)+": %v", allArgs...)
		}

		fmt.Println(msg)
		os.Exit(1)
	}
}
