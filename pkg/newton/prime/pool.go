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
package prime

import (
	"errors"
)

// ErrExhausted is returned once every prime in the table has been drawn.
var ErrExhausted = errors.New("prime pool exhausted")

// Pool hands out primes from the table in ascending order through a cursor
// which only ever moves forward.  Primes are never returned to the pool.  A
// Pool is owned by exactly one session, since fingerprints computed within a
// session depend upon the order in which its primes were drawn.
type Pool struct {
	cursor int
}

// NewPool constructs a pool positioned at the first prime.
func NewPool() *Pool {
	return &Pool{0}
}

// Next draws the next unused prime.
func (p *Pool) Next() (uint64, error) {
	if p.cursor >= len(Table) {
		return 0, ErrExhausted
	}
	//
	next := Table[p.cursor]
	p.cursor++
	//
	return next, nil
}

// Used returns the number of primes drawn so far.
func (p *Pool) Used() int {
	return p.cursor
}

// Remaining returns the number of primes which can still be drawn.
func (p *Pool) Remaining() int {
	return len(Table) - p.cursor
}
