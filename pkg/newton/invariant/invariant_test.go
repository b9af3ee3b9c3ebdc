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
package invariant

import (
	"errors"
	"testing"

	"github.com/consensys/go-newton/pkg/newton/dimension"
	"github.com/consensys/go-newton/pkg/newton/physics"
	"github.com/consensys/go-newton/pkg/newton/prime"
	"github.com/consensys/go-newton/pkg/util/assert"
)

func Test_Fingerprint_01(t *testing.T) {
	assert.True(t, NewFingerprint().Equal(FingerprintOf()))
	assert.Equal(t, "1", NewFingerprint().String())
	assert.Equal(t, "390", FingerprintOf(2, 3, 5, 13).String())
	assert.False(t, FingerprintOf(2, 3).Equal(FingerprintOf(2, 5)))
	// multiplicity matters
	assert.False(t, FingerprintOf(2, 3).Equal(FingerprintOf(2, 3, 3)))
}

func Test_Fingerprint_Commutative(t *testing.T) {
	ids := []uint64{2, 3, 5, 7, 11}
	expected := FingerprintOf(ids...)
	//
	for _, perm := range permutations(ids) {
		assert.True(t, expected.Equal(FingerprintOf(perm...)), "permutation %v", perm)
	}
}

func Test_Fingerprint_NoOverflow(t *testing.T) {
	// the product of every prime in the table exceeds 2^64 many times over
	all := FingerprintOf(prime.Table[:]...)
	allButLast := FingerprintOf(prime.Table[:len(prime.Table)-1]...)
	//
	assert.False(t, all.Equal(allButLast))
	assert.True(t, all.Equal(allButLast.Mul(prime.Table[len(prime.Table)-1])))
}

func Test_Registry_01(t *testing.T) {
	types := newTypes("distance", "time", "mass")
	reg := NewRegistry()
	//
	motion := &Invariant{Name: "Motion", Parameters: params(types[0], types[1])}
	weight := &Invariant{Name: "Weight", Parameters: params(types[0], types[2])}
	//
	assert.True(t, reg.Register(motion) == nil)
	assert.True(t, reg.Register(weight) == nil)
	assert.Equal(t, 2, len(reg.All()))
	assert.True(t, motion.Id.Equal(FingerprintOf(types[0].Id, types[1].Id)))
	//
	found, ok := reg.FindForParameters([]*physics.Physics{types[1], types[0]})
	assert.True(t, ok)
	assert.Equal(t, "Motion", found.Name)
	//
	_, ok = reg.FindForParameters([]*physics.Physics{types[1], types[2]})
	assert.False(t, ok)
	//
	found, ok = reg.Lookup("Weight")
	assert.True(t, ok && found == weight)
}

func Test_Registry_Duplicate(t *testing.T) {
	types := newTypes("distance", "time")
	reg := NewRegistry()
	//
	first := &Invariant{Name: "First", Parameters: params(types[0], types[1])}
	second := &Invariant{Name: "Second", Parameters: params(types[1], types[0])}
	//
	assert.True(t, reg.Register(first) == nil)
	//
	var dup *DuplicateError
	//
	err := reg.Register(second)
	assert.True(t, errors.As(err, &dup))
	assert.True(t, dup.Existing == first)
	assert.Equal(t, "invariant Second has the same parameter signature as First", err.Error())
	assert.Equal(t, 1, len(reg.All()))
}

func Test_Registry_Multiplicity(t *testing.T) {
	types := newTypes("distance", "time")
	reg := NewRegistry()
	// (distance, distance) differs from (distance) and (distance, time)
	assert.True(t, reg.Register(&Invariant{Name: "A", Parameters: params(types[0], types[0])}) == nil)
	assert.True(t, reg.Register(&Invariant{Name: "B", Parameters: params(types[0])}) == nil)
	assert.True(t, reg.Register(&Invariant{Name: "C", Parameters: params(types[0], types[1])}) == nil)
}

func Test_Invariant_String(t *testing.T) {
	types := newTypes("distance", "time")
	types[1].Subindex = 2
	inv := &Invariant{Name: "Motion", Parameters: params(types[0], types[1])}
	//
	assert.Equal(t, "Motion(p0 : distance, p1 : time @ 2)", inv.String())
}

// ==================================================================
// Helpers
// ==================================================================

// Construct one base signal type for each name, drawing dimension primes and
// quantity identifiers from a shared pool.
func newTypes(names ...string) []*physics.Physics {
	var (
		pool  = prime.NewPool()
		reg   = dimension.NewRegistry(pool)
		types []*physics.Physics
		dims  []*dimension.Dimension
	)
	//
	for _, n := range names {
		d, _ := reg.Register(n, "")
		dims = append(dims, d)
	}
	//
	for i, n := range names {
		p := physics.New(reg)
		p.Name = n
		p.IncrementExponent(dims[i])
		p.Id, _ = pool.Next()
		types = append(types, p)
	}
	//
	return types
}

func params(types ...*physics.Physics) []*Parameter {
	var ps []*Parameter
	//
	for i, t := range types {
		ps = append(ps, &Parameter{Name: "p" + string(rune('0'+i)), Number: i, Type: t})
	}
	//
	return ps
}

func permutations(items []uint64) [][]uint64 {
	if len(items) <= 1 {
		return [][]uint64{append([]uint64(nil), items...)}
	}
	//
	var result [][]uint64
	//
	for i := range items {
		rest := append(append([]uint64(nil), items[:i]...), items[i+1:]...)
		//
		for _, perm := range permutations(rest) {
			result = append(result, append([]uint64{items[i]}, perm...))
		}
	}
	//
	return result
}
