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
package dimension

import (
	"fmt"

	"github.com/consensys/go-newton/pkg/newton/prime"
	log "github.com/sirupsen/logrus"
)

// Dimension is a base unit category, such as distance or time.  Each dimension
// is tagged with a distinct prime which serves as its multiplicative identity.
type Dimension struct {
	// Name of the signal which introduced this dimension.
	Name string
	// Abbreviation used when displaying units (e.g. "m").  May be empty.
	Abbreviation string
	// Prime tag drawn from the session's pool.
	Prime uint64
	// Position of this dimension within every exponent vector.
	Index int
}

// Symbol returns the preferred display name for this dimension.
func (d *Dimension) Symbol() string {
	if d.Abbreviation != "" {
		return d.Abbreviation
	}
	//
	return d.Name
}

func (d *Dimension) String() string {
	return fmt.Sprintf("%s(%d)", d.Name, d.Prime)
}

// Registry is the ordered table of dimensions declared within a session.  The
// order of registration fixes the position of each dimension in every exponent
// vector.  Once the first vector has been constructed the registry is frozen,
// and any further registration is a programmer error.
type Registry struct {
	pool       *prime.Pool
	dimensions []*Dimension
	frozen     bool
}

// NewRegistry constructs an empty registry drawing primes from a given pool.
func NewRegistry(pool *prime.Pool) *Registry {
	return &Registry{pool, nil, false}
}

// Register appends a new dimension to the registry.  This fails if the prime
// pool is exhausted, or a dimension of the same name already exists.
func (r *Registry) Register(name string, abbreviation string) (*Dimension, error) {
	if r.frozen {
		panic(fmt.Sprintf("dimension \"%s\" registered after exponent vectors were constructed", name))
	} else if _, ok := r.Lookup(name); ok {
		return nil, fmt.Errorf("duplicate dimension \"%s\"", name)
	}
	//
	p, err := r.pool.Next()
	if err != nil {
		return nil, fmt.Errorf("cannot register dimension \"%s\": %w", name, err)
	}
	//
	dim := &Dimension{name, abbreviation, p, len(r.dimensions)}
	r.dimensions = append(r.dimensions, dim)
	//
	log.Debugf("registered dimension %s (%s) with prime %d", name, abbreviation, p)
	//
	return dim, nil
}

// Lookup finds the dimension with the given name.
func (r *Registry) Lookup(name string) (*Dimension, bool) {
	for _, d := range r.dimensions {
		if d.Name == name {
			return d, true
		}
	}
	//
	return nil, false
}

// LookupAbbreviation finds the dimension with the given abbreviation.
func (r *Registry) LookupAbbreviation(abbreviation string) (*Dimension, bool) {
	if abbreviation == "" {
		return nil, false
	}
	//
	for _, d := range r.dimensions {
		if d.Abbreviation == abbreviation {
			return d, true
		}
	}
	//
	return nil, false
}

// Freeze prevents any further registrations.  This is idempotent.
func (r *Registry) Freeze() {
	if !r.frozen {
		log.Debugf("dimension registry frozen with %d dimensions", len(r.dimensions))
	}
	//
	r.frozen = true
}

// Frozen indicates whether or not the registry has been frozen.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Len returns the number of registered dimensions.
func (r *Registry) Len() int {
	return len(r.dimensions)
}

// At returns the ith registered dimension.
func (r *Registry) At(i int) *Dimension {
	return r.dimensions[i]
}

// Dimensions returns the registered dimensions in registration order.
func (r *Registry) Dimensions() []*Dimension {
	return r.dimensions
}
