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
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Fingerprint identifies the multiset of parameter types of an invariant.  It
// is the product of the quantity identifiers of each parameter.  Since every
// identifier is a distinct prime, unique factorisation means that the product
// identifies the multiset, irrespective of parameter order.  Products are
// computed in the BLS12-377 scalar field, hence they never overflow.  With
// primes below 1000, products of up to 25 identifiers are below the field
// modulus and so are exact.
type Fingerprint struct {
	element fr.Element
}

// NewFingerprint returns the fingerprint of an empty parameter list.
func NewFingerprint() Fingerprint {
	var fp Fingerprint
	//
	fp.element.SetOne()
	//
	return fp
}

// FingerprintOf computes the fingerprint of a list of quantity identifiers.
func FingerprintOf(ids ...uint64) Fingerprint {
	fp := NewFingerprint()
	//
	for _, id := range ids {
		fp = fp.Mul(id)
	}
	//
	return fp
}

// Mul returns this fingerprint extended with one further identifier.
func (fp Fingerprint) Mul(id uint64) Fingerprint {
	var x fr.Element
	//
	x.SetUint64(id)
	fp.element.Mul(&fp.element, &x)
	//
	return fp
}

// Equal checks whether two fingerprints are the same.
func (fp Fingerprint) Equal(other Fingerprint) bool {
	return fp.element.Equal(&other.element)
}

func (fp Fingerprint) String() string {
	return fp.element.String()
}
