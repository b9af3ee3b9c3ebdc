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
	"errors"
	"fmt"
	"testing"

	"github.com/consensys/go-newton/pkg/newton/prime"
	"github.com/consensys/go-newton/pkg/util/assert"
)

func Test_Registry_01(t *testing.T) {
	reg := NewRegistry(prime.NewPool())
	distance, err1 := reg.Register("distance", "m")
	time, err2 := reg.Register("time", "s")
	//
	assert.True(t, err1 == nil && err2 == nil)
	assert.Equal(t, uint64(2), distance.Prime)
	assert.Equal(t, uint64(3), time.Prime)
	assert.Equal(t, 1, time.Index)
	assert.Equal(t, 2, reg.Len())
}

func Test_Registry_02(t *testing.T) {
	reg := NewRegistry(prime.NewPool())
	_, _ = reg.Register("distance", "m")
	//
	d, ok := reg.Lookup("distance")
	assert.True(t, ok)
	assert.Equal(t, "m", d.Symbol())
	//
	d, ok = reg.LookupAbbreviation("m")
	assert.True(t, ok)
	assert.Equal(t, "distance", d.Name)
	//
	_, ok = reg.Lookup("time")
	assert.False(t, ok)
	_, ok = reg.LookupAbbreviation("")
	assert.False(t, ok)
}

func Test_Registry_03(t *testing.T) {
	reg := NewRegistry(prime.NewPool())
	_, _ = reg.Register("distance", "m")
	_, err := reg.Register("distance", "km")
	//
	assert.True(t, err != nil)
	assert.Equal(t, 1, reg.Len())
}

func Test_Registry_04(t *testing.T) {
	reg := NewRegistry(prime.NewPool())
	reg.Freeze()
	//
	assert.Panics(t, func() { _, _ = reg.Register("distance", "m") })
}

func Test_Registry_05(t *testing.T) {
	reg := NewRegistry(prime.NewPool())
	//
	for i := range prime.Table {
		_, err := reg.Register(fmt.Sprintf("d%d", i), "")
		assert.True(t, err == nil)
	}
	//
	_, err := reg.Register("overflow", "")
	assert.True(t, errors.Is(err, prime.ErrExhausted))
}
