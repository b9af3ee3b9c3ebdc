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
	"testing"

	"github.com/consensys/go-newton/pkg/util/assert"
)

func Test_Pool_01(t *testing.T) {
	pool := NewPool()
	//
	for _, expected := range []uint64{2, 3, 5, 7, 11, 13} {
		actual, err := pool.Next()
		assert.True(t, err == nil)
		assert.Equal(t, expected, actual)
	}
	//
	assert.Equal(t, 6, pool.Used())
}

func Test_Pool_02(t *testing.T) {
	pool := NewPool()
	//
	for range Table {
		_, err := pool.Next()
		assert.True(t, err == nil)
	}
	//
	assert.Equal(t, 0, pool.Remaining())
	//
	_, err := pool.Next()
	assert.True(t, errors.Is(err, ErrExhausted))
}

func Test_Table_01(t *testing.T) {
	assert.Equal(t, 168, len(Table))
	assert.Equal(t, uint64(997), Table[len(Table)-1])
	// strictly ascending and prime
	for i, p := range Table {
		if i > 0 {
			assert.True(t, Table[i-1] < p)
		}
		//
		for d := uint64(2); d*d <= p; d++ {
			assert.True(t, p%d != 0, "%d is not prime", p)
		}
	}
}
