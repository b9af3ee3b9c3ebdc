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
package binding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-newton/pkg/newton"
	"github.com/consensys/go-newton/pkg/util/source"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const description = `
distance : signal = { symbol = m; derivation = none; }
time : signal = { symbol = s; derivation = none; }
limit : constant = 10 * m / s;
Motion : invariant(d : distance, t : time) = { d / t < limit }
Travel : invariant(d : distance) = { d >= 0 * m }
`

func Test_Parse_01(t *testing.T) {
	file, err := Parse([]byte(`
invariant: Motion
parameters:
  - name: distance
    value: 100
  - name: time
    subindex: 0
    value: 5.5
`))
	require.NoError(t, err)
	//
	assert.Equal(t, "Motion", file.Invariant)
	assert.Equal(t, []newton.Parameter{
		{Number: 0, Name: "distance", Value: 100},
		{Number: 1, Name: "time", Value: 5.5},
	}, file.Tuple())
}

func Test_Parse_ZeroValue(t *testing.T) {
	file, err := Parse([]byte("parameters:\n  - name: distance\n    value: 0\n"))
	require.NoError(t, err)
	//
	assert.Equal(t, 0.0, file.Tuple()[0].Value)
}

func Test_Parse_Invalid(t *testing.T) {
	inputs := []string{
		// no parameters
		"invariant: Motion\n",
		"parameters: []\n",
		// missing value
		"parameters:\n  - name: distance\n",
		// missing name
		"parameters:\n  - value: 1\n",
		// malformed names
		"parameters:\n  - name: 1abc\n    value: 1\n",
		"invariant: not an identifier\nparameters:\n  - name: d\n    value: 1\n",
		// unknown field
		"parameters:\n  - name: distance\n    value: 1\n    units: m\n",
		// negative subindex
		"parameters:\n  - name: distance\n    subindex: -1\n    value: 1\n",
		// not yaml
		"parameters: [",
	}
	//
	for _, input := range inputs {
		_, err := Parse([]byte(input))
		assert.Error(t, err, input)
	}
}

func Test_MustRegister(t *testing.T) {
	v := validator.New()
	even := func(fl validator.FieldLevel) bool { return fl.Field().Int()%2 == 0 }
	//
	mustRegister(v, "even", even)
	assert.NoError(t, v.Var(2, "even"))
	assert.Error(t, v.Var(3, "even"))
	// a registration which fails is fatal
	assert.Panics(t, func() { mustRegister(v, "", even) })
	// the identifier rule is in force
	assert.NoError(t, validate.Var("speed_1", "identifier"))
	assert.Error(t, validate.Var("1speed", "identifier"))
}

func Test_Load(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bindings.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("parameters:\n  - name: distance\n    value: 3\n"), 0o600))
	//
	file, err := Load(filename)
	require.NoError(t, err)
	assert.Len(t, file.Parameters, 1)
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func Test_Check_01(t *testing.T) {
	session := newSession(t)
	//
	file, err := Parse([]byte("invariant: Motion\nparameters:\n  - {name: distance, value: 30}\n  - {name: time, value: 6}\n"))
	require.NoError(t, err)
	//
	report, err := file.Check(session)
	require.NoError(t, err)
	assert.True(t, report.Satisfied())
}

func Test_Check_02(t *testing.T) {
	session := newSession(t)
	//
	file, err := Parse([]byte("invariant: Motion\nparameters:\n  - {name: distance, value: 30}\n"))
	require.NoError(t, err)
	//
	_, err = file.Check(session)
	//
	var mismatch *InvariantMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Travel", mismatch.Actual)
}

func Test_Check_03(t *testing.T) {
	session := newSession(t)
	//
	file, err := Parse([]byte("parameters:\n  - {name: time, value: 30}\n"))
	require.NoError(t, err)
	//
	_, err = file.Check(session)
	assert.ErrorIs(t, err, newton.ErrNoMatchingInvariant)
}

func newSession(t *testing.T) *newton.Session {
	t.Helper()
	//
	session, err := newton.InitFromSource(source.NewSourceFile("test.nt", []byte(description)))
	require.NoError(t, err)
	//
	return session
}
