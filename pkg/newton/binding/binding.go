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
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/consensys/go-newton/pkg/newton"
	"github.com/consensys/go-newton/pkg/newton/check"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	validate   *validator.Validate
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Signal and invariant names follow the lexical rules of identifiers.
	mustRegister(validate, "identifier", func(fl validator.FieldLevel) bool {
		return identifier.MatchString(fl.Field().String())
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("cannot register validation \"%s\": %s", tag, err))
	}
}

// File is a set of parameter values for checking an invariant, as supplied
// by a host program.  For example:
//
//	invariant: Motion
//	parameters:
//	  - name: distance
//	    value: 100
//	  - name: time
//	    value: 5
//
// Parameters are numbered in the order given.
type File struct {
	// Invariant optionally names the invariant these parameters are expected
	// to match.
	Invariant  string  `yaml:"invariant,omitempty" validate:"omitempty,identifier"`
	Parameters []Entry `yaml:"parameters" validate:"required,min=1,dive"`
}

// Entry supplies the value of one parameter.
type Entry struct {
	Name     string   `yaml:"name" validate:"required,identifier"`
	Subindex uint     `yaml:"subindex"`
	Value    *float64 `yaml:"value" validate:"required"`
}

// InvariantMismatchError is returned when the invariant matched by a set of
// parameters is not the one the file names.
type InvariantMismatchError struct {
	Expected string
	Actual   string
}

func (e *InvariantMismatchError) Error() string {
	return fmt.Sprintf("parameters match invariant %s, not %s", e.Actual, e.Expected)
}

// Load reads and validates a bindings file from disk.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return Parse(data)
}

// Parse and validate a bindings document.  Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var (
		file    File
		decoder = yaml.NewDecoder(bytes.NewReader(data))
	)
	//
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("malformed bindings: %w", err)
	} else if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid bindings: %w", err)
	}
	//
	return &file, nil
}

// Tuple converts this file into the parameter tuple of a session call.
func (f *File) Tuple() []newton.Parameter {
	params := make([]newton.Parameter, len(f.Parameters))
	//
	for i, e := range f.Parameters {
		params[i] = newton.Parameter{Number: i, Name: e.Name, Subindex: e.Subindex, Value: *e.Value}
	}
	//
	return params
}

// Check the constraints of the invariant matching these parameters.  If the
// file names an invariant then the match must be that invariant.
func (f *File) Check(session *newton.Session) (*check.Report, error) {
	params := f.Tuple()
	//
	if f.Invariant != "" {
		inv, err := session.InvariantByParameters(params)
		if err != nil {
			return nil, err
		} else if inv.Name != f.Invariant {
			return nil, &InvariantMismatchError{f.Invariant, inv.Name}
		}
	}
	//
	return session.CheckConstraints(params)
}
