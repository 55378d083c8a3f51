/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every element and returns a single error aggregating
// all failures, or nil when every element is valid.
//
// Unlike a loop that stops at the first error, ValidateAll reports every
// invalid element so that a batch suite with several broken checks can be
// fixed in one pass. Each failure is prefixed with its index and type name:
//
//	item[2] (Check): dxpred: invalid Check.Premise: must not be empty
func ValidateAll[T Checkable](items []T) error {
	c := rxmerr.NewCollector()
	for i, m := range items {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("item[%d] (%s): %w", i, m.TypeName(), err))
		}
	}
	return c.Err()
}

// MustValidate returns m unchanged, or panics if it fails validation.
//
// Intended for package-level fixtures and tests where an invalid value is a
// programming error.
func MustValidate[T Checkable](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// ToJSON validates m and encodes it as indented JSON.
func ToJSON[T Checkable](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.MarshalIndent(m, "", "  ")
}

// ToYAML validates m and encodes it as YAML.
func ToYAML[T Checkable](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes data into m and validates the result.
func FromJSON[T Checkable](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", (*m).TypeName(), err)
	}
	return nil
}

// FromYAML decodes data into m and validates the result.
func FromYAML[T Checkable](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", (*m).TypeName(), err)
	}
	return nil
}
