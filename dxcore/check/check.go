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

// Package check evaluates batches of implication checks.
//
// A Check pairs a premise with a conclusion, both kept as predicate text so
// that the same suite file can be evaluated over integers or floats. A Suite
// groups checks under a name and is usually loaded from YAML:
//
//	name: thresholds
//	checks:
//	  - name: narrow window
//	    premise: (x >= 3) && (x <= 5)
//	    conclusion: x > 2
//	    expect: total
//	  - premise: (x < 6) || (x >= 7)
//	    conclusion: x < 6
//	    expect: partial
//
// A Runner parses and evaluates every check of a suite concurrently and
// returns a Report. A check whose text does not parse does not abort the
// batch: its Result carries the error and the other checks still run.
package check

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"gopkg.in/yaml.v3"
)

// redactedNameLen is the number of runes of a check name kept by Redacted.
const redactedNameLen = 24

// Check is one "does the premise imply the conclusion?" question.
type Check struct {
	// ID identifies the check inside a report. The Runner assigns a UUID
	// when it is empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is an optional human readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Premise is the predicate text on the left of the implication.
	Premise string `json:"premise" yaml:"premise"`

	// Conclusion is the predicate text on the right of the implication.
	Conclusion string `json:"conclusion" yaml:"conclusion"`

	// Expect is the verdict the author of the suite expects, if any.
	Expect *predicate.Implication `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Compile-time check that Check implements model.Model interface.
var _ model.Model = (*Check)(nil)

// String returns a one-line description such as "x > 3 => x > 2".
func (c Check) String() string {
	s := c.Premise + " => " + c.Conclusion
	if c.Name != "" {
		s = c.Name + ": " + s
	}
	return s
}

// Redacted returns the description with a shortened name.
func (c Check) Redacted() string {
	name := c.Name
	if r := []rune(name); len(r) > redactedNameLen {
		name = string(r[:redactedNameLen]) + "..."
	}
	s := c.Premise + " => " + c.Conclusion
	if name != "" {
		s = name + ": " + s
	}
	return s
}

// TypeName returns "Check".
func (c Check) TypeName() string {
	return "Check"
}

// IsZero reports whether every field is empty.
func (c Check) IsZero() bool {
	return c.ID == "" && c.Name == "" && c.Premise == "" && c.Conclusion == "" && c.Expect == nil
}

// Equal reports whether other is a Check (or *Check) with the same fields.
func (c Check) Equal(other any) bool {
	var o Check
	switch v := other.(type) {
	case Check:
		o = v
	case *Check:
		if v == nil {
			return false
		}
		o = *v
	default:
		return false
	}
	if c.ID != o.ID || c.Name != o.Name || c.Premise != o.Premise || c.Conclusion != o.Conclusion {
		return false
	}
	if (c.Expect == nil) != (o.Expect == nil) {
		return false
	}
	return c.Expect == nil || *c.Expect == *o.Expect
}

// Validate checks that both predicates are present and that the expected
// verdict, if any, is a known Implication. It does not parse the predicate
// text: parsing depends on the scalar type, which only the Runner knows.
func (c Check) Validate() error {
	if strings.TrimSpace(c.Premise) == "" {
		return &errors.ValidationError{Type: "Check", Field: "Premise", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.Conclusion) == "" {
		return &errors.ValidationError{Type: "Check", Field: "Conclusion", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.ID) != c.ID {
		return &errors.ValidationError{Type: "Check", Field: "ID", Reason: "must not have surrounding whitespace", Value: c.ID}
	}
	if c.Expect != nil {
		if err := c.Expect.Validate(); err != nil {
			return &errors.ValidationError{Type: "Check", Field: "Expect", Reason: err.Error(), Value: int(*c.Expect)}
		}
	}
	return nil
}

type checkAlias Check

// MarshalJSON validates the check before encoding it.
func (c Check) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(checkAlias(c))
}

// UnmarshalJSON decodes and validates a check.
func (c *Check) UnmarshalJSON(data []byte) error {
	var a checkAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return &errors.UnmarshalError{Type: "Check", Data: data, Reason: err.Error()}
	}
	if err := Check(a).Validate(); err != nil {
		return err
	}
	*c = Check(a)
	return nil
}

// MarshalYAML validates the check before encoding it.
func (c Check) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return checkAlias(c), nil
}

// UnmarshalYAML decodes and validates a check.
func (c *Check) UnmarshalYAML(value *yaml.Node) error {
	var a checkAlias
	if err := value.Decode(&a); err != nil {
		return &errors.UnmarshalError{Type: "Check", Data: []byte(value.Value), Reason: err.Error()}
	}
	if err := Check(a).Validate(); err != nil {
		return err
	}
	*c = Check(a)
	return nil
}
