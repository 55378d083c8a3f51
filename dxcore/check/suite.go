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

package check

import (
	"bytes"
	"fmt"
	"strconv"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model"
	"dirpx.dev/rxmerr"
)

// Suite is a named list of checks evaluated together.
type Suite struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Checks []Check `json:"checks" yaml:"checks"`
}

// TypeName returns "Suite".
func (s Suite) TypeName() string {
	return "Suite"
}

// String returns the suite name and its size.
func (s Suite) String() string {
	name := s.Name
	if name == "" {
		name = "unnamed"
	}
	return name + " (" + strconv.Itoa(len(s.Checks)) + " checks)"
}

// Validate reports every invalid check and every duplicated ID at once.
func (s Suite) Validate() error {
	if len(s.Checks) == 0 {
		return &errors.ValidationError{Type: "Suite", Field: "Checks", Reason: "must contain at least one check"}
	}

	c := rxmerr.NewCollector()
	if err := model.ValidateAll(s.Checks); err != nil {
		c.Append(err)
	}

	seen := make(map[string]int, len(s.Checks))
	for i, chk := range s.Checks {
		if chk.ID == "" {
			continue
		}
		if first, ok := seen[chk.ID]; ok {
			c.Append(&errors.ValidationError{
				Type:   "Suite",
				Field:  "Checks",
				Reason: fmt.Sprintf("item[%d] reuses the ID of item[%d]", i, first),
				Value:  chk.ID,
			})
			continue
		}
		seen[chk.ID] = i
	}
	return c.Err()
}

// ParseSuite decodes a suite from JSON or YAML and validates it. Input whose
// first non-blank byte is '{' is read as JSON, anything else as YAML.
func ParseSuite(data []byte) (Suite, error) {
	var s Suite
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Suite{}, &errors.UnmarshalError{Type: "Suite", Data: data, Reason: "empty input"}
	}

	var err error
	if trimmed[0] == '{' {
		err = model.FromJSON(trimmed, &s)
	} else {
		err = model.FromYAML(trimmed, &s)
	}
	if err != nil {
		return Suite{}, err
	}
	return s, nil
}
