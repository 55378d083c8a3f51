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

package predicate

import (
	"encoding/json"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Implication is the three-valued verdict returned by Implies.
//
// The verdict answers "does every assignment satisfying the premise also
// satisfy the conclusion?" without evaluating any assignment:
//
//   - Total: yes, for every assignment.
//   - Partial: the premise is a disjunction and only some of its branches
//     imply the conclusion.
//   - Inexistent: no implication could be established. This is also the
//     answer when the conclusion depends on an argument the premise does
//     not mention.
//
// Inexistent is the zero value, so an Implication that was never computed
// reads as "no implication".
type Implication int

const (
	// Inexistent means no implication could be established.
	Inexistent Implication = iota

	// Partial means some, but not all, branches of a disjunctive premise
	// imply the conclusion.
	Partial

	// Total means the premise implies the conclusion.
	Total
)

// Compile-time check that Implication implements model.Model interface.
var _ model.Model = (*Implication)(nil)

// String constants for Implication values used in serialization, CLI output
// and expected verdicts in batch suites.
const (
	InexistentStr = "inexistent"
	PartialStr    = "partial"
	TotalStr      = "total"
)

// String returns the canonical lowercase name, or "unknown".
func (i Implication) String() string {
	switch i {
	case Inexistent:
		return InexistentStr
	case Partial:
		return PartialStr
	case Total:
		return TotalStr
	default:
		return "unknown"
	}
}

// ParseImplication converts text into an Implication. Besides the canonical
// names it accepts capitalized forms and "none" as an alias of Inexistent.
func ParseImplication(s string) (Implication, error) {
	switch s {
	case InexistentStr, "Inexistent", "INEXISTENT", "none":
		return Inexistent, nil
	case PartialStr, "Partial", "PARTIAL":
		return Partial, nil
	case TotalStr, "Total", "TOTAL":
		return Total, nil
	default:
		return Inexistent, &errors.ParseError{Type: "Implication", Value: s}
	}
}

// Valid reports whether i is one of the defined constants.
func (i Implication) Valid() bool {
	return i == Inexistent || i == Partial || i == Total
}

// Combine merges the verdicts of the two branches of a disjunctive premise:
// Total when both are Total, Inexistent when both are Inexistent, Partial
// otherwise. Combine is commutative.
func (i Implication) Combine(o Implication) Implication {
	switch {
	case i == Total && o == Total:
		return Total
	case i == Inexistent && o == Inexistent:
		return Inexistent
	default:
		return Partial
	}
}

// TypeName returns "Implication".
func (i Implication) TypeName() string {
	return "Implication"
}

// Redacted returns the same string as String.
func (i Implication) Redacted() string {
	return i.String()
}

// IsZero reports whether i is Inexistent, the zero value.
func (i Implication) IsZero() bool {
	return i == Inexistent
}

// Equal reports whether other is an Implication (or *Implication) holding
// the same verdict.
func (i Implication) Equal(other any) bool {
	switch v := other.(type) {
	case Implication:
		return i == v
	case *Implication:
		if v == nil {
			return false
		}
		return i == *v
	default:
		return false
	}
}

// Validate returns a *ValidationError when i is not a defined constant.
func (i Implication) Validate() error {
	if !i.Valid() {
		return &errors.ValidationError{Type: "Implication", Reason: "unknown verdict", Value: int(i)}
	}
	return nil
}

// MarshalJSON encodes a valid Implication as its canonical string.
func (i Implication) MarshalJSON() ([]byte, error) {
	if !i.Valid() {
		return nil, &errors.MarshalError{Type: "Implication", Value: int(i)}
	}
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON accepts the string forms understood by ParseImplication or
// the numeric constant.
func (i *Implication) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Implication", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Implication", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseImplication(str)
		if err != nil {
			return err
		}
		*i = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return &errors.UnmarshalError{Type: "Implication", Data: data, Reason: err.Error()}
	}
	if !Implication(n).Valid() {
		return &errors.UnmarshalError{Type: "Implication", Data: data, Reason: "invalid numeric value"}
	}
	*i = Implication(n)
	return nil
}

// MarshalYAML encodes a valid Implication as its canonical string.
func (i Implication) MarshalYAML() (any, error) {
	if !i.Valid() {
		return nil, &errors.MarshalError{Type: "Implication", Value: int(i)}
	}
	return i.String(), nil
}

// UnmarshalYAML decodes an Implication from its string form.
func (i *Implication) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Implication", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseImplication(str)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (i Implication) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, &errors.MarshalError{Type: "Implication", Value: int(i)}
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Implication) UnmarshalText(text []byte) error {
	parsed, err := ParseImplication(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
