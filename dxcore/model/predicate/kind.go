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

// Kind identifies the node type of a Predicate.
//
// Kinds fall into three groups: constant leaves (KindTrue, KindFalse,
// KindBoolArg), comparisons between two Values (KindLowerThan through
// KindEqual), and connectives over other predicates (KindNot, KindAnd,
// KindOr). The zero Kind is KindTrue, which makes the zero Predicate the
// always-true predicate.
type Kind int

const (
	// KindTrue is the predicate that always holds.
	KindTrue Kind = iota

	// KindFalse is the predicate that never holds.
	KindFalse

	// KindBoolArg is a named boolean argument of unknown value. It places
	// no constraint on any ordered argument.
	KindBoolArg

	// KindLowerThan is the strict comparison left < right.
	KindLowerThan

	// KindLowerEqual is the comparison left <= right.
	KindLowerEqual

	// KindGreaterThan is the strict comparison left > right.
	KindGreaterThan

	// KindGreaterEqual is the comparison left >= right.
	KindGreaterEqual

	// KindEqual is the comparison left == right.
	KindEqual

	// KindNot negates its single operand.
	KindNot

	// KindAnd holds when both operands hold.
	KindAnd

	// KindOr holds when at least one operand holds.
	KindOr
)

// Compile-time check that Kind implements model.Model interface.
var _ model.Model = (*Kind)(nil)

// String constants for Kind values used in serialization and logs.
//
// Changing any of these strings is a breaking change for stored batch
// reports.
const (
	KindTrueStr         = "true"
	KindFalseStr        = "false"
	KindBoolArgStr      = "bool-arg"
	KindLowerThanStr    = "lt"
	KindLowerEqualStr   = "le"
	KindGreaterThanStr  = "gt"
	KindGreaterEqualStr = "ge"
	KindEqualStr        = "eq"
	KindNotStr          = "not"
	KindAndStr          = "and"
	KindOrStr           = "or"
)

// String returns the canonical lowercase name of the Kind, or "unknown".
func (k Kind) String() string {
	switch k {
	case KindTrue:
		return KindTrueStr
	case KindFalse:
		return KindFalseStr
	case KindBoolArg:
		return KindBoolArgStr
	case KindLowerThan:
		return KindLowerThanStr
	case KindLowerEqual:
		return KindLowerEqualStr
	case KindGreaterThan:
		return KindGreaterThanStr
	case KindGreaterEqual:
		return KindGreaterEqualStr
	case KindEqual:
		return KindEqualStr
	case KindNot:
		return KindNotStr
	case KindAnd:
		return KindAndStr
	case KindOr:
		return KindOrStr
	default:
		return "unknown"
	}
}

// Symbol returns the infix operator used in predicate text for comparisons
// and connectives ("<", "&&", "!", ...), the literal for constants, and ""
// for KindBoolArg and invalid kinds.
func (k Kind) Symbol() string {
	switch k {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindLowerThan:
		return "<"
	case KindLowerEqual:
		return "<="
	case KindGreaterThan:
		return ">"
	case KindGreaterEqual:
		return ">="
	case KindEqual:
		return "=="
	case KindNot:
		return "!"
	case KindAnd:
		return "&&"
	case KindOr:
		return "||"
	default:
		return ""
	}
}

// ParseKind converts a textual Kind into its constant. It accepts the
// canonical names, common long forms ("lower-than", "LowerThan") and the
// operator symbols. Unknown input yields a *ParseError.
func ParseKind(s string) (Kind, error) {
	switch s {
	case KindTrueStr, "True", "TRUE":
		return KindTrue, nil
	case KindFalseStr, "False", "FALSE":
		return KindFalse, nil
	case KindBoolArgStr, "BoolArg", "bool_arg":
		return KindBoolArg, nil
	case KindLowerThanStr, "lower-than", "LowerThan", "<":
		return KindLowerThan, nil
	case KindLowerEqualStr, "lower-equal", "LowerEqual", "<=":
		return KindLowerEqual, nil
	case KindGreaterThanStr, "greater-than", "GreaterThan", ">":
		return KindGreaterThan, nil
	case KindGreaterEqualStr, "greater-equal", "GreaterEqual", ">=":
		return KindGreaterEqual, nil
	case KindEqualStr, "equal", "Equal", "==":
		return KindEqual, nil
	case KindNotStr, "Not", "!":
		return KindNot, nil
	case KindAndStr, "And", "&&":
		return KindAnd, nil
	case KindOrStr, "Or", "||":
		return KindOr, nil
	default:
		return KindTrue, &errors.ParseError{Type: "Kind", Value: s}
	}
}

// Valid reports whether k is one of the defined constants.
func (k Kind) Valid() bool {
	return k >= KindTrue && k <= KindOr
}

// IsComparison reports whether k compares two Values.
func (k Kind) IsComparison() bool {
	return k >= KindLowerThan && k <= KindEqual
}

// IsConnective reports whether k combines other predicates.
func (k Kind) IsConnective() bool {
	return k == KindNot || k == KindAnd || k == KindOr
}

// IsStrict reports whether k is a comparison that fails when both sides are
// the same value.
func (k Kind) IsStrict() bool {
	return k == KindLowerThan || k == KindGreaterThan
}

// TypeName returns "Kind".
func (k Kind) TypeName() string {
	return "Kind"
}

// Redacted returns the same string as String.
func (k Kind) Redacted() string {
	return k.String()
}

// IsZero reports whether k is KindTrue, the zero value.
func (k Kind) IsZero() bool {
	return k == KindTrue
}

// Equal reports whether other is a Kind (or *Kind) holding the same constant.
func (k Kind) Equal(other any) bool {
	switch v := other.(type) {
	case Kind:
		return k == v
	case *Kind:
		if v == nil {
			return false
		}
		return k == *v
	default:
		return false
	}
}

// Validate returns a *ValidationError when k is not a defined constant.
func (k Kind) Validate() error {
	if !k.Valid() {
		return &errors.ValidationError{Type: "Kind", Reason: "unknown kind", Value: int(k)}
	}
	return nil
}

// MarshalJSON encodes a valid Kind as its canonical string.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON accepts either the string forms understood by ParseKind or
// the numeric constant.
func (k *Kind) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseKind(str)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
	}
	if !Kind(i).Valid() {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: "invalid numeric value"}
	}
	*k = Kind(i)
	return nil
}

// MarshalYAML encodes a valid Kind as its canonical string.
func (k Kind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML decodes a Kind from any string form understood by ParseKind.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
