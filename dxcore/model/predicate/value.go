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
	"unicode"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model/domain"
)

// Value is one operand of a comparison: either a named argument whose value
// is unknown, or a literal of the scalar type.
//
// Value is comparable with ==. The zero Value is the literal zero.
type Value[T domain.Scalar] struct {
	name    string
	literal T
	isArg   bool
}

// Arg returns the Value naming the argument name.
func Arg[T domain.Scalar](name string) Value[T] {
	return Value[T]{name: name, isArg: true}
}

// Literal returns the Value holding v.
func Literal[T domain.Scalar](v T) Value[T] {
	return Value[T]{literal: v}
}

// IsArg reports whether v names an argument.
func (v Value[T]) IsArg() bool {
	return v.isArg
}

// Name returns the argument name, or "" for a literal.
func (v Value[T]) Name() string {
	return v.name
}

// Literal returns the literal and true, or the zero value and false for an
// argument.
func (v Value[T]) Literal() (T, bool) {
	return v.literal, !v.isArg
}

// Names reports whether v is the argument called name.
func (v Value[T]) Names(name string) bool {
	return v.isArg && v.name == name
}

// String returns the argument name or the formatted literal.
func (v Value[T]) String() string {
	if v.isArg {
		return v.name
	}
	return domain.FormatScalar(v.literal)
}

// Validate checks that an argument carries a usable identifier.
func (v Value[T]) Validate() error {
	if v.isArg && !IsIdentifier(v.name) {
		return &errors.ValidationError{Type: "Value", Field: "Name", Reason: "not a valid identifier", Value: v.name}
	}
	return nil
}

// IsIdentifier reports whether s can name an argument in predicate text: a
// letter or underscore followed by letters, digits or underscores, and not
// one of the keywords "true" and "false".
func IsIdentifier(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
