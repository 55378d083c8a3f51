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

// Package model defines the contracts shared by every dxpred value type.
//
// Intervals, domains, predicates, implication verdicts and batch checks all
// implement Model (or the subset of it that makes sense for them). The
// contracts give the front ends one way to validate, serialize, log and name
// any value they handle, regardless of whether it came from the CLI, a YAML
// suite file or an HTTP request body.
//
// Model values are immutable. Operations on intervals, domains and predicates
// return new values and never modify their receivers, so every Model in this
// module is safe to share between goroutines once constructed. Unmarshal
// methods are the only mutating methods and follow the usual encoding/json
// rules: do not call them concurrently with reads of the same value.
//
// # Serialization
//
// Algebraic values serialize to their textual notation rather than to their
// internal structure:
//
//	Interval   "[3;7["
//	Domain     "]-∞;6[ U [7;+∞["
//	Predicate  "(x > 2) && (y == 4)"
//	Kind       "gt"
//	Implication "total"
//
// Decoding parses the text back and validates the result, so a value read
// from JSON or YAML is always well formed.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the full contract for dxpred value types.
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by values that can check their own invariants.
//
// Validate MUST NOT mutate the receiver and MUST return nil for every value
// produced by the package's own constructors. A non-nil result is normally a
// *errors.ValidationError, possibly wrapped.
type Validatable interface {
	Validate() error
}

// Serializable groups the JSON and YAML codec interfaces.
//
// Marshal methods MUST reject invalid values instead of emitting them, and
// Unmarshal methods MUST validate what they decoded.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by values that can describe themselves in logs.
//
// None of the dxpred types carry sensitive data, so Redacted usually returns
// the same text as String. The split is kept so that batch checks with
// user-supplied names can shorten them in logs.
type Loggable interface {
	Redacted() string
	String() string
}

// Identifiable exposes the logical type name used in error messages and logs.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable reports whether a value is its type's zero value.
//
// The zero value is not necessarily invalid: the zero Interval is the
// unbounded interval and the zero Domain is the empty domain.
type ZeroCheckable interface {
	IsZero() bool
}

// Checkable is the part of Model that generic helpers need: something that
// can validate itself and say what it is.
type Checkable interface {
	Validatable
	Identifiable
}

// Comparable is implemented by types with a semantic equality.
type Comparable[T any] interface {
	Equal(other T) bool
}
