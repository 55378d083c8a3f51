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

// Package errors provides the error types shared by the dxpred packages.
//
// The decision procedure itself never fails: malformed intervals are
// discarded, relations between two unknown arguments resolve to the full
// domain and unknown right-hand arguments resolve to an Inexistent verdict.
// Errors only appear at the edges of the system, where text, JSON or YAML is
// turned into model values, and where model values are validated.
//
// # Error Types
//
//   - ParseError
//     Returned when a textual enum-like value (Kind, Implication) is not
//     recognized.
//
//   - SyntaxError
//     Returned when predicate or interval text cannot be parsed. It carries
//     the byte offset of the offending token so front ends can point at it.
//
//   - MarshalError
//     Returned when an invalid enum-like value is about to be serialized.
//
//   - UnmarshalError
//     Returned when JSON or YAML input cannot be decoded into a model type.
//
//   - ValidationError
//     Returned by Validate() methods on constraint violations.
//
// All messages start with "dxpred: " and their format is stable. Callers
// SHOULD still prefer errors.As over string matching.
//
//	var syn *errors.SyntaxError
//	if stderrors.As(err, &syn) {
//	    fmt.Printf("bad token at %d\n", syn.Offset)
//	}
package errors

import "strconv"

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Kind" or
// "Implication"), and Value contains the exact string that could not be
// interpreted.
//
// # Example
//
//	func ParseImplication(s string) (Implication, error) {
//	    switch s {
//	    case "total":
//	        return Total, nil
//	    default:
//	        // "dxpred: invalid Implication value: <value>"
//	        return Inexistent, &errors.ParseError{Type: "Implication", Value: s}
//	    }
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Kind").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxpred: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxpred: invalid " + e.Type + " value: " + e.Value
}

// SyntaxError is returned when a textual predicate or interval expression is
// malformed: an unknown token, unbalanced parentheses, an operator without
// operands, a literal that does not fit the scalar type, or a tree deeper than
// the configured limit.
//
// Offset is the byte offset into Input where the problem was detected. It is
// -1 when the problem is not tied to a position (for example, an empty
// expression).
type SyntaxError struct {
	// Type is the logical name of what was being parsed ("Predicate",
	// "Interval", "Domain").
	Type string

	// Input is the complete text that failed to parse.
	Input string

	// Offset is the byte offset of the offending token, or -1.
	Offset int

	// Reason is a short, human-readable explanation.
	Reason string
}

// Error implements the error interface for SyntaxError.
//
// The error message format is:
//
//	"dxpred: invalid {Type} at offset {Offset}: {Reason}"
//	"dxpred: invalid {Type}: {Reason}" (when Offset is negative)
func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return "dxpred: invalid " + e.Type + ": " + e.Reason
	}
	return "dxpred: invalid " + e.Type + " at offset " + strconv.Itoa(e.Offset) + ": " + e.Reason
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error, such as a
// numeric cast that produced an unknown Kind.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxpred: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxpred: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Data keeps the raw payload for callers that want to log it; it is not part
// of the formatted message.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxpred: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxpred: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails.
//
// # Example
//
//	func (c Check) Validate() error {
//	    if c.Premise == "" {
//	        return &errors.ValidationError{
//	            Type:   "Check",
//	            Field:  "Premise",
//	            Reason: "must not be empty",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire value.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxpred: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxpred: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxpred: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxpred: invalid " + e.Type + ": " + e.Reason
}
