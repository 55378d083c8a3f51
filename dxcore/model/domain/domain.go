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

// Package domain implements the interval algebra used to reason about the
// values a predicate accepts for one argument.
//
// An Interval is a single contiguous range with open, closed or absent
// bounds. A Domain is a finite union of Intervals. The package provides the
// set operations the implication engine needs (intersection, union,
// complement and subset) with exact open/closed boundary semantics, and a
// canonical form so that two Domains describing the same set compare equal.
//
// # Canonical form
//
// Domains built with Of may contain overlapping, touching or unordered parts.
// Simplified merges every pair of parts that can be joined and sorts the
// result by lower bound. Intersection, Union and Complement always return
// simplified Domains. Equal compares parts position by position, so compare
// simplified Domains only.
//
//	d := domain.Union(domain.Point(3), domain.Of(domain.Single(1)))
//	d.String() // "[1;1] U [3;3]"
//
// Every function in this package is pure; Domains and Intervals are
// immutable and safe to share between goroutines.
package domain

import (
	"encoding/json"
	"fmt"
	"slices"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Domain is the set of values, for one argument, on which some condition
// holds, stored as a union of Intervals.
//
// The zero Domain is empty.
type Domain[T Scalar] struct {
	parts []Interval[T]
}

// Compile-time check that Domain implements model.Model.
var _ model.Model = (*Domain[float64])(nil)

// Empty returns the Domain holding no value.
func Empty[T Scalar]() Domain[T] {
	return Domain[T]{}
}

// Universal returns the Domain holding every value.
func Universal[T Scalar]() Domain[T] {
	return Domain[T]{parts: []Interval[T]{Full[T]()}}
}

// Point returns the Domain holding exactly x.
func Point[T Scalar](x T) Domain[T] {
	return Domain[T]{parts: []Interval[T]{Single(x)}}
}

// Of returns the union of parts as given, without simplification.
func Of[T Scalar](parts ...Interval[T]) Domain[T] {
	return Domain[T]{parts: slices.Clone(parts)}
}

// Below returns ]-∞;x[, or ]-∞;x] when inclusive is set.
func Below[T Scalar](x T, inclusive bool) Domain[T] {
	return Domain[T]{parts: []Interval[T]{{upper: Bound[T]{value: x, inclusive: inclusive, finite: true}}}}
}

// Above returns ]x;+∞[, or [x;+∞[ when inclusive is set.
func Above[T Scalar](x T, inclusive bool) Domain[T] {
	return Domain[T]{parts: []Interval[T]{{lower: Bound[T]{value: x, inclusive: inclusive, finite: true}}}}
}

// Parts returns a copy of the intervals making up the Domain, in storage
// order.
func (d Domain[T]) Parts() []Interval[T] {
	return slices.Clone(d.parts)
}

// Len returns the number of stored parts.
func (d Domain[T]) Len() int {
	return len(d.parts)
}

// IsEmpty reports whether the Domain holds no value.
func (d Domain[T]) IsEmpty() bool {
	return len(d.parts) == 0
}

// IsUniversal reports whether the Domain holds every value.
func (d Domain[T]) IsUniversal() bool {
	s := d.Simplified()
	return len(s.parts) == 1 && s.parts[0].IsFull()
}

// Has reports whether v belongs to the Domain.
func (d Domain[T]) Has(v T) bool {
	for _, p := range d.parts {
		if p.Has(v) {
			return true
		}
	}
	return false
}

// Simplified returns the canonical form of d: no two parts overlap or touch,
// and parts are sorted by lower bound. Simplified is idempotent.
//
// Parts are folded left to right after sorting; each part either extends the
// running interval or closes it and starts the next one. Sorting guarantees
// that a part which cannot join the running interval cannot join any
// interval that follows it either.
func (d Domain[T]) Simplified() Domain[T] {
	if len(d.parts) < 2 {
		return Domain[T]{parts: slices.Clone(d.parts)}
	}

	sorted := slices.Clone(d.parts)
	slices.SortStableFunc(sorted, compareLower[T])

	out := make([]Interval[T], 0, len(sorted))
	acc := sorted[0]
	for _, next := range sorted[1:] {
		if merged, ok := acc.Join(next); ok {
			acc = merged
			continue
		}
		out = append(out, acc)
		acc = next
	}
	out = append(out, acc)

	return Domain[T]{parts: out}
}

// Intersection returns the values present in both d1 and d2.
func Intersection[T Scalar](d1, d2 Domain[T]) Domain[T] {
	parts := make([]Interval[T], 0, len(d1.parts))
	for _, a := range d1.parts {
		for _, b := range d2.parts {
			if i, ok := a.Intersect(b); ok {
				parts = append(parts, i)
			}
		}
	}
	return Domain[T]{parts: parts}.Simplified()
}

// Union returns the values present in d1, d2 or both.
func Union[T Scalar](d1, d2 Domain[T]) Domain[T] {
	parts := make([]Interval[T], 0, len(d1.parts)+len(d2.parts))
	parts = append(parts, d1.parts...)
	parts = append(parts, d2.parts...)
	return Domain[T]{parts: parts}.Simplified()
}

// Complement returns every value not in d.
//
// The gaps between consecutive parts become the parts of the result, plus
// the unbounded tails before the first part and after the last one. Every
// boundary flips: a closed end of d becomes an open end of the complement and
// the other way round.
func Complement[T Scalar](d Domain[T]) Domain[T] {
	s := d.Simplified()
	if len(s.parts) == 0 {
		return Universal[T]()
	}

	var out []Interval[T]
	cursor := Unbounded[T]()
	for _, p := range s.parts {
		if p.lower.finite {
			gapEnd := Bound[T]{value: p.lower.value, inclusive: !p.lower.inclusive, finite: true}
			if gap, ok := New(cursor, gapEnd); ok {
				out = append(out, gap)
			}
		}
		if !p.upper.finite {
			return Domain[T]{parts: out}
		}
		cursor = Bound[T]{value: p.upper.value, inclusive: !p.upper.inclusive, finite: true}
	}
	out = append(out, Interval[T]{lower: cursor})

	return Domain[T]{parts: out}
}

// IsSubset reports whether every value of sub also belongs to super, by
// checking that adding sub to super leaves super unchanged.
func IsSubset[T Scalar](sub, super Domain[T]) bool {
	return Union(sub, super).Equal(super.Simplified())
}

// Contains reports whether every value of other belongs to d.
func (d Domain[T]) Contains(other Domain[T]) bool {
	return IsSubset(other, d)
}

// String returns the Domain in bracket notation, parts joined by " U ", or
// "∅" when empty:
//
//	]-∞;6[ U [7;+∞[
func (d Domain[T]) String() string {
	return formatDomain(d)
}

// Redacted returns the same text as String.
func (d Domain[T]) Redacted() string {
	return d.String()
}

// TypeName returns "Domain".
func (d Domain[T]) TypeName() string {
	return "Domain"
}

// IsZero reports whether the Domain has no parts, which is also the empty
// Domain.
func (d Domain[T]) IsZero() bool {
	return len(d.parts) == 0
}

// Equal reports whether other is a Domain (or *Domain) with the same parts in
// the same order. Simplify both sides first to compare sets.
func (d Domain[T]) Equal(other any) bool {
	switch o := other.(type) {
	case Domain[T]:
		return slices.Equal(d.parts, o.parts)
	case *Domain[T]:
		return o != nil && slices.Equal(d.parts, o.parts)
	default:
		return false
	}
}

// Validate checks every part.
func (d Domain[T]) Validate() error {
	for i, p := range d.parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid Domain part %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON encodes the Domain as its bracket notation string.
func (d Domain[T]) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a Domain from its bracket notation string. The result
// is simplified.
func (d *Domain[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Domain", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseDomain[T](s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the Domain as its bracket notation string.
func (d Domain[T]) MarshalYAML() (interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d.String(), nil
}

// UnmarshalYAML decodes a Domain from its bracket notation string.
func (d *Domain[T]) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Domain", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseDomain[T](s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
