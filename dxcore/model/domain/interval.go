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

package domain

import (
	"encoding/json"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Bound is one end of an Interval: either a finite value, closed or open, or
// the absence of a bound (minus or plus infinity depending on the side).
//
// The zero Bound is unbounded. Unbounded bounds are never inclusive and
// always carry the zero value, so two Bounds describing the same end compare
// equal with ==.
type Bound[T Scalar] struct {
	value     T
	inclusive bool
	finite    bool
}

// Unbounded returns the absent bound.
func Unbounded[T Scalar]() Bound[T] {
	return Bound[T]{}
}

// Closed returns a finite bound that includes v.
func Closed[T Scalar](v T) Bound[T] {
	return Bound[T]{value: v, inclusive: true, finite: true}
}

// Open returns a finite bound that excludes v.
func Open[T Scalar](v T) Bound[T] {
	return Bound[T]{value: v, finite: true}
}

// Value returns the bound's value and true, or the zero value and false when
// the bound is absent.
func (b Bound[T]) Value() (T, bool) {
	return b.value, b.finite
}

// Inclusive reports whether the bound's value belongs to the interval.
func (b Bound[T]) Inclusive() bool {
	return b.inclusive
}

// IsUnbounded reports whether the bound is absent.
func (b Bound[T]) IsUnbounded() bool {
	return !b.finite
}

// Interval is a single contiguous set of values between two Bounds.
//
// An Interval is never empty: constructors refuse bound pairs that describe
// no value (lower above upper, or equal bounds that are not both closed), and
// Intersect/Join report "no interval" instead of producing one. The zero
// Interval is ]-∞;+∞[, the whole line.
//
// Interval is an immutable value type. It is comparable with ==, and == is
// equivalent to Equal.
type Interval[T Scalar] struct {
	lower Bound[T]
	upper Bound[T]
}

// Compile-time check that Interval implements model.Model.
var _ model.Model = (*Interval[float64])(nil)

// New returns the interval between lower and upper, or false when that
// interval would be empty.
//
//	domain.New(domain.Closed(3), domain.Open(7))           // [3;7[
//	domain.New(domain.Unbounded[int](), domain.Closed(0))  // ]-∞;0]
//	domain.New(domain.Open(3), domain.Closed(3))           // _, false
func New[T Scalar](lower, upper Bound[T]) (Interval[T], bool) {
	if !nonEmpty(lower, upper) {
		return Interval[T]{}, false
	}
	return Interval[T]{lower: lower, upper: upper}, true
}

// Full returns ]-∞;+∞[.
func Full[T Scalar]() Interval[T] {
	return Interval[T]{}
}

// Single returns the degenerate interval [x;x].
func Single[T Scalar](x T) Interval[T] {
	return Interval[T]{lower: Closed(x), upper: Closed(x)}
}

// Lower returns the lower bound.
func (i Interval[T]) Lower() Bound[T] { return i.lower }

// Upper returns the upper bound.
func (i Interval[T]) Upper() Bound[T] { return i.upper }

// IsPoint reports whether the interval holds exactly one value.
func (i Interval[T]) IsPoint() bool {
	return i.lower.finite && i.upper.finite && i.lower.value == i.upper.value
}

// IsFull reports whether the interval is unbounded on both sides.
func (i Interval[T]) IsFull() bool {
	return !i.lower.finite && !i.upper.finite
}

// Has reports whether v lies inside the interval.
func (i Interval[T]) Has(v T) bool {
	if i.lower.finite {
		if v < i.lower.value || (v == i.lower.value && !i.lower.inclusive) {
			return false
		}
	}
	if i.upper.finite {
		if v > i.upper.value || (v == i.upper.value && !i.upper.inclusive) {
			return false
		}
	}
	return true
}

// Intersect returns the values common to i and o, or false when they share
// none.
//
// The lower bound is the larger of the two lower bounds and the upper bound is
// the smaller of the two upper bounds. When both candidates carry the same
// value the result is closed only if both are closed.
func (i Interval[T]) Intersect(o Interval[T]) (Interval[T], bool) {
	return New(maxLower(i.lower, o.lower), minUpper(i.upper, o.upper))
}

// Join returns the single interval covering i and o, or false when they
// cannot be joined without adding values that belong to neither.
//
// Two intervals join when they overlap or touch. Touching means one ends
// exactly where the other starts and at least one of them includes that
// point, so [1;3[ and [3;5] join into [1;5] while [1;3[ and ]3;5] do not.
// When both candidates for a bound carry the same value, the result is
// closed if either is closed.
func (i Interval[T]) Join(o Interval[T]) (Interval[T], bool) {
	// Touching intervals have no intersection, so check them first.
	if !touches(i, o) && !touches(o, i) {
		if _, ok := i.Intersect(o); !ok {
			return Interval[T]{}, false
		}
	}
	return Interval[T]{lower: minLower(i.lower, o.lower), upper: maxUpper(i.upper, o.upper)}, true
}

// touches reports whether a ends exactly where b starts with no gap.
func touches[T Scalar](a, b Interval[T]) bool {
	return a.upper.finite && b.lower.finite &&
		a.upper.value == b.lower.value &&
		(a.upper.inclusive || b.lower.inclusive)
}

// nonEmpty reports whether [lower, upper] describes at least one value.
func nonEmpty[T Scalar](lower, upper Bound[T]) bool {
	if !lower.finite || !upper.finite {
		return true
	}
	if lower.value < upper.value {
		return true
	}
	return lower.value == upper.value && lower.inclusive && upper.inclusive
}

func maxLower[T Scalar](a, b Bound[T]) Bound[T] {
	switch {
	case !a.finite:
		return b
	case !b.finite:
		return a
	case a.value > b.value:
		return a
	case a.value < b.value:
		return b
	}
	return Bound[T]{value: a.value, inclusive: a.inclusive && b.inclusive, finite: true}
}

func minUpper[T Scalar](a, b Bound[T]) Bound[T] {
	switch {
	case !a.finite:
		return b
	case !b.finite:
		return a
	case a.value < b.value:
		return a
	case a.value > b.value:
		return b
	}
	return Bound[T]{value: a.value, inclusive: a.inclusive && b.inclusive, finite: true}
}

func minLower[T Scalar](a, b Bound[T]) Bound[T] {
	switch {
	case !a.finite || !b.finite:
		return Bound[T]{}
	case a.value < b.value:
		return a
	case a.value > b.value:
		return b
	}
	return Bound[T]{value: a.value, inclusive: a.inclusive || b.inclusive, finite: true}
}

func maxUpper[T Scalar](a, b Bound[T]) Bound[T] {
	switch {
	case !a.finite || !b.finite:
		return Bound[T]{}
	case a.value > b.value:
		return a
	case a.value < b.value:
		return b
	}
	return Bound[T]{value: a.value, inclusive: a.inclusive || b.inclusive, finite: true}
}

// compareLower orders intervals by where they start: unbounded first, then by
// value, and a closed start before an open one at the same value.
func compareLower[T Scalar](a, b Interval[T]) int {
	switch {
	case !a.lower.finite && !b.lower.finite:
		return 0
	case !a.lower.finite:
		return -1
	case !b.lower.finite:
		return 1
	case a.lower.value < b.lower.value:
		return -1
	case a.lower.value > b.lower.value:
		return 1
	case a.lower.inclusive == b.lower.inclusive:
		return 0
	case a.lower.inclusive:
		return -1
	}
	return 1
}

// String returns the interval in bracket notation, where an outward facing
// bracket marks an open end:
//
//	[3;7[     3 <= v < 7
//	]-∞;6[    v < 6
//	[2;2]     v == 2
func (i Interval[T]) String() string {
	return formatInterval(i)
}

// Redacted returns the same text as String; intervals carry nothing
// sensitive.
func (i Interval[T]) Redacted() string {
	return i.String()
}

// TypeName returns "Interval".
func (i Interval[T]) TypeName() string {
	return "Interval"
}

// IsZero reports whether i is the zero Interval, ]-∞;+∞[.
func (i Interval[T]) IsZero() bool {
	return i == Interval[T]{}
}

// Equal reports whether other is an Interval (or *Interval) with the same
// bounds.
func (i Interval[T]) Equal(other any) bool {
	switch o := other.(type) {
	case Interval[T]:
		return i == o
	case *Interval[T]:
		return o != nil && i == *o
	default:
		return false
	}
}

// Validate checks the non-emptiness invariant. Values built through New,
// Full, Single, Intersect, Join or decoding always pass.
func (i Interval[T]) Validate() error {
	if !i.lower.finite && i.lower.inclusive {
		return &errors.ValidationError{Type: "Interval", Field: "Lower", Reason: "unbounded side cannot be inclusive"}
	}
	if !i.upper.finite && i.upper.inclusive {
		return &errors.ValidationError{Type: "Interval", Field: "Upper", Reason: "unbounded side cannot be inclusive"}
	}
	if !nonEmpty(i.lower, i.upper) {
		return &errors.ValidationError{Type: "Interval", Reason: "bounds describe an empty interval", Value: i.String()}
	}
	return nil
}

// MarshalJSON encodes the interval as its bracket notation string.
func (i Interval[T]) MarshalJSON() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes an interval from its bracket notation string.
func (i *Interval[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Interval", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseInterval[T](s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalYAML encodes the interval as its bracket notation string.
func (i Interval[T]) MarshalYAML() (interface{}, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return i.String(), nil
}

// UnmarshalYAML decodes an interval from its bracket notation string.
func (i *Interval[T]) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Interval", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseInterval[T](s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
