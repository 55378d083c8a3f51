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

// Package predicate models boolean predicates over ordered scalar arguments
// and decides implication between them without evaluating any assignment.
//
// A Predicate is an immutable tree. Leaves are the constants true and false,
// named boolean arguments, and comparisons between two Values (an argument
// or a literal). Inner nodes are the connectives Not, And and Or.
//
// For any argument name, Domain projects a predicate onto the set of values
// of that argument for which the predicate can hold, as a domain.Domain.
// Implies and Fits compare those projections argument by argument:
//
//	premise := predicate.MustParse[float64]("(x > 2) && (y == 4)")
//	conclusion := predicate.MustParse[float64]("(x > 0) && (y > 2)")
//	premise.Implies(conclusion) // predicate.Total
//
// Relations between two distinct unknown arguments, such as x < y, are not
// reasoned about: they project to the universal domain for every argument.
package predicate

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model"
	"dirpx.dev/dxpred/dxcore/model/domain"
	"gopkg.in/yaml.v3"
)

// Predicate is a boolean expression tree over arguments of scalar type T.
//
// Predicates are built with the constructors in this package (True, Lt, And,
// ...) or parsed from text with Parse. They are immutable and safe to share
// between goroutines. The zero Predicate is True.
type Predicate[T domain.Scalar] struct {
	kind Kind

	// name is set for KindBoolArg.
	name string

	// left and right are set for comparisons.
	left, right Value[T]

	// operands holds one child for KindNot and two for KindAnd and KindOr.
	operands []Predicate[T]
}

// Compile-time check that Predicate implements model.Model.
var _ model.Model = (*Predicate[float64])(nil)

// True returns the predicate that always holds.
func True[T domain.Scalar]() Predicate[T] {
	return Predicate[T]{kind: KindTrue}
}

// False returns the predicate that never holds.
func False[T domain.Scalar]() Predicate[T] {
	return Predicate[T]{kind: KindFalse}
}

// BoolArg returns the boolean argument called name.
func BoolArg[T domain.Scalar](name string) Predicate[T] {
	return Predicate[T]{kind: KindBoolArg, name: name}
}

// Lt returns left < right.
func Lt[T domain.Scalar](left, right Value[T]) Predicate[T] {
	return comparison(KindLowerThan, left, right)
}

// Le returns left <= right.
func Le[T domain.Scalar](left, right Value[T]) Predicate[T] {
	return comparison(KindLowerEqual, left, right)
}

// Gt returns left > right.
func Gt[T domain.Scalar](left, right Value[T]) Predicate[T] {
	return comparison(KindGreaterThan, left, right)
}

// Ge returns left >= right.
func Ge[T domain.Scalar](left, right Value[T]) Predicate[T] {
	return comparison(KindGreaterEqual, left, right)
}

// Eq returns left == right.
func Eq[T domain.Scalar](left, right Value[T]) Predicate[T] {
	return comparison(KindEqual, left, right)
}

// Compare returns the comparison of the given kind, or a *ValidationError
// when kind is not a comparison.
func Compare[T domain.Scalar](kind Kind, left, right Value[T]) (Predicate[T], error) {
	if !kind.IsComparison() {
		return Predicate[T]{}, &errors.ValidationError{Type: "Predicate", Field: "Kind", Reason: "not a comparison", Value: kind.String()}
	}
	return comparison(kind, left, right), nil
}

func comparison[T domain.Scalar](kind Kind, left, right Value[T]) Predicate[T] {
	return Predicate[T]{kind: kind, left: left, right: right}
}

// Not returns the negation of p.
func Not[T domain.Scalar](p Predicate[T]) Predicate[T] {
	return Predicate[T]{kind: KindNot, operands: []Predicate[T]{p}}
}

// And returns the conjunction of a and b.
func And[T domain.Scalar](a, b Predicate[T]) Predicate[T] {
	return Predicate[T]{kind: KindAnd, operands: []Predicate[T]{a, b}}
}

// Or returns the disjunction of a and b.
func Or[T domain.Scalar](a, b Predicate[T]) Predicate[T] {
	return Predicate[T]{kind: KindOr, operands: []Predicate[T]{a, b}}
}

// AllOf folds ps into a left-nested conjunction. It returns True for no
// operands and the operand itself for one.
func AllOf[T domain.Scalar](ps ...Predicate[T]) Predicate[T] {
	if len(ps) == 0 {
		return True[T]()
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = And(acc, p)
	}
	return acc
}

// AnyOf folds ps into a left-nested disjunction. It returns False for no
// operands and the operand itself for one.
func AnyOf[T domain.Scalar](ps ...Predicate[T]) Predicate[T] {
	if len(ps) == 0 {
		return False[T]()
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = Or(acc, p)
	}
	return acc
}

// Between returns lo <= arg <= hi as the conjunction of two comparisons on
// arg. inclLo and inclHi choose between <= and < on each side:
//
//	Between(3, "x", 7, true, false) // (x >= 3) && (x < 7)
func Between[T domain.Scalar](lo T, arg string, hi T, inclLo, inclHi bool) Predicate[T] {
	a := Arg[T](arg)
	lower, upper := Gt(a, Literal(lo)), Lt(a, Literal(hi))
	if inclLo {
		lower = Ge(a, Literal(lo))
	}
	if inclHi {
		upper = Le(a, Literal(hi))
	}
	return And(lower, upper)
}

// Kind returns the node type.
func (p Predicate[T]) Kind() Kind {
	return p.kind
}

// Name returns the argument name of a KindBoolArg node, or "".
func (p Predicate[T]) Name() string {
	return p.name
}

// Left returns the left operand of a comparison.
func (p Predicate[T]) Left() Value[T] {
	return p.left
}

// Right returns the right operand of a comparison.
func (p Predicate[T]) Right() Value[T] {
	return p.right
}

// Operands returns a copy of the children of a connective: one for Not, two
// for And and Or, none otherwise.
func (p Predicate[T]) Operands() []Predicate[T] {
	return slices.Clone(p.operands)
}

// Depth returns the height of the tree. Leaves and comparisons have depth 1.
func (p Predicate[T]) Depth() int {
	d := 0
	for _, o := range p.operands {
		d = max(d, o.Depth())
	}
	return d + 1
}

// String renders p as predicate text that Parse reads back into an equal
// tree. Operands of && and || are parenthesized unless they are constants or
// boolean arguments; a negated operand is always parenthesized.
//
//	(x > 2) && ((y == 4) || flag)
//	!(x < 0)
func (p Predicate[T]) String() string {
	switch {
	case p.kind == KindTrue, p.kind == KindFalse:
		return p.kind.Symbol()
	case p.kind == KindBoolArg:
		return p.name
	case p.kind.IsComparison():
		return p.left.String() + " " + p.kind.Symbol() + " " + p.right.String()
	case p.kind == KindNot && len(p.operands) == 1:
		return "!(" + p.operands[0].String() + ")"
	case (p.kind == KindAnd || p.kind == KindOr) && len(p.operands) == 2:
		return wrap(p.operands[0]) + " " + p.kind.Symbol() + " " + wrap(p.operands[1])
	default:
		return "<invalid " + p.kind.String() + ">"
	}
}

func wrap[T domain.Scalar](p Predicate[T]) string {
	switch p.kind {
	case KindTrue, KindFalse, KindBoolArg, KindNot:
		return p.String()
	}
	return "(" + p.String() + ")"
}

// Redacted returns the same text as String.
func (p Predicate[T]) Redacted() string {
	return p.String()
}

// TypeName returns "Predicate".
func (p Predicate[T]) TypeName() string {
	return "Predicate"
}

// IsZero reports whether p is the zero Predicate, which is True.
func (p Predicate[T]) IsZero() bool {
	return p.kind == KindTrue
}

// Equal reports whether other is a Predicate (or *Predicate) with the same
// tree structure, names and literals.
func (p Predicate[T]) Equal(other any) bool {
	switch o := other.(type) {
	case Predicate[T]:
		return p.equal(o)
	case *Predicate[T]:
		return o != nil && p.equal(*o)
	default:
		return false
	}
}

func (p Predicate[T]) equal(o Predicate[T]) bool {
	if p.kind != o.kind || p.name != o.name || p.left != o.left || p.right != o.right {
		return false
	}
	return slices.EqualFunc(p.operands, o.operands, Predicate[T].equal)
}

// Validate checks the structural invariants of the whole tree: known kinds,
// well-formed argument names, finite literals and the right number of
// operands for every connective.
func (p Predicate[T]) Validate() error {
	switch {
	case !p.kind.Valid():
		return p.kind.Validate()
	case p.kind == KindBoolArg:
		if !IsIdentifier(p.name) {
			return &errors.ValidationError{Type: "Predicate", Field: "Name", Reason: "not a valid identifier", Value: p.name}
		}
	case p.kind.IsComparison():
		for _, v := range []Value[T]{p.left, p.right} {
			if err := v.Validate(); err != nil {
				return err
			}
			if lit, ok := v.Literal(); ok {
				if f := float64(lit); math.IsNaN(f) || math.IsInf(f, 0) {
					return &errors.ValidationError{Type: "Predicate", Field: "Literal", Reason: "must be finite", Value: f}
				}
			}
		}
	case p.kind == KindNot:
		if len(p.operands) != 1 {
			return &errors.ValidationError{Type: "Predicate", Field: "Operands", Reason: "not takes exactly one operand", Value: len(p.operands)}
		}
	case p.kind == KindAnd || p.kind == KindOr:
		if len(p.operands) != 2 {
			return &errors.ValidationError{Type: "Predicate", Field: "Operands", Reason: p.kind.String() + " takes exactly two operands", Value: len(p.operands)}
		}
	}

	for i, o := range p.operands {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("operand %d of %s: %w", i, p.kind, err)
		}
	}
	return nil
}

// MarshalJSON encodes the predicate as its text form.
func (p Predicate[T]) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON parses the predicate from its text form.
func (p *Predicate[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Predicate", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse[T](s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the predicate as its text form.
func (p Predicate[T]) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.String(), nil
}

// UnmarshalYAML parses the predicate from its text form.
func (p *Predicate[T]) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Predicate", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse[T](s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
