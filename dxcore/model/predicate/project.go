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
	"slices"

	"dirpx.dev/dxpred/dxcore/model/domain"
	set "github.com/hashicorp/go-set/v3"
)

// Domain returns the values of the argument name for which p can hold,
// assuming nothing about any other argument.
//
// Constants, boolean arguments and comparisons not involving name project
// to the universal or empty Domain; a comparison between name and a literal
// projects to a half line or a point; Not, And and Or map to Complement,
// Intersection and Union. A comparison between name and a different
// argument is not reasoned about and projects to the universal Domain. The
// result is always simplified.
func (p Predicate[T]) Domain(name string) domain.Domain[T] {
	switch p.kind {
	case KindTrue, KindBoolArg:
		return domain.Universal[T]()
	case KindFalse:
		return domain.Empty[T]()
	case KindNot:
		return domain.Complement(p.operands[0].Domain(name))
	case KindAnd:
		return domain.Intersection(p.operands[0].Domain(name), p.operands[1].Domain(name))
	case KindOr:
		return domain.Union(p.operands[0].Domain(name), p.operands[1].Domain(name))
	}
	return compareDomain(p.kind, p.left, p.right, name)
}

func compareDomain[T domain.Scalar](kind Kind, left, right Value[T], name string) domain.Domain[T] {
	lv, leftLit := left.Literal()
	rv, rightLit := right.Literal()

	switch {
	case leftLit && rightLit:
		if holds(kind, lv, rv) {
			return domain.Universal[T]()
		}
		return domain.Empty[T]()
	case !left.Names(name) && !right.Names(name):
		return domain.Universal[T]()
	case left.Names(name) && right.Names(name):
		if kind.IsStrict() {
			return domain.Empty[T]()
		}
		return domain.Universal[T]()
	case left.IsArg() && right.IsArg():
		return domain.Universal[T]()
	case left.Names(name):
		return against(kind, rv)
	default:
		// x OP a is a flip(OP) x.
		return against(flip(kind), lv)
	}
}

// against returns the values of a satisfying a OP x.
func against[T domain.Scalar](kind Kind, x T) domain.Domain[T] {
	switch kind {
	case KindLowerThan:
		return domain.Below(x, false)
	case KindLowerEqual:
		return domain.Below(x, true)
	case KindGreaterThan:
		return domain.Above(x, false)
	case KindGreaterEqual:
		return domain.Above(x, true)
	case KindEqual:
		return domain.Point(x)
	}
	return domain.Universal[T]()
}

func flip(kind Kind) Kind {
	switch kind {
	case KindLowerThan:
		return KindGreaterThan
	case KindLowerEqual:
		return KindGreaterEqual
	case KindGreaterThan:
		return KindLowerThan
	case KindGreaterEqual:
		return KindLowerEqual
	}
	return kind
}

func holds[T domain.Scalar](kind Kind, a, b T) bool {
	switch kind {
	case KindLowerThan:
		return a < b
	case KindLowerEqual:
		return a <= b
	case KindGreaterThan:
		return a > b
	case KindGreaterEqual:
		return a >= b
	case KindEqual:
		return a == b
	}
	return false
}

// Arguments returns the names of every argument p mentions, in comparisons
// or as boolean arguments.
func (p Predicate[T]) Arguments() *set.Set[string] {
	s := set.New[string](4)
	p.collect(s)
	return s
}

func (p Predicate[T]) collect(s *set.Set[string]) {
	switch {
	case p.kind == KindBoolArg:
		s.Insert(p.name)
	case p.kind.IsComparison():
		if p.left.IsArg() {
			s.Insert(p.left.name)
		}
		if p.right.IsArg() {
			s.Insert(p.right.name)
		}
	}
	for _, o := range p.operands {
		o.collect(s)
	}
}

// ArgumentNames returns Arguments as a sorted slice.
func (p Predicate[T]) ArgumentNames() []string {
	names := p.Arguments().Slice()
	slices.Sort(names)
	return names
}
