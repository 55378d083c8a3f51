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

import "dirpx.dev/dxpred/dxcore/model/domain"

// Simplify folds constants out of p:
//
//	1 < 2          true
//	!true          false
//	!!p            p
//	true && p      p
//	false && p     false
//	false || p     p
//	true || p      true
//
// The result projects to the same Domain as p for every argument. It may
// mention fewer arguments than p (false && x > 1 becomes false), so
// Arguments and Implies can differ between p and its simplification.
func (p Predicate[T]) Simplify() Predicate[T] {
	switch {
	case p.kind.IsComparison():
		l, lok := p.left.Literal()
		r, rok := p.right.Literal()
		if lok && rok {
			return constant[T](holds(p.kind, l, r))
		}
		return p

	case p.kind == KindNot:
		inner := p.operands[0].Simplify()
		switch inner.kind {
		case KindTrue:
			return False[T]()
		case KindFalse:
			return True[T]()
		case KindNot:
			return inner.operands[0]
		}
		return Not(inner)

	case p.kind == KindAnd:
		a, b := p.operands[0].Simplify(), p.operands[1].Simplify()
		switch {
		case a.kind == KindFalse || b.kind == KindFalse:
			return False[T]()
		case a.kind == KindTrue:
			return b
		case b.kind == KindTrue:
			return a
		}
		return And(a, b)

	case p.kind == KindOr:
		a, b := p.operands[0].Simplify(), p.operands[1].Simplify()
		switch {
		case a.kind == KindTrue || b.kind == KindTrue:
			return True[T]()
		case a.kind == KindFalse:
			return b
		case b.kind == KindFalse:
			return a
		}
		return Or(a, b)
	}
	return p
}

func constant[T domain.Scalar](b bool) Predicate[T] {
	if b {
		return True[T]()
	}
	return False[T]()
}
