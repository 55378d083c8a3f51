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

// Implies decides whether every assignment satisfying p also satisfies
// other.
//
// The decision is made in this order:
//
//  1. When p is a disjunction, each branch is decided on its own and the two
//     verdicts are merged with Implication.Combine, so a premise with only
//     one implying branch yields Partial.
//  2. When other mentions no argument it is a constant: the result is Total
//     when other is true or p can never hold, and Inexistent otherwise, so
//     x > 0 does not imply false.
//  3. When other is a disjunction and p totally implies either branch, the
//     result is Total.
//  4. When other mentions an argument p does not, the result is Inexistent.
//  5. Otherwise the result is Total when, for every argument of other, the
//     Domain of p is contained in the Domain of other, and Inexistent when
//     any argument fails.
//
// Implies never fails; the cost is bounded by the depth of both trees times
// the number of arguments.
func (p Predicate[T]) Implies(other Predicate[T]) Implication {
	if p.kind == KindOr {
		return p.operands[0].Implies(other).Combine(p.operands[1].Implies(other))
	}

	theirs := other.Arguments()
	if theirs.Size() == 0 {
		if other.Domain("").IsUniversal() || p.unsatisfiable() {
			return Total
		}
		return Inexistent
	}

	if other.kind == KindOr {
		if p.Implies(other.operands[0]) == Total || p.Implies(other.operands[1]) == Total {
			return Total
		}
	}

	own := p.Arguments()
	for _, name := range theirs.Slice() {
		if !own.Contains(name) {
			return Inexistent
		}
	}

	if p.Fits(other) {
		return Total
	}
	return Inexistent
}

// unsatisfiable reports whether p projects to the empty Domain, either as a
// constant or for one of its arguments.
func (p Predicate[T]) unsatisfiable() bool {
	if p.Domain("").IsEmpty() {
		return true
	}
	for _, name := range p.Arguments().Slice() {
		if p.Domain(name).IsEmpty() {
			return true
		}
	}
	return false
}

// Fits reports whether, for every argument of other, the values p allows
// are a subset of the values other allows. Unlike Implies it does not
// split disjunctions and does not treat arguments missing from p specially:
// such an argument is unconstrained in p and fits only an unconstrained
// argument in other.
func (p Predicate[T]) Fits(other Predicate[T]) bool {
	for _, name := range other.Arguments().Slice() {
		if !domain.IsSubset(p.Domain(name), other.Domain(name)) {
			return false
		}
	}
	return true
}
