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
	"fmt"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model/domain"
)

// DefaultMaxDepth is the tree depth Parse accepts when no WithMaxDepth
// option is given.
const DefaultMaxDepth = 256

type parseConfig[T domain.Scalar] struct {
	maxDepth int
	literal  func(string) (T, error)
}

// ParseOption configures Parse.
type ParseOption[T domain.Scalar] func(*parseConfig[T])

// WithMaxDepth limits the depth of the parsed tree. Zero or a negative n
// removes the limit.
func WithMaxDepth[T domain.Scalar](n int) ParseOption[T] {
	return func(c *parseConfig[T]) {
		c.maxDepth = n
	}
}

// WithLiteralParser replaces domain.ParseScalar as the function turning
// numeric tokens into literals.
func WithLiteralParser[T domain.Scalar](fn func(string) (T, error)) ParseOption[T] {
	return func(c *parseConfig[T]) {
		if fn != nil {
			c.literal = fn
		}
	}
}

// Parse reads a predicate from text.
//
// The grammar accepts the constants true and false, identifiers, numeric
// literals, the comparisons == < <= > >=, the connectives ! && || and
// parentheses. From tightest to loosest binding:
//
//	==  <  <=  >  >=
//	!
//	&&
//	||
//
// && and || are left associative. An identifier outside a comparison is a
// boolean argument, so "ready && x > 2" is And(BoolArg(ready), x > 2).
//
// Failures are *errors.SyntaxError values carrying the byte offset of the
// offending token.
func Parse[T domain.Scalar](text string, opts ...ParseOption[T]) (Predicate[T], error) {
	cfg := parseConfig[T]{maxDepth: DefaultMaxDepth, literal: domain.ParseScalar[T]}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := parser[T]{input: text, cfg: cfg}
	toks, err := lex(text)
	if err != nil {
		return Predicate[T]{}, err
	}
	postfix, err := p.toPostfix(toks)
	if err != nil {
		return Predicate[T]{}, err
	}
	return p.build(postfix)
}

// MustParse is like Parse but panics on error. It is meant for fixtures and
// package-level variables.
func MustParse[T domain.Scalar](text string, opts ...ParseOption[T]) Predicate[T] {
	p, err := Parse(text, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

type parser[T domain.Scalar] struct {
	input string
	cfg   parseConfig[T]
}

func (p *parser[T]) fail(offset int, format string, args ...any) error {
	return &errors.SyntaxError{Type: "Predicate", Input: p.input, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// toPostfix reorders tokens into reverse Polish notation with the
// shunting-yard algorithm, rejecting misplaced tokens and unbalanced
// parentheses on the way.
func (p *parser[T]) toPostfix(toks []token) ([]token, error) {
	if len(toks) == 0 {
		return nil, p.fail(-1, "empty predicate")
	}

	out := make([]token, 0, len(toks))
	var ops []token
	expectOperand := true

	for _, t := range toks {
		switch {
		case t.isOperand():
			if !expectOperand {
				return nil, p.fail(t.offset, "unexpected %s %q, expected an operator", t.typ, t.text)
			}
			out = append(out, t)
			expectOperand = false

		case t.typ == tokNot:
			if !expectOperand {
				return nil, p.fail(t.offset, "unexpected '!', expected an operator")
			}
			ops = append(ops, t)

		case t.typ == tokLParen:
			if !expectOperand {
				return nil, p.fail(t.offset, "unexpected '(', expected an operator")
			}
			ops = append(ops, t)

		case t.typ == tokRParen:
			if expectOperand {
				return nil, p.fail(t.offset, "unexpected ')', expected an operand")
			}
			for len(ops) > 0 && ops[len(ops)-1].typ != tokLParen {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, p.fail(t.offset, "unbalanced ')'")
			}
			ops = ops[:len(ops)-1]

		default:
			// Binary operators: comparisons, && and ||.
			if expectOperand {
				return nil, p.fail(t.offset, "unexpected %q, expected an operand", t.text)
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.typ == tokLParen || top.precedence() < t.precedence() {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
			expectOperand = true
		}
	}

	if expectOperand {
		return nil, p.fail(len(p.input), "unexpected end of input, expected an operand")
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.typ == tokLParen {
			return nil, p.fail(top.offset, "unbalanced '('")
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}

	return out, nil
}

// item is an entry of the evaluation stack: either a Value waiting to be
// compared, or a finished Predicate.
type item[T domain.Scalar] struct {
	pred    Predicate[T]
	val     Value[T]
	isValue bool
	depth   int
	offset  int
	text    string
}

// predicate turns an item into a condition. A bare identifier becomes a
// boolean argument; a bare literal is rejected.
func (p *parser[T]) predicate(it item[T]) (Predicate[T], error) {
	if !it.isValue {
		return it.pred, nil
	}
	if it.val.IsArg() {
		return BoolArg[T](it.val.Name()), nil
	}
	return Predicate[T]{}, p.fail(it.offset, "literal %s used as a condition", it.text)
}

// build evaluates the postfix sequence into a tree.
func (p *parser[T]) build(postfix []token) (Predicate[T], error) {
	var stack []item[T]

	pop := func(t token) (item[T], error) {
		if len(stack) == 0 {
			return item[T]{}, p.fail(t.offset, "missing operand for %q", t.text)
		}
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return it, nil
	}

	for _, t := range postfix {
		switch t.typ {
		case tokTrue:
			stack = append(stack, item[T]{pred: True[T](), depth: 1, offset: t.offset, text: t.text})

		case tokFalse:
			stack = append(stack, item[T]{pred: False[T](), depth: 1, offset: t.offset, text: t.text})

		case tokIdent:
			stack = append(stack, item[T]{val: Arg[T](t.text), isValue: true, depth: 1, offset: t.offset, text: t.text})

		case tokNumber:
			v, err := p.cfg.literal(t.text)
			if err != nil {
				return Predicate[T]{}, p.fail(t.offset, "invalid literal %q: %v", t.text, err)
			}
			stack = append(stack, item[T]{val: Literal(v), isValue: true, depth: 1, offset: t.offset, text: t.text})

		case tokCompare:
			right, err := pop(t)
			if err != nil {
				return Predicate[T]{}, err
			}
			left, err := pop(t)
			if err != nil {
				return Predicate[T]{}, err
			}
			if !left.isValue || !right.isValue {
				return Predicate[T]{}, p.fail(t.offset, "operands of %q must be arguments or literals", t.text)
			}
			stack = append(stack, item[T]{pred: comparison(t.op, left.val, right.val), depth: 1, offset: left.offset, text: t.text})

		case tokNot:
			operand, err := pop(t)
			if err != nil {
				return Predicate[T]{}, err
			}
			inner, err := p.predicate(operand)
			if err != nil {
				return Predicate[T]{}, err
			}
			if err := p.push(&stack, Not(inner), operand.depth+1, t); err != nil {
				return Predicate[T]{}, err
			}

		case tokAnd, tokOr:
			right, err := pop(t)
			if err != nil {
				return Predicate[T]{}, err
			}
			left, err := pop(t)
			if err != nil {
				return Predicate[T]{}, err
			}
			l, err := p.predicate(left)
			if err != nil {
				return Predicate[T]{}, err
			}
			r, err := p.predicate(right)
			if err != nil {
				return Predicate[T]{}, err
			}
			node := And(l, r)
			if t.typ == tokOr {
				node = Or(l, r)
			}
			if err := p.push(&stack, node, max(left.depth, right.depth)+1, t); err != nil {
				return Predicate[T]{}, err
			}
		}
	}

	if len(stack) != 1 {
		return Predicate[T]{}, p.fail(-1, "malformed predicate")
	}
	return p.predicate(stack[0])
}

func (p *parser[T]) push(stack *[]item[T], node Predicate[T], depth int, t token) error {
	if p.cfg.maxDepth > 0 && depth > p.cfg.maxDepth {
		return p.fail(t.offset, "predicate deeper than %d levels", p.cfg.maxDepth)
	}
	*stack = append(*stack, item[T]{pred: node, depth: depth, offset: t.offset, text: t.text})
	return nil
}
