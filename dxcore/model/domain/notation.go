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
	"fmt"
	"strings"

	"dirpx.dev/dxpred/dxcore/errors"
)

// Notation tokens. The canonical output uses the outward-bracket style
// ("]3;7[" is open on both ends); parsing additionally accepts parentheses
// for open ends and "," as the separator.
const (
	EmptySymbol   = "∅"
	UnionSymbol   = " U "
	MinusInfinity = "-∞"
	PlusInfinity  = "+∞"
)

func formatInterval[T Scalar](i Interval[T]) string {
	var b strings.Builder

	if !i.lower.finite {
		b.WriteString("]" + MinusInfinity)
	} else {
		if i.lower.inclusive {
			b.WriteByte('[')
		} else {
			b.WriteByte(']')
		}
		b.WriteString(FormatScalar(i.lower.value))
	}

	b.WriteByte(';')

	if !i.upper.finite {
		b.WriteString(PlusInfinity + "[")
	} else {
		b.WriteString(FormatScalar(i.upper.value))
		if i.upper.inclusive {
			b.WriteByte(']')
		} else {
			b.WriteByte('[')
		}
	}

	return b.String()
}

func formatDomain[T Scalar](d Domain[T]) string {
	if len(d.parts) == 0 {
		return EmptySymbol
	}
	parts := make([]string, len(d.parts))
	for i, p := range d.parts {
		parts[i] = formatInterval(p)
	}
	return strings.Join(parts, UnionSymbol)
}

// ParseInterval reads an interval written in bracket notation.
//
// Accepted forms, all equivalent to 3 <= v < 7:
//
//	[3;7[    [3;7)    [3,7[    [3, 7)
//
// Unbounded sides are written -∞ / +∞ (or -inf / +inf, inf) and must be open.
// Bounds describing an empty interval, such as ]3;3], are rejected.
func ParseInterval[T Scalar](s string) (Interval[T], error) {
	text := strings.TrimSpace(s)
	fail := func(offset int, reason string) (Interval[T], error) {
		return Interval[T]{}, &errors.SyntaxError{Type: "Interval", Input: s, Offset: offset, Reason: reason}
	}

	if len(text) < 3 {
		return fail(-1, "too short")
	}

	open, close := text[0], text[len(text)-1]
	if open != '[' && open != ']' && open != '(' {
		return fail(0, "expected '[', ']' or '(' at start")
	}
	if close != '[' && close != ']' && close != ')' {
		return fail(len(text)-1, "expected '[', ']' or ')' at end")
	}

	body := text[1 : len(text)-1]
	sep := strings.IndexAny(body, ";,")
	if sep < 0 || strings.LastIndexAny(body, ";,") != sep {
		return fail(-1, "expected exactly one ';' between the bounds")
	}
	lowText := strings.TrimSpace(body[:sep])
	highText := strings.TrimSpace(body[sep+1:])

	var lower, upper Bound[T]

	if isMinusInfinity(lowText) {
		if open == '[' {
			return fail(0, "unbounded lower side must be open")
		}
	} else {
		v, err := ParseScalar[T](lowText)
		if err != nil {
			return fail(1, err.Error())
		}
		lower = Bound[T]{value: v, inclusive: open == '[', finite: true}
	}

	if isPlusInfinity(highText) {
		if close == ']' {
			return fail(len(text)-1, "unbounded upper side must be open")
		}
	} else {
		v, err := ParseScalar[T](highText)
		if err != nil {
			return fail(sep+2, err.Error())
		}
		upper = Bound[T]{value: v, inclusive: close == ']', finite: true}
	}

	i, ok := New(lower, upper)
	if !ok {
		return fail(-1, "bounds describe an empty interval")
	}
	return i, nil
}

// ParseDomain reads a union of intervals as produced by Domain.String, with
// parts separated by "U" or "∪". "∅" and "{}" denote the empty Domain. The
// result is simplified.
func ParseDomain[T Scalar](s string) (Domain[T], error) {
	text := strings.TrimSpace(s)
	if text == EmptySymbol || text == "{}" {
		return Empty[T](), nil
	}
	if text == "" {
		return Domain[T]{}, &errors.SyntaxError{Type: "Domain", Input: s, Offset: -1, Reason: "empty text"}
	}

	fields := strings.FieldsFunc(text, func(r rune) bool { return r == 'U' || r == '∪' })
	parts := make([]Interval[T], 0, len(fields))
	for n, f := range fields {
		i, err := ParseInterval[T](f)
		if err != nil {
			return Domain[T]{}, fmt.Errorf("part %d of %q: %w", n, s, err)
		}
		parts = append(parts, i)
	}
	return Domain[T]{parts: parts}.Simplified(), nil
}

func isMinusInfinity(s string) bool {
	switch s {
	case MinusInfinity, "-inf", "-Inf":
		return true
	}
	return false
}

func isPlusInfinity(s string) bool {
	switch s {
	case PlusInfinity, "∞", "+inf", "+Inf", "inf", "Inf":
		return true
	}
	return false
}
