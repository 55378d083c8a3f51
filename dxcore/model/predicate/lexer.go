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
	"unicode"
	"unicode/utf8"

	"dirpx.dev/dxpred/dxcore/errors"
)

type tokenType int

const (
	tokTrue tokenType = iota
	tokFalse
	tokIdent
	tokNumber
	tokCompare
	tokNot
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

func (t tokenType) String() string {
	switch t {
	case tokTrue:
		return "true"
	case tokFalse:
		return "false"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokCompare:
		return "comparison"
	case tokNot:
		return "'!'"
	case tokAnd:
		return "'&&'"
	case tokOr:
		return "'||'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// token is one lexeme of predicate text. op is set for tokCompare.
type token struct {
	typ    tokenType
	text   string
	offset int
	op     Kind
}

// isOperand reports whether the token starts or is a complete operand.
func (t token) isOperand() bool {
	return t.typ == tokTrue || t.typ == tokFalse || t.typ == tokIdent || t.typ == tokNumber
}

// precedence orders operators from loosest (||) to tightest (comparisons).
func (t token) precedence() int {
	switch t.typ {
	case tokCompare:
		return 4
	case tokNot:
		return 3
	case tokAnd:
		return 2
	case tokOr:
		return 1
	}
	return 0
}

var symbols = []struct {
	text string
	typ  tokenType
	op   Kind
}{
	// Two-byte symbols first so that "<=" is not read as "<".
	{"==", tokCompare, KindEqual},
	{"<=", tokCompare, KindLowerEqual},
	{">=", tokCompare, KindGreaterEqual},
	{"&&", tokAnd, 0},
	{"||", tokOr, 0},
	{"<", tokCompare, KindLowerThan},
	{">", tokCompare, KindGreaterThan},
	{"!", tokNot, 0},
	{"(", tokLParen, 0},
	{")", tokRParen, 0},
}

// lex splits input into tokens. Whitespace separates tokens but is
// otherwise ignored.
func lex(input string) ([]token, error) {
	var toks []token

	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])

		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(input) {
				r, size = utf8.DecodeRuneInString(input[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			word := input[start:i]
			switch word {
			case "true":
				toks = append(toks, token{typ: tokTrue, text: word, offset: start})
			case "false":
				toks = append(toks, token{typ: tokFalse, text: word, offset: start})
			default:
				toks = append(toks, token{typ: tokIdent, text: word, offset: start})
			}

		case isNumberStart(input, i):
			start := i
			i = scanNumber(input, i)
			toks = append(toks, token{typ: tokNumber, text: input[start:i], offset: start})

		default:
			matched := false
			for _, s := range symbols {
				if len(input)-i >= len(s.text) && input[i:i+len(s.text)] == s.text {
					toks = append(toks, token{typ: s.typ, text: s.text, offset: i, op: s.op})
					i += len(s.text)
					matched = true
					break
				}
			}
			if !matched {
				return nil, &errors.SyntaxError{
					Type:   "Predicate",
					Input:  input,
					Offset: i,
					Reason: fmt.Sprintf("unexpected character %q", r),
				}
			}
		}
	}

	return toks, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isNumberStart reports whether a numeric literal starts at i: a digit, a
// dot followed by a digit, or a minus sign followed by either.
func isNumberStart(s string, i int) bool {
	if s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	if isDigit(s[i]) {
		return true
	}
	return s[i] == '.' && i+1 < len(s) && isDigit(s[i+1])
}

// scanNumber returns the end of the numeric literal starting at i. It
// accepts an optional sign, digits and dots, and an optional exponent.
// Validation of the literal itself is left to the literal parser.
func scanNumber(s string, i int) int {
	if s[i] == '-' {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			i = j
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
	}
	return i
}
