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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x > 2", "x > 2"},
		{"1 < 2", "true"},
		{"2 < 1", "false"},
		{"3 == 3", "true"},
		{"!true", "false"},
		{"!(1 > 2)", "true"},
		{"!!(x > 2)", "x > 2"},
		{"!!!a", "!(a)"},
		{"true && (x > 2)", "x > 2"},
		{"(x > 2) && true", "x > 2"},
		{"(x > 2) && false", "false"},
		{"false || (x > 2)", "x > 2"},
		{"(x > 2) || (1 <= 2)", "true"},
		{"(x > 2) && (y < 1)", "(x > 2) && (y < 1)"},
		{"!(false || !(x == 3)) && (ready || false)", "(x == 3) && ready"},
		{"x < x", "x < x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse[float64](tt.input).Simplify().String())
		})
	}
}

func TestSimplify_KeepsDomains(t *testing.T) {
	inputs := []string{
		"!(false || !(x == 3)) && (y > 1 || false)",
		"!!((x < 2) || (x > 6))",
		"(x > 2) && (2 > 1)",
		"((x > 2) || (0 > 1)) && !(y == 4)",
		"!(true && !(x >= 5))",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p := MustParse[float64](in)
			s := p.Simplify()
			for _, name := range []string{"x", "y"} {
				assert.True(t, p.Domain(name).Equal(s.Domain(name)), "argument %s: %s vs %s", name, p.Domain(name), s.Domain(name))
			}
			assert.True(t, s.Simplify().Equal(s), "Simplify must be idempotent")
		})
	}
}
