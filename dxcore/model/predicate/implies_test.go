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
	"github.com/stretchr/testify/require"
)

func TestImplies_Examples(t *testing.T) {
	t.Run("conjunction implies weaker conjunction", func(t *testing.T) {
		premise := MustParse[float64]("(x > 2) && (y == 4) && (z < 10)")
		conclusion := MustParse[float64]("(x > 0) && (y > 2)")
		assert.Equal(t, Total, premise.Implies(conclusion))
	})

	t.Run("split domain does not fit half line", func(t *testing.T) {
		premise := MustParse[float64]("(x < 6) || (x >= 7)")
		conclusion := MustParse[float64]("x < 4")
		assert.False(t, premise.Fits(conclusion))
		assert.Equal(t, "]-∞;6[ U [7;+∞[", premise.Domain("x").String())
	})

	t.Run("closed bounds meet in a point", func(t *testing.T) {
		p := MustParse[float64]("(x >= 3) && (x <= 3)")
		assert.Equal(t, "[3;3]", p.Domain("x").String())
	})

	t.Run("disjunction on both sides", func(t *testing.T) {
		premise := MustParse[float64]("((x >= 3) && (x <= 3)) || (y == 3)")
		conclusion := MustParse[float64]("(y == 2) || (x == 3)")
		assert.Equal(t, Partial, premise.Implies(conclusion))
	})

	t.Run("parentheses do not change the tree", func(t *testing.T) {
		bare := MustParse[float64]("x > 4")
		wrapped := MustParse[float64]("(x > 4)")
		assert.True(t, bare.Equal(wrapped))
		assert.Equal(t, Total, bare.Implies(wrapped))
	})
}

func TestImplies(t *testing.T) {
	tests := []struct {
		name       string
		premise    string
		conclusion string
		want       Implication
	}{
		{"identical", "x > 4", "x > 4", Total},
		{"stronger bound", "x > 5", "x >= 5", Total},
		{"weaker bound", "x >= 5", "x > 5", Inexistent},
		{"point in range", "x == 3", "(x > 0) && (x < 10)", Total},
		{"unknown argument", "x > 5", "y > 5", Inexistent},
		{"extra premise argument", "(x > 5) && (y < 0)", "x > 1", Total},
		{"both branches imply", "(x == 1) || (x == 2)", "x < 3", Total},
		{"one branch implies", "(x == 1) || (x == 5)", "x < 3", Partial},
		{"no branch implies", "(x == 4) || (x == 5)", "x < 3", Inexistent},
		{"right disjunct implied", "x == 3", "(x < 0) || (x > 2)", Total},
		{"right disjunction via union", "(x < 0) || (x > 5)", "(x < 1) || (x > 4)", Total},
		{"false implies anything", "false && (x > 0)", "x == 7", Total},
		{"true implies true", "true", "true", Total},
		{"literal comparison true", "(1 < 2) && (x > 0)", "x > -1", Total},
		{"negation", "!(x <= 3)", "x > 3", Total},
		{"negated conclusion", "x > 5", "!(x < 5)", Total},
		{"two unknowns are unconstrained", "x < y", "x < 3", Inexistent},
		{"boolean argument", "ready && (x > 2)", "ready", Total},
		{"missing boolean argument", "x > 2", "ready", Inexistent},
		{"constant false disjunct", "x > 0", "(x < -5) || false", Inexistent},
		{"false literal comparison disjunct", "x > 0", "(x < -5) || (1 > 2)", Inexistent},
		{"folded false disjunct", "x > 0", "(x < -5) || (false && true)", Inexistent},
		{"true disjunct", "x > 0", "(x < -5) || (2 > 1)", Total},
		{"false conclusion", "x > 0", "false", Inexistent},
		{"false comparison conclusion", "x > 0", "1 > 2", Inexistent},
		{"true comparison conclusion", "x > 0", "1 < 2", Total},
		{"contradiction implies false", "(x > 3) && (x < 1)", "false", Total},
		{"false implies false", "false", "1 > 2", Total},
		{"false premise branch", "!(true) || (x > 3)", "(x == 2) || ((x == -3) || false)", Partial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			premise, err := Parse[float64](tt.premise)
			require.NoError(t, err)
			conclusion, err := Parse[float64](tt.conclusion)
			require.NoError(t, err)

			assert.Equal(t, tt.want, premise.Implies(conclusion), "%s => %s", premise, conclusion)
		})
	}
}

func TestImplies_IntegerScalar(t *testing.T) {
	premise := MustParse[int]("(n >= 1) && (n <= 9)")
	conclusion := MustParse[int]("(n > 0) && (n < 10)")

	assert.Equal(t, Total, premise.Implies(conclusion))
	// Open and closed ends differ even where no integer lies between them.
	assert.Equal(t, Inexistent, conclusion.Implies(premise))
}

func TestFits(t *testing.T) {
	tests := []struct {
		name       string
		premise    string
		conclusion string
		want       bool
	}{
		{"subset", "x == 2", "x < 3", true},
		{"superset", "x < 3", "x == 2", false},
		{"missing argument is unconstrained", "x > 0", "y > 0", false},
		{"missing argument against tautology", "x > 0", "(y > 0) || (y <= 0)", true},
		{"no disjunction split", "(x == 1) || (x == 5)", "x < 3", false},
		{"conclusion without arguments", "x > 0", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			premise := MustParse[float64](tt.premise)
			conclusion := MustParse[float64](tt.conclusion)
			assert.Equal(t, tt.want, premise.Fits(conclusion))
		})
	}
}

func TestFits_Reflexive(t *testing.T) {
	inputs := []string{
		"true",
		"false",
		"flag",
		"x > 4",
		"(x < 6) || (x >= 7)",
		"!((x >= 3) && (x <= 3)) || (y == 3)",
		"(x < y) && (y < 4)",
		"!(!(a == 1) && (b >= -2.5))",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p := MustParse[float64](in)
			assert.True(t, p.Fits(p))
			assert.Equal(t, Total, p.Implies(p))
		})
	}
}
