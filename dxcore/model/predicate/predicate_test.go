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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPredicate_String(t *testing.T) {
	x, y := Arg[float64]("x"), Arg[float64]("y")
	lit := Literal[float64]

	tests := []struct {
		name string
		p    Predicate[float64]
		want string
	}{
		{"true", True[float64](), "true"},
		{"false", False[float64](), "false"},
		{"bool arg", BoolArg[float64]("ready"), "ready"},
		{"comparison", Gt(x, lit(4)), "x > 4"},
		{"literal left", Le(lit(-1.5), y), "-1.5 <= y"},
		{"not", Not(Eq(x, lit(3))), "!(x == 3)"},
		{"not of arg", Not(BoolArg[float64]("a")), "!(a)"},
		{"and", And(Gt(x, lit(2)), Lt(y, lit(0))), "(x > 2) && (y < 0)"},
		{"nested", And(And(Gt(x, lit(2)), Eq(y, lit(4))), Lt(Arg[float64]("z"), lit(10))), "((x > 2) && (y == 4)) && (z < 10)"},
		{"mixed leaves", Or(BoolArg[float64]("a"), Not(BoolArg[float64]("b"))), "a || !(b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
			assert.Equal(t, tt.p.String(), tt.p.Redacted())
		})
	}
}

func TestPredicate_Accessors(t *testing.T) {
	x := Arg[float64]("x")
	cmp := Ge(x, Literal(2.0))

	assert.Equal(t, KindGreaterEqual, cmp.Kind())
	assert.Equal(t, x, cmp.Left())
	v, ok := cmp.Right().Literal()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	assert.Empty(t, cmp.Operands())

	flag := BoolArg[float64]("flag")
	assert.Equal(t, "flag", flag.Name())

	and := And(cmp, flag)
	ops := and.Operands()
	require.Len(t, ops, 2)
	ops[0] = False[float64]()
	assert.True(t, and.Operands()[0].Equal(cmp), "Operands must return a copy")
}

func TestPredicate_Depth(t *testing.T) {
	assert.Equal(t, 1, True[int]().Depth())
	assert.Equal(t, 1, MustParse[int]("x < 3").Depth())
	assert.Equal(t, 2, MustParse[int]("!(x < 3)").Depth())
	assert.Equal(t, 3, MustParse[int]("(a && b) || c").Depth())
	assert.Equal(t, 4, MustParse[int]("!((a && b) || c)").Depth())
}

func TestPredicate_Equal(t *testing.T) {
	p := MustParse[float64]("(x > 2) && !flag")
	same := MustParse[float64]("x > 2 && !flag")

	tests := []struct {
		name  string
		other any
		want  bool
	}{
		{"same tree", same, true},
		{"pointer", &same, true},
		{"nil pointer", (*Predicate[float64])(nil), false},
		{"different literal", MustParse[float64]("(x > 3) && !flag"), false},
		{"different name", MustParse[float64]("(x > 2) && !ready"), false},
		{"swapped operands", MustParse[float64]("!flag && (x > 2)"), false},
		{"different kind", MustParse[float64]("(x > 2) || !flag"), false},
		{"different scalar", MustParse[int]("(x > 2) && !flag"), false},
		{"text", "(x > 2) && !(flag)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Equal(tt.other))
		})
	}
}

func TestPredicate_IsZero(t *testing.T) {
	var zero Predicate[float64]
	assert.True(t, zero.IsZero())
	assert.True(t, zero.Equal(True[float64]()))
	assert.False(t, False[float64]().IsZero())
	assert.Equal(t, "true", zero.String())
}

func TestPredicate_Validate(t *testing.T) {
	x := Arg[float64]("x")

	tests := []struct {
		name    string
		p       Predicate[float64]
		wantErr bool
	}{
		{"parsed", MustParse[float64]("(x > 2) || !ready"), false},
		{"zero", Predicate[float64]{}, false},
		{"bad kind", Predicate[float64]{kind: Kind(42)}, true},
		{"bad bool arg", BoolArg[float64]("1abc"), true},
		{"keyword bool arg", BoolArg[float64]("true"), true},
		{"bad argument", Gt(Arg[float64]("x y"), Literal(1.0)), true},
		{"NaN literal", Gt(x, Literal(math.NaN())), true},
		{"infinite literal", Lt(x, Literal(math.Inf(1))), true},
		{"not without operand", Predicate[float64]{kind: KindNot}, true},
		{"and with one operand", Predicate[float64]{kind: KindAnd, operands: []Predicate[float64]{True[float64]()}}, true},
		{"invalid child", And(True[float64](), BoolArg[float64]("")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	x := Arg[int]("x")

	p, err := Compare(KindLowerEqual, x, Literal(3))
	require.NoError(t, err)
	assert.True(t, p.Equal(Le(x, Literal(3))))

	_, err = Compare(KindAnd, x, Literal(3))
	assert.Error(t, err)
}

func TestAllOf_AnyOf(t *testing.T) {
	a, b, c := BoolArg[int]("a"), BoolArg[int]("b"), BoolArg[int]("c")

	assert.True(t, AllOf[int]().Equal(True[int]()))
	assert.True(t, AllOf(a).Equal(a))
	assert.True(t, AllOf(a, b, c).Equal(And(And(a, b), c)))

	assert.True(t, AnyOf[int]().Equal(False[int]()))
	assert.True(t, AnyOf(a).Equal(a))
	assert.True(t, AnyOf(a, b, c).Equal(Or(Or(a, b), c)))
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name           string
		inclLo, inclHi bool
		text           string
		domain         string
	}{
		{"closed", true, true, "(x >= 3) && (x <= 7)", "[3;7]"},
		{"open", false, false, "(x > 3) && (x < 7)", "]3;7["},
		{"closed open", true, false, "(x >= 3) && (x < 7)", "[3;7["},
		{"open closed", false, true, "(x > 3) && (x <= 7)", "]3;7]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Between(3, "x", 7, tt.inclLo, tt.inclHi)
			assert.Equal(t, tt.text, p.String())
			assert.Equal(t, tt.domain, p.Domain("x").String())
		})
	}
}

func TestValue(t *testing.T) {
	arg := Arg[float64]("speed")
	assert.True(t, arg.IsArg())
	assert.True(t, arg.Names("speed"))
	assert.False(t, arg.Names("x"))
	_, ok := arg.Literal()
	assert.False(t, ok)
	assert.Equal(t, "speed", arg.String())

	lit := Literal(2.5)
	assert.False(t, lit.IsArg())
	assert.False(t, lit.Names(""))
	v, ok := lit.Literal()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	assert.Equal(t, "2.5", lit.String())

	assert.NoError(t, arg.Validate())
	assert.Error(t, Arg[float64]("9lives").Validate())
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"x", "_", "x1", "snake_case", "Δt"}
	invalid := []string{"", "1x", "a-b", "a b", "true", "false"}

	for _, s := range valid {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestPredicate_JSON(t *testing.T) {
	type check struct {
		Premise Predicate[float64] `json:"premise"`
	}

	in := check{Premise: MustParse[float64]("(x > 2) && !(y == 4)")}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"premise":"(x > 2) && !(y == 4)"}`, string(data))

	var out check
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Premise.Equal(out.Premise))

	assert.Error(t, json.Unmarshal([]byte(`{"premise":"x >"}`), &out))
	assert.Error(t, json.Unmarshal([]byte(`{"premise":3}`), &out))

	_, err = json.Marshal(Gt(Arg[float64]("x"), Literal(math.NaN())))
	assert.Error(t, err)
}

func TestPredicate_YAML(t *testing.T) {
	type check struct {
		Premise    Predicate[int] `yaml:"premise"`
		Conclusion Predicate[int] `yaml:"conclusion"`
	}

	in := check{
		Premise:    MustParse[int]("(n >= 1) && (n <= 9)"),
		Conclusion: MustParse[int]("n > 0"),
	}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out check
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.True(t, in.Premise.Equal(out.Premise))
	assert.True(t, in.Conclusion.Equal(out.Conclusion))

	assert.Error(t, yaml.Unmarshal([]byte("premise: \"n >\"\n"), &out))
}
