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
	stderrors "errors"
	"testing"

	"dirpx.dev/dxpred/dxcore/errors"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		// Canonical notation
		{"closed open", "[3;7[", "[3;7[", false},
		{"open closed", "]3;7]", "]3;7]", false},
		{"point", "[2;2]", "[2;2]", false},
		{"lower half line", "]-∞;6[", "]-∞;6[", false},
		{"upper half line", "[7;+∞[", "[7;+∞[", false},
		{"full", "]-∞;+∞[", "]-∞;+∞[", false},
		{"fractional", "[1.5;2.25]", "[1.5;2.25]", false},
		{"negative", "]-3;-1]", "]-3;-1]", false},

		// Accepted variants
		{"parentheses", "(3, 7)", "]3;7[", false},
		{"mixed", "[3;7)", "[3;7[", false},
		{"spaces", "  [ 3 ; 7 ]  ", "[3;7]", false},
		{"inf words", "(-inf; inf)", "]-∞;+∞[", false},
		{"plus inf word", "[0;+inf[", "[0;+∞[", false},
		{"bare infinity", "]1;∞[", "]1;+∞[", false},

		// Errors
		{"empty", "", "", true},
		{"no brackets", "3;7", "", true},
		{"bad closing bracket", "[3;7}", "", true},
		{"no separator", "[3 7]", "", true},
		{"two separators", "[1;2;3]", "", true},
		{"bad number", "[3;x]", "", true},
		{"inclusive minus infinity", "[-∞;3]", "", true},
		{"inclusive plus infinity", "[3;+∞]", "", true},
		{"reversed", "[7;3]", "", true},
		{"open point", "]3;3]", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval[float64](tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInterval(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var syn *errors.SyntaxError
				if !stderrors.As(err, &syn) {
					t.Errorf("ParseInterval(%q) error %T is not a *SyntaxError", tt.input, err)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseInterval(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInterval_IntegerScalar(t *testing.T) {
	if _, err := ParseInterval[int]("[1.5;2]"); err == nil {
		t.Error("ParseInterval[int] accepted a fractional bound")
	}
	if _, err := ParseInterval[uint8]("[0;300]"); err == nil {
		t.Error("ParseInterval[uint8] accepted an overflowing bound")
	}

	got, err := ParseInterval[int64]("]-10;10]")
	if err != nil {
		t.Fatalf("ParseInterval[int64] error = %v", err)
	}
	if got.Has(-10) || !got.Has(10) {
		t.Errorf("ParseInterval[int64] = %v has wrong bounds", got)
	}
}

func TestParseInterval_Offset(t *testing.T) {
	_, err := ParseInterval[int]("{1;2]")

	var syn *errors.SyntaxError
	if !stderrors.As(err, &syn) {
		t.Fatalf("error %v is not a *SyntaxError", err)
	}
	if syn.Offset != 0 || syn.Type != "Interval" {
		t.Errorf("SyntaxError = %+v, want offset 0 on Interval", syn)
	}
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty symbol", "∅", "∅", false},
		{"empty braces", "{}", "∅", false},
		{"single", "[1;2]", "[1;2]", false},
		{"canonical", "]-∞;6[ U [7;+∞[", "]-∞;6[ U [7;+∞[", false},
		{"cup separator", "[1;3] ∪ [2;5]", "[1;5]", false},
		{"sorted on parse", "[5;6] U [1;2]", "[1;2] U [5;6]", false},
		{"no spaces", "[1;2]U[4;5]", "[1;2] U [4;5]", false},

		{"blank", "   ", "", true},
		{"bad part", "[1;2] U oops", "", true},
		{"empty part", "[2;1] U [3;4]", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDomain[float64](tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDomain(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var syn *errors.SyntaxError
				if !stderrors.As(err, &syn) {
					t.Errorf("ParseDomain(%q) error %T does not wrap a *SyntaxError", tt.input, err)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseDomain(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNotation_RoundTrip(t *testing.T) {
	inputs := []string{
		"∅",
		"]-∞;+∞[",
		"[3;3]",
		"]-∞;3[ U ]3;+∞[",
		"[-2.5;0[ U ]0;1e+21]",
		"]-∞;-7] U [0;1[ U [9;+∞[",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			d, err := ParseDomain[float64](in)
			if err != nil {
				t.Fatalf("ParseDomain() error = %v", err)
			}
			if d.String() != in {
				t.Errorf("round-trip = %q, want %q", d.String(), in)
			}
		})
	}
}
