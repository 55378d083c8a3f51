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

package check

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"dirpx.dev/dxpred/dxcore/errors"
	"dirpx.dev/dxpred/dxcore/model/predicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func expect(i predicate.Implication) *predicate.Implication {
	return &i
}

func TestCheck_Validate(t *testing.T) {
	tests := []struct {
		name  string
		c     Check
		field string
	}{
		{"valid", Check{Premise: "x > 3", Conclusion: "x > 2"}, ""},
		{"with expectation", Check{ID: "c1", Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Total)}, ""},
		{"empty premise", Check{Conclusion: "x > 2"}, "Premise"},
		{"blank conclusion", Check{Premise: "x > 3", Conclusion: "  "}, "Conclusion"},
		{"padded id", Check{ID: " c1", Premise: "x > 3", Conclusion: "x > 2"}, "ID"},
		{"unknown expectation", Check{Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Implication(9))}, "Expect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *errors.ValidationError
			require.True(t, stderrors.As(err, &verr), "got %v", err)
			assert.Equal(t, "Check", verr.Type)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCheck_Strings(t *testing.T) {
	c := Check{Premise: "x > 3", Conclusion: "x > 2"}
	assert.Equal(t, "x > 3 => x > 2", c.String())
	assert.Equal(t, c.String(), c.Redacted())

	c.Name = "tight"
	assert.Equal(t, "tight: x > 3 => x > 2", c.String())

	c.Name = strings.Repeat("n", 30)
	assert.Equal(t, strings.Repeat("n", 24)+"...: x > 3 => x > 2", c.Redacted())
	assert.Equal(t, "Check", c.TypeName())
}

func TestCheck_Equal(t *testing.T) {
	c := Check{ID: "a", Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Total)}
	same := Check{ID: "a", Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Total)}

	assert.True(t, c.Equal(same))
	assert.True(t, c.Equal(&same))
	assert.False(t, c.Equal((*Check)(nil)))
	assert.False(t, c.Equal(Check{ID: "a", Premise: "x > 3", Conclusion: "x > 2"}))
	assert.False(t, c.Equal(Check{ID: "a", Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Partial)}))
	assert.False(t, c.Equal(Check{ID: "b", Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Total)}))
	assert.False(t, c.Equal("a"))

	assert.True(t, Check{}.IsZero())
	assert.False(t, c.IsZero())
}

func TestCheck_JSON(t *testing.T) {
	in := Check{ID: "c1", Name: "window", Premise: "x > 3", Conclusion: "x > 2", Expect: expect(predicate.Partial)}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","name":"window","premise":"x > 3","conclusion":"x > 2","expect":"partial"}`, string(data))

	var out Check
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Equal(out))

	assert.Error(t, json.Unmarshal([]byte(`{"premise":"x > 3"}`), &out))
	assert.Error(t, json.Unmarshal([]byte(`{"premise":"x > 3","conclusion":"x > 2","expect":"maybe"}`), &out))
	assert.Error(t, json.Unmarshal([]byte(`[]`), &out))

	_, err = json.Marshal(Check{Premise: "x > 3"})
	assert.Error(t, err)
}

func TestCheck_YAML(t *testing.T) {
	src := "id: c2\npremise: (x >= 3) && (x <= 5)\nconclusion: x > 2\nexpect: total\n"

	var c Check
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))
	assert.Equal(t, "c2", c.ID)
	assert.Equal(t, "(x >= 3) && (x <= 5)", c.Premise)
	require.NotNil(t, c.Expect)
	assert.Equal(t, predicate.Total, *c.Expect)

	data, err := yaml.Marshal(c)
	require.NoError(t, err)
	var back Check
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.True(t, c.Equal(back))

	assert.Error(t, yaml.Unmarshal([]byte("premise: x > 3\n"), &c))
	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &c))
}
