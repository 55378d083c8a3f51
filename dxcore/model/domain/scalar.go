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
	"reflect"
	"strconv"
)

// Scalar is the set of totally ordered numeric types an Interval or Domain
// can range over. Named types with one of these underlying types are
// accepted, so a `type Celsius float64` works out of the box.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ParseScalar parses s as a value of T.
//
// Integer kinds accept base-10 literals only; float kinds accept anything
// strconv.ParseFloat accepts. Values that overflow T are rejected.
func ParseScalar[T Scalar](s string) (T, error) {
	var v T
	rv := reflect.ValueOf(&v).Elem()

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return v, fmt.Errorf("parse %q as %s: %w", s, rv.Type(), err)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return v, fmt.Errorf("parse %q as %s: %w", s, rv.Type(), err)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return v, fmt.Errorf("parse %q as %s: %w", s, rv.Type(), err)
		}
		rv.SetFloat(f)
	}
	return v, nil
}

// FormatScalar renders v in the shortest form ParseScalar reads back.
func FormatScalar[T Scalar](v T) string {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	default:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	}
}
