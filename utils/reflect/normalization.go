/*
   Copyright 2025 The DIRPX Authors.

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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/qlog/apis"
	"dirpx.dev/qlog/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after
	// unwrapping containers) does not contain a named type (e.g., anonymous
	// struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no defining name")
)

// Normalize unwraps containers according to cfg.MaxUnwrap and returns the
// nearest named inner type, or an error if none is found.
//
// Unwrapping policy:
//   - ptr/slice/array/chan -> Elem()
//   - map[K]V: if V is named, return it; else if K is named, return K;
//     otherwise continue unwrapping V.
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// If MaxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()

		case reflect.Map:
			et := t.Elem()
			if et != nil && et.Name() != "" {
				return et, nil
			}
			kt := t.Key()
			if kt != nil && kt.Name() != "" {
				return kt, nil
			}
			// Neither side named: keep unwrapping the element.
			t = et

		default:
			// Named, return; anonymous -> error
			if t.Name() != "" {
				return t, nil
			}
			return nil, ErrReflectTypeNotNamed
		}
	}

	// After reaching max depth, ensure we ended on a named type.
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}
