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
	"testing"

	"dirpx.dev/qlog/apis"
)

type inner struct{}

func cfg(maxUnwrap int) apis.Config {
	return apis.Config{MaxUnwrap: maxUnwrap, MaxCandidates: 16}
}

func TestNormalize_Containers(t *testing.T) {
	want := reflect.TypeOf(inner{})

	cases := []struct {
		name string
		in   reflect.Type
	}{
		{"plain", reflect.TypeOf(inner{})},
		{"ptr", reflect.TypeOf(&inner{})},
		{"ptrptr", reflect.TypeOf(new(*inner))},
		{"slice", reflect.TypeOf([]inner{})},
		{"array", reflect.TypeOf([2]inner{})},
		{"chan", reflect.TypeOf(make(chan inner))},
		{"slice of ptr", reflect.TypeOf([]*inner{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in, cfg(8))
			if err != nil {
				t.Fatalf("Normalize(%v): %v", tc.in, err)
			}
			if got != want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.in, got, want)
			}
		})
	}
}

func TestNormalize_MapPrefersElem(t *testing.T) {
	// map[string]inner -> elem side is named, wins.
	got, err := Normalize(reflect.TypeOf(map[string]inner{}), cfg(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != reflect.TypeOf(inner{}) {
		t.Fatalf("got %v, want inner", got)
	}

	// map[inner][]func() -> elem unnamed, key named, key wins.
	got, err = Normalize(reflect.TypeOf(map[inner][]func(){}), cfg(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != reflect.TypeOf(inner{}) {
		t.Fatalf("got %v, want inner", got)
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := Normalize(nil, cfg(8)); !errors.Is(err, ErrReflectNilType) {
		t.Fatalf("nil type: got %v, want ErrReflectNilType", err)
	}
	if _, err := Normalize(reflect.TypeOf(struct{}{}), cfg(8)); !errors.Is(err, ErrReflectTypeNotNamed) {
		t.Fatalf("anonymous struct: got %v, want ErrReflectTypeNotNamed", err)
	}
	if _, err := Normalize(reflect.TypeOf(func() {}), cfg(8)); !errors.Is(err, ErrReflectTypeNotNamed) {
		t.Fatalf("func: got %v, want ErrReflectTypeNotNamed", err)
	}
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	// **inner with MaxUnwrap=1 stops at *inner, which is unnamed.
	two := reflect.TypeOf(new(*inner))
	if _, err := Normalize(two, cfg(1)); !errors.Is(err, ErrReflectTypeNotNamed) {
		t.Fatalf("MaxUnwrap=1: got %v, want ErrReflectTypeNotNamed", err)
	}
	if got, err := Normalize(two, cfg(8)); err != nil || got != reflect.TypeOf(inner{}) {
		t.Fatalf("MaxUnwrap=8: got (%v, %v), want inner", got, err)
	}
}
