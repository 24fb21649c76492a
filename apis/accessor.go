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

package apis

// AccessorKind distinguishes the two closed accessor cases.
type AccessorKind uint8

const (
	// KindInvalid marks the zero Accessor. Registration rejects it.
	KindInvalid AccessorKind = iota
	// KindInvocable marks an accessor that computes its value on each call
	// and may fail.
	KindInvocable
	// KindReadable marks an accessor that reads a plain field or property
	// and cannot fail.
	KindReadable
)

// Accessor is a closed two-case tagged value resolving one quantity to its
// current value. The case is chosen once, when the owner declares the
// quantity, never re-inspected per evaluation.
//
// The zero Accessor is invalid; construct one with Invoke or Read.
type Accessor struct {
	kind   AccessorKind
	invoke func() (any, error)
	read   func() any
}

// Invoke wraps a computation that produces the current value and may fail.
func Invoke(fn func() (any, error)) Accessor {
	if fn == nil {
		return Accessor{}
	}
	return Accessor{kind: KindInvocable, invoke: fn}
}

// Read wraps a plain field or property read that cannot fail.
func Read(fn func() any) Accessor {
	if fn == nil {
		return Accessor{}
	}
	return Accessor{kind: KindReadable, read: fn}
}

// Kind returns which case this accessor is.
func (a Accessor) Kind() AccessorKind { return a.kind }

// Valid reports whether the accessor was constructed with Invoke or Read.
func (a Accessor) Valid() bool { return a.kind != KindInvalid }

// Value evaluates the accessor. Readable accessors never return an error;
// invocable accessors propagate the owner's failure unchanged. Calling Value
// on the zero Accessor returns nil, nil.
func (a Accessor) Value() (any, error) {
	switch a.kind {
	case KindInvocable:
		return a.invoke()
	case KindReadable:
		return a.read(), nil
	default:
		return nil, nil
	}
}
