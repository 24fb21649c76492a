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

// Package quantity defines the descriptor identifying one loggable quantity:
// its short name, its owner type's tag, and the namespace the tag lives
// under. A descriptor is a pure value; its only behavior is generating the
// candidate full paths used to claim a location in the namespace trie.
package quantity

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"

	"dirpx.dev/qlog/apis"
)

// ErrInvalidDescriptor indicates a malformed name or tag at construction.
var ErrInvalidDescriptor = errors.New("quantity: invalid descriptor")

// Descriptor identifies one loggable quantity. Immutable once created;
// construct with New or For.
type Descriptor struct {
	name      string
	tag       string
	namespace []string
}

// New validates and builds a descriptor. name identifies one accessor on the
// owner; tag is the owner type's disambiguation segment. Both must be
// non-empty. namespace may be empty for root-level quantities; it is copied,
// so later mutation of the argument does not affect the descriptor.
func New(name, tag string, namespace []string) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, fmt.Errorf("%w: empty quantity name", ErrInvalidDescriptor)
	}
	if tag == "" {
		return Descriptor{}, fmt.Errorf("%w: empty owner tag", ErrInvalidDescriptor)
	}
	return Descriptor{name: name, tag: tag, namespace: slices.Clone(namespace)}, nil
}

// For builds one descriptor per name under the given owner identity.
func For(id apis.Identity, names ...string) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		d, err := New(name, id.Tag, id.Namespace)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Name returns the quantity's short name.
func (d Descriptor) Name() string { return d.name }

// Tag returns the owner type's base path segment.
func (d Descriptor) Tag() string { return d.tag }

// Namespace returns a copy of the namespace segments.
func (d Descriptor) Namespace() []string { return slices.Clone(d.namespace) }

// Candidates yields the full paths this quantity may claim, in increasing
// disambiguation order: namespace + tag + name first, then namespace +
// tag_1 + name, tag_2, and so on without end. Each call starts a fresh
// sequence from index 0; iterations share no cursor. Every yielded path is a
// fresh slice the consumer may retain.
func (d Descriptor) Candidates() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for i := 0; ; i++ {
			tag := d.tag
			if i > 0 {
				tag = d.tag + "_" + strconv.Itoa(i)
			}
			path := make([]string, 0, len(d.namespace)+2)
			path = append(path, d.namespace...)
			path = append(path, tag, d.name)
			if !yield(path) {
				return
			}
		}
	}
}
