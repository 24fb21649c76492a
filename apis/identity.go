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

import "slices"

// Identity describes where an owner's quantities live in the namespace tree.
//
// Namespace is the defining package path split into segments; Tag is the
// owner type's base segment, suffixed with a disambiguation index when
// several owners of the same type register the same quantity. A quantity
// "energy" of the first owner tagged "Foo" under namespace ["pkg","sub"]
// lands at ("pkg","sub","Foo","energy"); a second owner of the same type
// lands at ("pkg","sub","Foo_1","energy").
type Identity struct {
	// Tag is the owner type's base path segment. Must be non-empty for the
	// identity to be usable.
	Tag string
	// Namespace is the defining package path, one segment per element.
	// May be empty for root-level quantities.
	Namespace []string
}

// IsZero reports whether the identity carries no usable tag.
func (id Identity) IsZero() bool {
	return id.Tag == ""
}

// Equal reports whether two identities name the same location.
func (id Identity) Equal(other Identity) bool {
	return id.Tag == other.Tag && slices.Equal(id.Namespace, other.Namespace)
}

// Identifier is the zero-reflection fast path for owner identification.
//
// When an owner implements Identifier, identity resolution prefers this
// interface over registry lookups and reflection. The returned identity is a
// type-level contract: it describes the kind of owner, not a particular
// instance, and must be deterministic and independent of mutable state.
// Implementations must be safe for concurrent calls and must not block.
type Identifier interface {
	// LogIdentity returns the canonical identity for this owner type.
	// The Tag of the returned identity must be non-empty.
	LogIdentity() Identity
}
