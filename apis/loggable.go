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

// Loggable is the collaborator contract every logged owner satisfies.
//
// # Overview
//
// An owner declares its quantities as a mapping from short quantity name to
// an Accessor resolving that quantity's current value. The logger stores the
// Accessor chosen at declaration time and re-evaluates it on every snapshot,
// so values are expected to change between calls.
//
// # Contract
//
//   - The returned map MUST contain every quantity the owner exposes, keyed
//     by non-empty names.
//   - Every Accessor in the map MUST be valid (constructed with Invoke or
//     Read) and MUST remain usable for as long as the owner stays registered.
//   - The set of declared names SHOULD be stable for the owner's lifetime;
//     callers select subsets by these names and an undeclared name is a
//     caller-visible error.
//   - LoggedQuantities MUST NOT block or perform I/O; it is called during
//     registration and removal, not per snapshot.
//
// Owners are associated by identity, so they SHOULD be registered as
// pointers. The logger never owns a registered object: dropping one without
// removing it simply leaves a live association that keeps reporting values
// until Remove is called.
type Loggable interface {
	// LoggedQuantities returns the owner's declared quantities keyed by name.
	LoggedQuantities() map[string]Accessor
}
