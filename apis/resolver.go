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

import "reflect"

// Resolver coordinates strategies to derive identities for owners and types.
// Typical chain: IdentifierStrategy -> RegistryStrategy -> ReflectStrategy.
type Resolver interface {
	// Identify returns an identity for v, or a zero Identity if none can be
	// determined.
	Identify(v any, cfg Config) Identity

	// IdentifyType returns an identity for t, or a zero Identity if none can
	// be determined.
	IdentifyType(t reflect.Type, cfg Config) Identity
}
