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

package strategy

import (
	"reflect"

	"dirpx.dev/qlog/apis"
)

// NewIdentifierStrategy creates an apis.Strategy that uses apis.Identifier.
func NewIdentifierStrategy() apis.Strategy {
	return &identifierStrategy{}
}

// identifierStrategy is a zero-cost fast path: if v implements
// apis.Identifier, return its LogIdentity() and stop the chain.
type identifierStrategy struct{}

// Ensure identifierStrategy implements apis.Strategy.
var _ apis.Strategy = (*identifierStrategy)(nil)

// TryIdentify checks if v implements apis.Identifier and returns its
// LogIdentity().
func (*identifierStrategy) TryIdentify(v any, _ apis.Config) (apis.Identity, bool) {
	if v == nil {
		return apis.Identity{}, false
	}
	if n, ok := v.(apis.Identifier); ok {
		return n.LogIdentity(), true
	}
	return apis.Identity{}, false
}

// TryIdentifyType always returns false: Identifier requires an instance.
func (*identifierStrategy) TryIdentifyType(_ reflect.Type, _ apis.Config) (apis.Identity, bool) {
	// No instance -> cannot use Identifier.
	return apis.Identity{}, false
}
