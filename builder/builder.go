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

package builder

import (
	"dirpx.dev/qlog/apis"
	"dirpx.dev/qlog/registry"
	"dirpx.dev/qlog/resolver"
	"dirpx.dev/qlog/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its entries are copied into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Type, e.Identity)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver based on the provided
// configuration and registry. The chain prefers explicit Identifier
// implementations, then registry entries, then reflection.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewIdentifierStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
