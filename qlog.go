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

package qlog

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/qlog/apis"
	"dirpx.dev/qlog/builder"
	"dirpx.dev/qlog/config"
	"dirpx.dev/qlog/logger"
	"dirpx.dev/qlog/quantity"
)

// init initializes the global identification state.
func init() {
	// Initialize state with default cfg, reg, and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("qlog: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("qlog: builder returned nil resolver")
)

// New constructs a Logger bound to the current global configuration and
// resolver snapshot. Loggers created before a Set* call keep the snapshot
// they were built with.
func New() *logger.Logger {
	s := st.Load()
	return logger.New(s.cfg, s.res)
}

// Identify derives the namespace identity of the provided owner v using the
// global resolver. This is a convenience wrapper around the global state.
func Identify(v any) apis.Identity {
	s := st.Load()
	return s.res.Identify(v, s.cfg)
}

// IdentifyType derives the namespace identity of the provided reflect.Type t
// using the global resolver.
// This is a convenience wrapper around the global state.
func IdentifyType(t reflect.Type) apis.Identity {
	s := st.Load()
	return s.res.IdentifyType(t, s.cfg)
}

// RegisterType adds a type-identity mapping to the global registry.
// This is a convenience wrapper around the global state.
func RegisterType(t reflect.Type, id apis.Identity) error {
	return st.Load().reg.Register(t, id)
}

// Describe builds one descriptor per quantity name under the identity the
// global resolver derives for v.
func Describe(v any, names ...string) ([]quantity.Descriptor, error) {
	return quantity.For(Identify(v), names...)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the global registry and resolver using the new configuration;
// registry entries migrate into the rebuilt registry.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and res based on the new cfg and old state.
	nreg := b.BuildRegistry(cfg, old.reg, nil)
	nres := b.BuildResolver(cfg, nreg, old.res, nil)

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(&state{cfg: cfg, reg: nreg, res: nres, bld: b})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global registry to reg and rebuilds the global
// resolver on top of it. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new reg.
	nres := b.BuildResolver(old.cfg, reg, old.res, nil)
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(&state{cfg: old.cfg, reg: reg, res: nres, bld: b})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global resolver to res. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(&state{cfg: old.cfg, reg: old.reg, res: res, bld: old.bld})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the registry and
// resolver with it. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and res based on the new builder and old state.
	nreg := b.BuildRegistry(old.cfg, old.reg, nil)
	nres := b.BuildResolver(old.cfg, nreg, old.res, nil)

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(&state{cfg: old.cfg, reg: nreg, res: nres, bld: b})
}

// SetAll explicitly sets all global state components in one shot.
//
// A nil cfg keeps the current configuration; nil reg/res are rebuilt by the
// (possibly new) builder; a nil bld keeps the current builder. This is
// mainly used by tests to get a clean deterministic state between cases.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, nil)
	}

	// Resolver
	nres := res
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, old.res, nil)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(&state{cfg: ncfg, reg: nreg, res: nres, bld: nbld})
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global identification state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global type-identity registry.
	reg apis.Registry
	// res is the global identity resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
}
