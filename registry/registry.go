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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/qlog/apis"
	"dirpx.dev/qlog/config"
	uref "dirpx.dev/qlog/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("qlog(registry): nil reflect.Type provided")
	// ErrZeroIdentity is returned when an identity without a tag is provided.
	ErrZeroIdentity = errors.New("qlog(registry): identity has no tag")
	// ErrConflictingRegistration indicates an attempt to re-register a type
	// with a different identity.
	ErrConflictingRegistration = errors.New("qlog(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to the registered apis.Identity.
	m sync.Map // map[reflect.Type]apis.Identity
	// count tracks the number of registered entries.
	count int
}

// Register associates the nearest named type of t with the given identity.
// It is idempotent for the same (type, identity) pair.
func (r *registry) Register(t reflect.Type, id apis.Identity) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if id.IsZero() {
		return ErrZeroIdentity
	}

	// Normalize to the nearest named type according to r.cfg.
	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		if old.(apis.Identity).Equal(id) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		if old.(apis.Identity).Equal(id) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(b, id)
	r.count++
	return nil
}

// Lookup returns an identity for a type if present.
func (r *registry) Lookup(t reflect.Type) (apis.Identity, bool) {
	if t == nil {
		return apis.Identity{}, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return apis.Identity{}, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(apis.Identity), true
	}
	return apis.Identity{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:     key.(reflect.Type),
			Identity: value.(apis.Identity),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
