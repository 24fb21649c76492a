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

// Package qlog provides a hierarchical quantity-logging registry.
//
// qlog lets many independent objects expose named scalar or array quantities
// under a nested namespace, resolves name collisions between them
// automatically, and produces a fully evaluated snapshot of the current
// values on demand. It holds only the current registrations and, per call,
// the current values: it is not a metrics aggregator and keeps no history.
//
// # Design
//
// Three layers cooperate:
//
//   - logger.Logger is the registry proper. Owners implementing
//     apis.Loggable declare quantities as a name -> apis.Accessor mapping;
//     Add claims one namespace path per (owner, quantity) in a trie.Trie,
//     Remove releases them, and Snapshot walks the trie re-evaluating every
//     accessor into a nested map. When two owners of the same type declare
//     the same quantity, the second claims the next disambiguation index:
//     ("pkg","sub","Foo","energy") and ("pkg","sub","Foo_1","energy").
//
//   - quantity.Descriptor is the pure value identifying one quantity: short
//     name, owner tag, namespace. Its Candidates iterator yields the full
//     paths the quantity may claim, in increasing disambiguation order.
//
//   - The identification stack (apis, config, registry, resolver, strategy,
//     utils/reflect) answers "where do this owner's quantities live?". The
//     resolver runs strategies in priority order:
//     1. If the owner implements apis.Identifier, use its LogIdentity().
//     2. If the owner's type is found in the Registry, use that identity.
//     3. Otherwise derive a stable identity from the defining type via
//     reflection: namespace from the package path, tag from the type name.
//
// # Global API
//
// The package root holds a read-mostly global snapshot of (Config, Registry,
// Resolver, Builder) behind an atomic pointer, so identification on the hot
// path is lock-free:
//
//	id := qlog.Identify(obj)
//	l := qlog.New() // a Logger bound to the current snapshot
//
// Mutation helpers (SetConfig, SetRegistry, SetResolver, SetBuilder, SetAll)
// take a short build lock, derive a new snapshot (rebuilding registry and
// resolver as needed), and publish it atomically. SetAll is the hard-reset
// API used by tests to obtain deterministic state.
//
// # Concurrency model
//
// Reads of the global snapshot are wait-free and concurrent callers always
// observe a consistent state. A logger.Logger itself is deliberately
// single-threaded: registry operations run on one control thread between
// simulation steps, and callers needing concurrent access serialize it with
// one lock around the whole logger.
//
// # Ownership
//
// A Logger never owns registered objects. Associations are released only by
// an explicit Remove; an owner discarded without removal keeps reporting
// values on every snapshot until it is removed.
//
// # Usage pattern
//
//  1. Implement apis.Loggable on each object with quantities worth logging;
//     implement apis.Identifier or call qlog.RegisterType to pin identities
//     for important types.
//
//  2. Build a logger and register the objects:
//
//     l := qlog.New()
//     _ = l.Add(thermo)             // every declared quantity
//     _ = l.Add(integrator, "dt")   // a named subset
//
//  3. Each step, hand l.Snapshot() to whatever reporter consumes it.
//
// # Scope
//
// qlog is intentionally small. It does not read or write trajectory files,
// aggregate time series, or schedule anything. It only solves one job:
//
//	"Let independent objects claim namespaced paths for their quantities,
//	 and turn those claims into a nested mapping of current values."
package qlog
