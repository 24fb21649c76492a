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

// Package logger implements the quantity-logging registry: owners declare
// named quantities, the registry claims one namespace path per (owner,
// quantity) with automatic disambiguation between owners of the same type,
// and Snapshot re-evaluates every registered accessor into a nested mapping.
package logger

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"dirpx.dev/qlog/apis"
	"dirpx.dev/qlog/builder"
	"dirpx.dev/qlog/config"
	"dirpx.dev/qlog/quantity"
	"dirpx.dev/qlog/trie"
)

// entry is the leaf payload: a non-owning association from a claimed path to
// the owner and the accessor chosen when it declared the quantity.
type entry struct {
	owner    apis.Loggable
	quantity string
	acc      apis.Accessor
}

// Pair is the value shape accepted by direct path assignment: the owner and
// the name of one of its declared quantities.
type Pair struct {
	Owner    apis.Loggable
	Quantity string
}

// Logger binds quantity descriptors to (owner, accessor) entries in a
// namespace trie.
//
// A path has exactly three states: unclaimed, claimed by one owner, and
// (after removal) unclaimed again; Add never overwrites a live entry of
// another owner, it advances the disambiguation index instead.
//
// Owners are compared by identity, so they should be registered as pointers.
// Associations are non-owning: the logger never invalidates an entry on its
// own, callers remove owners they discard. All methods run on one control
// thread; callers needing concurrent access serialize it externally.
type Logger struct {
	cfg apis.Config
	res apis.Resolver
	reg *trie.Trie[entry]
}

// New constructs a Logger. A nil resolver gets the default
// Identifier -> Registry -> Reflect chain; non-positive config caps fall back
// to package config defaults.
func New(cfg apis.Config, res apis.Resolver) *Logger {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = config.DefaultMaxCandidates
	}
	if res == nil {
		b := builder.New()
		res = b.BuildResolver(cfg, b.BuildRegistry(cfg, nil, nil), nil, nil)
	}
	return &Logger{cfg: cfg, res: res, reg: trie.New[entry]()}
}

// selection pairs a quantity name with the accessor the owner declared.
type selection struct {
	name string
	acc  apis.Accessor
}

// selected returns the owner's quantities to operate on: all of them (sorted
// by name) when names is empty, the named subset in call order otherwise.
// Any requested name the owner does not declare fails the whole call with an
// UnknownQuantityError listing every bad name.
func (l *Logger) selected(owner apis.Loggable, names []string) ([]selection, error) {
	declared := owner.LoggedQuantities()

	if len(names) == 0 {
		all := make([]string, 0, len(declared))
		for name := range declared {
			all = append(all, name)
		}
		sort.Strings(all)
		names = all
	}

	out := make([]selection, 0, len(names))
	var bad []string
	for _, name := range names {
		acc, ok := declared[name]
		if !ok {
			bad = append(bad, name)
			continue
		}
		out = append(out, selection{name: name, acc: acc})
	}
	if len(bad) != 0 {
		return nil, &UnknownQuantityError{Owner: owner, Names: bad}
	}
	return out, nil
}

// descriptors resolves the owner's identity and builds one descriptor per
// selection.
func (l *Logger) descriptors(owner apis.Loggable, sels []selection) ([]quantity.Descriptor, error) {
	id := l.res.Identify(owner, l.cfg)
	out := make([]quantity.Descriptor, 0, len(sels))
	for _, sel := range sels {
		d, err := quantity.New(sel.name, id.Tag, id.Namespace)
		if err != nil {
			return nil, fmt.Errorf("owner %T: %w", owner, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Add registers the owner's quantities: all of them when names is empty, the
// named subset otherwise. Re-adding an owner's quantity is a no-op; a path
// claimed by a different owner advances the disambiguation index, so every
// distinct owner instance obtains its own path even when instances share a
// type.
func (l *Logger) Add(owner apis.Loggable, names ...string) error {
	if owner == nil {
		return ErrNilOwner
	}
	sels, err := l.selected(owner, names)
	if err != nil {
		return err
	}
	descs, err := l.descriptors(owner, sels)
	if err != nil {
		return err
	}
	for i, d := range descs {
		if !sels[i].acc.Valid() {
			return fmt.Errorf("%w: quantity %q of %T has no accessor", ErrInvalidValue, d.Name(), owner)
		}
		if err := l.addOne(d, owner, sels[i].acc); err != nil {
			return err
		}
	}
	return nil
}

// addOne claims the first available candidate path for one quantity.
func (l *Logger) addOne(d quantity.Descriptor, owner apis.Loggable, acc apis.Accessor) error {
	tried := 0
	var failure error
	claimed := false
	for path := range d.Candidates() {
		if tried >= l.cfg.MaxCandidates {
			failure = fmt.Errorf("%w: quantity %q of %T after %d candidates",
				ErrCandidatesExhausted, d.Name(), owner, tried)
			break
		}
		tried++

		cur, leaf, err := l.reg.Get(path)
		switch {
		case errors.Is(err, trie.ErrPathNotFound):
			// Unclaimed (or obstructed by a leaf prefix). Claiming fails on
			// obstruction; advance in that case.
			ierr := l.reg.Insert(path, entry{owner: owner, quantity: d.Name(), acc: acc})
			if ierr == nil {
				claimed = true
			} else if !errors.Is(ierr, trie.ErrDuplicatePath) {
				failure = ierr
			}
		case err != nil:
			failure = err
		case !leaf:
			// The scheme only ever claims leaves; a subtree here means the
			// tree was mutated out from under the registration scheme.
			failure = fmt.Errorf("%w: subtree at %s", ErrCorruptState, pathString(path))
		case sameOwner(cur.owner, owner):
			// Re-registration of the same owner: nothing to do.
			claimed = true
		}
		// Claimed by a different owner: advance the disambiguation index.

		if claimed || failure != nil {
			break
		}
	}
	return failure
}

// Remove deletes the owner's registered quantities: all of them when names is
// empty, the named subset otherwise (unknown names fail with an
// UnknownQuantityError, like Add). A nil owner with names removes those bare
// quantity-name paths directly, the flat alias mode; a nil owner with no
// names is a no-op.
func (l *Logger) Remove(owner apis.Loggable, names ...string) error {
	if owner == nil {
		l.RemoveQuantities(names...)
		return nil
	}
	sels, err := l.selected(owner, names)
	if err != nil {
		return err
	}
	descs, err := l.descriptors(owner, sels)
	if err != nil {
		return err
	}
	for _, d := range descs {
		l.removeOne(d, owner)
	}
	return nil
}

// removeOne deletes every candidate entry claimed by this exact owner,
// stopping at the first absent candidate: paths are claimed contiguously
// from index 0, so nothing lives past a gap.
func (l *Logger) removeOne(d quantity.Descriptor, owner apis.Loggable) {
	tried := 0
	for path := range d.Candidates() {
		if tried >= l.cfg.MaxCandidates {
			break
		}
		tried++

		cur, leaf, err := l.reg.Get(path)
		if err != nil {
			break
		}
		if leaf && sameOwner(cur.owner, owner) {
			_ = l.reg.Delete(path)
		}
	}
}

// RemoveQuantities removes bare quantity-name paths, the single-segment
// paths outside the namespace scheme as claimed by direct assignment. Namespaced
// entries under owner tags are not touched; absent names are ignored. With no
// names it is a no-op.
func (l *Logger) RemoveQuantities(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		_ = l.reg.Delete([]string{name})
	}
}

// Set assigns a path directly. value must be exactly a Pair naming one of the
// owner's declared quantities; anything else fails with ErrInvalidValue. A
// path already in use fails with trie.ErrDuplicatePath; remove it first,
// overwrite is deliberately forbidden.
func (l *Logger) Set(path []string, value any) error {
	pair, ok := value.(Pair)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrInvalidValue, value)
	}
	if pair.Owner == nil || pair.Quantity == "" {
		return fmt.Errorf("%w: missing owner or quantity", ErrInvalidValue)
	}
	acc, ok := pair.Owner.LoggedQuantities()[pair.Quantity]
	if !ok {
		return &UnknownQuantityError{Owner: pair.Owner, Names: []string{pair.Quantity}}
	}
	if !acc.Valid() {
		return fmt.Errorf("%w: quantity %q of %T has no accessor", ErrInvalidValue, pair.Quantity, pair.Owner)
	}
	return l.reg.Insert(path, entry{owner: pair.Owner, quantity: pair.Quantity, acc: acc})
}

// Snapshot evaluates every registered accessor and returns the nested mapping
// isomorphic to the namespace tree. Evaluation is fresh on every call, since
// values are expected to change between calls, and a failing accessor aborts
// the snapshot with an error identifying the failing path, leaving the
// registrations untouched.
func (l *Logger) Snapshot() (map[string]any, error) {
	mapped, err := trie.MapLeaves(l.reg, func(path []string, e entry) (any, error) {
		v, verr := e.acc.Value()
		if verr != nil {
			return nil, fmt.Errorf("qlog(logger): quantity at %s: %w", pathString(path), verr)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return mapped.AsMap(), nil
}

// Len returns the number of registered entries.
func (l *Logger) Len() int {
	return l.reg.Len()
}

// sameOwner reports whether a and b are the same object. Pointer owners
// compare by address; other comparable owners fall back to equality, and
// non-comparable owners never match.
func sameOwner(a, b apis.Loggable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Pointer && rb.Kind() == reflect.Pointer {
		// A struct and its first field share an address; require the type too.
		return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
	}
	if !ra.Type().Comparable() || !rb.Type().Comparable() {
		return false
	}
	return a == b
}

func pathString(path []string) string {
	return strings.Join(path, ".")
}
