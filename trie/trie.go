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

// Package trie implements a namespace trie: a nested mapping keyed by path
// segments where every path is either absent, a leaf holding a payload, or an
// internal node holding children, never both. Nodes are created lazily on
// insert; removing the last leaf of a branch leaves the emptied internal
// nodes in place, since the root persists for the life of the program.
//
// A Trie is not safe for concurrent use; callers serialize access.
package trie

import (
	"errors"
	"slices"
	"sort"
)

var (
	// ErrDuplicatePath indicates an insert into a path that is unavailable:
	// already claimed, or obstructed by a leaf at one of its prefixes.
	// Silent overwrite is deliberately forbidden.
	ErrDuplicatePath = errors.New("trie: path already claimed")
	// ErrPathNotFound indicates a lookup or delete of an absent path.
	ErrPathNotFound = errors.New("trie: path not found")
	// ErrEmptyPath indicates an insert with no segments.
	ErrEmptyPath = errors.New("trie: empty path")
)

// node is either a leaf (leaf=true, children=nil) or an internal node
// (leaf=false, children non-nil).
type node[V any] struct {
	children map[string]*node[V]
	value    V
	leaf     bool
}

func internal[V any]() *node[V] {
	return &node[V]{children: make(map[string]*node[V])}
}

// Trie maps full paths to payloads of type V.
// The zero Trie is not usable; construct with New.
type Trie[V any] struct {
	root *node[V]
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{root: internal[V]()}
}

// Exists reports whether path resolves through internal nodes to a value,
// leaf or internal. An empty path returns false rather than failing.
func (t *Trie[V]) Exists(path []string) bool {
	if len(path) == 0 {
		return false
	}
	cur := t.root
	for _, seg := range path {
		if cur.leaf {
			// A leaf at an intermediate segment is not a container.
			return false
		}
		next, ok := cur.children[seg]
		if !ok {
			return false
		}
		cur = next
	}
	return true
}

// Insert claims path as a leaf holding v. It fails with ErrDuplicatePath if
// the path already holds anything, or if a leaf at a prefix obstructs it.
func (t *Trie[V]) Insert(path []string, v V) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	cur := t.root
	for _, seg := range path[:len(path)-1] {
		next, ok := cur.children[seg]
		switch {
		case !ok:
			next = internal[V]()
			cur.children[seg] = next
		case next.leaf:
			return ErrDuplicatePath
		}
		cur = next
	}
	last := path[len(path)-1]
	if _, ok := cur.children[last]; ok {
		return ErrDuplicatePath
	}
	cur.children[last] = &node[V]{value: v, leaf: true}
	return nil
}

// Get returns the payload at path. leaf is false when the path resolves to an
// internal node (in which case the returned value is the zero V). An absent
// or obstructed path fails with ErrPathNotFound; callers wanting non-failing
// semantics check Exists first.
func (t *Trie[V]) Get(path []string) (v V, leaf bool, err error) {
	var zero V
	if len(path) == 0 {
		return zero, false, ErrPathNotFound
	}
	cur := t.root
	for _, seg := range path {
		if cur.leaf {
			return zero, false, ErrPathNotFound
		}
		next, ok := cur.children[seg]
		if !ok {
			return zero, false, ErrPathNotFound
		}
		cur = next
	}
	if cur.leaf {
		return cur.value, true, nil
	}
	return zero, false, nil
}

// Delete removes the value at path, leaf or whole subtree. Internal nodes
// emptied by the removal are not pruned. An absent path fails with
// ErrPathNotFound.
func (t *Trie[V]) Delete(path []string) error {
	if len(path) == 0 {
		return ErrPathNotFound
	}
	cur := t.root
	for _, seg := range path[:len(path)-1] {
		if cur.leaf {
			return ErrPathNotFound
		}
		next, ok := cur.children[seg]
		if !ok {
			return ErrPathNotFound
		}
		cur = next
	}
	if cur.leaf {
		return ErrPathNotFound
	}
	last := path[len(path)-1]
	if _, ok := cur.children[last]; !ok {
		return ErrPathNotFound
	}
	delete(cur.children, last)
	return nil
}

// Len returns the number of leaves.
func (t *Trie[V]) Len() int {
	return countLeaves(t.root)
}

func countLeaves[V any](n *node[V]) int {
	if n.leaf {
		return 1
	}
	total := 0
	for _, child := range n.children {
		total += countLeaves(child)
	}
	return total
}

// Walk visits every leaf in deterministic (lexicographic) order. It stops
// early when f returns false. The path slice passed to f is reused between
// calls; copy it if retained.
func (t *Trie[V]) Walk(f func(path []string, v V) bool) {
	walk(t.root, nil, f)
}

func walk[V any](n *node[V], prefix []string, f func(path []string, v V) bool) bool {
	if n.leaf {
		return f(prefix, n.value)
	}
	for _, seg := range sortedKeys(n.children) {
		if !walk(n.children[seg], append(prefix, seg), f) {
			return false
		}
	}
	return true
}

// AsMap returns the trie as a nested mapping: internal nodes become
// map[string]any, leaves become their payload. An empty trie yields an empty
// (non-nil) map.
func (t *Trie[V]) AsMap() map[string]any {
	return nodeMap(t.root)
}

func nodeMap[V any](n *node[V]) map[string]any {
	out := make(map[string]any, len(n.children))
	for seg, child := range n.children {
		if child.leaf {
			out[seg] = child.value
		} else {
			out[seg] = nodeMap(child)
		}
	}
	return out
}

// MapLeaves produces a trie of identical shape where every leaf payload v is
// replaced by f(path, v); internal nodes are preserved recursively. Leaves
// are visited at most once, in deterministic order. The first failure aborts
// the mapping and is returned as-is, so the caller can attribute it to the
// one leaf whose path f observed; t is never mutated.
func MapLeaves[V, U any](t *Trie[V], f func(path []string, v V) (U, error)) (*Trie[U], error) {
	root, err := mapNode(t.root, nil, f)
	if err != nil {
		return nil, err
	}
	return &Trie[U]{root: root}, nil
}

func mapNode[V, U any](n *node[V], prefix []string, f func(path []string, v V) (U, error)) (*node[U], error) {
	if n.leaf {
		u, err := f(slices.Clone(prefix), n.value)
		if err != nil {
			return nil, err
		}
		return &node[U]{value: u, leaf: true}, nil
	}
	out := &node[U]{children: make(map[string]*node[U], len(n.children))}
	for _, seg := range sortedKeys(n.children) {
		mapped, err := mapNode(n.children[seg], append(prefix, seg), f)
		if err != nil {
			return nil, err
		}
		out.children[seg] = mapped
	}
	return out, nil
}

func sortedKeys[V any](m map[string]*node[V]) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
