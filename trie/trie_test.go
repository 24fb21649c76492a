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

package trie_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"dirpx.dev/qlog/trie"
)

func mustInsert(t *testing.T, tr *trie.Trie[int], path []string, v int) {
	t.Helper()
	if err := tr.Insert(path, v); err != nil {
		t.Fatalf("Insert(%v, %d): %v", path, v, err)
	}
}

func TestExists(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"pkg", "sub", "Foo", "energy"}, 1)

	cases := []struct {
		name string
		path []string
		want bool
	}{
		{"leaf", []string{"pkg", "sub", "Foo", "energy"}, true},
		{"internal", []string{"pkg", "sub"}, true},
		{"absent", []string{"pkg", "sub", "Bar"}, false},
		{"beyond leaf", []string{"pkg", "sub", "Foo", "energy", "x"}, false},
		{"empty path", []string{}, false},
		{"nil path", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.Exists(tc.path); got != tc.want {
				t.Fatalf("Exists(%v) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestInsert_Duplicate(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"a", "b"}, 1)

	// Exact duplicate.
	if err := tr.Insert([]string{"a", "b"}, 2); !errors.Is(err, trie.ErrDuplicatePath) {
		t.Fatalf("duplicate leaf: got %v, want ErrDuplicatePath", err)
	}
	// Internal node at the target path.
	if err := tr.Insert([]string{"a"}, 3); !errors.Is(err, trie.ErrDuplicatePath) {
		t.Fatalf("internal at target: got %v, want ErrDuplicatePath", err)
	}
	// Leaf obstructing a prefix.
	if err := tr.Insert([]string{"a", "b", "c"}, 4); !errors.Is(err, trie.ErrDuplicatePath) {
		t.Fatalf("leaf at prefix: got %v, want ErrDuplicatePath", err)
	}
	// Failed inserts leave the original untouched.
	if v, leaf, err := tr.Get([]string{"a", "b"}); err != nil || !leaf || v != 1 {
		t.Fatalf("Get after failed inserts: got (%d, %v, %v), want (1, true, nil)", v, leaf, err)
	}
}

func TestInsert_EmptyPath(t *testing.T) {
	tr := trie.New[int]()
	if err := tr.Insert(nil, 1); !errors.Is(err, trie.ErrEmptyPath) {
		t.Fatalf("got %v, want ErrEmptyPath", err)
	}
}

func TestGet(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"a", "b"}, 7)

	if v, leaf, err := tr.Get([]string{"a", "b"}); err != nil || !leaf || v != 7 {
		t.Fatalf("leaf: got (%d, %v, %v), want (7, true, nil)", v, leaf, err)
	}
	if _, leaf, err := tr.Get([]string{"a"}); err != nil || leaf {
		t.Fatalf("internal: got (leaf=%v, %v), want (false, nil)", leaf, err)
	}
	if _, _, err := tr.Get([]string{"missing"}); !errors.Is(err, trie.ErrPathNotFound) {
		t.Fatalf("absent: got %v, want ErrPathNotFound", err)
	}
	if _, _, err := tr.Get([]string{"a", "b", "c"}); !errors.Is(err, trie.ErrPathNotFound) {
		t.Fatalf("beyond leaf: got %v, want ErrPathNotFound", err)
	}
	if _, _, err := tr.Get(nil); !errors.Is(err, trie.ErrPathNotFound) {
		t.Fatalf("empty: got %v, want ErrPathNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"a", "b"}, 1)
	mustInsert(t, tr, []string{"a", "c"}, 2)

	if err := tr.Delete([]string{"a", "b"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if tr.Exists([]string{"a", "b"}) {
		t.Fatal("path still exists after Delete")
	}
	// Sibling untouched.
	if v, _, err := tr.Get([]string{"a", "c"}); err != nil || v != 2 {
		t.Fatalf("sibling: got (%d, %v)", v, err)
	}
	// Double delete fails.
	if err := tr.Delete([]string{"a", "b"}); !errors.Is(err, trie.ErrPathNotFound) {
		t.Fatalf("double delete: got %v, want ErrPathNotFound", err)
	}
	// Emptied branch is not pruned: the internal node remains reachable and
	// the path can be re-claimed.
	if err := tr.Delete([]string{"a", "c"}); err != nil {
		t.Fatalf("Delete sibling: %v", err)
	}
	if !tr.Exists([]string{"a"}) {
		t.Fatal("emptied internal node was pruned")
	}
	if err := tr.Insert([]string{"a", "b"}, 3); err != nil {
		t.Fatalf("re-insert after delete: %v", err)
	}
}

func TestDelete_Subtree(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"a", "b", "c"}, 1)

	// Deleting an internal path removes the whole branch underneath.
	if err := tr.Delete([]string{"a", "b"}); err != nil {
		t.Fatalf("Delete internal: %v", err)
	}
	if tr.Exists([]string{"a", "b", "c"}) || tr.Exists([]string{"a", "b"}) {
		t.Fatal("subtree survived Delete")
	}
	if tr.Len() != 0 {
		t.Fatalf("Len = %d, want 0", tr.Len())
	}
}

func TestWalk_DeterministicOrder(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"b", "y"}, 2)
	mustInsert(t, tr, []string{"a", "z"}, 1)
	mustInsert(t, tr, []string{"b", "x"}, 3)

	var got []string
	tr.Walk(func(path []string, v int) bool {
		got = append(got, strings.Join(path, "."))
		return true
	})
	want := []string{"a.z", "b.x", "b.y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Walk order = %v, want %v", got, want)
	}

	// Early stop.
	count := 0
	tr.Walk(func([]string, int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Walk early stop visited %d leaves, want 1", count)
	}
}

func TestMapLeaves(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"a", "b"}, 1)
	mustInsert(t, tr, []string{"a", "c", "d"}, 2)

	mapped, err := trie.MapLeaves(tr, func(_ []string, v int) (string, error) {
		return strings.Repeat("x", v), nil
	})
	if err != nil {
		t.Fatalf("MapLeaves: %v", err)
	}

	want := map[string]any{
		"a": map[string]any{
			"b": "x",
			"c": map[string]any{"d": "xx"},
		},
	}
	if got := mapped.AsMap(); !reflect.DeepEqual(got, want) {
		t.Fatalf("AsMap = %#v, want %#v", got, want)
	}
	// Source unchanged.
	if v, _, err := tr.Get([]string{"a", "b"}); err != nil || v != 1 {
		t.Fatalf("source mutated: got (%d, %v)", v, err)
	}
}

func TestMapLeaves_ErrorAttribution(t *testing.T) {
	tr := trie.New[int]()
	mustInsert(t, tr, []string{"a", "bad"}, 1)
	mustInsert(t, tr, []string{"a", "good"}, 2)

	boom := errors.New("boom")
	visited := make(map[string]int)
	_, err := trie.MapLeaves(tr, func(path []string, v int) (int, error) {
		visited[strings.Join(path, ".")]++
		if path[len(path)-1] == "bad" {
			return 0, boom
		}
		return v, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	// No leaf visited more than once, and the source is untouched.
	for p, n := range visited {
		if n != 1 {
			t.Fatalf("leaf %s visited %d times", p, n)
		}
	}
	if tr.Len() != 2 {
		t.Fatalf("source Len = %d, want 2", tr.Len())
	}
}

func TestAsMap_Empty(t *testing.T) {
	tr := trie.New[int]()
	got := tr.AsMap()
	if got == nil || len(got) != 0 {
		t.Fatalf("AsMap on empty trie = %#v, want empty map", got)
	}
}

func TestLen(t *testing.T) {
	tr := trie.New[int]()
	if tr.Len() != 0 {
		t.Fatalf("empty Len = %d", tr.Len())
	}
	mustInsert(t, tr, []string{"a", "b"}, 1)
	mustInsert(t, tr, []string{"a", "c"}, 2)
	mustInsert(t, tr, []string{"d"}, 3)
	if tr.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tr.Len())
	}
}
