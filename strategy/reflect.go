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
	"strings"
	"sync"

	"dirpx.dev/qlog/apis"
	uref "dirpx.dev/qlog/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives identities via
// reflection using utils/reflect.Normalize and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that derives a stable identity
// from the defining type: the namespace is the type's package path split into
// segments, the tag is the type name. It unwraps containers
// (ptr/slice/array/chan/map) via Normalize and strips generic instantiation
// parameters. Types without a package path (builtins) yield an empty
// namespace and their bare name as tag.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects the config knobs that affect
// normalization.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int16
}

// identityCache caches derived identities by (type, config knobs).
var identityCache sync.Map // key: cacheKey, val: apis.Identity

// TryIdentify derives the identity for v's defining type.
func (reflectStrategy) TryIdentify(v any, cfg apis.Config) (apis.Identity, bool) {
	if v == nil {
		return apis.Identity{}, false
	}
	return byType(reflect.TypeOf(v), cfg), true
}

// TryIdentifyType derives the identity for t.
func (reflectStrategy) TryIdentifyType(t reflect.Type, cfg apis.Config) (apis.Identity, bool) {
	if t == nil {
		return apis.Identity{}, false
	}
	return byType(t, cfg), true
}

// byType derives the identity for t with memoization. Cached identities are
// shared; callers must not mutate the Namespace slice.
func byType(t reflect.Type, cfg apis.Config) apis.Identity {
	key := cacheKey{t: t, maxUnwrap: int16(cfg.MaxUnwrap)}
	if v, ok := identityCache.Load(key); ok {
		return v.(apis.Identity)
	}

	base, err := uref.Normalize(t, cfg)
	if err != nil || base == nil {
		identityCache.Store(key, apis.Identity{})
		return apis.Identity{}
	}

	id := apis.Identity{Tag: stripTypeParams(base.Name())}
	if p := base.PkgPath(); p != "" {
		id.Namespace = strings.Split(p, "/")
	}

	identityCache.Store(key, id)
	return id
}

// stripTypeParams removes generic type instantiation suffix:
// "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
