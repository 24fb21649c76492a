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
	"reflect"
	"testing"

	"dirpx.dev/qlog/apis"
	"dirpx.dev/qlog/config"
	"dirpx.dev/qlog/registry"
)

// reset restores a clean deterministic snapshot between test cases. A fresh
// registry is passed explicitly; a nil registry would migrate prior entries.
func reset(tb testing.TB) {
	tb.Helper()
	cfg := config.DefaultConfig()
	SetAll(&cfg, registry.New(cfg), nil, nil)
}

type probe struct {
	v int
}

func (p *probe) LoggedQuantities() map[string]apis.Accessor {
	return map[string]apis.Accessor{
		"v": apis.Read(func() any { return p.v }),
	}
}

func TestIdentify_ReflectFallback(t *testing.T) {
	reset(t)

	id := Identify(&probe{})
	if id.Tag != "probe" {
		t.Fatalf("Tag = %q, want %q", id.Tag, "probe")
	}
	if len(id.Namespace) == 0 {
		t.Fatalf("Namespace empty: %+v", id)
	}
}

func TestRegisterType_OverridesReflection(t *testing.T) {
	reset(t)

	want := apis.Identity{Tag: "Probe", Namespace: []string{"sim", "md"}}
	if err := RegisterType(reflect.TypeOf(&probe{}), want); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}

	if got := Identify(&probe{}); !got.Equal(want) {
		t.Fatalf("Identify = %+v, want %+v", got, want)
	}
	if got := IdentifyType(reflect.TypeOf(probe{})); !got.Equal(want) {
		t.Fatalf("IdentifyType = %+v, want %+v", got, want)
	}
}

func TestNew_LoggerUsesGlobalSnapshot(t *testing.T) {
	reset(t)

	want := apis.Identity{Tag: "Probe", Namespace: []string{"sim"}}
	if err := RegisterType(reflect.TypeOf(&probe{}), want); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}

	l := New()
	p := &probe{v: 3}
	if err := l.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	snap, err := l.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	sim, ok := snap["sim"].(map[string]any)
	if !ok {
		t.Fatalf("snapshot shape: %#v", snap)
	}
	probeNode, ok := sim["Probe"].(map[string]any)
	if !ok {
		t.Fatalf("snapshot shape: %#v", snap)
	}
	if probeNode["v"] != 3 {
		t.Fatalf("value = %v, want 3", probeNode["v"])
	}
}

func TestDescribe(t *testing.T) {
	reset(t)

	ds, err := Describe(&probe{}, "v")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if len(ds) != 1 || ds[0].Name() != "v" || ds[0].Tag() != "probe" {
		t.Fatalf("Describe = %+v", ds)
	}
}

func TestSetConfig_MigratesRegistry(t *testing.T) {
	reset(t)

	want := apis.Identity{Tag: "Probe", Namespace: []string{"sim"}}
	if err := RegisterType(reflect.TypeOf(&probe{}), want); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}

	SetConfig(config.NewConfig(config.WithMaxCandidates(8)))

	if got := Config().MaxCandidates; got != 8 {
		t.Fatalf("MaxCandidates = %d, want 8", got)
	}
	// Entries survive the rebuild.
	if got := Identify(&probe{}); !got.Equal(want) {
		t.Fatalf("Identify after SetConfig = %+v, want %+v", got, want)
	}
}

func TestSetResolver_ReplacesAndIgnoresNil(t *testing.T) {
	reset(t)

	fixed := fixedResolver{id: apis.Identity{Tag: "Fixed"}}
	SetResolver(fixed)
	if got := Identify(&probe{}); got.Tag != "Fixed" {
		t.Fatalf("Identify = %+v, want fixed resolver result", got)
	}

	// Nil is ignored, the fixed resolver stays.
	SetResolver(nil)
	if got := Identify(&probe{}); got.Tag != "Fixed" {
		t.Fatalf("Identify after SetResolver(nil) = %+v", got)
	}
}

func TestSetRegistry_RebuildsResolver(t *testing.T) {
	reset(t)

	nreg := Builder().BuildRegistry(Config(), nil, nil)
	want := apis.Identity{Tag: "Swapped", Namespace: []string{"x"}}
	if err := nreg.Register(reflect.TypeOf(&probe{}), want); err != nil {
		t.Fatalf("Register: %v", err)
	}

	SetRegistry(nreg)
	if got := Identify(&probe{}); !got.Equal(want) {
		t.Fatalf("Identify = %+v, want %+v", got, want)
	}
}

// fixedResolver answers every identification with one identity.
type fixedResolver struct {
	id apis.Identity
}

func (r fixedResolver) Identify(any, apis.Config) apis.Identity {
	return r.id
}

func (r fixedResolver) IdentifyType(reflect.Type, apis.Config) apis.Identity {
	return r.id
}
