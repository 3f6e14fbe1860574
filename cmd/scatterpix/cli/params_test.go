// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_Types(t *testing.T) {
	type params struct {
		Name     string   `flag:"name" desc:"the name"`
		Verbose  bool     `flag:"verbose,v" desc:"verbose output"`
		Count    int      `flag:"count" desc:"count"`
		Seed     int64    `flag:"seed" desc:"seed"`
		Width    uint     `flag:"width" desc:"width"`
		Tags     []string `flag:"tags" desc:"tags"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	err := flagSet.Parse([]string{"--name", "scan", "-v", "--count", "3", "--seed", "-12", "--width", "64", "--tags", "a,b"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Name != "scan" || !p.Verbose || p.Count != 3 || p.Seed != -12 || p.Width != 64 {
		t.Errorf("params = %+v", p)
	}
	if !slices.Equal(p.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v", p.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Size    int    `flag:"chunk-size" default:"262144"`
		Output  string `flag:"output" default:"reassembled.out"`
		Sidecar bool   `flag:"sidecar" default:"true"`
	}
	var p params
	FlagsFromParams("test", &p)

	if p.Size != 262144 || p.Output != "reassembled.out" || !p.Sidecar {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestBindFlags_EmbeddedStructs(t *testing.T) {
	type params struct {
		ConfigFlag
		JSONOutput
		Seed int64 `flag:"seed"`
	}
	var p params
	flagSet := FlagsFromParams("test", &p)
	for _, name := range []string{"config", "log-level", "json", "seed"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("flag --%s not bound", name)
		}
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	type params struct{}
	if err := BindFlags(params{}, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted a struct value")
	}
}

func TestBindFlags_UnsupportedType(t *testing.T) {
	type params struct {
		Ratio float32 `flag:"ratio"`
	}
	var p params
	if err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags accepted float32")
	}
}

func TestOptionalInt64(t *testing.T) {
	type params struct {
		Seed OptionalInt64 `flag:"seed" desc:"seed"`
	}

	var absent params
	flagSet := FlagsFromParams("test", &absent)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if absent.Seed.Pointer() != nil {
		t.Error("Pointer() non-nil for an absent flag")
	}

	var zero params
	flagSet = FlagsFromParams("test", &zero)
	if err := flagSet.Parse([]string{"--seed", "0"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pointer := zero.Seed.Pointer(); pointer == nil || *pointer != 0 {
		t.Errorf("Pointer() = %v, want pointer to 0", pointer)
	}

	var invalid params
	flagSet = FlagsFromParams("test", &invalid)
	if err := flagSet.Parse([]string{"--seed", "x"}); err == nil {
		t.Error("Parse accepted a non-integer seed")
	}
}
