// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package disperse

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/scatterpix/scatterpix/lib/codec"
	"github.com/scatterpix/scatterpix/lib/naming"
	"github.com/scatterpix/scatterpix/lib/netpbm"
	"github.com/scatterpix/scatterpix/lib/testutil"
)

func sampleMetadata() naming.Metadata {
	return naming.Metadata{
		Base:     "scan",
		Format:   netpbm.Grayscale,
		Width:    2,
		Height:   1,
		Maxval:   255,
		Shuffled: true,
		Seed:     5,
	}
}

func TestSidecar_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.pgm.cbor")
	want := newSidecar(sampleMetadata(), "scan.pgm", []byte{1, 2}, []byte{2, 1})
	if err := WriteSidecar(path, want); err != nil {
		t.Fatalf("WriteSidecar: %v", err)
	}
	got, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("ReadSidecar: %v", err)
	}
	if *got != want {
		t.Errorf("ReadSidecar = %+v, want %+v", *got, want)
	}
	if got.SourceDigest == got.BodyDigest {
		t.Error("source and body digests are equal for different bodies")
	}
}

func TestReadSidecar_Missing(t *testing.T) {
	got, err := ReadSidecar(filepath.Join(t.TempDir(), "absent.cbor"))
	if got != nil || err != nil {
		t.Errorf("ReadSidecar = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestReadSidecar_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sidecar)
		message string
	}{
		{"future version", func(s *Sidecar) { s.Version = SidecarVersion + 1 }, "version"},
		{"unknown format", func(s *Sidecar) { s.Format = "P3" }, "P3"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sidecar := newSidecar(sampleMetadata(), "scan.pgm", nil, nil)
			test.mutate(&sidecar)
			data, err := codec.Marshal(sidecar)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			path := testutil.WriteFile(t, t.TempDir(), "s.cbor", data)

			_, err = ReadSidecar(path)
			if err == nil || !strings.Contains(err.Error(), test.message) {
				t.Errorf("ReadSidecar error = %v, want one mentioning %q", err, test.message)
			}
		})
	}

	path := testutil.WriteFile(t, t.TempDir(), "garbage.cbor", []byte{0xff, 0x00})
	if _, err := ReadSidecar(path); err == nil {
		t.Error("ReadSidecar accepted garbage")
	}
}

func TestSidecar_Conflicts(t *testing.T) {
	metadata := sampleMetadata()
	sidecar := newSidecar(metadata, "scan.pgm", nil, nil)
	if conflicts := sidecar.Conflicts(metadata); len(conflicts) != 0 {
		t.Errorf("Conflicts with matching metadata = %q, want none", conflicts)
	}

	renamed := metadata
	renamed.Width, renamed.Seed = 1, 6
	conflicts := sidecar.Conflicts(renamed)
	if len(conflicts) != 2 ||
		!slices.ContainsFunc(conflicts, func(c string) bool { return strings.HasPrefix(c, "width:") }) ||
		!slices.ContainsFunc(conflicts, func(c string) bool { return strings.HasPrefix(c, "seed:") }) {
		t.Errorf("Conflicts = %q, want width and seed", conflicts)
	}

	// The seed is meaningless for an unshuffled file.
	unshuffled := metadata
	unshuffled.Shuffled, unshuffled.Seed = false, 0
	sidecar = newSidecar(unshuffled, "scan.pgm", nil, nil)
	unshuffled.Seed = 99
	if conflicts := sidecar.Conflicts(unshuffled); len(conflicts) != 0 {
		t.Errorf("Conflicts for unshuffled = %q, want none", conflicts)
	}
}
