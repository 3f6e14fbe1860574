// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package disperse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/scatterpix/scatterpix/lib/atomicfile"
	"github.com/scatterpix/scatterpix/lib/codec"
	"github.com/scatterpix/scatterpix/lib/digest"
	"github.com/scatterpix/scatterpix/lib/naming"
	"github.com/scatterpix/scatterpix/lib/netpbm"
)

// SidecarVersion is the current sidecar schema version.
const SidecarVersion = 1

// SidecarExtension is appended to an output path to name its sidecar.
const SidecarExtension = ".cbor"

// Sidecar is the structured record written next to a dispersed file.
// It duplicates the file-name metadata and adds content digests. The
// file name remains authoritative; the sidecar only adds checks.
type Sidecar struct {
	Version    int    `cbor:"version" json:"version"`
	Format     string `cbor:"format" json:"format"`
	Width      int    `cbor:"width" json:"width"`
	Height     int    `cbor:"height" json:"height"`
	Maxval     int    `cbor:"maxval" json:"maxval"`
	PixelSize  int    `cbor:"pixel_size" json:"pixel_size"`
	Shuffled   bool   `cbor:"shuffled" json:"shuffled"`
	Seed       int64  `cbor:"seed" json:"seed"`
	SourceName string `cbor:"source_name" json:"source_name"`

	// SourceDigest covers the source pixel body, which is also what a
	// correct restore reproduces.
	SourceDigest digest.Digest `cbor:"source_digest" json:"source_digest"`

	// BodyDigest covers the dispersed pixel body as written.
	BodyDigest digest.Digest `cbor:"body_digest" json:"body_digest"`
}

// SidecarPath returns the sidecar path for a dispersed file.
func SidecarPath(outputPath string) string {
	return outputPath + SidecarExtension
}

// newSidecar describes a dispersed file.
func newSidecar(metadata naming.Metadata, sourceName string, sourceBody, body []byte) Sidecar {
	return Sidecar{
		Version:      SidecarVersion,
		Format:       metadata.Format.String(),
		Width:        metadata.Width,
		Height:       metadata.Height,
		Maxval:       metadata.Maxval,
		PixelSize:    metadata.PixelSize(),
		Shuffled:     metadata.Shuffled,
		Seed:         metadata.Seed,
		SourceName:   sourceName,
		SourceDigest: digest.Pixels(sourceBody),
		BodyDigest:   digest.Pixels(body),
	}
}

// Conflicts lists the fields on which the sidecar disagrees with the
// metadata recovered from the file name. Empty means consistent.
func (s *Sidecar) Conflicts(metadata naming.Metadata) []string {
	var conflicts []string
	check := func(field string, sidecarValue, nameValue any) {
		if sidecarValue != nameValue {
			conflicts = append(conflicts, fmt.Sprintf("%s: sidecar %v, name %v", field, sidecarValue, nameValue))
		}
	}
	check("format", s.Format, metadata.Format.String())
	check("width", s.Width, metadata.Width)
	check("height", s.Height, metadata.Height)
	check("maxval", s.Maxval, metadata.Maxval)
	check("shuffled", s.Shuffled, metadata.Shuffled)
	if metadata.Shuffled {
		check("seed", s.Seed, metadata.Seed)
	}
	return conflicts
}

// WriteSidecar writes s to path atomically.
func WriteSidecar(path string, s Sidecar) error {
	data, err := codec.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}
	if err := atomicfile.WriteBytes(path, 0o644, data); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	return nil
}

// ReadSidecar reads the sidecar at path. A missing file returns
// (nil, nil).
func ReadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}

	var sidecar Sidecar
	if err := codec.Unmarshal(data, &sidecar); err != nil {
		return nil, fmt.Errorf("decoding sidecar %s: %w", path, err)
	}
	if sidecar.Version != SidecarVersion {
		return nil, fmt.Errorf("sidecar %s has version %d, want %d", path, sidecar.Version, SidecarVersion)
	}
	if _, err := netpbm.ParseMarker(sidecar.Format); err != nil {
		return nil, fmt.Errorf("sidecar %s: %w", path, err)
	}
	return &sidecar, nil
}
