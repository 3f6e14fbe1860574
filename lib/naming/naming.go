// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scatterpix/scatterpix/lib/netpbm"
)

const (
	// DispersedTag separates the base name from the metadata segments.
	DispersedTag = "dispersed"

	// RestoredTag is inserted before the extension of decoded files.
	RestoredTag = "restored"

	// NoShuffleTag replaces the seed segment when pixels were not moved.
	NoShuffleTag = "noshuf"

	seedPrefix = "seed"
)

// ErrParse matches every [*ParseError].
var ErrParse = errors.New("naming: filename does not carry dispersal metadata")

// ParseError reports a file name that does not follow the dispersed
// naming contract.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("naming: cannot recover metadata from %q: %s", e.Name, e.Reason)
}

// Is lets errors.Is(err, ErrParse) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Metadata is everything a dispersed file name records.
type Metadata struct {
	// Base is the source file name without directory or extension.
	Base string `json:"base"`

	Format netpbm.Format `json:"format"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Maxval int           `json:"maxval"`

	// Shuffled is false for files written with shuffling disabled; Seed
	// is meaningless then.
	Shuffled bool  `json:"shuffled"`
	Seed     int64 `json:"seed"`
}

// Header returns the raster header the metadata describes, with
// PixelOffset set to the fixed header size.
func (m Metadata) Header() netpbm.Header {
	return netpbm.Header{
		Format:      m.Format,
		Width:       m.Width,
		Height:      m.Height,
		Maxval:      m.Maxval,
		PixelOffset: netpbm.FixedHeaderSize,
	}
}

// PixelSize applies the maxval rule to the recovered geometry.
func (m Metadata) PixelSize() int {
	return netpbm.PixelSize(m.Format, m.Maxval)
}

// Format returns the dispersed file name (no directory) for m.
func Format(m Metadata) string {
	suffix := NoShuffleTag
	if m.Shuffled {
		suffix = seedPrefix + strconv.FormatInt(m.Seed, 10)
	}
	return fmt.Sprintf("%s.%s.%s.w%dh%d.m%d.%s%s",
		m.Base, DispersedTag, suffix, m.Width, m.Height, m.Maxval, m.Format, m.Format.Extension())
}

// Parse recovers metadata from a dispersed file name. Directory
// components of name are ignored.
func Parse(name string) (Metadata, error) {
	base := filepath.Base(name)
	fail := func(format string, args ...any) (Metadata, error) {
		return Metadata{}, &ParseError{Name: base, Reason: fmt.Sprintf(format, args...)}
	}

	// <base...>.dispersed.<seed>.<wXhY>.<mZ>.<marker>.<ext>
	segments := strings.Split(base, ".")
	if len(segments) < 7 {
		return fail("expected at least 7 dot-separated segments, found %d", len(segments))
	}
	count := len(segments)
	extension := segments[count-1]
	marker := segments[count-2]
	maxvalSegment := segments[count-3]
	dimensionsSegment := segments[count-4]
	seedSegment := segments[count-5]
	tag := segments[count-6]
	stem := strings.Join(segments[:count-6], ".")

	if tag != DispersedTag {
		return fail("missing %q segment", DispersedTag)
	}

	format, err := netpbm.ParseMarker(marker)
	if err != nil {
		return fail("unknown format marker %q", marker)
	}
	extensionFormat, ok := netpbm.FormatForExtension(extension)
	if !ok {
		return fail("unknown file extension %q", extension)
	}
	if extensionFormat != format {
		return fail("marker %s does not match extension %q", marker, extension)
	}

	metadata := Metadata{Base: stem, Format: format}

	switch {
	case seedSegment == NoShuffleTag:
		metadata.Shuffled = false
	case strings.HasPrefix(seedSegment, seedPrefix):
		seed, err := strconv.ParseInt(strings.TrimPrefix(seedSegment, seedPrefix), 10, 64)
		if err != nil {
			return fail("invalid seed segment %q", seedSegment)
		}
		metadata.Shuffled = true
		metadata.Seed = seed
	default:
		return fail("expected %q or seed<N>, found %q", NoShuffleTag, seedSegment)
	}

	widthText, heightText, ok := strings.Cut(strings.TrimPrefix(dimensionsSegment, "w"), "h")
	if !strings.HasPrefix(dimensionsSegment, "w") || !ok {
		return fail("expected w<width>h<height>, found %q", dimensionsSegment)
	}
	if metadata.Width, err = parsePositive(widthText); err != nil {
		return fail("width: %v", err)
	}
	if metadata.Height, err = parsePositive(heightText); err != nil {
		return fail("height: %v", err)
	}

	if !strings.HasPrefix(maxvalSegment, "m") {
		return fail("expected m<maxval>, found %q", maxvalSegment)
	}
	if metadata.Maxval, err = parsePositive(strings.TrimPrefix(maxvalSegment, "m")); err != nil {
		return fail("maxval: %v", err)
	}

	if err := metadata.Header().Validate(); err != nil {
		return fail("%v", err)
	}
	return metadata, nil
}

// RestoredName returns the output path for decoding the dispersed file
// at path: the path without its extension, then ".restored.<ext>".
func RestoredName(path string) string {
	extension := filepath.Ext(path)
	return strings.TrimSuffix(path, extension) + "." + RestoredTag + extension
}

func parsePositive(text string) (int, error) {
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", text)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%d is not positive", value)
	}
	return value, nil
}
