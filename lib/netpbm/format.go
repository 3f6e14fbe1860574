// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package netpbm

import "fmt"

// Format identifies a raster variant by its magic marker.
type Format uint8

const (
	// Grayscale is the binary PGM variant (magic "P5"), one channel.
	Grayscale Format = iota + 1

	// Color is the binary PPM variant (magic "P6"), three channels.
	Color
)

// MaxMaxval is the largest sample value NetPBM allows.
const MaxMaxval = 65535

// String returns the magic marker text ("P5" or "P6").
func (f Format) String() string {
	switch f {
	case Grayscale:
		return "P5"
	case Color:
		return "P6"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Magic returns the two-byte magic marker.
func (f Format) Magic() []byte {
	return []byte(f.String())
}

// Channels returns the number of samples per pixel.
func (f Format) Channels() int {
	if f == Color {
		return 3
	}
	return 1
}

// Extension returns the conventional file extension including the
// leading dot: ".pgm" for Grayscale, ".ppm" for Color.
func (f Format) Extension() string {
	if f == Color {
		return ".ppm"
	}
	return ".pgm"
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return f == Grayscale || f == Color
}

// MarshalText encodes f as its magic marker.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("netpbm: cannot marshal %v", f)
	}
	return f.Magic(), nil
}

// UnmarshalText accepts a magic marker.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := ParseMarker(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// ParseMarker maps a magic marker to its Format.
func ParseMarker(marker string) (Format, error) {
	switch marker {
	case "P5":
		return Grayscale, nil
	case "P6":
		return Color, nil
	default:
		return 0, &FormatError{Reason: fmt.Sprintf("unsupported magic marker %q", marker)}
	}
}

// FormatForExtension maps "pgm"/".pgm" and "ppm"/".ppm" to a Format.
func FormatForExtension(extension string) (Format, bool) {
	switch extension {
	case "pgm", ".pgm":
		return Grayscale, true
	case "ppm", ".ppm":
		return Color, true
	default:
		return 0, false
	}
}

// PixelSize returns the number of bytes in one pixel block. Samples
// take two bytes when maxval exceeds 255, so the result is 1 or 2 for
// Grayscale and 3 or 6 for Color. The same rule must be applied on
// both sides of a round trip or block boundaries silently shift.
func PixelSize(format Format, maxval int) int {
	bytesPerSample := 1
	if maxval > 255 {
		bytesPerSample = 2
	}
	return format.Channels() * bytesPerSample
}
