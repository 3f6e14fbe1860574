// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package disperse

import (
	"errors"
	"fmt"

	"github.com/scatterpix/scatterpix/lib/naming"
	"github.com/scatterpix/scatterpix/lib/netpbm"
	"github.com/scatterpix/scatterpix/lib/permute"
)

// ErrSeedMismatch is returned by [Decode] when the caller supplies a
// seed that differs from the one recorded in the file name.
var ErrSeedMismatch = errors.New("disperse: seed does not match the seed recorded in the file name")

// Dispersed is the in-memory result of [Disperse].
type Dispersed struct {
	// Header is the parsed source header. PixelOffset refers to the
	// source file.
	Header netpbm.Header

	// SourceBody is the pixel payload of the source file.
	SourceBody []byte

	// Content is the complete output file: fixed header then the
	// (possibly shuffled) body.
	Content []byte
}

// Body returns the pixel payload of the output.
func (d *Dispersed) Body() []byte {
	return d.Content[netpbm.FixedHeaderSize:]
}

// Disperse transforms a complete source raster file. When shuffle is
// false the body is copied unchanged and only the header is replaced.
func Disperse(source []byte, seed int64, shuffle bool) (*Dispersed, error) {
	header, err := netpbm.ParseHeader(source)
	if err != nil {
		return nil, err
	}

	body := source[header.PixelOffset:]
	if err := header.CheckBody(len(body)); err != nil {
		return nil, err
	}

	outputBody := body
	if shuffle {
		permutation := permute.New(seed, header.PixelCount())
		outputBody, err = permute.Shuffle(body, header.PixelSize(), permutation)
		if err != nil {
			return nil, fmt.Errorf("shuffling pixels: %w", err)
		}
	}

	content := make([]byte, 0, netpbm.FixedHeaderSize+len(outputBody))
	content, err = netpbm.AppendFixedHeader(content, header)
	if err != nil {
		return nil, err
	}
	content = append(content, outputBody...)

	return &Dispersed{Header: header, SourceBody: body, Content: content}, nil
}

// Restored is the in-memory result of [Restore].
type Restored struct {
	Header netpbm.Header

	// RawLength is how many body bytes followed the fixed header in
	// the dispersed input before length recovery.
	RawLength int

	// Padded and Truncated count the bytes added or dropped to bring
	// the raw body to the expected length. At most one is non-zero.
	Padded    int
	Truncated int

	// Content is the complete output file: fixed header then the
	// restored body.
	Content []byte
}

// Body returns the restored pixel payload.
func (r *Restored) Body() []byte {
	return r.Content[netpbm.FixedHeaderSize:]
}

// Restore reverses [Disperse] for a dispersed file whose name yielded
// metadata. dispersed is the whole file; everything before
// FixedHeaderSize is skipped without being parsed. A body that is too
// short is zero-padded and one that is too long is truncated; the
// amounts are reported in the result rather than treated as errors.
func Restore(metadata naming.Metadata, dispersed []byte) (*Restored, error) {
	header := metadata.Header()
	if err := header.Validate(); err != nil {
		return nil, err
	}

	var raw []byte
	if len(dispersed) > netpbm.FixedHeaderSize {
		raw = dispersed[netpbm.FixedHeaderSize:]
	}

	expected := header.BodySize()
	restored := &Restored{Header: header, RawLength: len(raw)}

	body := make([]byte, expected)
	copied := copy(body, raw)
	if copied < expected {
		restored.Padded = expected - copied
	}
	if len(raw) > expected {
		restored.Truncated = len(raw) - expected
	}

	if metadata.Shuffled {
		permutation := permute.New(metadata.Seed, header.PixelCount())
		unshuffled, err := permute.Unshuffle(body, header.PixelSize(), permutation)
		if err != nil {
			return nil, fmt.Errorf("unshuffling pixels: %w", err)
		}
		body = unshuffled
	}

	content := make([]byte, 0, netpbm.FixedHeaderSize+len(body))
	content, err := netpbm.AppendFixedHeader(content, header)
	if err != nil {
		return nil, err
	}
	restored.Content = append(content, body...)
	return restored, nil
}
