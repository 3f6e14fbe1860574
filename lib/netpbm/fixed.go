// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package netpbm

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// FixedHeaderSize is the length of every header scatterpix writes. It
// is divisible by 1, 2, 3, and 6, the four supported pixel sizes.
const FixedHeaderSize = 510

// paddingFill fills the padding comment. The value is cosmetic.
const paddingFill = 'X'

// AppendFixedHeader appends the FixedHeaderSize-byte header for h to
// dst and returns the extended slice. The layout is
//
//	<marker>\n
//	#XXXX...XXXX\n
//	<width> <height>\n<maxval>\n
//
// with the comment sized so the total is exactly FixedHeaderSize.
// Returns a [*PaddingError] if the marker and dimension lines leave
// fewer than two bytes for the comment.
func AppendFixedHeader(dst []byte, h Header) ([]byte, error) {
	return appendFixedHeader(dst, FixedHeaderSize, h)
}

// WriteFixedHeader writes the fixed header for h to w.
func WriteFixedHeader(w io.Writer, h Header) error {
	header, err := AppendFixedHeader(make([]byte, 0, FixedHeaderSize), h)
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing fixed header: %w", err)
	}
	return nil
}

func appendFixedHeader(dst []byte, size int, h Header) ([]byte, error) {
	if !h.Format.Valid() {
		return dst, &FormatError{Reason: fmt.Sprintf("unsupported format %s", h.Format)}
	}
	pixelSize := h.PixelSize()
	if size%pixelSize != 0 {
		return dst, fmt.Errorf("netpbm: fixed header size %d is not a multiple of pixel size %d", size, pixelSize)
	}

	magicLine := h.Format.String() + "\n"
	dimensionsLine := strconv.Itoa(h.Width) + " " + strconv.Itoa(h.Height) + "\n" + strconv.Itoa(h.Maxval) + "\n"

	remaining := size - len(magicLine) - len(dimensionsLine)
	if remaining < 2 {
		return dst, &PaddingError{Size: size, Remaining: remaining}
	}

	start := len(dst)
	dst = append(dst, magicLine...)
	dst = append(dst, '#')
	dst = append(dst, bytes.Repeat([]byte{paddingFill}, remaining-2)...)
	dst = append(dst, '\n')
	dst = append(dst, dimensionsLine...)

	if written := len(dst) - start; written != size {
		panic(fmt.Sprintf("netpbm: fixed header is %d bytes, want %d", written, size))
	}
	return dst, nil
}
