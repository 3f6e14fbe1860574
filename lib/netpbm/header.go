// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package netpbm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// maxTokenLength bounds a single numeric header token. Anything longer
// cannot be a valid dimension and usually means the input is not a
// NetPBM file at all.
const maxTokenLength = 10

// Header is the geometry of a raster file.
type Header struct {
	Format Format
	Width  int
	Height int
	Maxval int

	// PixelOffset is the byte offset of the first pixel byte in the
	// file the header was read from. For source files this depends on
	// the header text (comments, whitespace); for fixed-header files
	// it is always FixedHeaderSize.
	PixelOffset int64
}

// PixelSize returns the bytes per pixel block for this header.
func (h Header) PixelSize() int {
	return PixelSize(h.Format, h.Maxval)
}

// PixelCount returns width × height.
func (h Header) PixelCount() int {
	return h.Width * h.Height
}

// BodySize returns the exact pixel payload length: width × height × pixelSize.
func (h Header) BodySize() int {
	return h.PixelCount() * h.PixelSize()
}

// CheckBody returns a [*SizeMismatchError] unless length equals BodySize.
func (h Header) CheckBody(length int) error {
	if expected := h.BodySize(); length != expected {
		return &SizeMismatchError{Expected: expected, Actual: length}
	}
	return nil
}

// Validate checks the format and the numeric ranges of the geometry,
// including that the body size fits in an int.
func (h Header) Validate() error {
	if !h.Format.Valid() {
		return &FormatError{Reason: fmt.Sprintf("unsupported format %s", h.Format)}
	}
	if h.Width <= 0 || h.Height <= 0 {
		return &FormatError{Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", h.Width, h.Height)}
	}
	if h.Maxval < 1 || h.Maxval > MaxMaxval {
		return &FormatError{Reason: fmt.Sprintf("maxval %d out of range 1..%d", h.Maxval, MaxMaxval)}
	}
	if h.Width > math.MaxInt/h.Height/h.PixelSize() {
		return &FormatError{Reason: fmt.Sprintf("dimensions %dx%d overflow the pixel buffer size", h.Width, h.Height)}
	}
	return nil
}

// ParseHeader parses the header at the start of data. See [ReadHeader].
func ParseHeader(data []byte) (Header, error) {
	return ReadHeader(bytes.NewReader(data))
}

// ReadHeader reads a raster header from r, which must be positioned at
// the start of the file. It consumes the magic marker, the three
// numeric tokens, and exactly one delimiter after maxval, so the next
// byte r yields is the first pixel byte. When r is a *bufio.Reader the
// caller can continue reading the body from it.
//
// A header that ends before all three tokens are read, holds a
// non-numeric token, or uses an unknown magic marker yields a
// [*FormatError]. I/O errors other than EOF are returned wrapped.
func ReadHeader(r io.ByteReader) (Header, error) {
	scanner := headerScanner{reader: r}

	var magic [2]byte
	for index := range magic {
		b, err := scanner.next()
		if errors.Is(err, io.EOF) {
			return Header{}, &FormatError{Reason: "file too short for a magic marker"}
		}
		if err != nil {
			return Header{}, fmt.Errorf("reading magic marker: %w", err)
		}
		magic[index] = b
	}

	format, err := ParseMarker(string(magic[:]))
	if err != nil {
		return Header{}, err
	}

	fields := [3]string{"width", "height", "maxval"}
	var values [3]int
	for index, field := range fields {
		token, err := scanner.token()
		if err != nil {
			return Header{}, err
		}
		if token == "" {
			return Header{}, &FormatError{Reason: fmt.Sprintf("incomplete header: missing %s", field)}
		}
		value, err := strconv.Atoi(token)
		if err != nil {
			return Header{}, &FormatError{Reason: fmt.Sprintf("%s: invalid number %q", field, token)}
		}
		values[index] = value
	}

	header := Header{
		Format:      format,
		Width:       values[0],
		Height:      values[1],
		Maxval:      values[2],
		PixelOffset: scanner.offset,
	}
	if err := header.Validate(); err != nil {
		return Header{}, err
	}
	return header, nil
}

// headerScanner tokenizes header bytes and tracks how many have been
// consumed.
type headerScanner struct {
	reader io.ByteReader
	offset int64
}

func (s *headerScanner) next() (byte, error) {
	b, err := s.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	s.offset++
	return b, nil
}

// token returns the next whitespace-delimited token, skipping "#"
// comments through the end of their line. The delimiter that ends the
// token (a whitespace byte, or a whole comment) is consumed. An empty
// token means the input ended first.
func (s *headerScanner) token() (string, error) {
	var token []byte
	for {
		b, err := s.next()
		if errors.Is(err, io.EOF) {
			return string(token), nil
		}
		if err != nil {
			return "", fmt.Errorf("reading header: %w", err)
		}

		switch {
		case b == '#':
			if err := s.skipComment(); err != nil {
				return "", err
			}
			if len(token) > 0 {
				return string(token), nil
			}
		case isSpace(b):
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			if len(token) >= maxTokenLength {
				return "", &FormatError{Reason: fmt.Sprintf("header token %q... is too long", token)}
			}
			token = append(token, b)
		}
	}
}

// skipComment consumes bytes through the next newline (or EOF).
func (s *headerScanner) skipComment() error {
	for {
		b, err := s.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading header comment: %w", err)
		}
		if b == '\n' {
			return nil
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
