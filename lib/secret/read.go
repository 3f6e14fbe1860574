// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrEmpty is returned by [Read] when the input is empty or whitespace.
var ErrEmpty = errors.New("secret: input is empty")

// DefaultReadLimit caps [Read] when the caller passes no limit.
const DefaultReadLimit = 64 * 1024

// Read consumes r up to limit bytes, trims surrounding whitespace, and
// returns the remainder in a Buffer. Input longer than limit is an
// error rather than a silent truncation.
func Read(r io.Reader, limit int) (*Buffer, error) {
	if limit <= 0 {
		limit = DefaultReadLimit
	}

	scratch := make([]byte, limit+1)
	defer Zero(scratch)

	n, err := io.ReadFull(r, scratch)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	case err != nil:
		return nil, fmt.Errorf("secret: reading input: %w", err)
	}
	if n > limit {
		return nil, fmt.Errorf("secret: input exceeds %d bytes", limit)
	}

	trimmed := bytes.TrimSpace(scratch[:n])
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	return NewFromBytes(trimmed)
}
