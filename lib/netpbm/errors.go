// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package netpbm

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every [*FormatError].
	ErrFormat = errors.New("netpbm: format error")

	// ErrSizeMismatch matches every [*SizeMismatchError].
	ErrSizeMismatch = errors.New("netpbm: pixel data size mismatch")

	// ErrPadding matches every [*PaddingError].
	ErrPadding = errors.New("netpbm: fixed header padding error")
)

// FormatError reports an unrecognized magic marker or a header that
// ends (or holds a malformed token) before width, height, and maxval
// have all been read.
//
//	var formatErr *netpbm.FormatError
//	if errors.As(err, &formatErr) { ... }
type FormatError struct {
	// Reason describes what was wrong with the header.
	Reason string
}

func (e *FormatError) Error() string {
	return "netpbm: " + e.Reason
}

// Is lets errors.Is(err, ErrFormat) match.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// SizeMismatchError reports a pixel payload whose length is not
// width × height × pixelSize.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("netpbm: expected %d bytes of pixel data, got %d", e.Expected, e.Actual)
}

// Is lets errors.Is(err, ErrSizeMismatch) match.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// PaddingError reports a fixed header whose magic and dimension lines
// leave too little room for the padding comment. Remaining is the
// number of bytes that were left for the comment (at least 2 are
// needed: "#" and "\n").
type PaddingError struct {
	Size      int
	Remaining int
}

func (e *PaddingError) Error() string {
	return fmt.Sprintf("netpbm: %d-byte fixed header leaves %d bytes for the padding comment, need at least 2",
		e.Size, e.Remaining)
}

// Is lets errors.Is(err, ErrPadding) match.
func (e *PaddingError) Is(target error) bool {
	return target == ErrPadding
}
