// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package netpbm reads and writes the raw (binary-body) NetPBM raster
// formats handled by scatterpix: P5 grayscale and P6 color, with 8-bit
// or 16-bit samples.
//
// Two header shapes are involved:
//
//   - Source headers are variable-length ASCII: a two-byte magic
//     marker followed by whitespace-separated width, height, and maxval
//     tokens, with "#" comments allowed anywhere between tokens.
//     [ParseHeader] reads them and reports where pixel data begins.
//
//   - Fixed headers are written by [WriteFixedHeader] and are always
//     exactly [FixedHeaderSize] (510) bytes: the magic line, a "#"
//     padding comment, and the dimensions line. 510 is divisible by
//     every supported pixel size (1, 2, 3, 6), so a pixel block never
//     straddles the header/body boundary. A fixed header is still a
//     valid NetPBM header, so [ParseHeader] accepts it too.
//
// Failures are reported as [*FormatError], [*SizeMismatchError], and
// [*PaddingError]. Each also matches its sentinel ([ErrFormat],
// [ErrSizeMismatch], [ErrPadding]) with errors.Is.
//
// [ToImage] converts a pixel body into an [image.Image] for previews.
//
// This package has no scatterpix-internal dependencies.
package netpbm
