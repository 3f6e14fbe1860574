// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package disperse implements the two end-to-end operations of
// scatterpix: dispersing a NetPBM raster (moving its pixel blocks with a
// seed-keyed permutation behind a constant-size header) and restoring
// it.
//
// Encode:
//
//	read source → parse header → pixel size from (format, maxval)
//	→ check body length → shuffle or pass through → fixed header + body
//	→ name the output from the metadata → write atomically
//
// Decode:
//
//	parse metadata from the input name → expected body length
//	→ skip the 510-byte fixed header → pad with zeros or truncate
//	(logged as a warning) → unshuffle → fixed header + body → write
//	atomically as <input-without-ext>.restored.<ext>
//
// The pure transformations are [Disperse] and [Restore]; [Encode] and
// [Decode] add file handling, naming, logging, and the optional CBOR
// sidecar ([Sidecar]). Every validation error is raised before any
// output file is created, and outputs are written through
// lib/atomicfile, so a failed call never leaves a partial file.
//
// The sidecar is advisory: geometry always comes from the file name.
// When a sidecar is present on decode it is cross-checked against the
// name, and its source digest is compared with the restored pixels.
package disperse
