// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package raster implements the raster commands of the scatterpix CLI:
//
//   - encode disperses a PGM/PPM file with a seed
//   - decode restores a dispersed file from the metadata in its name
//   - inspect prints the metadata a dispersed file name carries,
//     plus its sidecar when one exists
//   - preview renders any supported raster to PNG
//
// Each command is a thin shell over lib/disperse, lib/naming, and
// lib/netpbm: it resolves configuration, scopes the logger, calls the
// library, and prints the result as text or, with --json, as JSON.
// Malformed input (bad header, wrong size, unparseable name, seed
// disagreement) is reported as an error and exits 1 with no output
// file written.
package raster
