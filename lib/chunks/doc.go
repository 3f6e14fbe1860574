// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunks reassembles a file from fixed-size chunks, tolerating
// chunks that are missing, short, or long.
//
// Dispersed rasters are often moved as split pieces (split(1),
// upload limits). Losing a piece should cost the pixels it carried, not
// the whole image: because a dispersed body is shuffled, a zero-filled
// gap in it restores as scattered black pixels across the picture
// rather than a missing band. [Assemble] therefore keeps every byte
// position stable:
//
//   - chunk files are found by glob and numbered by the suffix that
//     follows the longest common prefix of all matches, either decimal
//     digits ("0007") or lowercase base-26 letters ("ab", with a=0);
//     files whose suffix is neither are ignored
//   - chunks 0 through the highest index are written in order
//   - a missing chunk becomes ChunkSize zero bytes
//   - a short chunk is zero-padded to ChunkSize
//   - a long chunk is written whole, which shifts everything after it
//     and is reported as a warning
//
// The output is written through lib/atomicfile, so a failed assembly
// never leaves a partial file.
//
// [Split] is the inverse helper: it cuts a file into
// <file>.chunk.0000, <file>.chunk.0001, and so on.
package chunks
