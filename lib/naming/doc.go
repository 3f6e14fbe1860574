// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package naming encodes raster metadata into dispersed-file names and
// recovers it again.
//
// The file name is the only channel that carries geometry and the seed
// from encode to decode; the fixed header written alongside the pixels
// is not consulted. A dispersed name has the shape
//
//	<base>.dispersed.<seed<N>|noshuf>.w<W>h<H>.m<M>.<marker><ext>
//
// for example "scan.dispersed.seed42.w100h50.m255.P5.pgm". [Format]
// builds it from [Metadata]; [Parse] reverses it. Parsing works from
// the right-hand end, so a base that contains dots or the text "seed"
// does not confuse it. Any deviation from the shape yields a
// [*ParseError], since a misnamed file cannot be restored.
//
// [RestoredName] derives the output name for a decoded file.
package naming
