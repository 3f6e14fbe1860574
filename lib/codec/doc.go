// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding used for scatterpix sidecar files.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer forms, no indefinite-length items. The
// same metadata always produces the same bytes, so sidecars can be
// compared or hashed directly.
//
// Decoding ignores unknown fields so that newer sidecars remain
// readable by older binaries.
//
// Types use `cbor:"name"` struct tags. [Marshal] and [Unmarshal] are
// the whole API; callers never import fxamacker/cbor directly.
package codec
