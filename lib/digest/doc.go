// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes BLAKE3 content digests of pixel bodies.
//
// Sidecar files record the digest of the source pixel body and of the
// dispersed body, so a decode can confirm that it reproduced the
// original pixels and tell a damaged file from a wrong seed.
//
// Digests use BLAKE3 keyed mode with a fixed ASCII domain key, which
// keeps them distinct from plain BLAKE3 hashes of the same bytes.
//
//   - [Pixels] -- digest of an in-memory body
//   - [File] -- streams a file region through the hasher
//   - [Format] / [Parse] -- canonical hex representation
//
// This package has no scatterpix-internal dependencies.
package digest
