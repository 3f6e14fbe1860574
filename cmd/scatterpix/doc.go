// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Scatterpix is the command-line front end for pixel dispersal: encode
// and decode NetPBM rasters, inspect and preview them, reassemble
// chunked transfers, and hash or verify passwords with argon2id.
package main
