// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package permute builds seed-keyed permutations of pixel blocks and
// applies them and their inverses.
//
// A [Permutation] P of length n maps source index i to destination
// index P[i]. [New] derives P from a seed with a fully pinned
// algorithm so that any implementation following it reproduces the
// same arrangement bit for bit:
//
//  1. key = BLAKE3 DeriveKey(context, little-endian int64 seed), where
//     context is [DerivationContext].
//  2. The random stream is the extendable output of keyed BLAKE3 over
//     the empty message. Each draw consumes the next 8 bytes as a
//     little-endian uint64 ([Source.Uint64]).
//  3. A bounded draw uniform(m) rejects values >= m·⌊2^64/m⌋ and
//     returns v mod m ([Source.Uniform]).
//  4. P starts as the identity; for i = n-1 down to 1, j = uniform(i+1)
//     and P[i], P[j] are swapped (Fisher–Yates).
//
// [Shuffle] moves the block at source index i to P[i]. [Unshuffle]
// applies the inverse, so Unshuffle(Shuffle(x)) == x for every seed and
// length. Lengths count blocks, never bytes, so a pixel is never split.
//
// Depends on github.com/zeebo/blake3. No scatterpix-internal
// dependencies.
package permute
