// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package permute

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"
)

// DerivationContext is the BLAKE3 key-derivation context for
// permutation streams. Changing it changes every permutation, which
// makes every previously dispersed file unrecoverable.
const DerivationContext = "scatterpix 2026-01 pixel permutation v1"

// streamBufferSize is how many XOF bytes are pulled per refill.
const streamBufferSize = 4096

// Source is a deterministic stream of uint64 values keyed by a seed.
// It satisfies math/rand/v2's Source interface, but [New] only relies
// on the pinned [Source.Uniform] draw.
type Source struct {
	digest   *blake3.Digest
	buffer   [streamBufferSize]byte
	position int
}

// NewSource returns the stream for seed.
func NewSource(seed int64) *Source {
	var material [8]byte
	binary.LittleEndian.PutUint64(material[:], uint64(seed))

	var key [32]byte
	blake3.DeriveKey(DerivationContext, material[:], key[:])

	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("permute: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &Source{
		digest:   hasher.Digest(),
		position: streamBufferSize,
	}
}

// Uint64 returns the next 8 stream bytes as a little-endian uint64.
func (s *Source) Uint64() uint64 {
	if s.position+8 > streamBufferSize {
		// The XOF output is unbounded; Read never fails.
		if _, err := s.digest.Read(s.buffer[:]); err != nil {
			panic("permute: reading BLAKE3 output stream: " + err.Error())
		}
		s.position = 0
	}
	value := binary.LittleEndian.Uint64(s.buffer[s.position:])
	s.position += 8
	return value
}

// Uniform returns a value in [0, n) without modulo bias. n must be
// positive.
func (s *Source) Uniform(n uint64) uint64 {
	if n == 0 {
		panic("permute: Uniform called with n == 0")
	}
	limit := (math.MaxUint64 / n) * n
	for {
		value := s.Uint64()
		if value < limit {
			return value % n
		}
	}
}
