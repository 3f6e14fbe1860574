// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package permute

import "fmt"

// Permutation maps source index i to destination index P[i].
type Permutation []int

// New returns the permutation of [0, length) keyed by seed. Length 0
// yields an empty permutation and length 1 the identity.
func New(seed int64, length int) Permutation {
	permutation := Identity(length)
	if length < 2 {
		return permutation
	}

	source := NewSource(seed)
	for i := length - 1; i > 0; i-- {
		j := int(source.Uniform(uint64(i + 1)))
		permutation[i], permutation[j] = permutation[j], permutation[i]
	}
	return permutation
}

// Identity returns the permutation that maps every index to itself.
func Identity(length int) Permutation {
	if length < 0 {
		panic(fmt.Sprintf("permute: negative length %d", length))
	}
	permutation := make(Permutation, length)
	for index := range permutation {
		permutation[index] = index
	}
	return permutation
}

// Inverse returns Q with Q[P[i]] = i for every i. P must be a
// bijection; see [Permutation.Validate].
func (p Permutation) Inverse() Permutation {
	inverse := make(Permutation, len(p))
	for source, destination := range p {
		inverse[destination] = source
	}
	return inverse
}

// Validate reports whether p is a bijection on [0, len(p)).
func (p Permutation) Validate() error {
	seen := make([]bool, len(p))
	for source, destination := range p {
		if destination < 0 || destination >= len(p) {
			return fmt.Errorf("permute: index %d maps to %d, outside [0, %d)", source, destination, len(p))
		}
		if seen[destination] {
			return fmt.Errorf("permute: destination %d is targeted more than once", destination)
		}
		seen[destination] = true
	}
	return nil
}

// Shuffle returns a copy of data with the block at source index i
// moved to destination index p[i]. data must hold exactly len(p)
// blocks of blockSize bytes.
func Shuffle(data []byte, blockSize int, p Permutation) ([]byte, error) {
	if err := checkBlocks(data, blockSize, p); err != nil {
		return nil, err
	}
	return scatter(data, blockSize, p), nil
}

// Unshuffle reverses [Shuffle]: the block at index j moves to Q[j],
// where Q is the inverse of p.
func Unshuffle(data []byte, blockSize int, p Permutation) ([]byte, error) {
	if err := checkBlocks(data, blockSize, p); err != nil {
		return nil, err
	}
	return scatter(data, blockSize, p.Inverse()), nil
}

// scatter writes block i of data to block destinations[i] of the result.
func scatter(data []byte, blockSize int, destinations Permutation) []byte {
	result := make([]byte, len(data))
	for source, destination := range destinations {
		copy(result[destination*blockSize:(destination+1)*blockSize],
			data[source*blockSize:(source+1)*blockSize])
	}
	return result
}

func checkBlocks(data []byte, blockSize int, p Permutation) error {
	if blockSize <= 0 {
		return fmt.Errorf("permute: block size must be positive, got %d", blockSize)
	}
	if len(data) != len(p)*blockSize {
		return fmt.Errorf("permute: %d bytes is not %d blocks of %d bytes", len(data), len(p), blockSize)
	}
	return nil
}
