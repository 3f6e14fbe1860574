// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package permute

import (
	"bytes"
	"slices"
	"testing"
)

func TestNew_IsBijection(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
		for _, length := range []int{0, 1, 2, 3, 10, 257, 4096} {
			permutation := New(seed, length)
			if len(permutation) != length {
				t.Fatalf("New(%d, %d) has length %d", seed, length, len(permutation))
			}
			if err := permutation.Validate(); err != nil {
				t.Errorf("New(%d, %d): %v", seed, length, err)
			}
		}
	}
}

func TestNew_Deterministic(t *testing.T) {
	first := New(42, 1000)
	second := New(42, 1000)
	if !slices.Equal(first, second) {
		t.Fatal("same seed and length produced different permutations")
	}

	other := New(43, 1000)
	if slices.Equal(first, other) {
		t.Error("seeds 42 and 43 produced identical 1000-element permutations")
	}
}

func TestNew_SmallLengths(t *testing.T) {
	if got := New(42, 0); len(got) != 0 {
		t.Errorf("New(42, 0) = %v, want empty", got)
	}
	if got := New(42, 1); !slices.Equal(got, Permutation{0}) {
		t.Errorf("New(42, 1) = %v, want identity", got)
	}
}

func TestNew_MovesElements(t *testing.T) {
	permutation := New(7, 1000)
	fixed := 0
	for index, destination := range permutation {
		if index == destination {
			fixed++
		}
	}
	// A uniform permutation has one fixed point on average; dozens
	// would mean the shuffle is not running.
	if fixed > 20 {
		t.Errorf("%d of 1000 elements stayed in place", fixed)
	}
}

func TestInverse(t *testing.T) {
	permutation := New(99, 500)
	inverse := permutation.Inverse()
	for source, destination := range permutation {
		if inverse[destination] != source {
			t.Fatalf("inverse[P[%d]] = %d, want %d", source, inverse[destination], source)
		}
	}
}

func TestValidate_RejectsNonBijections(t *testing.T) {
	for _, permutation := range []Permutation{{0, 0}, {1, 2}, {-1, 0}, {2, 0, 0}} {
		if err := permutation.Validate(); err == nil {
			t.Errorf("Validate(%v) = nil, want error", permutation)
		}
	}
}

func TestShuffleUnshuffle_RoundTrip(t *testing.T) {
	for _, blockSize := range []int{1, 2, 3, 6} {
		for _, blocks := range []int{0, 1, 2, 5, 333} {
			data := make([]byte, blocks*blockSize)
			for index := range data {
				data[index] = byte(index * 31)
			}
			permutation := New(int64(blocks*blockSize), blocks)

			shuffled, err := Shuffle(data, blockSize, permutation)
			if err != nil {
				t.Fatalf("Shuffle: %v", err)
			}
			restored, err := Unshuffle(shuffled, blockSize, permutation)
			if err != nil {
				t.Fatalf("Unshuffle: %v", err)
			}
			if !bytes.Equal(restored, data) {
				t.Errorf("block size %d, %d blocks: round trip mismatch", blockSize, blocks)
			}
		}
	}
}

func TestShuffle_MovesWholeBlocks(t *testing.T) {
	data := []byte("aaabbbcccddd")
	permutation := Permutation{2, 0, 3, 1}

	shuffled, err := Shuffle(data, 3, permutation)
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	// Source block i lands at destination P[i].
	if want := "bbbdddaaaccc"; string(shuffled) != want {
		t.Errorf("Shuffle = %q, want %q", shuffled, want)
	}

	restored, err := Unshuffle(shuffled, 3, permutation)
	if err != nil {
		t.Fatalf("Unshuffle: %v", err)
	}
	if string(restored) != string(data) {
		t.Errorf("Unshuffle = %q, want %q", restored, data)
	}
}

func TestShuffle_SizeErrors(t *testing.T) {
	permutation := Identity(4)
	if _, err := Shuffle(make([]byte, 7), 2, permutation); err == nil {
		t.Error("Shuffle accepted 7 bytes for 4 blocks of 2")
	}
	if _, err := Unshuffle(make([]byte, 4), 0, permutation); err == nil {
		t.Error("Unshuffle accepted block size 0")
	}
}

func TestSource_Uniform(t *testing.T) {
	source := NewSource(1)
	counts := make([]int, 6)
	for range 6000 {
		value := source.Uniform(6)
		if value >= 6 {
			t.Fatalf("Uniform(6) = %d", value)
		}
		counts[value]++
	}
	for value, count := range counts {
		if count < 800 || count > 1200 {
			t.Errorf("value %d drawn %d times out of 6000", value, count)
		}
	}
}

func TestSource_StreamAcrossRefills(t *testing.T) {
	first := NewSource(5)
	second := NewSource(5)
	for index := range streamBufferSize {
		if a, b := first.Uint64(), second.Uint64(); a != b {
			t.Fatalf("draw %d differs: %d != %d", index, a, b)
		}
	}
}
