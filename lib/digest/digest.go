// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash.
type Digest [32]byte

// pixelDomainKey is the BLAKE3 key for pixel-body digests: the ASCII
// domain name zero-padded to 32 bytes. Changing it invalidates every
// digest already stored in a sidecar.
var pixelDomainKey = [32]byte{
	's', 'c', 'a', 't', 't', 'e', 'r', 'p', 'i', 'x', '.', 'p', 'i', 'x', 'e', 'l',
	's', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(pixelDomainKey[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// Pixels returns the digest of an in-memory pixel body.
func Pixels(body []byte) Digest {
	hasher := newHasher()
	hasher.Write(body)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result
}

// File streams the bytes of path starting at offset through the
// hasher, using constant memory regardless of file size.
func File(path string, offset int64) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Digest{}, fmt.Errorf("seeking %s to %d: %w", path, offset, err)
	}

	hasher := newHasher()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result, nil
}

// String returns the hex encoding of d.
func (d Digest) String() string {
	return Format(d)
}

// IsZero reports whether d is the zero value (no digest recorded).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText encodes d as hex, so JSON output carries readable
// digests. CBOR ignores it and writes a byte string.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(Format(d)), nil
}

// UnmarshalText parses a hex digest.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Format returns the lowercase hex encoding of d.
func Format(d Digest) string {
	return hex.EncodeToString(d[:])
}

// Parse parses a 64-character hex digest.
func Parse(text string) (Digest, error) {
	var result Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return result, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(result) {
		return result, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(result))
	}
	copy(result[:], decoded)
	return result, nil
}
