// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer is a fixed-size region of sensitive bytes. It must not be
// copied after creation.
type Buffer struct {
	mu     sync.Mutex
	region []byte
	size   int
	locked bool
	closed bool
}

// New maps a zero-filled buffer of size bytes. The caller must Close
// it.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}

	buffer := &Buffer{region: region, size: size}

	// Unprivileged processes have a small RLIMIT_MEMLOCK. Running
	// unlocked is preferable to refusing to hash a password.
	switch err := unix.Mlock(region); {
	case err == nil:
		buffer.locked = true
	case errors.Is(err, unix.ENOMEM), errors.Is(err, unix.EPERM), errors.Is(err, unix.EAGAIN):
	default:
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}

	// Older kernels reject MADV_DONTDUMP with EINVAL.
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil && !errors.Is(err, unix.EINVAL) {
		buffer.release()
		return nil, fmt.Errorf("secret: madvise: %w", err)
	}

	return buffer, nil
}

// NewFromBytes copies source into a new Buffer and zeroes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, errors.New("secret: empty source")
	}
	buffer, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}
	copy(buffer.region, source)
	Zero(source)
	return buffer, nil
}

// Bytes returns the protected bytes. The slice aliases the mapping and
// is invalid after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()
	return b.region[:b.size]
}

// Len returns the buffer size.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Locked reports whether the region is pinned in RAM.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Equal compares the buffer with other in constant time.
func (b *Buffer) Equal(other []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()
	return subtle.ConstantTimeCompare(b.region[:b.size], other) == 1
}

// Close zeroes and unmaps the buffer. It is safe to call more than
// once.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.release()
}

func (b *Buffer) release() error {
	Zero(b.region)
	var errs []error
	if b.locked {
		if err := unix.Munlock(b.region); err != nil {
			errs = append(errs, fmt.Errorf("secret: munlock: %w", err))
		}
	}
	if err := unix.Munmap(b.region); err != nil {
		errs = append(errs, fmt.Errorf("secret: munmap: %w", err))
	}
	b.region = nil
	return errors.Join(errs...)
}

func (b *Buffer) mustBeOpen() {
	if b.closed {
		panic("secret: access to closed buffer")
	}
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}
