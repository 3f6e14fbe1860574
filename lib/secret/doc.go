// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds passwords and derived keys outside the Go heap.
//
// A [Buffer] is an anonymous mmap region. It is locked into RAM with
// mlock when the process's RLIMIT_MEMLOCK allows it and excluded from
// core dumps with MADV_DONTDUMP where the kernel supports it; either
// step failing leaves a usable, merely less protected, buffer and is
// reported by [Buffer.Locked]. Close zeroes and unmaps the region and
// any later access panics.
//
// [Read] fills a Buffer from an io.Reader (stdin for `passwd hash`),
// trimming surrounding whitespace and zeroing every heap byte it
// touched along the way.
//
// Depends on golang.org/x/sys/unix.
package secret
