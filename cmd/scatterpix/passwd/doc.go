// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package passwd implements "scatterpix passwd hash" and "scatterpix
// passwd verify". Passwords never touch a Go string: they are read
// into a [secret.Buffer] and handed to lib/passwd from there.
//
// [secret.Buffer]: github.com/scatterpix/scatterpix/lib/secret.Buffer
package passwd
