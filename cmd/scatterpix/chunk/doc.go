// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunk implements "scatterpix chunk assemble" and "scatterpix
// chunk split" on top of lib/chunks.
package chunk
