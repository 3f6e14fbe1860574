// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicfile writes output files so that a reader never sees a
// partial result: data goes to a temporary file in the destination
// directory, is synced and closed, and is then renamed over the final
// path. If any step fails the temporary file is removed and the
// destination is left untouched.
//
// This package has no scatterpix-internal dependencies.
package atomicfile
