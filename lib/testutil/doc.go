// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared fixtures for scatterpix tests.
//
// [Raster] and [Gradient] build NetPBM files with compact headers,
// the shape real encoders write. [WriteFile] and [ReadFile] wrap the
// os calls with t.Fatalf. [IsolateConfig] keeps a developer's
// SCATTERPIX_CONFIG out of a test, and [WriteConfig] points it at a
// fixture instead.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
