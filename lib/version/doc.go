// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the scatterpix build.
//
// [Version], [GitCommit], [GitDirty], and [BuildTime] are injected
// with -ldflags -X for release builds:
//
//	go build -ldflags "-X github.com/scatterpix/scatterpix/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are left at their defaults, [Current] falls back to the VCS
// stamp the Go toolchain embeds (vcs.revision, vcs.modified, vcs.time),
// so `go install` builds still identify their commit.
package version
