// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the scatterpix configuration file.
//
// The file is named by the --config flag or the SCATTERPIX_CONFIG
// environment variable, in that order. There is no search path: when
// neither names a file, [Default] applies unchanged. A named file that
// does not exist is an error, not a silent fallback.
//
// Files ending in .json or .jsonc are parsed as JSON after
// github.com/tidwall/jsonc strips comments and trailing commas; every
// other extension is parsed as YAML. Values in the file are merged
// over [Default], so a file only needs the keys it changes.
//
// Path values expand ${VAR} and ${VAR:-default} against the process
// environment. Nothing else is read from the environment.
package config
