// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package passwd hashes and verifies passwords with argon2id, encoded
// as PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=1$<salt>$<key>
//
// Salt and key use standard base64 without padding. The encoding is
// the one produced by the reference argon2 CLI and most language
// bindings, so hashes move freely between them.
//
// [Hash] derives a fresh hash with the given [Params]. [Verify] parses
// a stored hash, re-derives with the parameters the hash itself
// records, and compares in constant time through lib/secret.
// [NeedsRehash] reports when a stored hash was made with parameters
// other than the current ones.
package passwd
