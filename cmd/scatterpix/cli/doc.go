// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the scatterpix binary.
//
// A [Command] is a node in the command tree: it has a name, help text,
// optional subcommands, and a Run function. [Command.Execute] walks the
// tree by positional arguments, parses flags with spf13/pflag, and
// calls Run with the remaining arguments and a context that is
// canceled on SIGINT or SIGTERM.
//
// Flags are declared as struct tags on a params struct and bound by
// [FlagsFromParams]:
//
//	type encodeParams struct {
//	    cli.ConfigFlag
//	    cli.JSONOutput
//	    Seed int64 `json:"seed" flag:"seed" desc:"permutation seed"`
//	}
//
// Embedding [ConfigFlag] adds --config, and [ConfigFlag.Setup] turns it
// into a loaded configuration plus a logger built by
// [NewCommandLogger]. Embedding [JSONOutput] adds --json.
//
// Typos in command and flag names are answered with the closest
// Levenshtein match. Commands whose non-zero exit is an expected
// outcome return an [ExitError]; main exits with its code without
// printing anything further.
package cli
