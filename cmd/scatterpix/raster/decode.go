// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package raster

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	"github.com/scatterpix/scatterpix/lib/disperse"
)

type decodeParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Seed      cli.OptionalInt64 `json:"seed"       flag:"seed"       desc:"optional check: fail unless the seed in the file name equals N"`
	OutputDir string            `json:"output_dir" flag:"output-dir" desc:"write the output here instead of next to the input"`
}

// DecodeCommand returns the "decode" command.
func DecodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Restore a dispersed file",
		Description: `Restore the original pixel order of a dispersed file. Geometry and
seed are read from the file name; the 510-byte header inside the file
is skipped, not parsed.

The seed recorded in the file name is authoritative, so --seed is
optional and decode never needs it. When given, it must equal the
seed in the name: a script that tracks seeds separately (or always
passes --seed) fails loudly on a mix-up instead of producing noise.
For a noshuf file a given --seed is ignored.

A body shorter than the geometry requires is padded with zero bytes
and a longer one is truncated; both are logged as warnings and the
restore continues. When a sidecar (<file>.cbor) sits next to the
input, the restored pixels are checked against its digest.

The output is written as <input without extension>.restored.<ext>.`,
		Usage: "scatterpix decode <dispersed-file> [--seed N] [flags]",
		Examples: []cli.Example{
			{
				Description: "Restore a dispersed scan",
				Command:     "scatterpix decode scan.dispersed.seed42.w100h50.m255.P5.pgm",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			return runDecode(ctx, &params, args, os.Stdout)
		},
	}
}

func runDecode(ctx context.Context, params *decodeParams, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("decode takes exactly one input file, got %d arguments", len(args))
	}

	cfg, logger, err := params.Setup("decode")
	if err != nil {
		return err
	}
	logger = logger.With("input", args[0])

	outputDir := params.OutputDir
	if outputDir == "" {
		outputDir = cfg.Disperse.OutputDirectory
	}

	result, err := disperse.Decode(ctx, disperse.DecodeOptions{
		InputPath:       args[0],
		Seed:            params.Seed.Pointer(),
		OutputDirectory: outputDir,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	if done, err := params.EmitJSON(result); done {
		return err
	}
	_, err = fmt.Fprintf(stdout, "restored %s -> %s\n", args[0], result.OutputPath)
	return err
}
