// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	"github.com/scatterpix/scatterpix/lib/chunks"
)

// Command returns the "chunk" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "chunk",
		Summary: "Split files into chunks and reassemble them with gap padding",
		Description: `Dispersed files are often moved as fixed-size pieces. "assemble"
puts the pieces back in order and fills missing or short pieces with
zero bytes so every surviving byte keeps its offset; a dispersed
raster reassembled this way still decodes, with the lost pixels
scattered across the image as black dots. "split" produces pieces in
the naming scheme assemble expects.`,
		Subcommands: []*cli.Command{
			assembleCommand(),
			splitCommand(),
		},
	}
}

type assembleParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Output    string `json:"output"     flag:"output,o"   desc:"output file (default from config: reassembled.out)"`
	ChunkSize int    `json:"chunk_size" flag:"chunk-size" desc:"expected chunk size in bytes (default from config: 262144)"`
	Verbose   bool   `json:"verbose"    flag:"verbose,v"  desc:"log every chunk, not only problems"`
}

func assembleCommand() *cli.Command {
	var params assembleParams

	return &cli.Command{
		Name:    "assemble",
		Summary: "Reassemble chunks matched by a glob",
		Description: `Concatenate the files matching <glob> in chunk order.

Chunks are numbered by what follows the longest common prefix of all
matches: decimal digits (0000, 0001, ...) or lowercase letters (aa,
ab, ... as produced by split(1)). Files with any other suffix are
ignored with a warning.

Every chunk from 0 to the highest number found is written. A missing
chunk becomes chunk-size zero bytes; a short chunk is padded with
zeros; a long chunk is written whole. Each case is logged. Quote the
glob so the shell does not expand it.`,
		Usage: "scatterpix chunk assemble '<glob>' [-o output] [--chunk-size N]",
		Examples: []cli.Example{
			{
				Description: "Reassemble pieces produced by split -b 256k",
				Command:     "scatterpix chunk assemble 'scan.dispersed.seed42.w4000h3000.m255.P5.pgm.part.*' -o scan.dispersed.seed42.w4000h3000.m255.P5.pgm",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			return runAssemble(ctx, &params, args, os.Stdout)
		},
	}
}

func runAssemble(ctx context.Context, params *assembleParams, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("assemble takes exactly one glob pattern, got %d arguments", len(args))
	}

	cfg, logger, err := params.Setup("chunk/assemble")
	if err != nil {
		return err
	}
	if params.Verbose {
		cfg.Log.Level = "debug"
		logger = cli.NewCommandLogger(cfg.Log).With("command", "chunk/assemble")
	}

	output := params.Output
	if output == "" {
		output = cfg.Chunks.Output
	}
	chunkSize := params.ChunkSize
	if chunkSize == 0 {
		chunkSize = cfg.Chunks.ChunkSize
	}
	if chunkSize < 0 {
		return fmt.Errorf("--chunk-size must be positive, got %d", chunkSize)
	}

	report, err := chunks.Assemble(ctx, args[0], output, chunks.Options{
		ChunkSize: chunkSize,
		Logger:    logger.With("pattern", args[0]),
	})
	if err != nil {
		return err
	}

	if done, err := params.EmitJSON(report); done {
		return err
	}
	fmt.Fprintf(stdout, "reassembled %d of %d chunks into %s (%s)\n",
		report.Found, report.Expected, report.OutputPath, humanize.IBytes(uint64(report.Bytes)))
	if !report.Complete() {
		fmt.Fprintf(stdout, "  missing: %d, padded: %d, oversized: %d\n",
			len(report.Missing), len(report.Padded), len(report.Oversized))
	}
	return nil
}

type splitParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	ChunkSize int `json:"chunk_size" flag:"chunk-size" desc:"chunk size in bytes (default from config: 262144)"`
}

func splitCommand() *cli.Command {
	var params splitParams

	return &cli.Command{
		Name:    "split",
		Summary: "Split a file into numbered chunks",
		Description: `Write <file>.chunk.0000, <file>.chunk.0001, ... of --chunk-size
bytes each, the last possibly shorter. "chunk assemble '<file>.chunk.*'"
with the same chunk size reverses it, padding the final chunk with
zeros.`,
		Usage:  "scatterpix chunk split <file> [--chunk-size N]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			return runSplit(ctx, &params, args, os.Stdout)
		},
	}
}

func runSplit(ctx context.Context, params *splitParams, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("split takes exactly one file, got %d arguments", len(args))
	}

	cfg, logger, err := params.Setup("chunk/split")
	if err != nil {
		return err
	}
	chunkSize := params.ChunkSize
	if chunkSize == 0 {
		chunkSize = cfg.Chunks.ChunkSize
	}
	if chunkSize < 0 {
		return fmt.Errorf("--chunk-size must be positive, got %d", chunkSize)
	}

	paths, err := chunks.Split(ctx, args[0], chunks.Options{ChunkSize: chunkSize, Logger: logger})
	if err != nil {
		return err
	}

	if done, err := params.EmitJSON(paths); done {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(stdout, path); err != nil {
			return err
		}
	}
	return nil
}
