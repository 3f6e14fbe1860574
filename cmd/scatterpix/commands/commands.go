// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the scatterpix command tree.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/chunk"
	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	passwdcmd "github.com/scatterpix/scatterpix/cmd/scatterpix/passwd"
	"github.com/scatterpix/scatterpix/cmd/scatterpix/raster"
	"github.com/scatterpix/scatterpix/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

// Root builds and returns the complete scatterpix command tree.
func Root() *cli.Command {
	var versionFlags versionParams

	return &cli.Command{
		Name: "scatterpix",
		Description: `scatterpix: reversible pixel dispersal for NetPBM images.

Scatter the pixels of a binary PGM or PPM file with a seeded
permutation, and put them back. Chunked transfers that lost pieces
still decode: the damage lands as scattered single pixels instead of
missing bands.`,
		Subcommands: []*cli.Command{
			raster.EncodeCommand(),
			raster.DecodeCommand(),
			raster.InspectCommand(),
			raster.PreviewCommand(),
			chunk.Command(),
			passwdcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Params:  func() any { return &versionFlags },
				Run: func(_ context.Context, _ []string) error {
					if done, err := versionFlags.EmitJSON(version.Current()); done {
						return err
					}
					fmt.Fprintf(os.Stdout, "scatterpix %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Disperse a scan",
				Command:     "scatterpix encode scan.pgm --seed 42",
			},
			{
				Description: "Restore it",
				Command:     "scatterpix decode scan.dispersed.seed42.w4000h3000.m255.P5.pgm",
			},
			{
				Description: "Rebuild a dispersed file from surviving chunks",
				Command:     "scatterpix chunk assemble 'scan.dispersed.*.part.*' -o scan.dispersed.seed42.w4000h3000.m255.P5.pgm",
			},
			{
				Description: "Look at a restored image",
				Command:     "scatterpix preview scan.dispersed.seed42.w4000h3000.m255.P5.restored.pgm --width 800",
			},
		},
	}
}
