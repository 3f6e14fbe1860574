// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package raster

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	"github.com/scatterpix/scatterpix/lib/codec"
	"github.com/scatterpix/scatterpix/lib/disperse"
	"github.com/scatterpix/scatterpix/lib/naming"
)

type inspectParams struct {
	cli.JSONOutput
	Diagnostic bool `json:"diag" flag:"diag" desc:"print the sidecar as CBOR diagnostic notation and exit"`
}

// inspection is the --json shape of inspect.
type inspection struct {
	Path          string            `json:"path"`
	Metadata      naming.Metadata   `json:"metadata"`
	PixelSize     int               `json:"pixel_size"`
	ExpectedBytes int               `json:"expected_bytes"`
	ActualBytes   int64             `json:"actual_bytes"`
	RestoredName  string            `json:"restored_name"`
	Sidecar       *disperse.Sidecar `json:"sidecar,omitempty"`
	Conflicts     []string          `json:"conflicts,omitempty"`
}

// InspectCommand returns the "inspect" command.
func InspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the metadata carried by a dispersed file name",
		Description: `Parse a dispersed file name and print the geometry and seed it
records, the body size those imply, and the body size actually on
disk. When a sidecar sits next to the file it is printed too, along
with any field on which it disagrees with the name.

With --diag, print only the sidecar in RFC 8949 diagnostic notation,
which shows the exact encoded types (byte strings in hex, integer
widths) rather than the decoded view.

Nothing is written.`,
		Usage:  "scatterpix inspect <dispersed-file> [--json | --diag]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			return runInspect(&params, args, os.Stdout)
		},
	}
}

func runInspect(params *inspectParams, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("inspect takes exactly one file, got %d arguments", len(args))
	}
	path := args[0]

	if params.Diagnostic {
		return printSidecarDiagnostic(disperse.SidecarPath(path), stdout)
	}

	metadata, err := naming.Parse(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	header := metadata.Header()
	result := inspection{
		Path:          path,
		Metadata:      metadata,
		PixelSize:     metadata.PixelSize(),
		ExpectedBytes: header.BodySize(),
		ActualBytes:   max(info.Size()-int64(header.PixelOffset), 0),
		RestoredName:  naming.RestoredName(path),
	}

	sidecar, err := disperse.ReadSidecar(disperse.SidecarPath(path))
	if err != nil {
		return err
	}
	if sidecar != nil {
		result.Sidecar = sidecar
		result.Conflicts = sidecar.Conflicts(metadata)
	}

	if done, err := params.EmitJSON(result); done {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file\t%s\n", path)
	fmt.Fprintf(tw, "base\t%s\n", metadata.Base)
	fmt.Fprintf(tw, "format\t%s\n", metadata.Format)
	fmt.Fprintf(tw, "geometry\t%dx%d, maxval %d, %d bytes/pixel\n",
		metadata.Width, metadata.Height, metadata.Maxval, result.PixelSize)
	if metadata.Shuffled {
		fmt.Fprintf(tw, "seed\t%d\n", metadata.Seed)
	} else {
		fmt.Fprintf(tw, "seed\tnone (not shuffled)\n")
	}
	fmt.Fprintf(tw, "body\t%s expected, %s on disk\n",
		humanize.IBytes(uint64(result.ExpectedBytes)), humanize.IBytes(uint64(result.ActualBytes)))
	fmt.Fprintf(tw, "restores to\t%s\n", result.RestoredName)
	if sidecar != nil {
		fmt.Fprintf(tw, "sidecar\t%s\n", disperse.SidecarPath(path))
		fmt.Fprintf(tw, "source\t%s\n", sidecar.SourceName)
		fmt.Fprintf(tw, "source digest\t%s\n", sidecar.SourceDigest)
		for _, conflict := range result.Conflicts {
			fmt.Fprintf(tw, "conflict\t%s\n", conflict)
		}
	}
	return tw.Flush()
}

func printSidecarDiagnostic(path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading sidecar: %w", err)
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("sidecar %s: %w", path, err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}
