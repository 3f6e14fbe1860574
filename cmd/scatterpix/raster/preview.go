// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package raster

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	"github.com/scatterpix/scatterpix/lib/atomicfile"
	"github.com/scatterpix/scatterpix/lib/netpbm"
)

type previewParams struct {
	cli.ConfigFlag
	Output   string `json:"output"   flag:"output,o" desc:"PNG output path (default: input with .png extension)"`
	Width    int    `json:"width"    flag:"width"    desc:"resize to this width, keeping the aspect ratio (0 keeps the original size)"`
	Resample string `json:"resample" flag:"resample" desc:"resampling filter: lanczos, linear, or nearest" default:"lanczos"`
}

// PreviewCommand returns the "preview" command.
func PreviewCommand() *cli.Command {
	var params previewParams

	return &cli.Command{
		Name:    "preview",
		Summary: "Render a raster as PNG",
		Description: `Render a PGM/PPM file as PNG for viewing. Works on source files,
dispersed files (showing the scattered pixels), and restored files,
since the fixed header is itself a valid NetPBM header.

16-bit samples are scaled to the full 16-bit range; 8-bit samples to
the full 8-bit range. With --width the image is resampled, which is
useful for eyeballing large dispersed files: a correct dispersal looks
like uniform noise at any scale.`,
		Usage: "scatterpix preview <raster> [-o out.png] [--width N]",
		Examples: []cli.Example{
			{
				Description: "Thumbnail a dispersed file",
				Command:     "scatterpix preview scan.dispersed.seed42.w4000h3000.m255.P5.pgm --width 400",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			return runPreview(ctx, &params, args, os.Stdout)
		},
	}
}

func runPreview(ctx context.Context, params *previewParams, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("preview takes exactly one raster, got %d arguments", len(args))
	}
	if params.Width < 0 {
		return fmt.Errorf("--width must not be negative, got %d", params.Width)
	}
	resampling, err := resamplingFilter(params.Resample)
	if err != nil {
		return err
	}

	_, logger, err := params.Setup("preview")
	if err != nil {
		return err
	}
	input := args[0]
	logger = logger.With("input", input)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	header, err := netpbm.ParseHeader(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	img, err := netpbm.ToImage(header, data[header.PixelOffset:])
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	img = resize(img, params.Width, resampling)

	output := params.Output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	err = atomicfile.Write(output, 0o644, func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	logger.Debug("preview written", "output", output, "width", bounds.Dx(), "height", bounds.Dy())
	_, err = fmt.Fprintln(stdout, output)
	return err
}

func resamplingFilter(name string) (gift.Resampling, error) {
	switch name {
	case "lanczos", "":
		return gift.LanczosResampling, nil
	case "linear":
		return gift.LinearResampling, nil
	case "nearest":
		return gift.NearestNeighborResampling, nil
	}
	return nil, fmt.Errorf("unknown resampling filter %q (want lanczos, linear, or nearest)", name)
}

// resize scales img to width, keeping its aspect ratio and its color
// model. A width of zero or equal to the current width returns img.
func resize(img image.Image, width int, resampling gift.Resampling) image.Image {
	if width == 0 || width == img.Bounds().Dx() {
		return img
	}

	filter := gift.New(gift.Resize(width, 0, resampling))
	bounds := filter.Bounds(img.Bounds())

	var destination draw.Image
	switch img.(type) {
	case *image.Gray:
		destination = image.NewGray(bounds)
	case *image.Gray16:
		destination = image.NewGray16(bounds)
	case *image.RGBA64:
		destination = image.NewRGBA64(bounds)
	default:
		destination = image.NewRGBA(bounds)
	}
	filter.Draw(destination, img)
	return destination
}
