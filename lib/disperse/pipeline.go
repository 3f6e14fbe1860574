// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package disperse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/scatterpix/scatterpix/lib/atomicfile"
	"github.com/scatterpix/scatterpix/lib/digest"
	"github.com/scatterpix/scatterpix/lib/naming"
	"github.com/scatterpix/scatterpix/lib/netpbm"
)

// outputMode is the permission of every file the pipeline creates.
const outputMode = 0o644

// EncodeOptions configures [Encode].
type EncodeOptions struct {
	// InputPath is the source raster.
	InputPath string

	// Seed keys the permutation. Ignored when NoShuffle is set.
	Seed int64

	// NoShuffle replaces the header but leaves pixels in place.
	NoShuffle bool

	// OutputDirectory receives the output. Empty means the directory
	// of InputPath.
	OutputDirectory string

	// Sidecar writes a CBOR sidecar next to the output.
	Sidecar bool

	// Logger receives progress records. Nil discards them.
	Logger *slog.Logger
}

// DecodeOptions configures [Decode].
type DecodeOptions struct {
	// InputPath is the dispersed file. Its name must follow the
	// naming contract; see lib/naming.
	InputPath string

	// Seed, when non-nil, must equal the seed in the file name.
	Seed *int64

	// OutputDirectory receives the output. Empty means the directory
	// of InputPath.
	OutputDirectory string

	// Logger receives progress and recovery warnings. Nil discards
	// them.
	Logger *slog.Logger
}

// Verification is the outcome of checking a restore against a sidecar.
type Verification string

const (
	// Unverified means no sidecar was found.
	Unverified Verification = "unverified"

	// Verified means the restored body matches the sidecar's source digest.
	Verified Verification = "verified"

	// Mismatch means the restored body differs from the source.
	Mismatch Verification = "mismatch"
)

// Result describes a completed Encode or Decode.
type Result struct {
	// OutputPath is the file that was written.
	OutputPath string `json:"output_path"`

	// SidecarPath is set when a sidecar was written (encode) or read
	// (decode).
	SidecarPath string `json:"sidecar_path,omitempty"`

	Metadata naming.Metadata `json:"metadata"`

	// BodyDigest is the digest of the pixel body that was written.
	BodyDigest digest.Digest `json:"body_digest"`

	// Padded and Truncated report decode-time length recovery.
	Padded    int `json:"padded,omitempty"`
	Truncated int `json:"truncated,omitempty"`

	// Verification is set by Decode.
	Verification Verification `json:"verification,omitempty"`
}

// Encode disperses the raster at options.InputPath and writes the
// result next to it (or into OutputDirectory) under a name that
// records the metadata.
func Encode(ctx context.Context, options EncodeOptions) (*Result, error) {
	logger := loggerOrDiscard(options.Logger)

	source, err := os.ReadFile(options.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	dispersed, err := Disperse(source, options.Seed, !options.NoShuffle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", options.InputPath, err)
	}
	header := dispersed.Header

	metadata := naming.Metadata{
		Base:     fileTitle(options.InputPath),
		Format:   header.Format,
		Width:    header.Width,
		Height:   header.Height,
		Maxval:   header.Maxval,
		Shuffled: !options.NoShuffle,
		Seed:     options.Seed,
	}
	if options.NoShuffle {
		metadata.Seed = 0
		logger.Info("shuffling disabled, pixels left in place")
	}

	outputPath := filepath.Join(outputDirectory(options.OutputDirectory, options.InputPath), naming.Format(metadata))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := atomicfile.WriteBytes(outputPath, outputMode, dispersed.Content); err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath: outputPath,
		Metadata:   metadata,
		BodyDigest: digest.Pixels(dispersed.Body()),
	}

	if options.Sidecar {
		sidecar := newSidecar(metadata, filepath.Base(options.InputPath), dispersed.SourceBody, dispersed.Body())
		sidecarPath := SidecarPath(outputPath)
		if err := WriteSidecar(sidecarPath, sidecar); err != nil {
			os.Remove(outputPath)
			return nil, err
		}
		result.SidecarPath = sidecarPath
	}

	logger.Info("dispersed raster",
		"output", outputPath,
		"format", header.Format.String(),
		"width", header.Width,
		"height", header.Height,
		"maxval", header.Maxval,
		"pixel_size", header.PixelSize(),
		"body_size", humanize.IBytes(uint64(len(dispersed.SourceBody))),
		"shuffled", metadata.Shuffled,
	)
	return result, nil
}

// Decode restores the dispersed file at options.InputPath. Geometry
// and seed come from the file name. The restored file is written as
// <input without extension>.restored.<ext>.
func Decode(ctx context.Context, options DecodeOptions) (*Result, error) {
	logger := loggerOrDiscard(options.Logger)

	metadata, err := naming.Parse(options.InputPath)
	if err != nil {
		return nil, err
	}

	if options.Seed != nil {
		switch {
		case metadata.Shuffled && *options.Seed != metadata.Seed:
			return nil, fmt.Errorf("%w: --seed %d, file name has seed %d", ErrSeedMismatch, *options.Seed, metadata.Seed)
		case !metadata.Shuffled:
			logger.Debug("seed ignored for a file dispersed without shuffling", "seed", *options.Seed)
		}
	}

	dispersed, err := readDispersed(options.InputPath)
	if err != nil {
		return nil, err
	}

	restored, err := Restore(metadata, dispersed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", options.InputPath, err)
	}

	if restored.Padded > 0 {
		logger.Warn("dispersed body is shorter than expected, filling with black pixels",
			"expected_bytes", restored.Header.BodySize(),
			"actual_bytes", restored.RawLength,
			"padded_bytes", restored.Padded,
		)
	}
	if restored.Truncated > 0 {
		logger.Warn("dispersed body is longer than expected, truncating extra data",
			"expected_bytes", restored.Header.BodySize(),
			"actual_bytes", restored.RawLength,
			"truncated_bytes", restored.Truncated,
		)
	}

	result := &Result{
		Metadata:     metadata,
		BodyDigest:   digest.Pixels(restored.Body()),
		Padded:       restored.Padded,
		Truncated:    restored.Truncated,
		Verification: Unverified,
	}

	sidecarPath := SidecarPath(options.InputPath)
	sidecar, err := ReadSidecar(sidecarPath)
	if err != nil {
		logger.Warn("ignoring unreadable sidecar", "sidecar", sidecarPath, "error", err)
	}
	if sidecar != nil {
		result.SidecarPath = sidecarPath
		result.Verification = checkSidecar(logger, sidecar, metadata, dispersed, result.BodyDigest)
	}

	restoredName := naming.RestoredName(options.InputPath)
	outputPath := filepath.Join(outputDirectory(options.OutputDirectory, options.InputPath), filepath.Base(restoredName))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := atomicfile.WriteBytes(outputPath, outputMode, restored.Content); err != nil {
		return nil, err
	}
	result.OutputPath = outputPath

	logger.Info("restored raster",
		"output", outputPath,
		"format", metadata.Format.String(),
		"width", metadata.Width,
		"height", metadata.Height,
		"maxval", metadata.Maxval,
		"shuffled", metadata.Shuffled,
		"verification", string(result.Verification),
	)
	return result, nil
}

// readDispersed reads a dispersed file. Only the bytes after the fixed
// header matter; a file shorter than the header yields no body.
func readDispersed(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dispersed file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading dispersed file: %w", err)
	}
	return data, nil
}

// checkSidecar compares a sidecar with the name metadata and the
// restored digest, logging every disagreement.
func checkSidecar(logger *slog.Logger, sidecar *Sidecar, metadata naming.Metadata, dispersed []byte, restoredDigest digest.Digest) Verification {
	if conflicts := sidecar.Conflicts(metadata); len(conflicts) > 0 {
		logger.Warn("sidecar disagrees with file name, using file name",
			"conflicts", strings.Join(conflicts, "; "))
	}

	if len(dispersed) > netpbm.FixedHeaderSize {
		if digest.Pixels(dispersed[netpbm.FixedHeaderSize:]) != sidecar.BodyDigest {
			logger.Warn("dispersed body differs from the body recorded in the sidecar",
				"recorded_digest", sidecar.BodyDigest.String())
		}
	}

	if restoredDigest != sidecar.SourceDigest {
		logger.Warn("restored pixels do not match the source digest",
			"source_digest", sidecar.SourceDigest.String(),
			"restored_digest", restoredDigest.String())
		return Mismatch
	}
	return Verified
}

// fileTitle returns the base name of path without its extension.
func fileTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func outputDirectory(override, inputPath string) string {
	if override != "" {
		return override
	}
	return filepath.Dir(inputPath)
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// IsInputError reports whether err came from malformed input (bad
// header, wrong size, unparseable name, wrong seed) rather than I/O.
func IsInputError(err error) bool {
	return errors.Is(err, netpbm.ErrFormat) ||
		errors.Is(err, netpbm.ErrSizeMismatch) ||
		errors.Is(err, netpbm.ErrPadding) ||
		errors.Is(err, naming.ErrParse) ||
		errors.Is(err, ErrSeedMismatch)
}
