// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package chunks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/scatterpix/scatterpix/lib/atomicfile"
)

// DefaultChunkSize matches the piece size used when the chunks were
// produced.
const DefaultChunkSize = 256 * 1024

// maxIndex bounds the highest chunk index Assemble will honor. A stray
// match with a long numeric suffix would otherwise request terabytes
// of zero padding.
const maxIndex = 1 << 22

// maxLetters bounds base-26 suffixes so the index cannot overflow.
const maxLetters = 8

// ErrNoChunks is returned when the pattern matches nothing usable.
var ErrNoChunks = errors.New("chunks: no chunk files found")

// Options configures [Assemble] and [Split].
type Options struct {
	// ChunkSize is the expected size of every chunk. Zero means
	// DefaultChunkSize.
	ChunkSize int

	// Logger receives per-chunk warnings. Debug records describe
	// chunks written without incident. Nil discards everything.
	Logger *slog.Logger
}

func (o Options) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Report summarizes an assembly.
type Report struct {
	OutputPath string `json:"output_path"`

	// Found is the number of recognized chunk files.
	Found int `json:"found"`

	// Expected is the highest index plus one.
	Expected int `json:"expected"`

	// Missing, Padded, and Oversized list chunk indexes by outcome.
	Missing   []int `json:"missing,omitempty"`
	Padded    []int `json:"padded,omitempty"`
	Oversized []int `json:"oversized,omitempty"`

	// Ignored lists matched files whose suffix is not a chunk number.
	Ignored []string `json:"ignored,omitempty"`

	// Bytes is the size of the output.
	Bytes int64 `json:"bytes"`
}

// Complete reports whether every chunk was present at the expected
// size.
func (r *Report) Complete() bool {
	return len(r.Missing) == 0 && len(r.Padded) == 0 && len(r.Oversized) == 0
}

// Index numbers a set of chunk paths. The paths are sorted and their
// longest common prefix removed; the remainder of each must be all
// digits or all lowercase letters. Paths that do not qualify are
// returned in ignored.
func Index(paths []string) (indexed map[int]string, ignored []string) {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)

	prefix := commonPrefix(sorted)
	indexed = make(map[int]string, len(sorted))
	for _, path := range sorted {
		index, ok := parseSuffix(path[len(prefix):])
		if !ok {
			ignored = append(ignored, path)
			continue
		}
		if _, duplicate := indexed[index]; duplicate {
			// "0001" and "1" both name chunk 1; keep the first in sort order.
			ignored = append(ignored, path)
			continue
		}
		indexed[index] = path
	}
	return indexed, ignored
}

// Assemble writes the chunks matched by pattern to outputPath in index
// order, substituting zeros for missing or short chunks.
func Assemble(ctx context.Context, pattern, outputPath string, options Options) (*Report, error) {
	logger := options.logger()
	chunkSize := options.chunkSize()

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("chunk pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern %q matched nothing", ErrNoChunks, pattern)
	}

	indexed, ignored := Index(matches)
	if len(indexed) == 0 {
		return nil, fmt.Errorf("%w: none of the %d files matching %q has a chunk number suffix",
			ErrNoChunks, len(matches), pattern)
	}
	for _, path := range ignored {
		logger.Warn("ignoring file without a chunk number", "path", path)
	}

	highest := slices.Max(slices.Collect(maps.Keys(indexed)))
	if highest >= maxIndex {
		return nil, fmt.Errorf("chunk index %d from %s exceeds the limit of %d",
			highest, indexed[highest], maxIndex-1)
	}

	report := &Report{
		OutputPath: outputPath,
		Found:      len(indexed),
		Expected:   highest + 1,
		Ignored:    ignored,
	}
	logger.Debug("assembling chunks",
		"found", report.Found,
		"expected", report.Expected,
		"chunk_size", humanize.IBytes(uint64(chunkSize)),
		"output", outputPath,
	)

	zeros := make([]byte, chunkSize)
	err = atomicfile.Write(outputPath, 0o644, func(w io.Writer) error {
		for index := 0; index <= highest; index++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			path, present := indexed[index]
			if !present {
				logger.Warn("missing chunk, inserting zero padding", "chunk", index)
				report.Missing = append(report.Missing, index)
				if _, err := w.Write(zeros); err != nil {
					return err
				}
				report.Bytes += int64(chunkSize)
				continue
			}

			written, err := copyChunk(w, path)
			if err != nil {
				return err
			}
			report.Bytes += written

			switch {
			case written < int64(chunkSize):
				logger.Warn("chunk is smaller than expected, padding with zeros",
					"chunk", index, "path", path, "size", written, "expected", chunkSize)
				report.Padded = append(report.Padded, index)
				if _, err := w.Write(zeros[:int64(chunkSize)-written]); err != nil {
					return err
				}
				report.Bytes += int64(chunkSize) - written
			case written > int64(chunkSize):
				logger.Warn("chunk is larger than expected, writing full data",
					"chunk", index, "path", path, "size", written, "expected", chunkSize)
				report.Oversized = append(report.Oversized, index)
			default:
				logger.Debug("wrote chunk", "chunk", index, "path", path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", outputPath, err)
	}

	logger.Info("reassembly complete",
		"output", outputPath,
		"size", humanize.IBytes(uint64(report.Bytes)),
		"missing", len(report.Missing),
		"padded", len(report.Padded),
		"oversized", len(report.Oversized),
	)
	return report, nil
}

// Split cuts the file at path into chunks named <path>.chunk.NNNN in
// the same directory. The last chunk may be short. Returns the chunk
// paths in order.
func Split(ctx context.Context, path string, options Options) ([]string, error) {
	logger := options.logger()
	chunkSize := options.chunkSize()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var written []string
	buffer := make([]byte, chunkSize)
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, err := io.ReadFull(file, buffer)
		if n > 0 {
			chunkPath := ChunkName(path, index)
			if writeErr := atomicfile.WriteBytes(chunkPath, 0o644, buffer[:n]); writeErr != nil {
				return written, writeErr
			}
			written = append(written, chunkPath)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return written, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	logger.Info("split complete",
		"input", path,
		"chunks", len(written),
		"chunk_size", humanize.IBytes(uint64(chunkSize)),
	)
	return written, nil
}

// ChunkName returns the path of chunk index for the file at path.
func ChunkName(path string, index int) string {
	return fmt.Sprintf("%s.chunk.%04d", path, index)
}

func copyChunk(w io.Writer, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening chunk: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(w, file)
	if err != nil {
		return written, fmt.Errorf("copying chunk %s: %w", path, err)
	}
	return written, nil
}

// parseSuffix interprets a chunk suffix as a decimal number or a
// base-26 letter sequence.
func parseSuffix(suffix string) (int, bool) {
	if suffix == "" {
		return 0, false
	}
	if isDigits(suffix) {
		value, err := strconv.Atoi(suffix)
		if err != nil {
			return 0, false
		}
		return value, true
	}
	if isLowerLetters(suffix) && len(suffix) <= maxLetters {
		value := 0
		for i := 0; i < len(suffix); i++ {
			value = value*26 + int(suffix[i]-'a')
		}
		return value, true
	}
	return 0, false
}

func trimSuffixRun(path string) string {
	if path == "" {
		return path
	}
	return trimRun(path, classOf(path[len(path)-1]))
}

// trimRun removes the trailing bytes of prefix that belong to class.
func trimRun(prefix string, class func(string) bool) string {
	end := len(prefix)
	for end > 0 && class(prefix[end-1:end]) {
		end--
	}
	return prefix[:end]
}

// classOf returns the suffix alphabet b belongs to: digits, or
// lowercase letters for anything else.
func classOf(b byte) func(string) bool {
	if isDigits(string(b)) {
		return isDigits
	}
	return isLowerLetters
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLowerLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// commonPrefix returns the prefix to strip from every path before
// reading its chunk number. The byte-wise common prefix can end inside
// the number itself ("f.chunk.0010" and "f.chunk.0011" share
// "f.chunk.001"), so it is cut back to the start of that digit or
// letter run. A lone path is its own prefix, so its whole trailing run
// is given back as the suffix.
func commonPrefix(sorted []string) string {
	if len(sorted) == 0 {
		return ""
	}
	if len(sorted) == 1 {
		return trimSuffixRun(sorted[0])
	}
	first, last := sorted[0], sorted[len(sorted)-1]
	length := min(len(first), len(last))
	i := 0
	for i < length && first[i] == last[i] {
		i++
	}

	// The first byte past the shared prefix tells which alphabet the
	// chunk numbers use; only a run of that alphabet is part of them.
	next := last
	if i < len(first) {
		next = first
	}
	if i >= len(next) {
		return first[:i]
	}
	return trimRun(first[:i], classOf(next[i]))
}
