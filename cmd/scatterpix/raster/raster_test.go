// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package raster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/gift"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	"github.com/scatterpix/scatterpix/lib/disperse"
	"github.com/scatterpix/scatterpix/lib/netpbm"
	"github.com/scatterpix/scatterpix/lib/testutil"
)

func writeRaster(t *testing.T, directory, name, magic string, width, height, maxval int, body []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	content := append([]byte(fmt.Sprintf("%s\n# test image\n%d %d\n%d\n", magic, width, height, maxval)), body...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func seed(value int64) cli.OptionalInt64 {
	return cli.OptionalInt64{Value: value, Given: true}
}

func TestEncodeDecode_PrintFilenameRoundTrip(t *testing.T) {
	testutil.IsolateConfig(t)
	directory := t.TempDir()
	input := writeRaster(t, directory, "img.pgm", "P5", 2, 2, 255, []byte{10, 20, 30, 40})

	var stdout bytes.Buffer
	encode := &encodeParams{Seed: seed(42), PrintFilename: true}
	if err := runEncode(context.Background(), encode, []string{input}, &stdout); err != nil {
		t.Fatalf("encode: %v", err)
	}
	dispersedPath := strings.TrimSpace(stdout.String())
	if filepath.Base(dispersedPath) != "img.dispersed.seed42.w2h2.m255.P5.pgm" {
		t.Fatalf("printed %q", dispersedPath)
	}

	stdout.Reset()
	decode := &decodeParams{Seed: seed(42)}
	if err := runDecode(context.Background(), decode, []string{dispersedPath}, &stdout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	restoredPath := filepath.Join(directory, "img.dispersed.seed42.w2h2.m255.P5.restored.pgm")
	if !strings.Contains(stdout.String(), restoredPath) {
		t.Errorf("decode output %q does not name %s", stdout.String(), restoredPath)
	}

	restored, err := os.ReadFile(restoredPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(restored[netpbm.FixedHeaderSize:], []byte{10, 20, 30, 40}) {
		t.Errorf("restored body = %v", restored[netpbm.FixedHeaderSize:])
	}
}

func TestEncode_RequiresSeed(t *testing.T) {
	testutil.IsolateConfig(t)
	input := writeRaster(t, t.TempDir(), "a.pgm", "P5", 1, 1, 255, []byte{1})

	err := runEncode(context.Background(), &encodeParams{}, []string{input}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "--seed") {
		t.Fatalf("error = %v, want a --seed requirement", err)
	}

	if err := runEncode(context.Background(), &encodeParams{NoShuffle: true}, []string{input}, &bytes.Buffer{}); err != nil {
		t.Fatalf("encode --noshuffle without a seed: %v", err)
	}
}

func TestEncode_ArgumentCount(t *testing.T) {
	testutil.IsolateConfig(t)
	if err := runEncode(context.Background(), &encodeParams{Seed: seed(1)}, nil, &bytes.Buffer{}); err == nil {
		t.Error("encode with no input succeeded")
	}
}

func TestDecode_SeedMismatch(t *testing.T) {
	testutil.IsolateConfig(t)
	directory := t.TempDir()
	input := writeRaster(t, directory, "b.pgm", "P5", 2, 1, 255, []byte{1, 2})

	var stdout bytes.Buffer
	if err := runEncode(context.Background(), &encodeParams{Seed: seed(5), PrintFilename: true}, []string{input}, &stdout); err != nil {
		t.Fatalf("encode: %v", err)
	}

	err := runDecode(context.Background(), &decodeParams{Seed: seed(6)}, []string{strings.TrimSpace(stdout.String())}, &bytes.Buffer{})
	if !errors.Is(err, disperse.ErrSeedMismatch) {
		t.Fatalf("error = %v, want ErrSeedMismatch", err)
	}
}

func TestDecode_SeedIsOptional(t *testing.T) {
	testutil.IsolateConfig(t)
	directory := t.TempDir()
	body := []byte{1, 2, 3, 4, 5, 6}
	input := writeRaster(t, directory, "opt.pgm", "P5", 3, 2, 255, body)

	var stdout bytes.Buffer
	if err := runEncode(context.Background(), &encodeParams{Seed: seed(11), PrintFilename: true}, []string{input}, &stdout); err != nil {
		t.Fatalf("encode: %v", err)
	}
	dispersedPath := strings.TrimSpace(stdout.String())
	restoredPath := filepath.Join(directory, "opt.dispersed.seed11.w3h2.m255.P5.restored.pgm")

	for _, params := range []*decodeParams{{}, {Seed: seed(11)}} {
		if err := runDecode(context.Background(), params, []string{dispersedPath}, &bytes.Buffer{}); err != nil {
			t.Fatalf("decode with seed given=%v: %v", params.Seed.Given, err)
		}
		restored := testutil.ReadFile(t, restoredPath)
		if !bytes.Equal(restored[len(restored)-len(body):], body) {
			t.Errorf("seed given=%v: restored body = %v, want %v", params.Seed.Given, restored[len(restored)-len(body):], body)
		}
	}

	if !strings.Contains(DecodeCommand().Description, "authoritative") {
		t.Error("decode help does not say the file name seed is authoritative")
	}
}

func TestInspect(t *testing.T) {
	testutil.IsolateConfig(t)
	directory := t.TempDir()
	input := writeRaster(t, directory, "c.ppm", "P6", 2, 2, 255, make([]byte, 12))

	var stdout bytes.Buffer
	if err := runEncode(context.Background(), &encodeParams{Seed: seed(9), PrintFilename: true, Sidecar: true}, []string{input}, &stdout); err != nil {
		t.Fatalf("encode: %v", err)
	}
	dispersedPath := strings.TrimSpace(stdout.String())

	stdout.Reset()
	if err := runInspect(&inspectParams{}, []string{dispersedPath}, &stdout); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	text := stdout.String()
	for _, want := range []string{"P6", "2x2, maxval 255, 3 bytes/pixel", "seed", "9", "c.ppm"} {
		if !strings.Contains(text, want) {
			t.Errorf("inspect output missing %q:\n%s", want, text)
		}
	}
}

func TestInspect_Diagnostic(t *testing.T) {
	testutil.IsolateConfig(t)
	directory := t.TempDir()
	input := writeRaster(t, directory, "d.pgm", "P5", 2, 1, 255, []byte{1, 2})

	var stdout bytes.Buffer
	if err := runEncode(context.Background(), &encodeParams{Seed: seed(3), PrintFilename: true, Sidecar: true}, []string{input}, &stdout); err != nil {
		t.Fatalf("encode: %v", err)
	}
	dispersedPath := strings.TrimSpace(stdout.String())

	stdout.Reset()
	if err := runInspect(&inspectParams{Diagnostic: true}, []string{dispersedPath}, &stdout); err != nil {
		t.Fatalf("inspect --diag: %v", err)
	}
	text := stdout.String()
	for _, want := range []string{`"format": "P5"`, `"seed": 3`, `"source_name": "d.pgm"`, "h'"} {
		if !strings.Contains(text, want) {
			t.Errorf("diagnostic output missing %q:\n%s", want, text)
		}
	}
}

func TestInspect_JSONShape(t *testing.T) {
	result := inspection{Path: "x", PixelSize: 1, ExpectedBytes: 4}
	result.Metadata.Format = netpbm.Grayscale
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"format":"P5"`) {
		t.Errorf("JSON = %s, want the format as a marker", data)
	}
}

func TestInspect_NotDispersed(t *testing.T) {
	input := writeRaster(t, t.TempDir(), "plain.pgm", "P5", 1, 1, 255, []byte{0})
	if err := runInspect(&inspectParams{}, []string{input}, &bytes.Buffer{}); err == nil {
		t.Error("inspect of a plain raster succeeded")
	}
}

func TestPreview(t *testing.T) {
	testutil.IsolateConfig(t)
	directory := t.TempDir()
	body := make([]byte, 8*4)
	for i := range body {
		body[i] = byte(i * 8)
	}
	input := writeRaster(t, directory, "g.pgm", "P5", 8, 4, 255, body)

	var stdout bytes.Buffer
	params := &previewParams{Width: 4, Resample: "nearest"}
	if err := runPreview(context.Background(), params, []string{input}, &stdout); err != nil {
		t.Fatalf("preview: %v", err)
	}
	output := strings.TrimSpace(stdout.String())
	if output != filepath.Join(directory, "g.png") {
		t.Errorf("output = %q", output)
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != 4 || bounds.Dy() != 2 {
		t.Errorf("preview is %dx%d, want 4x2", bounds.Dx(), bounds.Dy())
	}
}

func TestPreview_RejectsUnknownFilter(t *testing.T) {
	if _, err := resamplingFilter("bicubic-ish"); err == nil {
		t.Error("resamplingFilter accepted an unknown name")
	}
}

func TestResize_KeepsColorModel(t *testing.T) {
	source := image.NewGray16(image.Rect(0, 0, 10, 10))
	resized := resize(source, 5, gift.LinearResampling)
	if _, ok := resized.(*image.Gray16); !ok {
		t.Errorf("resized type = %T, want *image.Gray16", resized)
	}
	if resize(source, 0, gift.LinearResampling) != image.Image(source) {
		t.Error("width 0 did not return the source")
	}
}
