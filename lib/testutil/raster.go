// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "fmt"

// Raster returns a NetPBM file: a header of the form
// "<magic>\n<width> <height>\n<maxval>\n" followed by body.
//
//	content := testutil.Raster("P5", 2, 2, 255, []byte{1, 2, 3, 4})
func Raster(magic string, width, height, maxval int, body []byte) []byte {
	header := fmt.Sprintf("%s\n%d %d\n%d\n", magic, width, height, maxval)
	return append([]byte(header), body...)
}

// Gradient returns width*height one-byte samples that differ between
// neighbors, so any reordering is visible. The period 251 is prime so
// it does not align with common image widths.
func Gradient(width, height int) []byte {
	body := make([]byte, width*height)
	for i := range body {
		body[i] = byte(i % 251)
	}
	return body
}
