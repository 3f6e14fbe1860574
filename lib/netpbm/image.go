// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package netpbm

import (
	"encoding/binary"
	"image"
)

// ToImage converts a pixel body described by h into an image. Samples
// are rescaled from 0..maxval to the full range of the destination
// type: 8-bit bodies become *image.Gray or *image.RGBA, 16-bit bodies
// (big-endian samples, per NetPBM) become *image.Gray16 or
// *image.RGBA64. Bytes beyond BodySize are ignored; a short body is a
// [*SizeMismatchError].
func ToImage(h Header, body []byte) (image.Image, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if expected := h.BodySize(); len(body) < expected {
		return nil, &SizeMismatchError{Expected: expected, Actual: len(body)}
	}

	bounds := image.Rect(0, 0, h.Width, h.Height)
	pixels := h.PixelCount()

	switch h.PixelSize() {
	case 1:
		img := image.NewGray(bounds)
		for index := range pixels {
			img.Pix[index] = scale8(body[index], h.Maxval)
		}
		return img, nil

	case 2:
		img := image.NewGray16(bounds)
		for index := range pixels {
			sample := scale16(binary.BigEndian.Uint16(body[index*2:]), h.Maxval)
			binary.BigEndian.PutUint16(img.Pix[index*2:], sample)
		}
		return img, nil

	case 3:
		img := image.NewRGBA(bounds)
		for index := range pixels {
			source := body[index*3 : index*3+3]
			destination := img.Pix[index*4 : index*4+4]
			destination[0] = scale8(source[0], h.Maxval)
			destination[1] = scale8(source[1], h.Maxval)
			destination[2] = scale8(source[2], h.Maxval)
			destination[3] = 0xff
		}
		return img, nil

	default:
		img := image.NewRGBA64(bounds)
		for index := range pixels {
			source := body[index*6 : index*6+6]
			destination := img.Pix[index*8 : index*8+8]
			for channel := range 3 {
				sample := scale16(binary.BigEndian.Uint16(source[channel*2:]), h.Maxval)
				binary.BigEndian.PutUint16(destination[channel*2:], sample)
			}
			destination[6], destination[7] = 0xff, 0xff
		}
		return img, nil
	}
}

func scale8(sample byte, maxval int) byte {
	if maxval == 255 {
		return sample
	}
	value := int(sample)
	if value > maxval {
		value = maxval
	}
	return byte(value * 255 / maxval)
}

func scale16(sample uint16, maxval int) uint16 {
	if maxval == 65535 {
		return sample
	}
	value := int(sample)
	if value > maxval {
		value = maxval
	}
	return uint16(value * 65535 / maxval)
}
