// Package testutil holds small fixtures shared by this module's tests —
// there is no non-test code here.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// TinyPNG returns an encoded 1x1 PNG, used wherever a test needs content
// that decodes as an image.
func TinyPNG() []byte {
	return encodePNG(1, 1)
}

// SmallPNG returns an encoded 10x8 PNG, big enough to exercise
// resize/convert downscaling in a way a 1x1 image can't.
func SmallPNG() []byte {
	return encodePNG(10, 8)
}

func encodePNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(32 * x), G: uint8(32 * y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
