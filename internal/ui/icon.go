// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     ui
// Description: Tray icons rendered at startup
// License:     MIT
// ============================================================================

package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// The tray icon is a filled circle whose color tracks the state. Rendering
// at startup keeps binary assets out of the tree.
var (
	iconIdle       = renderIcon(color.RGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0xff})
	iconRecording  = renderIcon(color.RGBA{R: 0xd9, G: 0x3b, B: 0x3b, A: 0xff})
	iconProcessing = renderIcon(color.RGBA{R: 0xd9, G: 0xa4, B: 0x3b, A: 0xff})
	iconDisabled   = renderIcon(color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff})
	iconError      = renderIcon(color.RGBA{R: 0x6b, G: 0x2d, B: 0x2d, A: 0xff})
)

func renderIcon(c color.RGBA) []byte {
	const size = 22
	const r = size/2 - 2

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx, cy := size/2, size/2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
