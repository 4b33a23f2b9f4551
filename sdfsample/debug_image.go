// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfsample

import (
	"image"
	"image/color"
)

// DebugImage renders a 2D sample array as a banded image: blue pixels
// inside the field (darker when deeper), gray-to-white pixels outside
// (lighter when further), with a thin red contour near the zero crossing. This is a supplemented
// developer tool (SPEC_FULL.md §13), not part of the wire protocol, adapted
// from terrain/render.go's banded-color renderer (itself driven off a
// quantised byte grid rather than true elevation).
func (a *Array2) DebugImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, a.size, a.size))
	for iy := 0; iy < a.size; iy++ {
		for ix := 0; ix < a.size; ix++ {
			v := a.data[a.index(ix, iy)]
			img.Set(ix, iy, debugColor(v))
		}
	}
	return img
}

func debugColor(v byte) color.RGBA {
	const band = 6
	if v > half-band && v < half+band {
		return color.RGBA{R: 220, G: 40, B: 40, A: 255}
	}
	if v < half {
		// Inside: deep blue fading up to a pale blue at the surface.
		t := float32(v) / half
		return color.RGBA{
			R: byte(20 + t*100),
			G: byte(20 + t*100),
			B: byte(80 + t*120),
			A: 255,
		}
	}
	// Outside: mid gray fading up to white away from the surface.
	t := float32(v-half) / half
	g := byte(140 + t*110)
	return color.RGBA{R: g, G: g, B: g, A: 255}
}
