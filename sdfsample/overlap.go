// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfsample

import "github.com/brinewave/sdfworld/sdfshape"

// Overlaps reports whether any sample within shape's local-space bounds is
// both inside the field (encoded value below the zero crossing) and inside
// shape (shape.Sample <= 0 at that sample's position), a supplemented
// collision query (SPEC_FULL.md §13) grounded on
// terrain/compressed.Terrain.Collides, which walks a clamped sample range
// and tests each height against the entity rather than meshing it.
func (a *Array2) Overlaps(shape sdfshape.Shape2D) bool {
	b := shape.Bounds()
	if b.IsEmpty() {
		b = sdfshape.AABB2From(a.localOf(0, 0), a.localOf(a.size-1, a.size-1))
	}
	minX, minY, maxX, maxY := a.sampleRange(b)
	for iy := minY; iy <= maxY; iy++ {
		for ix := minX; ix <= maxX; ix++ {
			if a.data[a.index(ix, iy)] >= half {
				continue
			}
			p := a.localOf(ix, iy)
			if shape.Sample(p) <= 0 {
				return true
			}
		}
	}
	return false
}

// Overlaps is the 3D counterpart of Array2.Overlaps.
func (a *Array3) Overlaps(shape sdfshape.Shape3D) bool {
	b := shape.Bounds()
	if b.IsEmpty() {
		b = sdfshape.AABB3From(a.localOf(0, 0, 0), a.localOf(a.size-1, a.size-1, a.size-1))
	}
	minX, minY, minZ, maxX, maxY, maxZ := a.sampleRange(b)
	for iz := minZ; iz <= maxZ; iz++ {
		for iy := minY; iy <= maxY; iy++ {
			for ix := minX; ix <= maxX; ix++ {
				if a.data[a.index(ix, iy, iz)] >= half {
					continue
				}
				p := a.localOf(ix, iy, iz)
				if shape.Sample(p) <= 0 {
					return true
				}
			}
		}
	}
	return false
}
