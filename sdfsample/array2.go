// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfsample

import (
	"context"

	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfshape"
	"github.com/chewxy/math32"
)

// Margin is the fixed one-sample ring kept around every chunk's interior so
// neighbouring chunks can be meshed without reaching across a chunk
// boundary (spec §4.2 "margin = 1, fixed").
const Margin = 1

// Array2 is the dense, quantised 2D sample grid of spec §4.2: one byte per
// lattice point, array_size = chunk_resolution + 2*margin + 1 samples per
// axis, constructed so a single chunk's interior plus a one-sample margin
// on every side both fit. Grounded on terrain/compressed/chunk.go's packed
// []byte grid, generalised from a heightmap to a signed distance field.
type Array2 struct {
	data       []byte
	size       int     // samples per axis
	unitSize   float32 // world units between adjacent samples
	maxDistance float32
	modCount   uint64
}

// NewArray2 allocates a cleared (fully outside) sample array for a chunk of
// the given resolution, unit size and clamp distance.
func NewArray2(chunkResolution int, unitSize, maxDistance float32) *Array2 {
	size := chunkResolution + 2*Margin + 1
	a := &Array2{
		size:        size,
		unitSize:    unitSize,
		maxDistance: maxDistance,
		data:        make([]byte, size*size),
	}
	for i := range a.data {
		a.data[i] = MaxEncoded
	}
	return a
}

// Size returns the number of samples along one axis.
func (a *Array2) Size() int { return a.size }

// Bytes exposes the raw quantised sample grid, for handing to a
// sdfhost.TextureFactory (spec §6 "Texture factory ... accepting raw I8
// data"). Callers must not retain or mutate the returned slice past the
// array's next Add/Subtract/Clear.
func (a *Array2) Bytes() []byte { return a.data }

// ModificationCount is a monotonic counter bumped once per Add/Subtract/Clear
// call that actually changes a sample, or unconditionally for Clear (spec
// §4.2 "mesh update scheduling watches this counter").
func (a *Array2) ModificationCount() uint64 { return a.modCount }

func (a *Array2) index(ix, iy int) int { return iy*a.size + ix }

// localOf converts a sample-space index to the chunk-local world position
// its lattice point represents: index 0 is `margin` units before the
// chunk's own origin.
func (a *Array2) localOf(ix, iy int) sdfshape.Vec2 {
	return sdfshape.Vec2{
		X: (float32(ix) - Margin) * a.unitSize,
		Y: (float32(iy) - Margin) * a.unitSize,
	}
}

// sampleRange converts a shape's local-space AABB into an inclusive range
// of sample indices that might be touched, clamped to the grid (spec §4.2
// "sample range selection via floor((w/unit_size)+margin) / ceil(...)").
func (a *Array2) sampleRange(b sdfshape.AABB2) (minX, minY, maxX, maxY int) {
	minX = a.clampIndex(math32.Floor(b.Min.X/a.unitSize) + Margin)
	minY = a.clampIndex(math32.Floor(b.Min.Y/a.unitSize) + Margin)
	maxX = a.clampIndex(math32.Ceil(b.Max.X/a.unitSize) + Margin)
	maxY = a.clampIndex(math32.Ceil(b.Max.Y/a.unitSize) + Margin)
	return
}

func (a *Array2) clampIndex(f float32) int {
	i := int(f)
	if i < 0 {
		return 0
	}
	if i > a.size-1 {
		return a.size - 1
	}
	return i
}

// Add unions shape into the array: every touched sample's encoded value is
// replaced with the minimum of itself and encode(shape.Sample(p)) (spec
// §4.2, "union = min of encoded values"). Returns whether any sample
// actually changed.
func (a *Array2) Add(shape sdfshape.Shape2D) bool {
	return a.apply(shape, false)
}

// Subtract carves shape out of the array: every touched sample's encoded
// value is replaced with the maximum of itself and MaxEncoded -
// encode(shape.Sample(p)) (spec §4.2, "difference = max of encoded
// values"). Returns whether any sample actually changed.
func (a *Array2) Subtract(shape sdfshape.Shape2D) bool {
	return a.apply(shape, true)
}

func (a *Array2) apply(shape sdfshape.Shape2D, subtract bool) bool {
	b := shape.Bounds()
	if b.IsEmpty() {
		// Unbounded shapes (half-planes, cellular noise) touch every
		// sample in the array; the caller is responsible for clipping
		// them to a bounded region first (spec §4.4).
		b = sdfshape.AABB2From(a.localOf(0, 0), a.localOf(a.size-1, a.size-1))
	}

	minX, minY, maxX, maxY := a.sampleRange(b)
	changed := false
	for iy := minY; iy <= maxY; iy++ {
		for ix := minX; ix <= maxX; ix++ {
			d := shape.Sample(a.localOf(ix, iy))
			if d >= a.maxDistance {
				continue
			}
			idx := a.index(ix, iy)
			enc := Encode(d, a.maxDistance)
			var next byte
			if subtract {
				carved := MaxEncoded - enc
				if carved > a.data[idx] {
					next = carved
				} else {
					next = a.data[idx]
				}
			} else {
				if enc < a.data[idx] {
					next = enc
				} else {
					next = a.data[idx]
				}
			}
			if next != a.data[idx] {
				a.data[idx] = next
				changed = true
			}
		}
	}
	if changed {
		a.modCount++
	}
	return changed
}

// Clear resets every sample to fully outside (solid=false) or fully inside
// (solid=true), unconditionally bumping the modification count even if the
// array was already in that state (spec §4.2 "Clear always counts as a
// change").
func (a *Array2) Clear(solid bool) {
	v := byte(MaxEncoded)
	if solid {
		v = 0
	}
	for i := range a.data {
		a.data[i] = v
	}
	a.modCount++
}

// At returns the decoded signed distance at the given sample index, mainly
// for tests and debug rendering.
func (a *Array2) At(ix, iy int) float32 {
	return Decode(a.data[a.index(ix, iy)], a.maxDistance)
}

// WriteTo hands the raw sample grid to an externally supplied mesh writer:
// the byte slice, the index of the chunk's own local origin (past the
// margin), and the stride between rows (spec §1 "WriteTo(writer,
// resource)", §6 "mesh writer rental pool"). Extraction itself (e.g.
// marching squares/cubes) is entirely the host's responsibility; the core
// never walks triangles.
func (a *Array2) WriteTo(ctx context.Context, w sdfhost.MeshWriter2D) error {
	baseIndex := a.index(Margin, Margin)
	return w.WriteGrid2(ctx, a.data, baseIndex, a.size)
}
