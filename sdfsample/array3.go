// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfsample

import (
	"context"

	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfshape"
	"github.com/chewxy/math32"
)

// Array3 is the 3D counterpart of Array2.
type Array3 struct {
	data        []byte
	size        int
	unitSize    float32
	maxDistance float32
	modCount    uint64
}

// NewArray3 allocates a cleared (fully outside) sample array for a chunk of
// the given resolution, unit size and clamp distance.
func NewArray3(chunkResolution int, unitSize, maxDistance float32) *Array3 {
	size := chunkResolution + 2*Margin + 1
	a := &Array3{
		size:        size,
		unitSize:    unitSize,
		maxDistance: maxDistance,
		data:        make([]byte, size*size*size),
	}
	for i := range a.data {
		a.data[i] = MaxEncoded
	}
	return a
}

// Size returns the number of samples along one axis.
func (a *Array3) Size() int { return a.size }

// Bytes exposes the raw quantised sample grid, for handing to a
// sdfhost.TextureFactory (spec §6 "Texture factory ... accepting raw I8
// data"). Callers must not retain or mutate the returned slice past the
// array's next Add/Subtract/Clear.
func (a *Array3) Bytes() []byte { return a.data }

// ModificationCount is a monotonic counter bumped once per Add/Subtract/Clear
// call that actually changes a sample, or unconditionally for Clear.
func (a *Array3) ModificationCount() uint64 { return a.modCount }

func (a *Array3) index(ix, iy, iz int) int {
	return (iz*a.size+iy)*a.size + ix
}

func (a *Array3) localOf(ix, iy, iz int) sdfshape.Vec3 {
	return sdfshape.Vec3{
		X: (float32(ix) - Margin) * a.unitSize,
		Y: (float32(iy) - Margin) * a.unitSize,
		Z: (float32(iz) - Margin) * a.unitSize,
	}
}

func (a *Array3) sampleRange(b sdfshape.AABB3) (minX, minY, minZ, maxX, maxY, maxZ int) {
	minX = a.clampIndex(math32.Floor(b.Min.X/a.unitSize) + Margin)
	minY = a.clampIndex(math32.Floor(b.Min.Y/a.unitSize) + Margin)
	minZ = a.clampIndex(math32.Floor(b.Min.Z/a.unitSize) + Margin)
	maxX = a.clampIndex(math32.Ceil(b.Max.X/a.unitSize) + Margin)
	maxY = a.clampIndex(math32.Ceil(b.Max.Y/a.unitSize) + Margin)
	maxZ = a.clampIndex(math32.Ceil(b.Max.Z/a.unitSize) + Margin)
	return
}

func (a *Array3) clampIndex(f float32) int {
	i := int(f)
	if i < 0 {
		return 0
	}
	if i > a.size-1 {
		return a.size - 1
	}
	return i
}

// Add unions shape into the array (see Array2.Add).
func (a *Array3) Add(shape sdfshape.Shape3D) bool {
	return a.apply(shape, false)
}

// Subtract carves shape out of the array (see Array2.Subtract).
func (a *Array3) Subtract(shape sdfshape.Shape3D) bool {
	return a.apply(shape, true)
}

func (a *Array3) apply(shape sdfshape.Shape3D, subtract bool) bool {
	b := shape.Bounds()
	if b.IsEmpty() {
		b = sdfshape.AABB3From(a.localOf(0, 0, 0), a.localOf(a.size-1, a.size-1, a.size-1))
	}

	minX, minY, minZ, maxX, maxY, maxZ := a.sampleRange(b)
	changed := false
	for iz := minZ; iz <= maxZ; iz++ {
		for iy := minY; iy <= maxY; iy++ {
			for ix := minX; ix <= maxX; ix++ {
				d := shape.Sample(a.localOf(ix, iy, iz))
				if d >= a.maxDistance {
					continue
				}
				idx := a.index(ix, iy, iz)
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
	}
	if changed {
		a.modCount++
	}
	return changed
}

// Clear resets every sample to fully outside or fully inside, unconditionally
// bumping the modification count.
func (a *Array3) Clear(solid bool) {
	v := byte(MaxEncoded)
	if solid {
		v = 0
	}
	for i := range a.data {
		a.data[i] = v
	}
	a.modCount++
}

// At returns the decoded signed distance at the given sample index.
func (a *Array3) At(ix, iy, iz int) float32 {
	return Decode(a.data[a.index(ix, iy, iz)], a.maxDistance)
}

// WriteTo hands the raw sample grid to an externally supplied mesh writer.
func (a *Array3) WriteTo(ctx context.Context, w sdfhost.MeshWriter3D) error {
	baseIndex := a.index(Margin, Margin, Margin)
	return w.WriteGrid3(ctx, a.data, baseIndex, a.size, a.size*a.size)
}
