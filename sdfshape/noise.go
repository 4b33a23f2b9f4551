// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import "github.com/chewxy/math32"

// CellularNoise2D is Worley-style noise: the distance to the nearest
// jittered feature point of a hashed grid, minus DistanceOffset (spec
// §4.1). It has no finite bounds, so affected-chunk enumeration only
// touches it when it is clipped by another shape (e.g. via an intersection
// wrapper the caller composes), matching "sample everywhere".
type CellularNoise2D struct {
	Seed           int64
	CellSize       Vec2
	DistanceOffset float32
}

func (n CellularNoise2D) TypeName() string { return "cellularnoise2" }

func (n CellularNoise2D) Bounds() AABB2 {
	return EmptyAABB2
}

func (n CellularNoise2D) Sample(p Vec2) float32 {
	cell := Vec2{X: p.X / n.CellSize.X, Y: p.Y / n.CellSize.Y}
	cx := int64(math32.Floor(cell.X))
	cy := int64(math32.Floor(cell.Y))

	minSq := float32(1e30)
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			gx, gy := cx+dx, cy+dy
			fx, fy := cellHash2(n.Seed, gx, gy)
			feature := Vec2{
				X: (float32(gx) + fx) * n.CellSize.X,
				Y: (float32(gy) + fy) * n.CellSize.Y,
			}
			d := p.DistanceSquared(feature)
			if d < minSq {
				minSq = d
			}
		}
	}
	return math32.Sqrt(minSq) - n.DistanceOffset
}

func (n CellularNoise2D) Write(w *Writer) {
	w.WriteInt32(int32(n.Seed))
	w.WriteVec2(n.CellSize)
	w.WriteFloat32(n.DistanceOffset)
}

func ReadCellularNoise2D(r *Reader) (Shape2D, error) {
	seed, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	cellSize, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	offset, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return CellularNoise2D{Seed: int64(seed), CellSize: cellSize, DistanceOffset: offset}, nil
}

// CellularNoise3D is the 3D counterpart, with a 3x3x3 neighbour sweep.
type CellularNoise3D struct {
	Seed           int64
	CellSize       Vec3
	DistanceOffset float32
}

func (n CellularNoise3D) TypeName() string { return "cellularnoise3" }

func (n CellularNoise3D) Bounds() AABB3 {
	return EmptyAABB3
}

func (n CellularNoise3D) Sample(p Vec3) float32 {
	cell := Vec3{X: p.X / n.CellSize.X, Y: p.Y / n.CellSize.Y, Z: p.Z / n.CellSize.Z}
	cx := int64(math32.Floor(cell.X))
	cy := int64(math32.Floor(cell.Y))
	cz := int64(math32.Floor(cell.Z))

	minSq := float32(1e30)
	for dz := int64(-1); dz <= 1; dz++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				gx, gy, gz := cx+dx, cy+dy, cz+dz
				fx, fy, fz := cellHash3(n.Seed, gx, gy, gz)
				feature := Vec3{
					X: (float32(gx) + fx) * n.CellSize.X,
					Y: (float32(gy) + fy) * n.CellSize.Y,
					Z: (float32(gz) + fz) * n.CellSize.Z,
				}
				d := p.DistanceSquared(feature)
				if d < minSq {
					minSq = d
				}
			}
		}
	}
	return math32.Sqrt(minSq) - n.DistanceOffset
}

func (n CellularNoise3D) Write(w *Writer) {
	w.WriteInt32(int32(n.Seed))
	w.WriteVec3(n.CellSize)
	w.WriteFloat32(n.DistanceOffset)
}

func ReadCellularNoise3D(r *Reader) (Shape3D, error) {
	seed, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	cellSize, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	offset, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return CellularNoise3D{Seed: int64(seed), CellSize: cellSize, DistanceOffset: offset}, nil
}

// hash64 is a splitmix64-style integer mixer. No pack example hashes a
// lattice coordinate for jittered feature points, so this is plain stdlib
// bit mixing rather than an adapted library (see DESIGN.md).
func hash64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// to01 turns the top 16 bits of a hash into a value in [0, 1).
func to01(h uint64) float32 {
	return float32(h>>48) / 65536.0
}

// cellHash2 hashes (seed, x, y) twice with rotated arguments to obtain the
// feature point's jitter within its cell, per spec §4.1.
func cellHash2(seed, x, y int64) (fx, fy float32) {
	h1 := hash64(uint64(seed) ^ uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xBF58476D1CE4E5B9)
	h2 := hash64(uint64(seed) ^ uint64(y)*0x9E3779B97F4A7C15 ^ uint64(x)*0xBF58476D1CE4E5B9)
	return to01(h1), to01(h2)
}

// cellHash3 is cellHash2 extended with a z argument, rotated the same way.
func cellHash3(seed, x, y, z int64) (fx, fy, fz float32) {
	h1 := hash64(uint64(seed) ^ uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xBF58476D1CE4E5B9 ^ uint64(z)*0x94D049BB133111EB)
	h2 := hash64(uint64(seed) ^ uint64(y)*0x9E3779B97F4A7C15 ^ uint64(z)*0xBF58476D1CE4E5B9 ^ uint64(x)*0x94D049BB133111EB)
	h3 := hash64(uint64(seed) ^ uint64(z)*0x9E3779B97F4A7C15 ^ uint64(x)*0xBF58476D1CE4E5B9 ^ uint64(y)*0x94D049BB133111EB)
	return to01(h1), to01(h2), to01(h3)
}
