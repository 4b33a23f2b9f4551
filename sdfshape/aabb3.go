// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// AABB3 is the 3D counterpart of AABB2, same min/max-corner convention.
type AABB3 struct {
	Min Vec3
	Max Vec3
}

var EmptyAABB3 = AABB3{}

func (a AABB3) IsEmpty() bool {
	return a == EmptyAABB3
}

func AABB3From(min, max Vec3) AABB3 {
	return AABB3{Min: min, Max: max}
}

func AABB3Centered(center, halfExtents Vec3) AABB3 {
	return AABB3{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

func (a AABB3) Intersects(b AABB3) bool {
	return a.Max.X >= b.Min.X && a.Min.X <= b.Max.X &&
		a.Max.Y >= b.Min.Y && a.Min.Y <= b.Max.Y &&
		a.Max.Z >= b.Min.Z && a.Min.Z <= b.Max.Z
}

func (a AABB3) Contains(b AABB3) bool {
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y && a.Min.Z <= b.Min.Z &&
		a.Max.X >= b.Max.X && a.Max.Y >= b.Max.Y && a.Max.Z >= b.Max.Z
}

func (a AABB3) Translate(offset Vec3) AABB3 {
	a.Min = a.Min.Add(offset)
	a.Max = a.Max.Add(offset)
	return a
}

func (a AABB3) Union(b AABB3) AABB3 {
	return AABB3{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

func (a AABB3) Intersect(b AABB3) AABB3 {
	return AABB3{Min: a.Min.Max(b.Min), Max: a.Max.Min(b.Max)}
}
