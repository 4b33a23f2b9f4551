// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// AABB2 is an axis-aligned bounding rectangle in world space, anchored at
// its minimum corner (unlike the teacher's center-anchored AABB, the core
// needs min-corner math for sample-range selection, so CornerCoordinates is
// dropped and the constructor takes the min corner directly).
type AABB2 struct {
	Min Vec2
	Max Vec2
}

// EmptyAABB2 is the canonical "infinite/unbounded" value: a shape with this
// as its Bounds() is sampled everywhere (spec §4.1).
var EmptyAABB2 = AABB2{}

// IsEmpty reports whether the AABB has the zero value, by convention the
// "default/unbounded" marker described in spec §4.1.
func (a AABB2) IsEmpty() bool {
	return a == EmptyAABB2
}

func AABB2From(min, max Vec2) AABB2 {
	return AABB2{Min: min, Max: max}
}

// AABB2Centered builds an AABB2 from a center point and half-extents.
func AABB2Centered(center, halfExtents Vec2) AABB2 {
	return AABB2{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Intersects reports whether a and b overlap.
func (a AABB2) Intersects(b AABB2) bool {
	return a.Max.X >= b.Min.X && a.Min.X <= b.Max.X && a.Max.Y >= b.Min.Y && a.Min.Y <= b.Max.Y
}

// Contains reports whether a fully contains b.
func (a AABB2) Contains(b AABB2) bool {
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y && a.Max.X >= b.Max.X && a.Max.Y >= b.Max.Y
}

// Translate shifts the AABB by offset.
func (a AABB2) Translate(offset Vec2) AABB2 {
	a.Min = a.Min.Add(offset)
	a.Max = a.Max.Add(offset)
	return a
}

// Union returns the smallest AABB2 containing both a and b.
func (a AABB2) Union(b AABB2) AABB2 {
	return AABB2{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Intersect returns the overlapping region of a and b. Callers must check
// Intersects first; a disjoint pair yields a degenerate (Min > Max) AABB2.
func (a AABB2) Intersect(b AABB2) AABB2 {
	return AABB2{Min: a.Min.Max(b.Min), Max: a.Max.Min(b.Max)}
}
