// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// Translate2D wraps an inner shape so it samples as inner.Sample(p -
// Offset), with bounds shifted to match (spec §4.1). The chunk package uses
// this to translate a world-space shape into a chunk's local frame.
type Translate2D struct {
	Inner  Shape2D
	Offset Vec2
}

func (t Translate2D) TypeName() string { return "translate2" }

func (t Translate2D) Sample(p Vec2) float32 {
	return t.Inner.Sample(p.Sub(t.Offset))
}

func (t Translate2D) Bounds() AABB2 {
	b := t.Inner.Bounds()
	if b.IsEmpty() {
		return b
	}
	return b.Translate(t.Offset)
}

// Write/TypeName exist so Translate2D satisfies Shape2D, but a Translate is
// never itself sent over the wire (the chunk applies it locally); writing
// one is a programmer error.
func (t Translate2D) Write(w *Writer) {
	panic("sdfshape: Translate2D is not wire-serialisable")
}

// Translate3D is the 3D counterpart of Translate2D.
type Translate3D struct {
	Inner  Shape3D
	Offset Vec3
}

func (t Translate3D) TypeName() string { return "translate3" }

func (t Translate3D) Sample(p Vec3) float32 {
	return t.Inner.Sample(p.Sub(t.Offset))
}

func (t Translate3D) Bounds() AABB3 {
	b := t.Inner.Bounds()
	if b.IsEmpty() {
		return b
	}
	return b.Translate(t.Offset)
}

func (t Translate3D) Write(w *Writer) {
	panic("sdfshape: Translate3D is not wire-serialisable")
}

// Expand2D grows a shape's surface outward by Radius (a per-shape arithmetic
// helper mentioned in spec §4.1 as optional/non-core).
type Expand2D struct {
	Inner  Shape2D
	Radius float32
}

func (e Expand2D) TypeName() string { return "expand2" }

func (e Expand2D) Sample(p Vec2) float32 {
	return e.Inner.Sample(p) - e.Radius
}

func (e Expand2D) Bounds() AABB2 {
	b := e.Inner.Bounds()
	if b.IsEmpty() {
		return b
	}
	pad := Vec2{X: e.Radius, Y: e.Radius}
	return AABB2From(b.Min.Sub(pad), b.Max.Add(pad))
}

func (e Expand2D) Write(w *Writer) {
	panic("sdfshape: Expand2D is not wire-serialisable")
}

// Intersect2D samples as the max (more restrictive/outside) of its two
// inputs, i.e. constructive intersection; used to clip an unbounded shape
// such as CellularNoise2D to a finite region (spec §4.4 affected_chunks note).
type Intersect2D struct {
	A, B Shape2D
}

func (i Intersect2D) TypeName() string { return "intersect2" }

func (i Intersect2D) Sample(p Vec2) float32 {
	return max32(i.A.Sample(p), i.B.Sample(p))
}

// Bounds is the intersection of the two inputs' bounds. If either input is
// unbounded, the other's bounds (if any) govern; if both are unbounded the
// result is still unbounded.
func (i Intersect2D) Bounds() AABB2 {
	ba, bb := i.A.Bounds(), i.B.Bounds()
	switch {
	case ba.IsEmpty() && bb.IsEmpty():
		return EmptyAABB2
	case ba.IsEmpty():
		return bb
	case bb.IsEmpty():
		return ba
	default:
		return ba.Intersect(bb)
	}
}

func (i Intersect2D) Write(w *Writer) {
	panic("sdfshape: Intersect2D is not wire-serialisable")
}

// Union2D samples as the min (more permissive/inside) of its two inputs.
type Union2D struct {
	A, B Shape2D
}

func (u Union2D) TypeName() string { return "union2" }

func (u Union2D) Sample(p Vec2) float32 {
	return min32(u.A.Sample(p), u.B.Sample(p))
}

func (u Union2D) Bounds() AABB2 {
	ba, bb := u.A.Bounds(), u.B.Bounds()
	if ba.IsEmpty() || bb.IsEmpty() {
		return EmptyAABB2
	}
	return ba.Union(bb)
}

func (u Union2D) Write(w *Writer) {
	panic("sdfshape: Union2D is not wire-serialisable")
}
