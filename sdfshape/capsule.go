// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// Capsule2D is the set of points within Radius of a line segment (spec
// §4.1's "capsule/line-segment").
type Capsule2D struct {
	A, B   Vec2
	Radius float32
}

func (c Capsule2D) TypeName() string { return "capsule2" }

func (c Capsule2D) Sample(p Vec2) float32 {
	ab := c.B.Sub(c.A)
	t := clampf(p.Sub(c.A).Dot(ab)/max32(ab.LengthSquared(), 1e-12), 0, 1)
	closest := c.A.AddScaled(ab, t)
	return p.Distance(closest) - c.Radius
}

func (c Capsule2D) Bounds() AABB2 {
	pad := Vec2{X: c.Radius, Y: c.Radius}
	return AABB2From(c.A.Min(c.B).Sub(pad), c.A.Max(c.B).Add(pad))
}

func (c Capsule2D) Write(w *Writer) {
	w.WriteVec2(c.A)
	w.WriteVec2(c.B)
	w.WriteFloat32(c.Radius)
}

func ReadCapsule2D(r *Reader) (Shape2D, error) {
	a, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	radius, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return Capsule2D{A: a, B: b, Radius: radius}, nil
}

// Capsule3D is the 3D counterpart: all points within Radius of a segment.
type Capsule3D struct {
	A, B   Vec3
	Radius float32
}

func (c Capsule3D) TypeName() string { return "capsule3" }

func (c Capsule3D) Sample(p Vec3) float32 {
	ab := c.B.Sub(c.A)
	t := clampf(p.Sub(c.A).Dot(ab)/max32(ab.LengthSquared(), 1e-12), 0, 1)
	closest := c.A.AddScaled(ab, t)
	return p.Distance(closest) - c.Radius
}

func (c Capsule3D) Bounds() AABB3 {
	pad := Vec3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return AABB3From(c.A.Min(c.B).Sub(pad), c.A.Max(c.B).Add(pad))
}

func (c Capsule3D) Write(w *Writer) {
	w.WriteVec3(c.A)
	w.WriteVec3(c.B)
	w.WriteFloat32(c.Radius)
}

func ReadCapsule3D(r *Reader) (Shape3D, error) {
	a, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	radius, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return Capsule3D{A: a, B: b, Radius: radius}, nil
}
