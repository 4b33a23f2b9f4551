// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// Disc2D is a filled circle (the 2D "sphere" of spec §4.1's minimum set).
type Disc2D struct {
	Center Vec2
	Radius float32
}

func (d Disc2D) TypeName() string { return "disc2" }

func (d Disc2D) Sample(p Vec2) float32 {
	return p.Distance(d.Center) - d.Radius
}

func (d Disc2D) Bounds() AABB2 {
	return AABB2Centered(d.Center, Vec2{X: d.Radius, Y: d.Radius})
}

func (d Disc2D) Write(w *Writer) {
	w.WriteVec2(d.Center)
	w.WriteFloat32(d.Radius)
}

func ReadDisc2D(r *Reader) (Shape2D, error) {
	center, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	radius, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return Disc2D{Center: center, Radius: radius}, nil
}

// Sphere3D is a filled sphere.
type Sphere3D struct {
	Center Vec3
	Radius float32
}

func (s Sphere3D) TypeName() string { return "sphere3" }

func (s Sphere3D) Sample(p Vec3) float32 {
	return p.Distance(s.Center) - s.Radius
}

func (s Sphere3D) Bounds() AABB3 {
	return AABB3Centered(s.Center, Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius})
}

func (s Sphere3D) Write(w *Writer) {
	w.WriteVec3(s.Center)
	w.WriteFloat32(s.Radius)
}

func ReadSphere3D(r *Reader) (Shape3D, error) {
	center, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	radius, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return Sphere3D{Center: center, Radius: radius}, nil
}
