// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// HalfPlane2D is everything on the inside of an infinite line through
// Point, oriented by the outward-pointing unit Normal. Like CellularNoise,
// it is unbounded, so Bounds returns EmptyAABB2 (spec §4.1).
type HalfPlane2D struct {
	Point  Vec2
	Normal Vec2
}

func (h HalfPlane2D) TypeName() string { return "halfplane2" }

func (h HalfPlane2D) Sample(p Vec2) float32 {
	return p.Sub(h.Point).Dot(h.Normal)
}

func (h HalfPlane2D) Bounds() AABB2 {
	return EmptyAABB2
}

func (h HalfPlane2D) Write(w *Writer) {
	w.WriteVec2(h.Point)
	w.WriteVec2(h.Normal)
}

func ReadHalfPlane2D(r *Reader) (Shape2D, error) {
	point, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	normal, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	return HalfPlane2D{Point: point, Normal: normal}, nil
}

// HalfSpace3D is the 3D counterpart of HalfPlane2D: everything on the inside
// of an infinite plane through Point with outward unit Normal.
type HalfSpace3D struct {
	Point  Vec3
	Normal Vec3
}

func (h HalfSpace3D) TypeName() string { return "halfspace3" }

func (h HalfSpace3D) Sample(p Vec3) float32 {
	return p.Sub(h.Point).Dot(h.Normal)
}

func (h HalfSpace3D) Bounds() AABB3 {
	return EmptyAABB3
}

func (h HalfSpace3D) Write(w *Writer) {
	w.WriteVec3(h.Point)
	w.WriteVec3(h.Normal)
}

func ReadHalfSpace3D(r *Reader) (Shape3D, error) {
	point, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	normal, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	return HalfSpace3D{Point: point, Normal: normal}, nil
}
