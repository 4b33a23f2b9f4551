// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import "github.com/chewxy/math32"

// Box2D is an axis-aligned rectangle (spec §4.1 concrete shape minimum set).
type Box2D struct {
	Center      Vec2
	HalfExtents Vec2
}

func (b Box2D) TypeName() string { return "box2" }

func (b Box2D) Sample(p Vec2) float32 {
	d := p.Sub(b.Center).Abs().Sub(b.HalfExtents)
	outside := Vec2{X: max32(d.X, 0), Y: max32(d.Y, 0)}.Length()
	inside := min32(max32(d.X, d.Y), 0)
	return outside + inside
}

func (b Box2D) Bounds() AABB2 {
	return AABB2Centered(b.Center, b.HalfExtents)
}

func (b Box2D) Write(w *Writer) {
	w.WriteVec2(b.Center)
	w.WriteVec2(b.HalfExtents)
}

func ReadBox2D(r *Reader) (Shape2D, error) {
	center, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	half, err := r.ReadVec2()
	if err != nil {
		return nil, err
	}
	return Box2D{Center: center, HalfExtents: half}, nil
}

// Box3D is an axis-aligned cuboid.
type Box3D struct {
	Center      Vec3
	HalfExtents Vec3
}

func (b Box3D) TypeName() string { return "box3" }

func (b Box3D) Sample(p Vec3) float32 {
	d := p.Sub(b.Center).Abs().Sub(b.HalfExtents)
	outside := Vec3{X: max32(d.X, 0), Y: max32(d.Y, 0), Z: max32(d.Z, 0)}.Length()
	inside := min32(max32(d.X, max32(d.Y, d.Z)), 0)
	return outside + inside
}

func (b Box3D) Bounds() AABB3 {
	return AABB3Centered(b.Center, b.HalfExtents)
}

func (b Box3D) Write(w *Writer) {
	w.WriteVec3(b.Center)
	w.WriteVec3(b.HalfExtents)
}

func ReadBox3D(r *Reader) (Shape3D, error) {
	center, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	half, err := r.ReadVec3()
	if err != nil {
		return nil, err
	}
	return Box3D{Center: center, HalfExtents: half}, nil
}

// clampf is used by Capsule's segment projection.
func clampf(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
