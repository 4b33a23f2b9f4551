// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import "testing"

func TestBox2D_Sample(t *testing.T) {
	box := Box2D{Center: Vec2{}, HalfExtents: Vec2{X: 2, Y: 2}}

	if d := box.Sample(Vec2{}); d >= 0 {
		t.Errorf("expected center inside, got %v", d)
	}
	if d := box.Sample(Vec2{X: 10}); d <= 0 {
		t.Errorf("expected far point outside, got %v", d)
	}
	if d := box.Sample(Vec2{X: 2}); !approx(d, 0) {
		t.Errorf("expected boundary point ~0, got %v", d)
	}
}

func TestDisc2D_Bounds(t *testing.T) {
	d := Disc2D{Center: Vec2{X: 1, Y: 1}, Radius: 3}
	b := d.Bounds()
	if !approx(b.Min.X, -2) || !approx(b.Max.X, 4) {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestHalfPlane2D_Unbounded(t *testing.T) {
	h := HalfPlane2D{Point: Vec2{}, Normal: Vec2{X: 1}}
	if !h.Bounds().IsEmpty() {
		t.Error("expected half-plane bounds to be empty/unbounded")
	}
	if d := h.Sample(Vec2{X: -5}); d >= 0 {
		t.Errorf("expected point behind plane to be inside (negative), got %v", d)
	}
}

func TestCellularNoise2D_Unbounded(t *testing.T) {
	n := CellularNoise2D{Seed: 1, CellSize: Vec2{X: 4, Y: 4}, DistanceOffset: 0.5}
	if !n.Bounds().IsEmpty() {
		t.Error("expected cellular noise bounds to be empty/unbounded")
	}
	// Sampling must not panic and must be finite for a range of points.
	for x := float32(-20); x < 20; x += 3.3 {
		for y := float32(-20); y < 20; y += 3.3 {
			d := n.Sample(Vec2{X: x, Y: y})
			if d != d { // NaN check
				t.Fatalf("NaN sample at (%v, %v)", x, y)
			}
		}
	}
}

func TestTranslate2D_ShiftsSampleAndBounds(t *testing.T) {
	inner := Disc2D{Center: Vec2{}, Radius: 1}
	tr := Translate2D{Inner: inner, Offset: Vec2{X: 5, Y: 0}}

	if d := tr.Sample(Vec2{X: 5}); !approx(d, -1) {
		t.Errorf("expected translated center to sample -1, got %v", d)
	}

	b := tr.Bounds()
	if !approx(b.Min.X, 4) || !approx(b.Max.X, 6) {
		t.Errorf("unexpected translated bounds %+v", b)
	}
}

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.01
}
