// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import "testing"

func TestRegistry2D_SortedByName(t *testing.T) {
	reg := NewRegistry2D(
		Shape2DEntry{Name: "zzz", New: ReadBox2D},
		Shape2DEntry{Name: "aaa", New: ReadDisc2D},
		Shape2DEntry{Name: "mmm", New: ReadCapsule2D},
	)

	if reg.index["aaa"] != 0 || reg.index["mmm"] != 1 || reg.index["zzz"] != 2 {
		t.Fatalf("expected sorted indices, got %+v", reg.index)
	}
}

func TestRegistry2D_WriteReadRoundTrip(t *testing.T) {
	reg := DefaultRegistry2D()

	shapes := []Shape2D{
		Box2D{Center: Vec2{X: 1, Y: 2}, HalfExtents: Vec2{X: 3, Y: 4}},
		Disc2D{Center: Vec2{X: -1}, Radius: 5},
		Capsule2D{A: Vec2{X: 1}, B: Vec2{X: 2, Y: 3}, Radius: 0.5},
		HalfPlane2D{Point: Vec2{Y: 1}, Normal: Vec2{Y: 1}},
		CellularNoise2D{Seed: 42, CellSize: Vec2{X: 2, Y: 2}, DistanceOffset: 0.1},
	}

	for _, shape := range shapes {
		w := NewWriter()
		reg.Write(w, shape)

		r := NewReader(w.Bytes())
		got, err := reg.Read(r)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if r.Remaining() != 0 {
			t.Errorf("expected exact read, %d bytes left over for %s", r.Remaining(), shape.TypeName())
		}
		if got.TypeName() != shape.TypeName() {
			t.Errorf("expected type %s, got %s", shape.TypeName(), got.TypeName())
		}
		// Sampled at a handful of points, the round-tripped shape must agree.
		for _, p := range []Vec2{{}, {X: 1, Y: 1}, {X: -3, Y: 2}} {
			if want, have := shape.Sample(p), got.Sample(p); !approx(want, have) {
				t.Errorf("%s: sample mismatch at %+v: want %v got %v", shape.TypeName(), p, want, have)
			}
		}
	}
}

func TestRegistry2D_UnknownIndexIsProtocolError(t *testing.T) {
	reg := DefaultRegistry2D()
	w := NewWriter()
	w.WriteUint32(9999)

	_, err := reg.Read(NewReader(w.Bytes()))
	if err == nil {
		t.Fatal("expected protocol error for unregistered index")
	}
}

func TestRegistry2D_WriteUnregisteredPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing an unregistered shape")
		}
	}()

	reg := NewRegistry2D(Shape2DEntry{Name: "disc2", New: ReadDisc2D})
	reg.Write(NewWriter(), Box2D{})
}
