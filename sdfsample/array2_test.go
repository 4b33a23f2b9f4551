// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfsample

import (
	"testing"

	"github.com/brinewave/sdfworld/sdfshape"
)

func TestArray2_AddMarksChanged(t *testing.T) {
	a := NewArray2(8, 1.0, 4.0)
	disc := sdfshape.Disc2D{Center: sdfshape.Vec2{}, Radius: 2}

	before := a.ModificationCount()
	if changed := a.Add(disc); !changed {
		t.Fatal("expected Add to change samples")
	}
	if a.ModificationCount() != before+1 {
		t.Fatalf("expected modification count to advance by 1, got %d -> %d", before, a.ModificationCount())
	}

	// The disc is centred on the chunk-local origin, which sits at sample
	// index Margin; that sample must now read solidly inside.
	center := Margin
	if d := a.At(center, center); d >= 0 {
		t.Errorf("expected center inside after Add, got %v", d)
	}
}

func TestArray2_AddThenSubtractSameShapeIsEmpty(t *testing.T) {
	a := NewArray2(8, 1.0, 4.0)
	disc := sdfshape.Disc2D{Center: sdfshape.Vec2{}, Radius: 2}

	a.Add(disc)
	a.Subtract(disc)

	for iy := 0; iy < a.size; iy++ {
		for ix := 0; ix < a.size; ix++ {
			if a.data[a.index(ix, iy)] != MaxEncoded {
				t.Fatalf("expected fully outside after add+subtract of same shape at (%d,%d), got %d", ix, iy, a.data[a.index(ix, iy)])
			}
		}
	}
}

func TestArray2_ReAddAfterSubtractReportsChanged(t *testing.T) {
	a := NewArray2(8, 1.0, 4.0)
	disc := sdfshape.Disc2D{Center: sdfshape.Vec2{}, Radius: 2}

	a.Add(disc)
	a.Subtract(disc)

	if changed := a.Add(disc); !changed {
		t.Fatal("expected re-Add after Subtract to report a change")
	}
}

func TestArray2_AddIdempotent(t *testing.T) {
	a := NewArray2(8, 1.0, 4.0)
	disc := sdfshape.Disc2D{Center: sdfshape.Vec2{}, Radius: 2}

	a.Add(disc)
	if changed := a.Add(disc); changed {
		t.Error("expected repeating the same Add to report no change")
	}
}

func TestArray2_DisjointShapeIsNoop(t *testing.T) {
	a := NewArray2(8, 1.0, 4.0)
	far := sdfshape.Disc2D{Center: sdfshape.Vec2{X: 1000, Y: 1000}, Radius: 1}

	if changed := a.Add(far); changed {
		t.Error("expected a far-away disjoint shape to leave the array unchanged")
	}
}

func TestArray2_ClearAlwaysCounts(t *testing.T) {
	a := NewArray2(8, 1.0, 4.0)
	before := a.ModificationCount()
	a.Clear(false)
	if a.ModificationCount() != before+1 {
		t.Error("expected Clear to unconditionally bump modification count")
	}
	a.Clear(false)
	if a.ModificationCount() != before+2 {
		t.Error("expected a second identical Clear to still bump modification count")
	}
}

func TestArray2_SubtractPolaritySymmetricWithAdd(t *testing.T) {
	const maxDistance = 4.0
	a := NewArray2(8, 1.0, maxDistance)
	box := sdfshape.Box2D{Center: sdfshape.Vec2{}, HalfExtents: sdfshape.Vec2{X: 1, Y: 1}}

	a.Subtract(box)
	// The box is centred on the chunk-local origin (sample index Margin).
	// Inside the subtracted shape the sample must read as fully outside
	// (encoded MaxEncoded): Subtract only ever raises encoded values.
	center := Margin
	if a.data[a.index(center, center)] != MaxEncoded {
		t.Errorf("expected fully carved-out center, got %d", a.data[a.index(center, center)])
	}
}
