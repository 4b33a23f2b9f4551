// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfworld

import (
	"context"
	"testing"

	"github.com/brinewave/sdfworld/sdfchunk"
	"github.com/brinewave/sdfworld/sdfshape"
)

const terrainResource = uint32(1)

func newTestWorld2() *World2 {
	w := NewWorld2(fakePool{}, sdfshape.DefaultRegistry2D(), nil)
	w.AddLayer(terrainResource, LayerOptions{
		Quality: Quality{ChunkSize: 16, ChunkResolution: 8, MaxDistance: 4},
	})
	return w
}

// A box spanning [-8,8] on a 16-unit chunk grid touches exactly the four
// chunks surrounding the origin.
func TestWorld2_BoxUnionTouchesFourChunks(t *testing.T) {
	w := newTestWorld2()
	w.AddAsync(context.Background(), terrainResource, sdfshape.Box2D{
		HalfExtents: sdfshape.Vec2{X: 8, Y: 8},
	})

	layer, ok := w.layer(terrainResource)
	if !ok {
		t.Fatal("layer missing")
	}
	if got := len(layer.chunks); got != 4 {
		t.Fatalf("expected 4 chunks, got %d", got)
	}
	for _, key := range []sdfchunk.Key2{{X: -1, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 0}} {
		if _, ok := layer.chunks[key]; !ok {
			t.Fatalf("missing expected chunk key %v", key)
		}
	}
}

// Unbounded noise clipped by Intersect2D only touches the chunks overlapping
// the clip shape, never the whole lattice.
func TestWorld2_ClippedNoiseTouchesOnlyClipBounds(t *testing.T) {
	w := newTestWorld2()
	noise := sdfshape.CellularNoise2D{Seed: 7, CellSize: sdfshape.Vec2{X: 4, Y: 4}, DistanceOffset: 0.5}
	clip := sdfshape.Box2D{Center: sdfshape.Vec2{X: 40}, HalfExtents: sdfshape.Vec2{X: 8, Y: 8}}
	shape := sdfshape.Intersect2D{A: noise, B: clip}

	keys := w.affectedChunks(shape, Quality{ChunkSize: 16})
	if len(keys) == 0 {
		t.Fatal("clipped noise should still yield a bounded chunk set")
	}
	for _, k := range keys {
		origin := k.Origin(16)
		if origin.X+16 < clip.Center.X-clip.HalfExtents.X || origin.X > clip.Center.X+clip.HalfExtents.X {
			t.Fatalf("chunk %v falls outside clip box", k)
		}
	}

	w.AddAsync(context.Background(), terrainResource, shape)
	layer, _ := w.layer(terrainResource)
	if len(layer.chunks) != len(keys) {
		t.Fatalf("expected %d chunks from clipped noise, got %d", len(keys), len(layer.chunks))
	}
}

// An unclipped, unbounded shape affects no chunks at all.
func TestWorld2_UnboundedShapeAffectsNoChunks(t *testing.T) {
	w := newTestWorld2()
	noise := sdfshape.CellularNoise2D{Seed: 1, CellSize: sdfshape.Vec2{X: 4, Y: 4}, DistanceOffset: 0.5}
	w.AddAsync(context.Background(), terrainResource, noise)

	layer, _ := w.layer(terrainResource)
	if len(layer.chunks) != 0 {
		t.Fatalf("expected 0 chunks for an unbounded shape, got %d", len(layer.chunks))
	}
}

// A clear issued right after a modification leaves the world with no
// chunks and no registered layers, and a later modification against the
// now-unregistered resource is a harmless no-op rather than a panic.
func TestWorld2_ClearAfterModificationLeavesNoChunks(t *testing.T) {
	w := newTestWorld2()
	w.AddAsync(context.Background(), terrainResource, sdfshape.Box2D{HalfExtents: sdfshape.Vec2{X: 8, Y: 8}})
	w.ClearAsync()

	if _, ok := w.layer(terrainResource); ok {
		t.Fatal("expected layer to be dropped by ClearAsync")
	}

	w.AddAsync(context.Background(), terrainResource, sdfshape.Box2D{HalfExtents: sdfshape.Vec2{X: 8, Y: 8}})
	if _, ok := w.layer(terrainResource); ok {
		t.Fatal("a modification against an unregistered resource must not re-create its layer")
	}
	if log, clearCount := w.ModificationLog(); len(log) != 1 || clearCount != 1 {
		t.Fatalf("expected the post-clear modification to still be logged, got log=%d clearCount=%d", len(log), clearCount)
	}
}
