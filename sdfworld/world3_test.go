// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfworld

import (
	"context"
	"testing"

	"github.com/brinewave/sdfworld/sdfchunk"
	"github.com/brinewave/sdfworld/sdfshape"
)

// A box spanning [-8,8] on every axis, on a 16-unit chunk grid, touches
// exactly the eight chunks surrounding the origin -- key (-1,-1,-1) and
// its seven neighbours.
func TestWorld3_BoxUnionTouchesEightChunks(t *testing.T) {
	w := NewWorld3(fakePool{}, sdfshape.DefaultRegistry3D(), nil)
	w.AddLayer(terrainResource, LayerOptions{
		Quality: Quality{ChunkSize: 16, ChunkResolution: 8, MaxDistance: 4},
	})

	w.AddAsync(context.Background(), terrainResource, sdfshape.Box3D{
		HalfExtents: sdfshape.Vec3{X: 8, Y: 8, Z: 8},
	})

	layer, ok := w.layer(terrainResource)
	if !ok {
		t.Fatal("layer missing")
	}
	if got := len(layer.chunks); got != 8 {
		t.Fatalf("expected 8 chunks, got %d", got)
	}
	for _, x := range []int32{-1, 0} {
		for _, y := range []int32{-1, 0} {
			for _, z := range []int32{-1, 0} {
				key := sdfchunk.Key3{X: x, Y: y, Z: z}
				if _, ok := layer.chunks[key]; !ok {
					t.Fatalf("missing expected chunk key %v", key)
				}
			}
		}
	}
}
