// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfworld

import (
	"context"

	"github.com/brinewave/sdfworld/sdfchunk"
	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfshape"
)

// Regenerator2 supplies the base field a 2D layer should hold before any
// modification is replayed onto it, e.g. a procedural terrain/cave shape
// (SPEC_FULL.md §13 "Repair/regeneration hook"). Grounded on
// terrain/compressed.Terrain.Repair(), which re-seeds a terrain chunk from
// its Source rather than leaving it blank.
type Regenerator2 interface {
	Regenerate(resource sdfhost.Resource) sdfshape.Shape2D
}

// Repair replays resource's base shape (if a Regenerator2 is configured)
// followed by the full modification log for that resource, restoring a
// layer to a consistent state without trusting any cached sample data.
// This is a supplemented maintenance operation; nothing in spec §4 needs
// it during normal operation, but a host recovering from a corrupted
// on-disk mesh/collision cache (outside the core's own persistence-free
// scope) can use it to rebuild purely from the log.
func (w *World2) Repair(ctx context.Context, resource sdfhost.Resource, regen Regenerator2) {
	layer, ok := w.layer(resource)
	if !ok {
		return
	}
	layer.mu.Lock()
	layer.chunks = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
	layer.needsMeshUpdate = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
	layer.mu.Unlock()

	w.mu.Lock()
	log := make([]Modification2, len(w.log))
	copy(log, w.log)
	w.mu.Unlock()

	if regen != nil {
		if base := regen.Regenerate(resource); base != nil {
			w.AddAsync(ctx, resource, base)
		}
	}
	for _, m := range log {
		if m.Resource != resource {
			continue
		}
		if m.Operator == OpAdd {
			w.AddAsync(ctx, m.Resource, m.Shape)
		} else {
			w.SubtractAsync(ctx, m.Resource, m.Shape)
		}
	}
}
