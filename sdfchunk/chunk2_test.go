// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfchunk

import (
	"context"
	"testing"
	"time"

	"github.com/brinewave/sdfworld/sdftick"
)

// A second pending task of the same kind replaces the first rather than
// queuing alongside it, so draining runs only the later closure.
func TestChunk2_SupersededMainThreadTaskDoesNotRun(t *testing.T) {
	c := NewChunk2(Key2{}, uint32(1), 4, 16, 4, ChunkHooks2{}, nil)

	var ran []string
	c.EnqueueLayerTexture(func(ctx context.Context) { ran = append(ran, "first") })
	c.EnqueueLayerTexture(func(ctx context.Context) { ran = append(ran, "second") })

	budget := sdftick.NewBudget(time.Now(), time.Second)
	c.DrainPendingMainThreadTasks(context.Background(), budget)

	if len(ran) != 1 || ran[0] != "second" {
		t.Fatalf("expected only the superseding closure to run, got %v", ran)
	}
}

func TestChunk2_DrainStopsAtExhaustedBudget(t *testing.T) {
	c := NewChunk2(Key2{}, uint32(1), 4, 16, 4, ChunkHooks2{}, nil)

	var ran []string
	c.EnqueueLayerTexture(func(ctx context.Context) { ran = append(ran, "texture") })
	c.enqueueMainThread(kindUpdateRenderMeshes, func(ctx context.Context) { ran = append(ran, "render") })

	exhausted := sdftick.NewBudget(time.Now().Add(-time.Hour), time.Nanosecond)
	c.DrainPendingMainThreadTasks(context.Background(), exhausted)

	if len(ran) != 0 {
		t.Fatalf("expected an already-exhausted budget to run nothing, got %v", ran)
	}
}
