// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfreplicate"
	"github.com/brinewave/sdfworld/sdfshape"
	"github.com/brinewave/sdfworld/sdftick"
	"github.com/brinewave/sdfworld/sdfworld"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const (
	terrainResource = uint32(1)
	tickPeriod      = sdftick.TickPeriod
	debugPeriod     = time.Second * 5
)

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 1, "cellular noise seed")
	flag.Parse()

	logger := stdoutLogger{}
	pool := newGoroutinePool()
	registry := sdfshape.DefaultRegistry2D()

	world := sdfworld.NewWorld2(pool, registry, logger)
	world.SetMeshWriterPool(&debugMeshWriterPool{})
	world.AddLayer(terrainResource, sdfworld.LayerOptions{
		Quality: sdfworld.Quality{
			ChunkSize:       16,
			ChunkResolution: 16,
			MaxDistance:     4,
		},
		Material:     "terrain",
		HasCollision: true,
		NewSceneObject: func(key any) sdfhost.SceneObject {
			return &debugSceneObject{key: key}
		},
		NewPhysicsBody: func(key any) sdfhost.PhysicsBody {
			return &debugPhysicsBody{key: key}
		},
		TextureFactory: debugTextureFactory{},
	})

	ctx := context.Background()

	// A box union, matching the spec's first concrete scenario.
	world.AddAsync(ctx, terrainResource, sdfshape.Box2D{
		Center:      sdfshape.Vec2{},
		HalfExtents: sdfshape.Vec2{X: 8, Y: 8},
	})

	// Cellular noise clipped to a bounded region (spec §4.4 affected_chunks
	// note: an unbounded shape must be clipped before it can be applied).
	noise := sdfshape.CellularNoise2D{Seed: seed, CellSize: sdfshape.Vec2{X: 4, Y: 4}, DistanceOffset: 0.5}
	clip := sdfshape.Box2D{Center: sdfshape.Vec2{X: 40}, HalfExtents: sdfshape.Vec2{X: 20, Y: 20}}
	world.AddAsync(ctx, terrainResource, sdfshape.Intersect2D{A: noise, B: clip})

	// A perlin heightfield, also clipped before it can be applied.
	height := sdfshape.NewHeightField2D(seed, 0.1, 6)
	heightClip := sdfshape.Box2D{Center: sdfshape.Vec2{X: -40}, HalfExtents: sdfshape.Vec2{X: 20, Y: 20}}
	world.AddAsync(ctx, terrainResource, sdfshape.Intersect2D{A: height, B: heightClip})

	server := runReplicationDemo(world, registry)

	ticker := time.NewTicker(tickPeriod)
	debugTicker := time.NewTicker(debugPeriod)
	defer ticker.Stop()
	defer debugTicker.Stop()

	deadline := time.Now().Add(3 * debugPeriod)
	for time.Now().Before(deadline) {
		select {
		case <-ticker.C:
			world.Tick(ctx, sdftick.NewBudget(time.Now(), sdftick.DefaultBudget))
		case <-debugTicker.C:
			fmt.Print(world.Debug())
			if dump, err := server.DebugJSON(); err == nil {
				fmt.Println(dump)
			}
		}
	}
}

// runReplicationDemo exercises the modification log, a replication server
// tick, an observer applying a frame, and a zstd-compressed snapshot of
// the resulting log -- a catch-up path a reconnecting observer could use
// instead of replaying every modification individually (SPEC_FULL.md §12).
// The returned server is kept ticking so the caller's debug loop can dump
// its cursor table.
func runReplicationDemo(world *sdfworld.World2, registry *sdfshape.Registry2D) *sdfreplicate.Server {
	codec := sdfreplicate.Uint32ResourceCodec{}
	server := sdfreplicate.NewServer(codec)

	observerID := sdfhost.ObserverID(mustUUIDSeed())
	server.AddObserver(observerID)

	log, clearCount := world.EncodeLog()
	var frames [][]byte
	server.Tick(log, clearCount, func(id sdfhost.ObserverID, frame []byte) {
		frames = append(frames, frame)
	})

	observer := sdfreplicate.NewObserver2(registry, func() {
		fmt.Println("observer: local clear")
	})
	for _, frame := range frames {
		err := observer.Apply(frame, codec, func(op byte, resource interface{}, shape sdfshape.Shape2D) {
			fmt.Printf("observer: applying op=%d resource=%v\n", op, resource)
		})
		if err != nil {
			fmt.Println("observer: apply error:", err)
		}
	}

	snapshot, err := zstdSnapshot(log)
	if err != nil {
		fmt.Println("snapshot error:", err)
		return server
	}
	fmt.Printf("zstd snapshot: %d modifications compressed to %d bytes\n", len(log), len(snapshot))
	return server
}

func zstdSnapshot(log []sdfreplicate.LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	for _, e := range log {
		if _, err := w.Write(e.Shape); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mustUUIDSeed mints a demo observer id from a fresh UUID's first 8 bytes;
// a real host would keep the UUID itself as the session identity and map
// it to a small ObserverID for the replication cursor table.
func mustUUIDSeed() uint64 {
	id := uuid.New()
	var v uint64
	for _, b := range id[:8] {
		v = v<<8 | uint64(b)
	}
	return v
}
