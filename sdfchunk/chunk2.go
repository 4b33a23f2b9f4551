// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sdfchunk implements the per-chunk mutation/mesh scheduling of
// spec §4.3: one SampleArray per chunk, serialised background mutation,
// and a three-slot main-thread task queue with replacement semantics.
// Grounded on the chunk lifecycle of terrain/compressed/chunk.go
// (lazily-created, dense-grid-owning) generalised with the scheduling
// idiom of hub.go's own tick-driven drain loop.
package sdfchunk

import (
	"context"
	"sync"
	"time"

	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfsample"
	"github.com/brinewave/sdfworld/sdfshape"
	"github.com/brinewave/sdfworld/sdftick"
)

// Key2 is a 2D chunk lattice index (spec §4.1 "key is an integer lattice
// index").
type Key2 struct {
	X, Y int32
}

// Origin returns the chunk's world-space origin, key * chunk_size.
func (k Key2) Origin(chunkSize float32) sdfshape.Vec2 {
	return sdfshape.Vec2{X: float32(k.X) * chunkSize, Y: float32(k.Y) * chunkSize}
}

// BoolTask is a background unit of work that resolves to whether it
// changed anything, chained behind the chunk's previous modification so
// per-chunk mutations apply in acceptance order (spec §4.3 "Serialisation
// of modifications").
type BoolTask struct {
	done    chan struct{}
	changed bool
}

// Wait blocks until the task completes and reports whether it changed any
// sample.
func (t *BoolTask) Wait() bool {
	<-t.done
	return t.changed
}

// Done reports whether the task has finished without blocking.
func (t *BoolTask) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// mainThreadKind identifies one of the three bounded main-thread task
// slots a chunk can have pending at once (spec §4.3 "pending main-thread
// tasks ... UpdateRenderMeshes / UpdateCollisionMesh / UpdateLayerTexture").
type mainThreadKind int

const (
	kindUpdateRenderMeshes mainThreadKind = iota
	kindUpdateCollisionMesh
	kindUpdateLayerTexture
	kindCount
)

// ChunkHooks2 bundles the host collaborators a chunk publishes its mesh
// and texture output to (spec §6 "Scene object", "Physics body", "Texture
// factory"). A nil field disables the corresponding main-thread task: no
// SceneObject means rendering is disabled for the layer, no PhysicsBody
// means collision is disabled.
type ChunkHooks2 struct {
	SceneObject    sdfhost.SceneObject
	PhysicsBody    sdfhost.PhysicsBody
	TextureFactory sdfhost.TextureFactory
	CollisionTags  []string
}

// Chunk2 owns one 2D SampleArray plus the derived render mesh, collision
// shape and layer texture for a single (resource, key) pair.
type Chunk2 struct {
	Key      Key2
	Resource sdfhost.Resource

	chunkSize float32
	array     *sdfsample.Array2
	hooks     ChunkHooks2

	mu       sync.Mutex
	lastTask *BoolTask

	lastMeshModCount    uint64
	updateCancel        context.CancelFunc
	collisionShapeAdded bool
	texture             sdfhost.Texture

	pendingMu sync.Mutex
	pending   [kindCount]func(ctx context.Context)
	onDirty   func(c *Chunk2)
}

// NewChunk2 constructs a chunk bound to its resource and quality, called
// only from World's get-or-create-chunk (spec §4.3 "Get-or-create-chunk is
// the only place a new chunk is constructed").
func NewChunk2(key Key2, resource sdfhost.Resource, chunkResolution int, chunkSize, maxDistance float32, hooks ChunkHooks2, onDirty func(c *Chunk2)) *Chunk2 {
	unitSize := chunkSize / float32(chunkResolution)
	return &Chunk2{
		Key:       key,
		Resource:  resource,
		chunkSize: chunkSize,
		array:     sdfsample.NewArray2(chunkResolution, unitSize, maxDistance),
		hooks:     hooks,
		onDirty:   onDirty,
	}
}

// Array exposes the underlying sample array, mainly for tests and debug
// rendering.
func (c *Chunk2) Array() *sdfsample.Array2 { return c.array }

// SceneObjectHandle returns the chunk's scene object, or nil if rendering
// is disabled for its layer.
func (c *Chunk2) SceneObjectHandle() sdfhost.SceneObject { return c.hooks.SceneObject }

// Texture returns the chunk's most recently built layer texture, or nil if
// no texture factory is bound or no mesh update has run yet.
func (c *Chunk2) Texture() sdfhost.Texture { return c.texture }

// Bounds returns the chunk's world-space AABB (origin to origin+chunk_size).
func (c *Chunk2) Bounds() sdfshape.AABB2 {
	origin := c.Key.Origin(c.chunkSize)
	return sdfshape.AABB2From(origin, origin.Add(sdfshape.Vec2{X: c.chunkSize, Y: c.chunkSize}))
}

func (c *Chunk2) localize(shape sdfshape.Shape2D) sdfshape.Shape2D {
	origin := c.Key.Origin(c.chunkSize)
	return sdfshape.Translate2D{Inner: shape, Offset: sdfshape.Vec2{X: -origin.X, Y: -origin.Y}}
}

// offsetVertices2 pre-offsets chunk-local (x, y) vertex pairs to world
// space (spec §4.3 "vertices pre-offset to world space").
func offsetVertices2(vertices []float32, origin sdfshape.Vec2) []float32 {
	if len(vertices) == 0 {
		return vertices
	}
	out := make([]float32, len(vertices))
	for i := 0; i+1 < len(vertices); i += 2 {
		out[i] = vertices[i] + origin.X
		out[i+1] = vertices[i+1] + origin.Y
	}
	return out
}

// AddAsync awaits the chunk's previous modification, then unions shape
// into the local SampleArray on a worker goroutine (spec §4.3
// "Serialisation of modifications", "World-to-local translation").
func (c *Chunk2) AddAsync(pool sdfhost.TaskPool, shape sdfshape.Shape2D) *BoolTask {
	return c.dispatch(pool, shape, false)
}

// SubtractAsync is the Subtract counterpart of AddAsync.
func (c *Chunk2) SubtractAsync(pool sdfhost.TaskPool, shape sdfshape.Shape2D) *BoolTask {
	return c.dispatch(pool, shape, true)
}

func (c *Chunk2) dispatch(pool sdfhost.TaskPool, shape sdfshape.Shape2D, subtract bool) *BoolTask {
	result := &BoolTask{done: make(chan struct{})}

	c.mu.Lock()
	prev := c.lastTask
	c.lastTask = result
	c.mu.Unlock()

	local := c.localize(shape)
	pool.RunInThread(func(ctx context.Context) error {
		if prev != nil {
			prev.Wait()
		}
		var changed bool
		if subtract {
			changed = c.array.Subtract(local)
		} else {
			changed = c.array.Add(local)
		}
		result.changed = changed
		close(result.done)
		if changed && c.onDirty != nil {
			pool.ToMainThread(func() { c.onDirty(c) })
		}
		return nil
	})
	return result
}

// NeedsMeshUpdate reports whether the sample array has changed since the
// last mesh extraction (spec §4.3 "Mesh maintenance state machine").
func (c *Chunk2) NeedsMeshUpdate() bool {
	return c.array.ModificationCount() != c.lastMeshModCount
}

// UpdateMesh starts a new background mesh-extraction task on every call,
// cancelling the context of the task started by the previous call, which
// this one supersedes (spec §5 "Cancellation ... observed at every
// await inside them"). taskCtx, not the context the pool hands the
// closure, is threaded through the mesh writer call and checked
// afterwards, so a superseding UpdateMesh's cancel actually aborts the
// one it replaces. The extracted mesh is queued for the chunk's
// SceneObject/PhysicsBody as main-thread tasks, gated by which of those
// hooks are bound (i.e. by whether rendering/collision are enabled for the
// layer); the layer texture is built through the TextureFactory directly
// on the worker.
func (c *Chunk2) UpdateMesh(ctx context.Context, pool sdfhost.TaskPool, writer sdfhost.MeshWriter2D) sdfhost.Task {
	taskCtx, cancel := context.WithCancel(ctx)
	if c.updateCancel != nil {
		c.updateCancel()
	}
	c.updateCancel = cancel

	snapshotCount := c.array.ModificationCount()
	origin := c.Key.Origin(c.chunkSize)
	return pool.RunInThread(func(_ context.Context) error {
		if writer == nil {
			c.lastMeshModCount = snapshotCount
			return nil
		}
		if err := c.array.WriteTo(taskCtx, writer); err != nil {
			return err
		}
		if taskCtx.Err() != nil {
			return taskCtx.Err()
		}
		vertices, indices := writer.Mesh()
		c.lastMeshModCount = snapshotCount

		if c.hooks.SceneObject != nil {
			renderVertices := vertices
			c.enqueueMainThread(kindUpdateRenderMeshes, func(ctx context.Context) {
				c.hooks.SceneObject.ReplaceModel(renderVertices, indices)
			})
		}
		if c.hooks.PhysicsBody != nil {
			worldVertices := offsetVertices2(vertices, origin)
			c.enqueueMainThread(kindUpdateCollisionMesh, func(ctx context.Context) {
				if !c.collisionShapeAdded {
					c.hooks.PhysicsBody.AddMeshShape(worldVertices, indices, c.hooks.CollisionTags)
					c.collisionShapeAdded = true
				} else {
					c.hooks.PhysicsBody.UpdateMesh(worldVertices, indices)
				}
			})
		}
		if c.hooks.TextureFactory != nil {
			if tex, err := c.hooks.TextureFactory.NewTexture2D(c.array.Size(), c.array.Size(), c.array.Bytes()); err == nil {
				if c.texture != nil {
					c.texture.Release()
				}
				c.texture = tex
			}
		}
		return nil
	})
}

// enqueueMainThread replaces any previously pending task of the same kind
// rather than queuing a second one (spec §4.3 "pending_main_thread_tasks"
// bounded to three kinds with replacement semantics).
func (c *Chunk2) enqueueMainThread(kind mainThreadKind, fn func(ctx context.Context)) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.pending[kind] = fn
}

// EnqueueLayerTexture schedules a cross-layer texture refresh (spec §4.3
// "Cross-layer texture references").
func (c *Chunk2) EnqueueLayerTexture(fn func(ctx context.Context)) {
	c.enqueueMainThread(kindUpdateLayerTexture, fn)
}

// DrainPendingMainThreadTasks runs pending main-thread tasks one at a time
// until the shared per-tick budget is exhausted (spec §4.3 "Per-tick
// budget for chunk main-thread tasks"). The world calls this once per
// chunk per tick with a budget shared across every chunk it drains.
func (c *Chunk2) DrainPendingMainThreadTasks(ctx context.Context, budget *sdftick.Budget) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	for i := range c.pending {
		if c.pending[i] == nil {
			continue
		}
		if budget.Exhausted(time.Now()) {
			break
		}
		c.pending[i](ctx)
		c.pending[i] = nil
	}
}
