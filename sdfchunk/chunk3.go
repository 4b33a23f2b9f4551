// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

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

// Key3 is a 3D chunk lattice index.
type Key3 struct {
	X, Y, Z int32
}

// Origin returns the chunk's world-space origin, key * chunk_size.
func (k Key3) Origin(chunkSize float32) sdfshape.Vec3 {
	return sdfshape.Vec3{X: float32(k.X) * chunkSize, Y: float32(k.Y) * chunkSize, Z: float32(k.Z) * chunkSize}
}

// ChunkHooks3 is the 3D counterpart of ChunkHooks2.
type ChunkHooks3 struct {
	SceneObject    sdfhost.SceneObject
	PhysicsBody    sdfhost.PhysicsBody
	TextureFactory sdfhost.TextureFactory
	CollisionTags  []string
}

// Chunk3 is the 3D counterpart of Chunk2.
type Chunk3 struct {
	Key      Key3
	Resource sdfhost.Resource

	chunkSize float32
	array     *sdfsample.Array3
	hooks     ChunkHooks3

	mu       sync.Mutex
	lastTask *BoolTask

	lastMeshModCount    uint64
	updateCancel        context.CancelFunc
	collisionShapeAdded bool
	texture             sdfhost.Texture

	pendingMu sync.Mutex
	pending   [kindCount]func(ctx context.Context)
	onDirty   func(c *Chunk3)
}

// NewChunk3 constructs a 3D chunk bound to its resource and quality.
func NewChunk3(key Key3, resource sdfhost.Resource, chunkResolution int, chunkSize, maxDistance float32, hooks ChunkHooks3, onDirty func(c *Chunk3)) *Chunk3 {
	unitSize := chunkSize / float32(chunkResolution)
	return &Chunk3{
		Key:       key,
		Resource:  resource,
		chunkSize: chunkSize,
		array:     sdfsample.NewArray3(chunkResolution, unitSize, maxDistance),
		hooks:     hooks,
		onDirty:   onDirty,
	}
}

// Array exposes the underlying sample array.
func (c *Chunk3) Array() *sdfsample.Array3 { return c.array }

// SceneObjectHandle returns the chunk's scene object, or nil if rendering
// is disabled for its layer.
func (c *Chunk3) SceneObjectHandle() sdfhost.SceneObject { return c.hooks.SceneObject }

// Texture returns the chunk's most recently built layer texture, or nil if
// no texture factory is bound or no mesh update has run yet.
func (c *Chunk3) Texture() sdfhost.Texture { return c.texture }

// Bounds returns the chunk's world-space AABB.
func (c *Chunk3) Bounds() sdfshape.AABB3 {
	origin := c.Key.Origin(c.chunkSize)
	return sdfshape.AABB3From(origin, origin.Add(sdfshape.Vec3{X: c.chunkSize, Y: c.chunkSize, Z: c.chunkSize}))
}

func (c *Chunk3) localize(shape sdfshape.Shape3D) sdfshape.Shape3D {
	origin := c.Key.Origin(c.chunkSize)
	return sdfshape.Translate3D{Inner: shape, Offset: sdfshape.Vec3{X: -origin.X, Y: -origin.Y, Z: -origin.Z}}
}

// offsetVertices3 pre-offsets chunk-local (x, y, z) vertex triples to
// world space (spec §4.3 "vertices pre-offset to world space").
func offsetVertices3(vertices []float32, origin sdfshape.Vec3) []float32 {
	if len(vertices) == 0 {
		return vertices
	}
	out := make([]float32, len(vertices))
	for i := 0; i+2 < len(vertices); i += 3 {
		out[i] = vertices[i] + origin.X
		out[i+1] = vertices[i+1] + origin.Y
		out[i+2] = vertices[i+2] + origin.Z
	}
	return out
}

// AddAsync unions shape into the local SampleArray (see Chunk2.AddAsync).
func (c *Chunk3) AddAsync(pool sdfhost.TaskPool, shape sdfshape.Shape3D) *BoolTask {
	return c.dispatch(pool, shape, false)
}

// SubtractAsync carves shape out of the local SampleArray.
func (c *Chunk3) SubtractAsync(pool sdfhost.TaskPool, shape sdfshape.Shape3D) *BoolTask {
	return c.dispatch(pool, shape, true)
}

func (c *Chunk3) dispatch(pool sdfhost.TaskPool, shape sdfshape.Shape3D, subtract bool) *BoolTask {
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
// last mesh extraction.
func (c *Chunk3) NeedsMeshUpdate() bool {
	return c.array.ModificationCount() != c.lastMeshModCount
}

// UpdateMesh starts a new background mesh-extraction task on every call,
// cancelling the one the previous call started. See Chunk2.UpdateMesh for
// the taskCtx/cancellation and hook-gating rationale.
func (c *Chunk3) UpdateMesh(ctx context.Context, pool sdfhost.TaskPool, writer sdfhost.MeshWriter3D) sdfhost.Task {
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
			worldVertices := offsetVertices3(vertices, origin)
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
			size := c.array.Size()
			if tex, err := c.hooks.TextureFactory.NewTexture3D(size, size, size, c.array.Bytes()); err == nil {
				if c.texture != nil {
					c.texture.Release()
				}
				c.texture = tex
			}
		}
		return nil
	})
}

func (c *Chunk3) enqueueMainThread(kind mainThreadKind, fn func(ctx context.Context)) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.pending[kind] = fn
}

// EnqueueLayerTexture schedules a cross-layer texture refresh.
func (c *Chunk3) EnqueueLayerTexture(fn func(ctx context.Context)) {
	c.enqueueMainThread(kindUpdateLayerTexture, fn)
}

// DrainPendingMainThreadTasks runs pending main-thread tasks one at a time
// until the shared per-tick budget is exhausted.
func (c *Chunk3) DrainPendingMainThreadTasks(ctx context.Context, budget *sdftick.Budget) {
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
