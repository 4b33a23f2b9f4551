// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfworld

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brinewave/sdfworld/sdfchunk"
	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfreplicate"
	"github.com/brinewave/sdfworld/sdfshape"
	"github.com/brinewave/sdfworld/sdftick"
)

// layerState3 is the 3D counterpart of layerState2.
type layerState3 struct {
	options LayerOptions

	mu                sync.Mutex
	chunks            map[sdfchunk.Key3]*sdfchunk.Chunk3
	needsMeshUpdate   map[sdfchunk.Key3]*sdfchunk.Chunk3
	updateTaskRunning bool
}

// World3 is the 3D counterpart of World2.
type World3 struct {
	pool       sdfhost.TaskPool
	registry   *sdfshape.Registry3D
	logger     sdfhost.Logger
	writerPool sdfhost.MeshWriterPool3D

	mu          sync.Mutex
	layers      map[sdfhost.Resource]*layerState3
	log         []Modification3
	clearCount  int
	lastModTask *modTask
}

// SetMeshWriterPool binds the rental pool mesh extraction rents writers
// from. Optional: a world with no pool bound skips mesh extraction.
func (w *World3) SetMeshWriterPool(p sdfhost.MeshWriterPool3D) {
	w.writerPool = p
}

// NewWorld3 constructs an empty 3D world.
func NewWorld3(pool sdfhost.TaskPool, registry *sdfshape.Registry3D, logger sdfhost.Logger) *World3 {
	return &World3{
		pool:     pool,
		registry: registry,
		logger:   logger,
		layers:   make(map[sdfhost.Resource]*layerState3),
	}
}

// AddLayer registers a resource's quality/material options.
func (w *World3) AddLayer(resource sdfhost.Resource, options LayerOptions) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.layers[resource] = &layerState3{
		options:         options,
		chunks:          make(map[sdfchunk.Key3]*sdfchunk.Chunk3),
		needsMeshUpdate: make(map[sdfchunk.Key3]*sdfchunk.Chunk3),
	}
}

// AddAsync appends an Add modification to the log and fans it out.
func (w *World3) AddAsync(ctx context.Context, resource sdfhost.Resource, shape sdfshape.Shape3D) {
	w.modifyAsync(ctx, resource, shape, OpAdd)
}

// SubtractAsync is the Subtract counterpart of AddAsync.
func (w *World3) SubtractAsync(ctx context.Context, resource sdfhost.Resource, shape sdfshape.Shape3D) {
	w.modifyAsync(ctx, resource, shape, OpSubtract)
}

func (w *World3) modifyAsync(ctx context.Context, resource sdfhost.Resource, shape sdfshape.Shape3D, op Operator) {
	w.mu.Lock()
	prev := w.lastModTask
	next := &modTask{done: make(chan struct{})}
	w.lastModTask = next
	w.log = append(w.log, Modification3{Operator: op, Resource: resource, Shape: shape})
	w.mu.Unlock()

	defer close(next.done)
	prev.wait()

	layer, ok := w.layer(resource)
	if !ok {
		if w.logger != nil {
			w.logger.Warn("sdfworld: modification for unregistered resource %v", resource)
		}
		return
	}

	keys := w.affectedChunks(shape, layer.options.Quality)
	var tasks []*sdfchunk.BoolTask
	var touched []*sdfchunk.Chunk3
	for _, key := range keys {
		var chunk *sdfchunk.Chunk3
		if op == OpAdd {
			chunk = w.getOrCreateChunk(layer, resource, key)
		} else {
			chunk, ok = w.getChunk(layer, key)
			if !ok {
				continue
			}
		}
		var t *sdfchunk.BoolTask
		if op == OpAdd {
			t = chunk.AddAsync(w.pool, shape)
		} else {
			t = chunk.SubtractAsync(w.pool, shape)
		}
		tasks = append(tasks, t)
		touched = append(touched, chunk)
	}

	for i, t := range tasks {
		if t.Wait() {
			layer.mu.Lock()
			layer.needsMeshUpdate[touched[i].Key] = touched[i]
			layer.mu.Unlock()
		}
	}

	w.dispatchMeshUpdate(resource, layer)
}

func (w *World3) layer(resource sdfhost.Resource) (*layerState3, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.layers[resource]
	return l, ok
}

func (w *World3) getChunk(layer *layerState3, key sdfchunk.Key3) (*sdfchunk.Chunk3, bool) {
	layer.mu.Lock()
	defer layer.mu.Unlock()
	c, ok := layer.chunks[key]
	return c, ok
}

func (w *World3) getOrCreateChunk(layer *layerState3, resource sdfhost.Resource, key sdfchunk.Key3) *sdfchunk.Chunk3 {
	layer.mu.Lock()
	defer layer.mu.Unlock()
	if c, ok := layer.chunks[key]; ok {
		return c
	}
	q := layer.options.Quality
	hooks := sdfchunk.ChunkHooks3{
		TextureFactory: layer.options.TextureFactory,
		CollisionTags:  layer.options.SplitCollisionTags,
	}
	if layer.options.Material != nil && layer.options.NewSceneObject != nil {
		hooks.SceneObject = layer.options.NewSceneObject(key)
	}
	if layer.options.HasCollision && layer.options.NewPhysicsBody != nil {
		hooks.PhysicsBody = layer.options.NewPhysicsBody(key)
	}
	c := sdfchunk.NewChunk3(key, resource, q.ChunkResolution, q.ChunkSize, q.MaxDistance, hooks, func(dirty *sdfchunk.Chunk3) {
		layer.mu.Lock()
		layer.needsMeshUpdate[dirty.Key] = dirty
		layer.mu.Unlock()
	})
	layer.chunks[key] = c
	return c
}

// affectedChunks enumerates every chunk key whose AABB intersects shape's
// bounds (see World2.affectedChunks).
func (w *World3) affectedChunks(shape sdfshape.Shape3D, q Quality) []sdfchunk.Key3 {
	b := shape.Bounds()
	if b.IsEmpty() {
		return nil
	}
	size := q.ChunkSize
	minX := floorKey(b.Min.X / size)
	minY := floorKey(b.Min.Y / size)
	minZ := floorKey(b.Min.Z / size)
	maxX := ceilKeyExclusive(b.Max.X / size)
	maxY := ceilKeyExclusive(b.Max.Y / size)
	maxZ := ceilKeyExclusive(b.Max.Z / size)

	var keys []sdfchunk.Key3
	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				keys = append(keys, sdfchunk.Key3{X: x, Y: y, Z: z})
			}
		}
	}
	return keys
}

func (w *World3) dispatchMeshUpdate(resource sdfhost.Resource, layer *layerState3) {
	layer.mu.Lock()
	if layer.updateTaskRunning || len(layer.needsMeshUpdate) == 0 {
		layer.mu.Unlock()
		return
	}
	dirty := layer.needsMeshUpdate
	layer.needsMeshUpdate = make(map[sdfchunk.Key3]*sdfchunk.Chunk3)
	layer.updateTaskRunning = true
	layer.mu.Unlock()

	w.pool.RunInThread(func(ctx context.Context) error {
		defer func() {
			layer.mu.Lock()
			layer.updateTaskRunning = false
			layer.mu.Unlock()
		}()
		var wg sync.WaitGroup
		for _, chunk := range dirty {
			chunk := chunk
			wg.Add(1)
			go func() {
				defer wg.Done()
				var writer sdfhost.MeshWriter3D
				if w.writerPool != nil {
					writer = w.writerPool.Rent()
					defer w.writerPool.Return(writer)
				}
				chunk.UpdateMesh(ctx, w.pool, writer).Wait()
				w.propagateTextureReferences(resource, chunk, layer)
			}()
		}
		wg.Wait()
		return nil
	})
}

func (w *World3) propagateTextureReferences(sourceResource sdfhost.Resource, chunk *sdfchunk.Chunk3, sourceLayer *layerState3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, other := range w.layers {
		for _, ref := range other.options.ReferencedTextures {
			if ref.SourceResource != sourceResource {
				continue
			}
			if other.options.Quality.ChunkSize != sourceLayer.options.Quality.ChunkSize {
				if w.logger != nil {
					w.logger.Warn("sdfworld: texture reference chunk_size mismatch for %v", ref.SourceResource)
				}
				continue
			}
			other.mu.Lock()
			if target, ok := other.chunks[chunk.Key]; ok {
				texture := chunk.Texture()
				attribute := ref.TargetAttribute
				target.EnqueueLayerTexture(func(ctx context.Context) {
					if so := target.SceneObjectHandle(); so != nil && texture != nil {
						so.SetAttribute(attribute, texture)
					}
				})
			}
			other.mu.Unlock()
		}
	}
}

// ClearAsync increments clear_count, empties the log, disposes every chunk
// in every layer, and empties the layer map (see World2.ClearAsync).
func (w *World3) ClearAsync() {
	w.mu.Lock()
	w.clearCount++
	w.log = nil
	layers := w.layers
	w.layers = make(map[sdfhost.Resource]*layerState3)
	w.mu.Unlock()

	for _, l := range layers {
		l.mu.Lock()
		l.chunks = make(map[sdfchunk.Key3]*sdfchunk.Chunk3)
		l.needsMeshUpdate = make(map[sdfchunk.Key3]*sdfchunk.Chunk3)
		l.mu.Unlock()
	}
}

// ClearResourceAsync drops one layer's chunks and filters the modification
// log to the resources that remain.
func (w *World3) ClearResourceAsync(resource sdfhost.Resource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if l, ok := w.layers[resource]; ok {
		l.mu.Lock()
		l.chunks = make(map[sdfchunk.Key3]*sdfchunk.Chunk3)
		l.needsMeshUpdate = make(map[sdfchunk.Key3]*sdfchunk.Chunk3)
		l.mu.Unlock()
	}
	filtered := w.log[:0]
	for _, m := range w.log {
		if m.Resource != resource {
			filtered = append(filtered, m)
		}
	}
	w.log = filtered
}

// Tick drains every layer's pending main-thread chunk tasks under a shared
// per-tick budget.
func (w *World3) Tick(ctx context.Context, budget *sdftick.Budget) {
	w.mu.Lock()
	layers := make([]*layerState3, 0, len(w.layers))
	for _, l := range w.layers {
		layers = append(layers, l)
	}
	w.mu.Unlock()

	for _, layer := range layers {
		layer.mu.Lock()
		chunks := make([]*sdfchunk.Chunk3, 0, len(layer.chunks))
		for _, c := range layer.chunks {
			chunks = append(chunks, c)
		}
		layer.mu.Unlock()
		for _, c := range chunks {
			if budget.Exhausted(time.Now()) {
				return
			}
			c.DrainPendingMainThreadTasks(ctx, budget)
		}
	}
}

// ModificationLog returns a snapshot of the modification log and the
// current clear_count.
func (w *World3) ModificationLog() ([]Modification3, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Modification3, len(w.log))
	copy(out, w.log)
	return out, w.clearCount
}

// EncodeLog snapshots the modification log as replication-ready entries.
func (w *World3) EncodeLog() ([]sdfreplicate.LogEntry, int) {
	mods, clearCount := w.ModificationLog()
	entries := make([]sdfreplicate.LogEntry, len(mods))
	for i, m := range mods {
		op := byte(0)
		if m.Operator == OpSubtract {
			op = 1
		}
		wr := sdfshape.NewWriter()
		w.registry.Write(wr, m.Shape)
		entries[i] = sdfreplicate.LogEntry{Operator: op, Resource: m.Resource, Shape: wr.Bytes()}
	}
	return entries, clearCount
}

// Registry returns the shape registry this world encodes/decodes wire
// shapes with.
func (w *World3) Registry() *sdfshape.Registry3D { return w.registry }

// Debug returns a human-readable dump of the world's layers and chunk
// counts.
func (w *World3) Debug() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := fmt.Sprintf("world3: %d modifications, clear_count=%d, %d layers\n", len(w.log), w.clearCount, len(w.layers))
	for resource, l := range w.layers {
		l.mu.Lock()
		s += fmt.Sprintf("  layer %v: %d chunks, %d dirty\n", resource, len(l.chunks), len(l.needsMeshUpdate))
		l.mu.Unlock()
	}
	return s
}
