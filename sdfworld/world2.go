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

// modTask is the single-slot work-queue idiom of spec §9 ("await
// last_modification_task; last_modification_task = new_task()"), modeled
// explicitly as a chained done-channel rather than relying on implicit
// await-completion semantics.
type modTask struct {
	done chan struct{}
}

func (t *modTask) wait() {
	if t != nil {
		<-t.done
	}
}

// layerState2 is one resource's chunk map plus its mesh-update bookkeeping
// (spec §4.4 "Layer map").
type layerState2 struct {
	options LayerOptions

	mu                sync.Mutex
	chunks            map[sdfchunk.Key2]*sdfchunk.Chunk2
	needsMeshUpdate   map[sdfchunk.Key2]*sdfchunk.Chunk2
	updateTaskRunning bool
}

// World2 owns every 2D chunk across every layer, the modification log, and
// dispatches mesh rebuilds (spec §4.4 "World"). Grounded on sector.World's
// ownership of all entities via a sector map, generalised to a resource map
// of chunk maps.
type World2 struct {
	pool        sdfhost.TaskPool
	registry    *sdfshape.Registry2D
	logger      sdfhost.Logger
	writerPool  sdfhost.MeshWriterPool2D

	mu          sync.Mutex
	layers      map[sdfhost.Resource]*layerState2
	log         []Modification2
	clearCount  int
	lastModTask *modTask
}

// NewWorld2 constructs an empty world bound to the given shape registry and
// background task pool.
func NewWorld2(pool sdfhost.TaskPool, registry *sdfshape.Registry2D, logger sdfhost.Logger) *World2 {
	return &World2{
		pool:     pool,
		registry: registry,
		logger:   logger,
		layers:   make(map[sdfhost.Resource]*layerState2),
	}
}

// SetMeshWriterPool binds the rental pool mesh extraction rents writers
// from (spec §6 "Mesh writer rental pool (rent() / return())"). Optional:
// a world with no pool bound skips mesh extraction, which is useful for
// headless authority-only servers with no render/collision output.
func (w *World2) SetMeshWriterPool(p sdfhost.MeshWriterPool2D) {
	w.writerPool = p
}

// AddLayer registers a resource's quality/material options. Must be called
// before any modification touches that resource.
func (w *World2) AddLayer(resource sdfhost.Resource, options LayerOptions) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.layers[resource] = &layerState2{
		options:         options,
		chunks:          make(map[sdfchunk.Key2]*sdfchunk.Chunk2),
		needsMeshUpdate: make(map[sdfchunk.Key2]*sdfchunk.Chunk2),
	}
}

// AddAsync appends an Add modification to the log and fans the mutation out
// to every affected chunk (spec §4.4 data flow).
func (w *World2) AddAsync(ctx context.Context, resource sdfhost.Resource, shape sdfshape.Shape2D) {
	w.modifyAsync(ctx, resource, shape, OpAdd)
}

// SubtractAsync is the Subtract counterpart of AddAsync.
func (w *World2) SubtractAsync(ctx context.Context, resource sdfhost.Resource, shape sdfshape.Shape2D) {
	w.modifyAsync(ctx, resource, shape, OpSubtract)
}

func (w *World2) modifyAsync(ctx context.Context, resource sdfhost.Resource, shape sdfshape.Shape2D, op Operator) {
	w.mu.Lock()
	prev := w.lastModTask
	next := &modTask{done: make(chan struct{})}
	w.lastModTask = next
	w.log = append(w.log, Modification2{Operator: op, Resource: resource, Shape: shape})
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
	var touched []*sdfchunk.Chunk2
	for _, key := range keys {
		var chunk *sdfchunk.Chunk2
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

func (w *World2) layer(resource sdfhost.Resource) (*layerState2, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.layers[resource]
	return l, ok
}

func (w *World2) getChunk(layer *layerState2, key sdfchunk.Key2) (*sdfchunk.Chunk2, bool) {
	layer.mu.Lock()
	defer layer.mu.Unlock()
	c, ok := layer.chunks[key]
	return c, ok
}

// getOrCreateChunk is the only place a new chunk is constructed (spec §4.4
// "Get-or-create-chunk is the only place a new chunk is constructed").
func (w *World2) getOrCreateChunk(layer *layerState2, resource sdfhost.Resource, key sdfchunk.Key2) *sdfchunk.Chunk2 {
	layer.mu.Lock()
	defer layer.mu.Unlock()
	if c, ok := layer.chunks[key]; ok {
		return c
	}
	q := layer.options.Quality
	hooks := sdfchunk.ChunkHooks2{
		TextureFactory: layer.options.TextureFactory,
		CollisionTags:  layer.options.SplitCollisionTags,
	}
	if layer.options.Material != nil && layer.options.NewSceneObject != nil {
		hooks.SceneObject = layer.options.NewSceneObject(key)
	}
	if layer.options.HasCollision && layer.options.NewPhysicsBody != nil {
		hooks.PhysicsBody = layer.options.NewPhysicsBody(key)
	}
	c := sdfchunk.NewChunk2(key, resource, q.ChunkResolution, q.ChunkSize, q.MaxDistance, hooks, func(dirty *sdfchunk.Chunk2) {
		layer.mu.Lock()
		layer.needsMeshUpdate[dirty.Key] = dirty
		layer.mu.Unlock()
	})
	layer.chunks[key] = c
	return c
}

// affectedChunks enumerates every chunk key whose AABB intersects shape's
// bounds; an unbounded shape yields no keys, matching spec §4.4's
// "callers are expected to clip cellular noise inside a bounded shape".
func (w *World2) affectedChunks(shape sdfshape.Shape2D, q Quality) []sdfchunk.Key2 {
	b := shape.Bounds()
	if b.IsEmpty() {
		return nil
	}
	size := q.ChunkSize
	minX := floorKey(b.Min.X / size)
	minY := floorKey(b.Min.Y / size)
	maxX := ceilKeyExclusive(b.Max.X / size)
	maxY := ceilKeyExclusive(b.Max.Y / size)

	var keys []sdfchunk.Key2
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			keys = append(keys, sdfchunk.Key2{X: x, Y: y})
		}
	}
	return keys
}

// dispatchMeshUpdate starts a new mesh-update task only if none is already
// running (spec §4.4 "dispatch_mesh_update(layer)").
func (w *World2) dispatchMeshUpdate(resource sdfhost.Resource, layer *layerState2) {
	layer.mu.Lock()
	if layer.updateTaskRunning || len(layer.needsMeshUpdate) == 0 {
		layer.mu.Unlock()
		return
	}
	dirty := layer.needsMeshUpdate
	layer.needsMeshUpdate = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
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
				var writer sdfhost.MeshWriter2D
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

// propagateTextureReferences is the only cross-chunk coupling in the
// system (spec §4.4 "Cross-layer texture references").
func (w *World2) propagateTextureReferences(sourceResource sdfhost.Resource, chunk *sdfchunk.Chunk2, sourceLayer *layerState2) {
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
// in every layer, and empties the layer map (spec §4.4 "clear_async()").
// Layers must be registered again with AddLayer before further
// modifications reach them.
func (w *World2) ClearAsync() {
	w.mu.Lock()
	w.clearCount++
	w.log = nil
	layers := w.layers
	w.layers = make(map[sdfhost.Resource]*layerState2)
	w.mu.Unlock()

	for _, l := range layers {
		l.mu.Lock()
		l.chunks = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
		l.needsMeshUpdate = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
		l.mu.Unlock()
	}
}

// ClearResourceAsync drops one layer's chunks and filters the modification
// log to the resources that remain, per spec §9's recommended resolution
// of the open question on per-resource clear.
func (w *World2) ClearResourceAsync(resource sdfhost.Resource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if l, ok := w.layers[resource]; ok {
		l.mu.Lock()
		l.chunks = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
		l.needsMeshUpdate = make(map[sdfchunk.Key2]*sdfchunk.Chunk2)
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
// per-tick budget (spec §4.3 "Per-tick budget for chunk main-thread
// tasks").
func (w *World2) Tick(ctx context.Context, budget *sdftick.Budget) {
	w.mu.Lock()
	layers := make([]*layerState2, 0, len(w.layers))
	for _, l := range w.layers {
		layers = append(layers, l)
	}
	w.mu.Unlock()

	for _, layer := range layers {
		layer.mu.Lock()
		chunks := make([]*sdfchunk.Chunk2, 0, len(layer.chunks))
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
// current clear_count, for replication.
func (w *World2) ModificationLog() ([]Modification2, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Modification2, len(w.log))
	copy(out, w.log)
	return out, w.clearCount
}

// EncodeLog snapshots the modification log as replication-ready entries,
// with each shape already passed through the registry's wire encoding
// (spec §6 "shape wire format").
func (w *World2) EncodeLog() ([]sdfreplicate.LogEntry, int) {
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
func (w *World2) Registry() *sdfshape.Registry2D { return w.registry }

// Debug returns a human-readable dump of the world's layers and chunk
// counts, a supplemented developer aid (SPEC_FULL.md §13) grounded on
// terrain.Debug() and hub.go's debugTicker.
func (w *World2) Debug() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := fmt.Sprintf("world2: %d modifications, clear_count=%d, %d layers\n", len(w.log), w.clearCount, len(w.layers))
	for resource, l := range w.layers {
		l.mu.Lock()
		s += fmt.Sprintf("  layer %v: %d chunks, %d dirty\n", resource, len(l.chunks), len(l.needsMeshUpdate))
		l.mu.Unlock()
	}
	return s
}

func floorKey(f float32) int32 {
	i := int32(f)
	if f < float32(i) {
		i--
	}
	return i
}

func ceilKeyExclusive(f float32) int32 {
	i := int32(f)
	if f > float32(i) {
		i++
	}
	return i - 1
}
