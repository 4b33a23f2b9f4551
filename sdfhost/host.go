// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sdfhost declares the narrow interfaces a host game engine must
// supply to drive the core (spec §6 "Host-engine interfaces consumed by the
// core"). The core calls these; it never implements them. mk48 draws the
// same line between terrain.Source (externally supplied) and
// terrain.Terrain (core-owned) — this package is that seam generalised to
// the whole core.
package sdfhost

import "context"

// Resource identifies a layer/volume (spec glossary "Layer / Volume /
// Resource"). It is an opaque, comparable engine asset reference, the way
// mk48's terrain and world packages key everything off of a plain
// comparable id rather than a pointer.
type Resource interface{}

// ObserverID identifies one replication observer (spec §4.5).
type ObserverID uint64

// TaskPool is the background-work seam (spec §5 "Background workers via an
// engine-provided pool" and §6 "Task pool with run_in_thread(f),
// when_all([...]), to_main_thread()").
type TaskPool interface {
	// RunInThread schedules f on a background worker and returns a handle
	// whose Wait blocks until f returns.
	RunInThread(f func(ctx context.Context) error) Task
	// ToMainThread suspends the caller until it is safe to mutate
	// main-thread-owned state (spec §5), then runs f there.
	ToMainThread(f func())
}

// Task is a cancellable unit of background work.
type Task interface {
	// Wait blocks until the task finishes and returns its error, if any.
	Wait() error
	// Cancel requests cooperative cancellation; observed at suspension
	// points inside the task body (spec §5 "Cancellation").
	Cancel()
	// Done reports whether the task has finished (successfully,
	// erroneously, or cancelled).
	Done() bool
}

// WhenAll waits for every task to finish and returns the first error, if
// any (spec §6 "when_all([...])").
func WhenAll(tasks []Task) error {
	var firstErr error
	for _, t := range tasks {
		if err := t.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Logger is the narrow logging seam (spec §6 "A logger (warn, error)").
type Logger interface {
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// PhysicsBody is the collision-shape seam (spec §6).
type PhysicsBody interface {
	AddMeshShape(vertices []float32, indices []uint32, tags []string)
	UpdateMesh(vertices []float32, indices []uint32)
	Remove()
}

// SceneObject is the render seam (spec §6 "Scene object with
// attributes.set(name, value) and model replacement").
type SceneObject interface {
	SetAttribute(name string, value any)
	ReplaceModel(vertices []float32, indices []uint32)
}

// TextureFactory builds a GPU texture from raw sample bytes (spec §6
// "Texture factory (2D/3D) accepting raw I8 data").
type TextureFactory interface {
	NewTexture2D(width, height int, data []byte) (Texture, error)
	NewTexture3D(width, height, depth int, data []byte) (Texture, error)
}

// Texture is an opaque handle owned by the host engine.
type Texture interface {
	Release()
}

// MeshWriter2D is rented from a pool and handed the raw 2D sample grid for
// out-of-core mesh extraction (spec §1 "the core calls WriteTo(writer,
// resource)", §4.2, §6 "Mesh writer rental pool").
type MeshWriter2D interface {
	// WriteGrid2 hands the mesh writer the sample grid, the index of the
	// chunk's local origin within it (after accounting for the margin),
	// and the stride to advance one sample along Y.
	WriteGrid2(ctx context.Context, samples []byte, baseIndex int, strideY int) error
	// Mesh returns the vertices/indices extracted by the most recent
	// WriteGrid2 call, in chunk-local space (spec §4.3 "UpdateRenderMeshes
	// (new_render_mesh)").
	Mesh() (vertices []float32, indices []uint32)
}

// MeshWriter3D is the 3D counterpart of MeshWriter2D.
type MeshWriter3D interface {
	WriteGrid3(ctx context.Context, samples []byte, baseIndex int, strideY, strideZ int) error
	Mesh() (vertices []float32, indices []uint32)
}

// MeshWriterPool2D rents and returns MeshWriter2D instances (spec §6
// "rent() / return()").
type MeshWriterPool2D interface {
	Rent() MeshWriter2D
	Return(MeshWriter2D)
}

// MeshWriterPool3D is the 3D counterpart of MeshWriterPool2D.
type MeshWriterPool3D interface {
	Rent() MeshWriter3D
	Return(MeshWriter3D)
}
