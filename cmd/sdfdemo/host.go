// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command sdfdemo is a minimal host-engine integration exercising the
// core end to end: it supplies a goroutine-backed task pool, a
// time.Ticker-driven tick source, and a stdout logger, then drives a
// World2 through a handful of modifications and a replication round-trip.
// Grounded on hub.go's own ticker-driven main loop.
package main

import (
	"context"
	"fmt"

	"github.com/brinewave/sdfworld/sdfhost"
)

// goroutinePool is the simplest possible sdfhost.TaskPool: every
// RunInThread call gets its own goroutine, and ToMainThread runs its
// callback inline on a dedicated main-thread goroutine reached via a
// channel, mirroring hub.go's single-threaded `run()` select loop that
// owns all mutable state.
type goroutinePool struct {
	mainThread chan func()
}

func newGoroutinePool() *goroutinePool {
	p := &goroutinePool{mainThread: make(chan func(), 64)}
	go func() {
		for fn := range p.mainThread {
			fn()
		}
	}()
	return p
}

type goroutineTask struct {
	done chan struct{}
	err  error
}

func (t *goroutineTask) Wait() error {
	<-t.done
	return t.err
}

func (t *goroutineTask) Cancel() {}

func (t *goroutineTask) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (p *goroutinePool) RunInThread(f func(ctx context.Context) error) sdfhost.Task {
	t := &goroutineTask{done: make(chan struct{})}
	go func() {
		t.err = f(context.Background())
		close(t.done)
	}()
	return t
}

func (p *goroutinePool) ToMainThread(f func()) {
	done := make(chan struct{})
	p.mainThread <- func() {
		f()
		close(done)
	}
	<-done
}

// stdoutLogger is the demo's Logger, matching the teacher's own
// fmt.Println-based logging texture (mk48 has no structured logger).
type stdoutLogger struct{}

func (stdoutLogger) Warn(format string, args ...any)  { fmt.Printf("WARN: "+format+"\n", args...) }
func (stdoutLogger) Error(format string, args ...any) { fmt.Printf("ERROR: "+format+"\n", args...) }

// debugSceneObject stands in for a real engine's renderable: it just logs
// what the core publishes to it, since this demo has no renderer.
type debugSceneObject struct {
	key any
}

func (o *debugSceneObject) SetAttribute(name string, value any) {
	fmt.Printf("scene object %v: set attribute %s\n", o.key, name)
}

func (o *debugSceneObject) ReplaceModel(vertices []float32, indices []uint32) {
	fmt.Printf("scene object %v: replace model (%d vertices, %d indices)\n", o.key, len(vertices), len(indices))
}

// debugPhysicsBody stands in for a real engine's collision shape.
type debugPhysicsBody struct {
	key any
}

func (b *debugPhysicsBody) AddMeshShape(vertices []float32, indices []uint32, tags []string) {
	fmt.Printf("physics body %v: add mesh shape (%d vertices, tags=%v)\n", b.key, len(vertices), tags)
}

func (b *debugPhysicsBody) UpdateMesh(vertices []float32, indices []uint32) {
	fmt.Printf("physics body %v: update mesh (%d vertices)\n", b.key, len(vertices))
}

func (b *debugPhysicsBody) Remove() {
	fmt.Printf("physics body %v: removed\n", b.key)
}

// debugTexture is the demo's Texture handle: nothing to release, since
// nothing GPU-backed was ever allocated.
type debugTexture struct {
	width, height, depth int
}

func (debugTexture) Release() {}

// debugTextureFactory builds debugTexture handles and logs the raw sample
// byte count it was handed, standing in for a real engine's GPU upload.
type debugTextureFactory struct{}

func (debugTextureFactory) NewTexture2D(width, height int, data []byte) (sdfhost.Texture, error) {
	fmt.Printf("texture factory: built %dx%d 2D texture from %d bytes\n", width, height, len(data))
	return debugTexture{width: width, height: height}, nil
}

func (debugTextureFactory) NewTexture3D(width, height, depth int, data []byte) (sdfhost.Texture, error) {
	fmt.Printf("texture factory: built %dx%dx%d 3D texture from %d bytes\n", width, height, depth, len(data))
	return debugTexture{width: width, height: height, depth: depth}, nil
}
