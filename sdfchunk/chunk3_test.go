// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfchunk

import (
	"context"
	"testing"
	"time"

	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdftick"
)

// A second pending task of the same kind replaces the first rather than
// queuing alongside it, so draining runs only the later closure.
func TestChunk3_SupersededMainThreadTaskDoesNotRun(t *testing.T) {
	c := NewChunk3(Key3{}, uint32(1), 4, 16, 4, ChunkHooks3{}, nil)

	var ran []string
	c.EnqueueLayerTexture(func(ctx context.Context) { ran = append(ran, "first") })
	c.EnqueueLayerTexture(func(ctx context.Context) { ran = append(ran, "second") })

	budget := sdftick.NewBudget(time.Now(), time.Second)
	c.DrainPendingMainThreadTasks(context.Background(), budget)

	if len(ran) != 1 || ran[0] != "second" {
		t.Fatalf("expected only the superseding closure to run, got %v", ran)
	}
}

func TestChunk3_DrainStopsAtExhaustedBudget(t *testing.T) {
	c := NewChunk3(Key3{}, uint32(1), 4, 16, 4, ChunkHooks3{}, nil)

	var ran []string
	c.EnqueueLayerTexture(func(ctx context.Context) { ran = append(ran, "texture") })
	c.enqueueMainThread(kindUpdateRenderMeshes, func(ctx context.Context) { ran = append(ran, "render") })

	exhausted := sdftick.NewBudget(time.Now().Add(-time.Hour), time.Nanosecond)
	c.DrainPendingMainThreadTasks(context.Background(), exhausted)

	if len(ran) != 0 {
		t.Fatalf("expected an already-exhausted budget to run nothing, got %v", ran)
	}
}

// UpdateMesh with a nil writer still advances the modification-count
// bookkeeping without touching any hook.
func TestChunk3_UpdateMeshWithNilWriterSkipsHooks(t *testing.T) {
	c := NewChunk3(Key3{}, uint32(1), 4, 16, 4, ChunkHooks3{}, nil)

	task := c.UpdateMesh(context.Background(), fakePool{}, nil)
	if err := task.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Texture() != nil {
		t.Fatalf("expected no texture with a nil TextureFactory hook")
	}
}

// Cancelling a superseded UpdateMesh task is observed by the task it
// replaces, guarding against the ctx-shadowing regression the cancellable
// context is meant to fix: the mesh writer blocks until its context is
// done, and only the superseding call's cancellation can unblock it.
func TestChunk3_UpdateMeshCancelsSupersededTask(t *testing.T) {
	c := NewChunk3(Key3{}, uint32(1), 4, 16, 4, ChunkHooks3{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := &blockingMeshWriter3{started: make(chan struct{})}
	first := c.UpdateMesh(ctx, asyncPool{}, writer)
	<-writer.started

	c.UpdateMesh(ctx, asyncPool{}, nil)

	if err := first.Wait(); err == nil {
		t.Fatalf("expected the superseded task to observe cancellation")
	}
}

type blockingMeshWriter3 struct {
	started chan struct{}
}

func (w *blockingMeshWriter3) WriteGrid3(ctx context.Context, samples []byte, baseIndex int, strideY, strideZ int) error {
	close(w.started)
	<-ctx.Done()
	return ctx.Err()
}

func (w *blockingMeshWriter3) Mesh() (vertices []float32, indices []uint32) { return nil, nil }

// fakeTask/fakePool are a synchronous TaskPool double: RunInThread executes
// its function immediately rather than scheduling it, which is enough for
// tests that don't need to observe mid-flight cancellation.
type fakeTask struct{ err error }

func (t *fakeTask) Wait() error { return t.err }
func (t *fakeTask) Cancel()     {}
func (t *fakeTask) Done() bool  { return true }

type fakePool struct{}

func (fakePool) RunInThread(f func(ctx context.Context) error) sdfhost.Task {
	return &fakeTask{err: f(context.Background())}
}
func (fakePool) ToMainThread(f func()) { f() }

// asyncTask/asyncPool are a TaskPool double that actually runs work on a
// separate goroutine, unlike fakePool's synchronous stand-in, so tests can
// observe mid-flight cancellation.
type asyncTask struct {
	done chan struct{}
	err  error
}

func (t *asyncTask) Wait() error {
	<-t.done
	return t.err
}
func (t *asyncTask) Cancel() {}
func (t *asyncTask) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

type asyncPool struct{}

func (asyncPool) RunInThread(f func(ctx context.Context) error) sdfhost.Task {
	t := &asyncTask{done: make(chan struct{})}
	go func() {
		t.err = f(context.Background())
		close(t.done)
	}()
	return t
}

func (asyncPool) ToMainThread(f func()) { f() }
