// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"

	"github.com/brinewave/sdfworld/sdfhost"
)

// debugMeshWriter stands in for a real marching-squares/cubes extractor:
// it just records how many times it was asked to write a grid, since the
// core never looks at triangles itself.
type debugMeshWriter struct {
	writes int
}

func (w *debugMeshWriter) WriteGrid2(ctx context.Context, samples []byte, baseIndex int, strideY int) error {
	w.writes++
	fmt.Printf("mesh writer: wrote %d-sample 2D grid (base=%d, strideY=%d)\n", len(samples), baseIndex, strideY)
	return nil
}

func (w *debugMeshWriter) WriteGrid3(ctx context.Context, samples []byte, baseIndex int, strideY, strideZ int) error {
	w.writes++
	fmt.Printf("mesh writer: wrote %d-sample 3D grid (base=%d, strideY=%d, strideZ=%d)\n", len(samples), baseIndex, strideY, strideZ)
	return nil
}

// Mesh returns no geometry: a real marching-squares/cubes extractor would
// return what it built from the last WriteGrid2/WriteGrid3 call, but this
// stand-in never walks triangles.
func (w *debugMeshWriter) Mesh() (vertices []float32, indices []uint32) { return nil, nil }

// debugMeshWriterPool is a trivial single-instance pool; a real host would
// recycle GPU buffers across rent()/return() calls (spec §6 "mesh writer
// rental pool").
type debugMeshWriterPool struct {
	writer debugMeshWriter
}

func (p *debugMeshWriterPool) Rent() sdfhost.MeshWriter2D  { return &p.writer }
func (p *debugMeshWriterPool) Return(sdfhost.MeshWriter2D) {}
