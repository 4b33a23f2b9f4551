// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import (
	"fmt"
	"sort"
)

// Registry2D maps each registered Shape2D variant to a stable wire index,
// assigned once by sorting variants lexicographically by their canonical
// type name (spec §4.1, §9 "polymorphic shapes without inheritance"),
// mirroring server/message.go's registerInbound/registerOutbound and
// world/entity_data_loader.go's enum.create sort-then-index idiom.
type Registry2D struct {
	names   []string
	readers []Shape2DReader
	index   map[string]uint32
}

type Shape2DEntry struct {
	Name string
	New  Shape2DReader
}

// NewRegistry2D builds a registry from entries, sorting by Name. Call once
// at startup; the result is immutable and safe for concurrent use.
func NewRegistry2D(entries ...Shape2DEntry) *Registry2D {
	sorted := append([]Shape2DEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	reg := &Registry2D{
		names:   make([]string, len(sorted)),
		readers: make([]Shape2DReader, len(sorted)),
		index:   make(map[string]uint32, len(sorted)),
	}
	for i, e := range sorted {
		if _, dup := reg.index[e.Name]; dup {
			panic("sdfshape: duplicate shape type name " + e.Name)
		}
		reg.names[i] = e.Name
		reg.readers[i] = e.New
		reg.index[e.Name] = uint32(i)
	}
	return reg
}

// Write encodes shape as (registry index, payload). Failing to find the
// variant is a programmer error and panics (spec §4.1/§7).
func (reg *Registry2D) Write(w *Writer, shape Shape2D) {
	idx, ok := reg.index[shape.TypeName()]
	if !ok {
		panic("sdfshape: write of unregistered shape type " + shape.TypeName())
	}
	w.WriteUint32(idx)
	shape.Write(w)
}

// Read decodes a shape previously written by Write. An unknown index is a
// protocol error (spec §7) and is returned, never panicked.
func (reg *Registry2D) Read(r *Reader) (Shape2D, error) {
	idx, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("sdfshape: read shape index: %w", err)
	}
	if int(idx) >= len(reg.readers) {
		return nil, fmt.Errorf("sdfshape: unregistered shape index %d", idx)
	}
	return reg.readers[idx](r)
}

// Registry3D is the 3D counterpart of Registry2D.
type Registry3D struct {
	names   []string
	readers []Shape3DReader
	index   map[string]uint32
}

type Shape3DEntry struct {
	Name string
	New  Shape3DReader
}

func NewRegistry3D(entries ...Shape3DEntry) *Registry3D {
	sorted := append([]Shape3DEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	reg := &Registry3D{
		names:   make([]string, len(sorted)),
		readers: make([]Shape3DReader, len(sorted)),
		index:   make(map[string]uint32, len(sorted)),
	}
	for i, e := range sorted {
		if _, dup := reg.index[e.Name]; dup {
			panic("sdfshape: duplicate shape type name " + e.Name)
		}
		reg.names[i] = e.Name
		reg.readers[i] = e.New
		reg.index[e.Name] = uint32(i)
	}
	return reg
}

func (reg *Registry3D) Write(w *Writer, shape Shape3D) {
	idx, ok := reg.index[shape.TypeName()]
	if !ok {
		panic("sdfshape: write of unregistered shape type " + shape.TypeName())
	}
	w.WriteUint32(idx)
	shape.Write(w)
}

func (reg *Registry3D) Read(r *Reader) (Shape3D, error) {
	idx, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("sdfshape: read shape index: %w", err)
	}
	if int(idx) >= len(reg.readers) {
		return nil, fmt.Errorf("sdfshape: unregistered shape index %d", idx)
	}
	return reg.readers[idx](r)
}
