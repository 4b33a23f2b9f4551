// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

import "github.com/aquilax/go-perlin"

// HeightField2D is a procedural, unbounded shape whose sample is the
// negated 2D perlin noise at the query point (scaled by frequency and
// amplitude), so points where the noise is positive read as inside,
// adapted from terrain/noise.Generator's use of go-perlin to build a base
// terrain before sculpting. It is a convenience, not part of
// the core's required minimum shape set, demonstrating go-perlin wired
// into a Shape2D (see SPEC_FULL.md §12).
type HeightField2D struct {
	noise      *perlin.Perlin
	frequency  float32
	amplitude  float32
	typeName   string
	writeSeed  int64
	writeFreq  float32
	writeAmpl  float32
}

// NewHeightField2D builds a HeightField2D from a seed, matching
// terrain/noise.Generator.New's perlin.NewPerlin(alpha, beta, n, seed) call
// shape (alpha=2, beta=2, n=3 are the teacher's own curated constants).
func NewHeightField2D(seed int64, frequency, amplitude float32) HeightField2D {
	return HeightField2D{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		frequency: frequency,
		amplitude: amplitude,
		typeName:  "heightfield2",
		writeSeed: seed,
		writeFreq: frequency,
		writeAmpl: amplitude,
	}
}

func (h HeightField2D) TypeName() string { return h.typeName }

func (h HeightField2D) Sample(p Vec2) float32 {
	height := float32(h.noise.Noise2D(float64(p.X*h.frequency), float64(p.Y*h.frequency))) * h.amplitude
	return -height
}

func (h HeightField2D) Bounds() AABB2 {
	return EmptyAABB2
}

func (h HeightField2D) Write(w *Writer) {
	w.WriteInt32(int32(h.writeSeed))
	w.WriteFloat32(h.writeFreq)
	w.WriteFloat32(h.writeAmpl)
}

func ReadHeightField2D(r *Reader) (Shape2D, error) {
	seed, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	freq, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	ampl, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return NewHeightField2D(int64(seed), freq, ampl), nil
}
