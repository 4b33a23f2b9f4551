// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfshape

// DefaultRegistry2D registers the minimum concrete 2D shape set required by
// spec §4.1. Composition wrappers (Translate2D, Expand2D, Intersect2D,
// Union2D) are deliberately excluded: they only ever exist transiently on
// the authority before being applied to a chunk's local SampleArray, never
// over the wire (spec §6 only describes concrete shape payloads).
func DefaultRegistry2D() *Registry2D {
	return NewRegistry2D(
		Shape2DEntry{Name: "box2", New: ReadBox2D},
		Shape2DEntry{Name: "disc2", New: ReadDisc2D},
		Shape2DEntry{Name: "capsule2", New: ReadCapsule2D},
		Shape2DEntry{Name: "halfplane2", New: ReadHalfPlane2D},
		Shape2DEntry{Name: "cellularnoise2", New: ReadCellularNoise2D},
		Shape2DEntry{Name: "heightfield2", New: ReadHeightField2D},
	)
}

// DefaultRegistry3D registers the minimum concrete 3D shape set.
func DefaultRegistry3D() *Registry3D {
	return NewRegistry3D(
		Shape3DEntry{Name: "box3", New: ReadBox3D},
		Shape3DEntry{Name: "sphere3", New: ReadSphere3D},
		Shape3DEntry{Name: "capsule3", New: ReadCapsule3D},
		Shape3DEntry{Name: "halfspace3", New: ReadHalfSpace3D},
		Shape3DEntry{Name: "cellularnoise3", New: ReadCellularNoise3D},
	)
}
