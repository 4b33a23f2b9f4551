// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sdfworld implements the world/chunk scheduler of spec §4.4: the
// owner of all chunks across all layers/volumes, the modification log, and
// the per-tick dispatch of mesh rebuilds. Grounded on world/sector's
// sector-partitioned ownership of entities, generalised from entities to
// chunks, plus terrain's own Source/quality split.
package sdfworld

import "github.com/brinewave/sdfworld/sdfhost"

// Quality is a layer/volume's immutable-once-bound chunking parameters
// (spec §4.1 "Quality settings (per layer/volume, immutable once a chunk
// is bound to it)").
type Quality struct {
	ChunkSize       float32
	ChunkResolution int
	MaxDistance     float32
}

// UnitSize is the world-space distance between adjacent samples.
func (q Quality) UnitSize() float32 {
	return q.ChunkSize / float32(q.ChunkResolution)
}

// TextureRef maps another layer's chunk texture onto this layer's shader
// attribute (spec §6 "referenced_textures").
type TextureRef struct {
	SourceResource  sdfhost.Resource
	TargetAttribute string
}

// LayerOptions are the configuration recognised per resource (spec §6
// "Configuration / options recognised per resource").
type LayerOptions struct {
	Quality             Quality
	Material            any // nil disables rendering
	HasCollision        bool
	IsTextureSourceOnly bool
	SplitCollisionTags  []string
	ReferencedTextures  []TextureRef

	// NewSceneObject mints the scene object a newly created chunk
	// publishes its render mesh to. Only called when Material != nil;
	// a nil NewSceneObject with a non-nil Material leaves rendering
	// disabled for the layer, same as leaving Material nil.
	NewSceneObject func(key any) sdfhost.SceneObject
	// NewPhysicsBody mints the collision body a newly created chunk
	// publishes its collision mesh to. Only called when HasCollision is
	// true.
	NewPhysicsBody func(key any) sdfhost.PhysicsBody
	// TextureFactory builds the layer texture handed to chunks for
	// cross-layer texture references (spec §6 "Texture factory"). A nil
	// factory disables per-chunk texture generation for the layer.
	TextureFactory sdfhost.TextureFactory
}
