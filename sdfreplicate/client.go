// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfreplicate

import (
	"fmt"

	"github.com/brinewave/sdfworld/sdfshape"
)

// DroppedFrameError is the protocol error of spec §4.5 "if
// previous_count != local_modification_count, it reports a dropped frame
// and aborts". It is recoverable: the caller should simply wait for the
// server's next tick, which retransmits from the old cursor.
type DroppedFrameError struct {
	Expected, Got int32
}

func (e *DroppedFrameError) Error() string {
	return fmt.Sprintf("sdfreplicate: dropped frame, expected previous_count=%d got %d", e.Expected, e.Got)
}

// Observer2 applies incoming frames to a local 2D modification count and a
// pair of callbacks that apply Add/Subtract to the observer's own world
// copy (spec §4.5 "Observer receive").
type Observer2 struct {
	registry          *sdfshape.Registry2D
	clearCount        int32
	modificationCount int32
	onClear           func()
}

// NewObserver2 constructs an observer bound to registry for shape decoding
// and onClear, called whenever the frame's clear_count changes.
func NewObserver2(registry *sdfshape.Registry2D, onClear func()) *Observer2 {
	return &Observer2{registry: registry, onClear: onClear}
}

// Apply decodes frame and, for every modification in it, invokes apply
// with the decoded operator, resource and shape. It sets the
// _receiving_modifications scope implicitly: apply is expected to call the
// local world's AddAsync/SubtractAsync directly, bypassing any
// authority-only guard, since the caller is the replication layer itself.
func (o *Observer2) Apply(data []byte, codec ResourceCodec, apply func(op byte, resource interface{}, shape sdfshape.Shape2D)) error {
	r := sdfshape.NewReader(data)
	clearCount, previousCount, frameCount, _, err := DecodeFrameHeader(r)
	if err != nil {
		return err
	}

	if clearCount != o.clearCount {
		o.clearCount = clearCount
		o.modificationCount = 0
		if o.onClear != nil {
			o.onClear()
		}
	}

	if previousCount != o.modificationCount {
		return &DroppedFrameError{Expected: o.modificationCount, Got: previousCount}
	}

	for i := int32(0); i < frameCount; i++ {
		op, err := r.ReadByte8()
		if err != nil {
			return err
		}
		resource, err := codec.DecodeResource(r)
		if err != nil {
			return err
		}
		shape, err := o.registry.Read(r)
		if err != nil {
			return err
		}
		apply(op, resource, shape)
	}

	o.modificationCount = previousCount + frameCount
	return nil
}

// Observer3 is the 3D counterpart of Observer2.
type Observer3 struct {
	registry          *sdfshape.Registry3D
	clearCount        int32
	modificationCount int32
	onClear           func()
}

// NewObserver3 constructs a 3D observer.
func NewObserver3(registry *sdfshape.Registry3D, onClear func()) *Observer3 {
	return &Observer3{registry: registry, onClear: onClear}
}

// Apply is the 3D counterpart of Observer2.Apply.
func (o *Observer3) Apply(data []byte, codec ResourceCodec, apply func(op byte, resource interface{}, shape sdfshape.Shape3D)) error {
	r := sdfshape.NewReader(data)
	clearCount, previousCount, frameCount, _, err := DecodeFrameHeader(r)
	if err != nil {
		return err
	}

	if clearCount != o.clearCount {
		o.clearCount = clearCount
		o.modificationCount = 0
		if o.onClear != nil {
			o.onClear()
		}
	}

	if previousCount != o.modificationCount {
		return &DroppedFrameError{Expected: o.modificationCount, Got: previousCount}
	}

	for i := int32(0); i < frameCount; i++ {
		op, err := r.ReadByte8()
		if err != nil {
			return err
		}
		resource, err := codec.DecodeResource(r)
		if err != nil {
			return err
		}
		shape, err := o.registry.Read(r)
		if err != nil {
			return err
		}
		apply(op, resource, shape)
	}

	o.modificationCount = previousCount + frameCount
	return nil
}
