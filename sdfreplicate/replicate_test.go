// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfreplicate

import (
	"testing"

	"github.com/brinewave/sdfworld/sdfhost"
	"github.com/brinewave/sdfworld/sdfshape"
)

func encodedDisc(reg *sdfshape.Registry2D, radius float32) []byte {
	w := sdfshape.NewWriter()
	reg.Write(w, sdfshape.Disc2D{Radius: radius})
	return w.Bytes()
}

func TestServer_CatchUpIn4Frames(t *testing.T) {
	reg := sdfshape.DefaultRegistry2D()
	codec := Uint32ResourceCodec{}

	var log []LogEntry
	for i := 0; i < 200; i++ {
		log = append(log, LogEntry{Operator: 0, Resource: uint32(1), Shape: encodedDisc(reg, float32(i))})
	}

	srv := NewServer(codec)
	srv.AddObserver(sdfhost.ObserverID(1))

	var received [][]byte
	for tick := 0; tick < 10 && len(received) < 4; tick++ {
		before := len(received)
		srv.Tick(log, 0, func(id sdfhost.ObserverID, frame []byte) {
			received = append(received, frame)
		})
		if len(received) == before {
			break
		}
	}

	if len(received) != 4 {
		t.Fatalf("expected ceil(200/64)=4 frames, got %d", len(received))
	}

	obs := NewObserver2(reg, func() {})
	var applied int
	for _, frame := range received {
		err := obs.Apply(frame, codec, func(op byte, resource interface{}, shape sdfshape.Shape2D) {
			applied++
		})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	if applied != 200 {
		t.Fatalf("expected 200 modifications applied, got %d", applied)
	}
}

func TestObserver2_DroppedFrameDetected(t *testing.T) {
	reg := sdfshape.DefaultRegistry2D()
	codec := Uint32ResourceCodec{}

	frame := Frame{
		ClearCount:    0,
		PreviousCount: 5, // observer expects 0, server claims 5: a gap
		FrameCount:    1,
		TotalCount:    6,
		Entries:       []LogEntry{{Operator: 0, Resource: uint32(1), Shape: encodedDisc(reg, 1)}},
	}

	obs := NewObserver2(reg, func() {})
	err := obs.Apply(frame.Encode(codec), codec, func(op byte, resource interface{}, shape sdfshape.Shape2D) {})
	if err == nil {
		t.Fatal("expected a dropped-frame error")
	}
	if _, ok := err.(*DroppedFrameError); !ok {
		t.Fatalf("expected *DroppedFrameError, got %T", err)
	}
}

func TestObserver2_ClearCountTriggersLocalClear(t *testing.T) {
	reg := sdfshape.DefaultRegistry2D()
	codec := Uint32ResourceCodec{}

	cleared := false
	obs := NewObserver2(reg, func() { cleared = true })

	frame := Frame{ClearCount: 1, PreviousCount: 0, FrameCount: 0, TotalCount: 0}
	if err := obs.Apply(frame.Encode(codec), codec, func(byte, interface{}, sdfshape.Shape2D) {}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !cleared {
		t.Error("expected a changed clear_count to trigger onClear")
	}
}
