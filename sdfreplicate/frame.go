// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfreplicate

import "github.com/brinewave/sdfworld/sdfshape"

// Frame is one RPC payload of spec §6 "Modification frame RPC payload":
// a header identifying the server's clear/modification counters, followed
// by up to MaxModificationsPerFrame modifications.
type Frame struct {
	ClearCount        int32
	PreviousCount     int32
	FrameCount        int32
	TotalCount        int32
	Entries           []LogEntry
}

// Encode writes the frame's wire representation. The caller supplies codec
// to turn each entry's opaque Resource into bytes.
func (f Frame) Encode(codec ResourceCodec) []byte {
	w := sdfshape.NewWriter()
	w.WriteInt32(f.ClearCount)
	w.WriteInt32(f.PreviousCount)
	w.WriteInt32(f.FrameCount)
	w.WriteInt32(f.TotalCount)
	for _, e := range f.Entries {
		w.WriteByte8(e.Operator)
		codec.EncodeResource(w, e.Resource)
		w.Write(e.Shape) // nolint:errcheck -- bytes.Buffer.Write never errors
	}
	return w.Bytes()
}

// DecodeFrameHeader reads just the four header counters, leaving r
// positioned at the start of the first entry. Entries themselves need the
// shape registry to know how many bytes each shape payload occupies, so
// they're decoded by the observer with registry in hand (see client.go).
func DecodeFrameHeader(r *sdfshape.Reader) (clearCount, previousCount, frameCount, totalCount int32, err error) {
	if clearCount, err = r.ReadInt32(); err != nil {
		return
	}
	if previousCount, err = r.ReadInt32(); err != nil {
		return
	}
	if frameCount, err = r.ReadInt32(); err != nil {
		return
	}
	totalCount, err = r.ReadInt32()
	return
}
