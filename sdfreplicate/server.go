// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfreplicate

import "github.com/brinewave/sdfworld/sdfhost"

// Enqueue delivers an encoded frame to one observer. The server only
// advances that observer's cursor after Enqueue returns, so a delivery
// failure naturally causes a full retransmit next tick rather than a
// skipped one (spec §4.5, §9 "the spec requires the server not to advance
// its cursor until the frame is queued").
type Enqueue func(observer sdfhost.ObserverID, frame []byte)

// Server is the authority side of the replication protocol: it holds no
// state of its own beyond per-observer cursors, reading the log and
// clear_count from whatever owns them (sdfworld.World2/World3).
type Server struct {
	codec   ResourceCodec
	cursors map[sdfhost.ObserverID]*Cursor
}

// NewServer constructs a replication server using codec to encode resource
// references.
func NewServer(codec ResourceCodec) *Server {
	return &Server{codec: codec, cursors: make(map[sdfhost.ObserverID]*Cursor)}
}

// AddObserver registers a new observer starting from an empty world view.
func (s *Server) AddObserver(id sdfhost.ObserverID) {
	s.cursors[id] = &Cursor{}
}

// RemoveObserver forgets an observer's cursor.
func (s *Server) RemoveObserver(id sdfhost.ObserverID) {
	delete(s.cursors, id)
}

// Tick visits every observer and, if it is behind, enqueues one frame of
// at most MaxModificationsPerFrame modifications (spec §4.5 "Server tick").
func (s *Server) Tick(log []LogEntry, clearCount int, enqueue Enqueue) {
	for id, cursor := range s.cursors {
		if cursor.ClearCount != clearCount {
			cursor.ClearCount = clearCount
			cursor.ModificationCount = 0
		}
		if cursor.ModificationCount == len(log) {
			continue
		}

		previous := cursor.ModificationCount
		end := previous + MaxModificationsPerFrame
		if end > len(log) {
			end = len(log)
		}
		entries := log[previous:end]

		frame := Frame{
			ClearCount:    int32(clearCount),
			PreviousCount: int32(previous),
			FrameCount:    int32(len(entries)),
			TotalCount:    int32(len(log)),
			Entries:       entries,
		}
		enqueue(id, frame.Encode(s.codec))
		// The cursor advances only now, after the frame has been handed to
		// the host's outbound queue -- never before.
		cursor.ModificationCount = end
	}
}
