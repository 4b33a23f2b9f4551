// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sdfreplicate implements the modification-log replication protocol
// of spec §4.5: per-observer cursors, chunked RPC frames bounded to 64
// modifications, and resync-on-mismatch. Grounded on mk48's own
// inbound/outbound message framing (server/message.go) and its
// per-client state tracking (server/client.go), generalised from game
// messages to SDF modification frames.
package sdfreplicate

import "github.com/brinewave/sdfworld/sdfhost"

// MaxModificationsPerFrame bounds a single RPC frame (spec §4.5 "frame_count
// ≤ 64").
const MaxModificationsPerFrame = 64

// Cursor tracks one observer's replication progress against the
// authority's log (spec §4.5 "cursors: map<ObserverId, (clear_count,
// modification_count)>").
type Cursor struct {
	ClearCount       int
	ModificationCount int
}

// LogEntry is one modification as seen by the replication layer: a
// pre-encoded wire payload (operator, resource reference, shape bytes)
// rather than a live Shape, so this package never needs to know about
// sdfshape's concrete types.
type LogEntry struct {
	Operator byte // 0 = Add, 1 = Subtract
	Resource sdfhost.Resource
	Shape    []byte // registry-encoded shape payload (spec §6 "shape wire format")
}
