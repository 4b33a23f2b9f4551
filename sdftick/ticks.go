// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sdftick provides the tick/time-budget primitives shared by
// sdfchunk and sdfworld (spec §5 "cooperative per-tick time budget").
// Grounded on world/ticks.go's Ticks type, carried over unchanged in shape
// even though nothing here needs JSON marshaling.
package sdftick

import "time"

// TickPeriod is the default main-thread tick interval, matching the
// teacher's own TickPeriod.
const TickPeriod = time.Second / 10

// TicksPerSecond is the reciprocal of TickPeriod.
const TicksPerSecond = Ticks(time.Second / TickPeriod)

// Ticks is a duration measured in ticks; it wraps after 65535 ticks
// (109.225 minutes at the default TickPeriod), matching world/ticks.go.
type Ticks uint16

// ToTicks converts a duration in seconds to Ticks.
func ToTicks(seconds float32) Ticks {
	return Ticks(seconds * float32(float64(time.Second)/float64(TickPeriod)))
}

// Float converts Ticks back to a duration in seconds.
func (t Ticks) Float() float32 {
	return float32(t) * float32(float64(TickPeriod)/float64(time.Second))
}
