// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdftick

import "time"

// DefaultBudget is the soft per-tick time cap the main-thread drain of
// pending chunk tasks should respect before yielding back to the scheduler
// (spec §5 "a cooperative per-tick time budget, not preemption").
const DefaultBudget = time.Millisecond

// Budget tracks elapsed wall-clock time against a soft cap so a loop can
// cooperatively check "have I done enough work this tick" between units of
// work, rather than being preempted. Grounded on the teacher's own
// tick-driven main loop in hub.go, where each tick does a bounded slice of
// work and yields to the next select iteration; this generalises that
// pattern into a reusable checkpoint a caller polls explicitly.
type Budget struct {
	cap     time.Duration
	started time.Time
}

// NewBudget starts a budget with the given cap. now is supplied by the
// caller (e.g. the host's tick source) rather than read from the system
// clock here, keeping this package free of wall-clock side effects.
func NewBudget(now time.Time, cap time.Duration) *Budget {
	return &Budget{cap: cap, started: now}
}

// Exhausted reports whether the budget's cap has been reached, given the
// current time.
func (b *Budget) Exhausted(now time.Time) bool {
	return now.Sub(b.started) >= b.cap
}
