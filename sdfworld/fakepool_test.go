// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfworld

import (
	"context"

	"github.com/brinewave/sdfworld/sdfhost"
)

// fakeTask is a synchronously-already-resolved sdfhost.Task.
type fakeTask struct{ err error }

func (t *fakeTask) Wait() error { return t.err }
func (t *fakeTask) Cancel()     {}
func (t *fakeTask) Done() bool  { return true }

// fakePool runs everything inline on the calling goroutine, making chunk
// and world scheduling deterministic in tests.
type fakePool struct{}

func (fakePool) RunInThread(f func(ctx context.Context) error) sdfhost.Task {
	return &fakeTask{err: f(context.Background())}
}

func (fakePool) ToMainThread(f func()) { f() }
