// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import "time"

// StopWatch measures the wall time spent by a component. It can be
// started and stopped multiple times, but is not safe to use
// concurrently. If the StopWatch is nil, all operations are no-ops.
type StopWatch struct {
	started bool
	start   time.Time
	total   time.Duration
	now     func() time.Time
}

// NewStopWatch returns a stopped StopWatch.
func NewStopWatch() *StopWatch {
	return &StopWatch{now: Now}
}

// Start starts the stop watch if it isn't running.
func (w *StopWatch) Start() {
	if w == nil || w.started {
		return
	}
	w.started = true
	w.start = w.now()
}

// Stop stops the stop watch and adds the time since Start to the total.
func (w *StopWatch) Stop() {
	if w == nil || !w.started {
		return
	}
	w.started = false
	w.total += w.now().Sub(w.start)
}

// Elapsed returns the total time measured between calls to Start and
// Stop.
func (w *StopWatch) Elapsed() time.Duration {
	if w == nil {
		return 0
	}
	return w.total
}
