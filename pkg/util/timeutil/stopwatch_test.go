// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStopWatch(t *testing.T) {
	clock := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	w := NewStopWatch()
	w.now = func() time.Time { return clock }

	w.Start()
	clock = clock.Add(time.Second)
	w.Start()
	clock = clock.Add(time.Second)
	w.Stop()
	require.Equal(t, 2*time.Second, w.Elapsed())

	clock = clock.Add(time.Hour)
	w.Stop()
	w.Start()
	clock = clock.Add(500 * time.Millisecond)
	w.Stop()
	require.Equal(t, 2500*time.Millisecond, w.Elapsed())

	var nilWatch *StopWatch
	nilWatch.Start()
	nilWatch.Stop()
	require.Zero(t, nilWatch.Elapsed())
}
