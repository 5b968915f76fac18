// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package humanizeutil

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// IBytes is an int64 version of go-humanize's IBytes.
func IBytes(value int64) string {
	if value < 0 {
		return "-" + humanize.IBytes(uint64(-value))
	}
	return humanize.IBytes(uint64(value))
}

// ParseBytes is an int64 version of go-humanize's ParseBytes.
func ParseBytes(s string) (int64, error) {
	if len(s) == 0 {
		return 0, errors.New(`parsing "": invalid syntax`)
	}
	var startIndex int
	var negative bool
	if s[0] == '-' {
		negative = true
		startIndex = 1
	}
	value, err := humanize.ParseBytes(s[startIndex:])
	if err != nil {
		return 0, err
	}
	if value > math.MaxInt64 {
		return 0, errors.Newf("too large: %s", s)
	}
	if negative {
		return -int64(value), nil
	}
	return int64(value), nil
}

// Count formats a count with thousands separators, e.g. 1,234,567.
func Count(n int64) string {
	return humanize.Comma(n)
}

// durationGranularity maps an upper bound to the unit a duration below it is
// rounded to.
var durationGranularity = []struct {
	below, round time.Duration
}{
	{time.Millisecond, time.Microsecond},
	{time.Second, time.Millisecond},
	{time.Minute, 100 * time.Millisecond},
}

// Duration formats an elapsed time for display, e.g. "123µs", "12ms" or
// "12.3s". Durations of a minute or more are rounded to the second.
func Duration(d time.Duration) string {
	d = d.Round(time.Microsecond)
	if d == 0 {
		return "0µs"
	}
	for _, g := range durationGranularity {
		if d < g.below {
			return d.Round(g.round).String()
		}
	}
	return d.Round(time.Second).String()
}

// BytesValue is a pflag.Value accepting sizes in any format recognized
// by humanize, e.g. "64KiB" or "1MB". The value is written atomically.
type BytesValue struct {
	val   *int64
	isSet bool
}

var _ pflag.Value = &BytesValue{}

// NewBytesValue creates a new pflag.Value bound to the specified int64
// variable.
func NewBytesValue(val *int64) *BytesValue {
	return &BytesValue{val: val}
}

// Set implements the pflag.Value interface.
func (b *BytesValue) Set(s string) error {
	v, err := ParseBytes(s)
	if err != nil {
		return err
	}
	atomic.StoreInt64(b.val, v)
	b.isSet = true
	return nil
}

// Type implements the pflag.Value interface.
func (b *BytesValue) Type() string {
	return "bytes"
}

// String implements the pflag.Value interface. Sizes are printed with
// the MiB, GiB, etc suffixes.
func (b *BytesValue) String() string {
	if b.val == nil {
		return IBytes(0)
	}
	return IBytes(atomic.LoadInt64(b.val))
}

// IsSet returns true iff Set has successfully been called.
func (b *BytesValue) IsSet() bool {
	return b.isSet
}
