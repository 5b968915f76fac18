// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metric

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metadata holds the information describing a metric.
type Metadata struct {
	// Name is the dotted name of the metric, e.g. "exprexec.rows.evaluated".
	Name string
	Help string
	// Labels are the variable label names for vector metrics.
	Labels []string
}

func (m Metadata) opts() prometheus.Opts {
	return prometheus.Opts{
		Name: ExportedName(m.Name),
		Help: m.Help,
	}
}

// ExportedName returns the name under which a metric is exported.
func ExportedName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// NewCounter creates a counter.
func NewCounter(meta Metadata) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts(meta.opts()))
}

// NewCounterVec creates a counter partitioned by meta.Labels.
func NewCounterVec(meta Metadata) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts(meta.opts()), meta.Labels)
}

// IOLatencyBuckets are the histogram buckets, in seconds, used for
// latencies between 10µs and 10s.
var IOLatencyBuckets = prometheus.ExponentialBuckets(
	(10 * time.Microsecond).Seconds(), 2, 20)

// NewHistogram creates a histogram with the given buckets.
func NewHistogram(meta Metadata, buckets []float64) prometheus.Histogram {
	o := meta.opts()
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    o.Name,
		Help:    o.Help,
		Buckets: buckets,
	})
}
