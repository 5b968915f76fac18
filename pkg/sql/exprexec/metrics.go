// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exprexec

import (
	"github.com/cockroachdb/numexpr/pkg/util/metric"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metaRowsEvaluated = metric.Metadata{
		Name: "exprexec.rows.evaluated",
		Help: "Number of rows an expression was evaluated against",
	}
	metaNullResults = metric.Metadata{
		Name: "exprexec.rows.null",
		Help: "Number of evaluations that produced NULL",
	}
	metaWarnings = metric.Metadata{
		Name:   "exprexec.warnings",
		Help:   "Number of warnings raised during evaluation, by error code",
		Labels: []string{"code"},
	}
	metaErrors = metric.Metadata{
		Name:   "exprexec.errors",
		Help:   "Number of statements aborted by an evaluation error, by error code",
		Labels: []string{"code"},
	}
	metaStatementLatency = metric.Metadata{
		Name: "exprexec.statement.latency",
		Help: "Time spent evaluating a statement over all rows, in seconds",
	}
)

// Metrics holds the counters maintained by an Executor. They may be
// shared by executors running concurrently.
type Metrics struct {
	RowsEvaluated    prometheus.Counter
	NullResults      prometheus.Counter
	Warnings         *prometheus.CounterVec
	Errors           *prometheus.CounterVec
	StatementLatency prometheus.Histogram
}

// MakeMetrics instantiates the metrics of an Executor.
func MakeMetrics() Metrics {
	return Metrics{
		RowsEvaluated:    metric.NewCounter(metaRowsEvaluated),
		NullResults:      metric.NewCounter(metaNullResults),
		Warnings:         metric.NewCounterVec(metaWarnings),
		Errors:           metric.NewCounterVec(metaErrors),
		StatementLatency: metric.NewHistogram(metaStatementLatency, metric.IOLatencyBuckets),
	}
}
