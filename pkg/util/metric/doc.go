// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

/*
Package metric provides the counters and histograms maintained while
evaluating expressions, and the exporters that publish them.

# Adding a new metric

First, describe the metric with a Metadata and create it:

	var metaRowsEvaluated = metric.Metadata{
		Name: "exprexec.rows.evaluated",
		Help: "Number of rows evaluated",
	}

	m := &Metrics{
		RowsEvaluated: metric.NewCounter(metaRowsEvaluated),
	}

Next, add the struct holding the metrics to a Registry:

	registry.AddMetricStruct(m)

Every exported field of the struct that is a prometheus.Collector is
registered. Dots in metric names are exported as underscores, so the
metric above is published as "exprexec_rows_evaluated".

# Exporting

A PrometheusExporter prints the contents of a Registry in the
Prometheus text format. A GraphiteExporter pushes the same metrics to
a Graphite or Carbon server.
*/
package metric
