// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metric

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// PrometheusExporter exports the metrics of a Registry in the Prometheus
// text format.
type PrometheusExporter struct {
	r *Registry
}

var _ prometheus.Gatherer = (*PrometheusExporter)(nil)

// MakePrometheusExporter returns an exporter for the metrics in r.
func MakePrometheusExporter(r *Registry) PrometheusExporter {
	return PrometheusExporter{r: r}
}

// Gather implements prometheus.Gatherer.
func (pm *PrometheusExporter) Gather() ([]*dto.MetricFamily, error) {
	return pm.r.reg.Gather()
}

// PrintAsText writes all metrics to w in the Prometheus text format.
func (pm *PrometheusExporter) PrintAsText(w io.Writer) error {
	families, err := pm.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}
