// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metric

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// A Registry is a set of metrics. It is safe for concurrent use.
type Registry struct {
	reg *prometheus.Registry
}

// NewRegistry creates a new, empty Registry.
func NewRegistry() *Registry {
	return &Registry{reg: prometheus.NewRegistry()}
}

// Gatherer returns the prometheus.Gatherer for the metrics in r.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// AddMetric adds the passed-in metric to the registry.
func (r *Registry) AddMetric(c prometheus.Collector) error {
	return errors.Wrap(r.reg.Register(c), "registering metric")
}

// AddMetricStruct examines all exported fields of metricStruct and adds
// every field that is a prometheus.Collector to the registry. Nil
// fields are skipped.
func (r *Registry) AddMetricStruct(metricStruct interface{}) error {
	v := reflect.ValueOf(metricStruct)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.AssertionFailedf("metric struct must be a struct, got %T", metricStruct)
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Ptr || fv.Kind() == reflect.Interface {
			if fv.IsNil() {
				continue
			}
		}
		c, ok := fv.Interface().(prometheus.Collector)
		if !ok {
			continue
		}
		if err := r.AddMetric(c); err != nil {
			return errors.Wrapf(err, "field %s", field.Name)
		}
	}
	return nil
}
