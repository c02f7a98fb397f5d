// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analyzer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "archbench"

// MetricsCollector holds the gauges exported for one analysis run.
//
// Each run uses its own registry, so nothing from a previous run or from
// the default registry leaks into the textfile.
type MetricsCollector struct {
	registry  *prometheus.Registry
	phase     *prometheus.GaugeVec
	ratio     *prometheus.GaugeVec
	meanRatio prometheus.Gauge
}

// NewMetricsCollector creates a collector with a private registry.
func NewMetricsCollector() *MetricsCollector {
	c := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "phase_seconds",
			Help:      "Duration of a benchmark phase in seconds as reported in the workflow log",
		}, []string{"project", "arch", "metric"}),
		ratio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "ratio",
			Help:      "ARM64 over x86_64 duration ratio",
		}, []string{"project", "metric"}),
		meanRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "mean_total_ratio",
			Help:      "Unweighted mean of the total_time ratios across projects",
		}),
	}
	c.registry.MustRegister(c.phase, c.ratio, c.meanRatio)
	return c
}

// Observe records every measurement and ratio of a snapshot.
func (c *MetricsCollector) Observe(snapshot Snapshot) {
	for _, p := range AllProjects {
		for _, a := range AllArches {
			for m, value := range snapshot.Results.Get(p, a) {
				c.phase.WithLabelValues(p.String(), a.String(), m.String()).Set(float64(value))
			}
		}
		for kind, value := range snapshot.Ratios[p] {
			c.ratio.WithLabelValues(p.String(), kind.String()).Set(value)
		}
	}
	c.meanRatio.Set(MeanTotalRatio(snapshot.Ratios))
}

// Gatherer exposes the registry, mainly for tests.
func (c *MetricsCollector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes the gauges in the node-exporter textfile format.
//
// The file is written to a temporary name and renamed, which is what
// the textfile collector expects. Missing parent directories are created.
func (c *MetricsCollector) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return &AnalysisError{Stage: StageMetrics, Path: path, Err: fmt.Errorf("create directory: %w", err)}
		}
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return &AnalysisError{Stage: StageMetrics, Path: path, Err: err}
	}
	return nil
}
